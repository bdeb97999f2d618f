package anubis

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/riskibarqy/club-manager/internal/domain/user"
)

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active  bool     `json:"active"`
	UserID  string   `json:"user_id"`
	Email   string   `json:"email"`
	Roles   []string `json:"roles"`
	TeamIDs []string `json:"team_ids"`
}

func (r introspectResponse) toPrincipal() user.Principal {
	return user.Principal{
		UserID:  strings.TrimSpace(r.UserID),
		Email:   strings.TrimSpace(r.Email),
		Roles:   compact(r.Roles),
		TeamIDs: compact(r.TeamIDs),
	}
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Tokens are never used as cache keys verbatim.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
