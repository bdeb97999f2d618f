package authz

import (
	"context"
	"strings"

	"github.com/riskibarqy/club-manager/internal/domain/game"
	"github.com/riskibarqy/club-manager/internal/domain/user"
	"github.com/riskibarqy/club-manager/internal/domain/video"
)

// TeamPolicy grants access by role and team membership.
//
// Staff (admin, coach, analyst) see every game and every clip. Other callers
// see games of the teams they belong to, and within those games only clips
// published to the club or to the public.
type TeamPolicy struct{}

func NewTeamPolicy() TeamPolicy {
	return TeamPolicy{}
}

func (TeamPolicy) CanViewGame(_ context.Context, principal user.Principal, g game.Game) bool {
	if principal.UserID == "" {
		return false
	}
	if principal.IsStaff() {
		return true
	}
	return principal.BelongsTo(g.HomeTeamID) || principal.BelongsTo(g.AwayTeamID)
}

func (p TeamPolicy) CanViewVideo(ctx context.Context, principal user.Principal, g game.Game, clip video.Video) bool {
	if !p.CanViewGame(ctx, principal, g) {
		return false
	}

	switch normalizeVisibility(clip.Visibility) {
	case video.VisibilityPublic:
		return true
	case video.VisibilityStaff:
		return principal.IsStaff()
	default:
		return principal.IsStaff() || principal.BelongsTo(g.HomeTeamID) || principal.BelongsTo(g.AwayTeamID)
	}
}

// Unknown or empty visibility falls back to club.
func normalizeVisibility(value string) string {
	switch v := strings.ToLower(strings.TrimSpace(value)); v {
	case video.VisibilityPublic, video.VisibilityStaff:
		return v
	default:
		return video.VisibilityClub
	}
}
