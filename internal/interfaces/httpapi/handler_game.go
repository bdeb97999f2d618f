package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/club-manager/internal/usecase"
)

type overviewQuery struct {
	From string `validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	To   string `validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	detail, err := h.gameService.GetDetail(ctx, principal, gameID)
	if err != nil {
		h.logFailure(r, "get game failed", err, "game_id", gameID, "user_id", principal.UserID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameDetailToDTO(detail))
}

func (h *Handler) ListGameEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameEvents")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	events, err := h.gameService.ListEvents(ctx, principal, gameID)
	if err != nil {
		h.logFailure(r, "list game events failed", err, "game_id", gameID, "user_id", principal.UserID)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameEventDTO, 0, len(events))
	for _, item := range events {
		items = append(items, gameEventToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// GetOverview covers every team the caller belongs to.
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	h.serveOverview(w, r, "httpapi.Handler.GetOverview", "")
}

func (h *Handler) GetTeamOverview(w http.ResponseWriter, r *http.Request) {
	h.serveOverview(w, r, "httpapi.Handler.GetTeamOverview", strings.TrimSpace(r.PathValue("teamID")))
}

func (h *Handler) serveOverview(w http.ResponseWriter, r *http.Request, spanName, teamID string) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	query := overviewQuery{
		From: strings.TrimSpace(r.URL.Query().Get("from")),
		To:   strings.TrimSpace(r.URL.Query().Get("to")),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	filter := usecase.OverviewFilter{TeamID: teamID}
	var err error
	if filter.From, err = parseOptionalTime("from", query.From); err != nil {
		writeError(ctx, w, err)
		return
	}
	if filter.To, err = parseOptionalTime("to", query.To); err != nil {
		writeError(ctx, w, err)
		return
	}

	overview, err := h.gameService.Overview(ctx, principal, filter)
	if err != nil {
		h.logFailure(r, "game overview failed", err, "team_id", teamID, "user_id", principal.UserID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overviewToDTO(overview))
}

// logFailure keeps caller errors at warn and reserves error for faults.
func (h *Handler) logFailure(r *http.Request, msg string, err error, args ...any) {
	args = append(args, "error", err)
	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrNotFound),
		errors.Is(err, usecase.ErrForbidden),
		errors.Is(err, usecase.ErrUnauthorized):
		h.logger.WarnContext(r.Context(), msg, args...)
	default:
		h.logger.ErrorContext(r.Context(), msg, args...)
	}
}

func parseOptionalTime(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be an RFC 3339 timestamp: %v", usecase.ErrInvalidInput, field, err)
	}
	return parsed.UTC(), nil
}
