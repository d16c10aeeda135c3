package http

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"hisab/internal/core"
	"hisab/internal/log"
	"hisab/internal/services"
	"hisab/internal/store"
)

func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "method", r.Method, "url", r.URL.Path)
		resp.Write(w)
		return
	}

	teamName := sanitizeInput(r.Form.Get("teamName"))
	err := s.svc.CreateTeam(r.Context(), teamName)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrEmptyTeamName):
		UnprocessableEntityError("Team name is required").Write(w)
		return
	case errors.Is(err, store.ErrTeamExists):
		ConflictError(fmt.Sprintf("Team %q already exists", teamName)).Write(w)
		return
	default:
		slog.ErrorContext(r.Context(), "Failed to create team",
			"error", err,
			log.FieldTeamName, teamName,
			log.FieldComponent, log.ComponentTeams,
			log.FieldOperation, log.OpCreate)
		InternalServerError("Error creating team").Write(w)
		return
	}

	s.invalidateOverview()

	slog.InfoContext(r.Context(), "Team created",
		log.FieldTeamName, teamName,
		log.FieldComponent, log.ComponentTeams,
		log.FieldOperation, log.OpCreate)

	NewHTMXResponse().
		TriggerTeamCreated(teamName).
		TriggerOverviewRefresh().
		TriggerFormReset().
		TriggerSuccessNotification(fmt.Sprintf("Team %s created", template.HTMLEscapeString(teamName))).
		Write(w)
}

func (s *Server) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodPost, http.MethodDelete); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "method", r.Method, "url", r.URL.Path)
		resp.Write(w)
		return
	}

	teamName := sanitizeInput(r.Form.Get("teamName"))
	ctx := withConfirmation(r.Context(), r.Form.Get("confirm") == "true")

	err := s.svc.DeleteTeam(ctx, teamName)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrEmptyTeamName):
		UnprocessableEntityError("Team name is required").Write(w)
		return
	case errors.Is(err, services.ErrConfirmationDeclined):
		// Not an error: the operator backed out, nothing changed.
		NewHTMXResponse().
			TriggerWarningNotification("Deletion not confirmed").
			Write(w)
		return
	case errors.Is(err, store.ErrTeamNotFound):
		NotFoundError(fmt.Sprintf("Team %q not found", teamName)).Write(w)
		return
	default:
		slog.ErrorContext(r.Context(), "Failed to delete team",
			"error", err,
			log.FieldTeamName, teamName,
			log.FieldComponent, log.ComponentTeams,
			log.FieldOperation, log.OpDelete)
		InternalServerError("Error deleting team").Write(w)
		return
	}

	s.invalidateOverview()

	slog.InfoContext(r.Context(), "Team deleted",
		log.FieldTeamName, teamName,
		log.FieldComponent, log.ComponentTeams,
		log.FieldOperation, log.OpDelete)

	NewHTMXResponse().
		TriggerTeamDeleted(teamName).
		TriggerOverviewRefresh().
		TriggerSuccessNotification(fmt.Sprintf("Team %s deleted", template.HTMLEscapeString(teamName))).
		Write(w)
}
