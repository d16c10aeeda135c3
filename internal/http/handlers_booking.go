package http

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"hisab/internal/core"
	"hisab/internal/log"
	"hisab/internal/services"
	"hisab/internal/store"
)

func (s *Server) handleAddBooking(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "method", r.Method, "url", r.URL.Path)
		resp.Write(w)
		return
	}

	bf := ParseBookingForm(r.Form)

	results, err := s.svc.AddBookingToTeams(r.Context(), bf.Teams, bf.Booking)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrNoTeamsSelected):
		BadRequestError("Select at least one team").Write(w)
		return
	case errors.Is(err, core.ErrNegativeAmount):
		UnprocessableEntityError("Amounts cannot be negative").Write(w)
		return
	default:
		slog.ErrorContext(r.Context(), "Failed to add booking",
			"error", err,
			log.FieldTeamCount, len(bf.Teams),
			log.FieldComponent, log.ComponentTeams,
			log.FieldOperation, log.OpCreate)
		InternalServerError("Error saving booking").Write(w)
		return
	}

	var created int
	var failed []string
	for _, res := range results {
		if res.Err != nil {
			slog.ErrorContext(r.Context(), "Booking leg failed",
				"error", res.Err,
				log.FieldTeamName, res.TeamName,
				log.FieldComponent, log.ComponentTeams,
				log.FieldOperation, log.OpCreate)
			failed = append(failed, res.TeamName)
			continue
		}
		created++
	}

	if created > 0 {
		s.invalidateOverview()
	}

	slog.InfoContext(r.Context(), "Booking fan-out completed",
		log.FieldTeamCount, len(results),
		"created", created,
		"failed", len(failed),
		log.FieldEntryFee, float64(bf.Booking.EntryFee),
		log.FieldWinning, float64(bf.Booking.Winning),
		log.FieldComponent, log.ComponentTeams,
		log.FieldOperation, log.OpCreate)

	resp := NewHTMXResponse().TriggerBookingCreated(created, len(failed))
	if created > 0 {
		resp.TriggerOverviewRefresh().TriggerFormReset()
	}
	switch {
	case created == 0:
		resp.Status(http.StatusInternalServerError).
			TriggerErrorNotification("Booking could not be saved to any team")
	case len(failed) > 0:
		resp.TriggerWarningNotification(fmt.Sprintf("Booking saved to %d team(s), failed for: %s",
			created, template.HTMLEscapeString(strings.Join(failed, ", "))))
	default:
		resp.TriggerSuccessNotification(fmt.Sprintf("Booking saved to %d team(s)", created))
	}
	resp.Write(w)
}

func (s *Server) handleUpdateBooking(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodPost, http.MethodPut); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "method", r.Method, "url", r.URL.Path)
		resp.Write(w)
		return
	}

	bf := ParseBookingForm(r.Form)
	teamName := sanitizeInput(r.Form.Get("team"))
	if teamName == "" && len(bf.Teams) > 0 {
		teamName = bf.Teams[0]
	}
	if teamName == "" {
		BadRequestError("Team name is required").Write(w)
		return
	}

	var err error
	switch {
	case bf.BookingID != "":
		err = s.svc.UpdateBookingByID(r.Context(), teamName, bf.BookingID, bf.Booking)
	case bf.HasIndex:
		err = s.svc.UpdateBookingAt(r.Context(), teamName, bf.Index, bf.Booking)
	default:
		BadRequestError("Booking id or index is required").Write(w)
		return
	}

	if err != nil {
		s.writeBookingMutationError(w, r, err, teamName, "update")
		return
	}

	s.invalidateOverview()

	slog.InfoContext(r.Context(), "Booking updated",
		log.FieldTeamName, teamName,
		log.FieldBookingID, bf.BookingID,
		log.FieldComponent, log.ComponentTeams,
		log.FieldOperation, log.OpUpdate)

	NewHTMXResponse().
		TriggerBookingUpdated(teamName).
		TriggerOverviewRefresh().
		TriggerSuccessNotification("Booking updated").
		Write(w)
}

func (s *Server) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodPost, http.MethodDelete); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "method", r.Method, "url", r.URL.Path)
		resp.Write(w)
		return
	}

	bf := ParseBookingForm(r.Form)
	teamName := sanitizeInput(r.Form.Get("team"))
	if teamName == "" && len(bf.Teams) > 0 {
		teamName = bf.Teams[0]
	}
	if teamName == "" {
		BadRequestError("Team name is required").Write(w)
		return
	}

	ctx := withConfirmation(r.Context(), r.Form.Get("confirm") == "true")

	var err error
	switch {
	case bf.BookingID != "":
		err = s.svc.DeleteBookingByID(ctx, teamName, bf.BookingID)
	case bf.HasIndex:
		err = s.svc.DeleteBookingAt(ctx, teamName, bf.Index)
	default:
		BadRequestError("Booking id or index is required").Write(w)
		return
	}

	if errors.Is(err, services.ErrConfirmationDeclined) {
		NewHTMXResponse().
			TriggerWarningNotification("Deletion not confirmed").
			Write(w)
		return
	}
	if err != nil {
		s.writeBookingMutationError(w, r, err, teamName, "delete")
		return
	}

	s.invalidateOverview()

	slog.InfoContext(r.Context(), "Booking deleted",
		log.FieldTeamName, teamName,
		log.FieldBookingID, bf.BookingID,
		log.FieldComponent, log.ComponentTeams,
		log.FieldOperation, log.OpDelete)

	NewHTMXResponse().
		TriggerBookingDeleted(teamName).
		TriggerOverviewRefresh().
		TriggerSuccessNotification("Booking deleted").
		Write(w)
}

// writeBookingMutationError maps service errors for update/delete operations
// onto HTTP responses.
func (s *Server) writeBookingMutationError(w http.ResponseWriter, r *http.Request, err error, teamName, operation string) {
	switch {
	case errors.Is(err, core.ErrNegativeAmount):
		UnprocessableEntityError("Amounts cannot be negative").Write(w)
	case errors.Is(err, services.ErrBookingNotFound):
		NotFoundError("Booking no longer exists, refresh and retry").Write(w)
	case errors.Is(err, store.ErrTeamNotFound):
		NotFoundError(fmt.Sprintf("Team %q not found", teamName)).Write(w)
	case errors.Is(err, store.ErrIndexOutOfRange):
		UnprocessableEntityError("Booking position is out of range, refresh and retry").Write(w)
	default:
		slog.ErrorContext(r.Context(), "Booking mutation failed",
			"error", err,
			log.FieldTeamName, teamName,
			log.FieldComponent, log.ComponentTeams,
			log.FieldOperation, operation)
		InternalServerError("Error saving changes").Write(w)
	}
}
