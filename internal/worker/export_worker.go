// Package worker turns queued booking events into ledger rows.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"hisab/internal/amqp"
	"hisab/internal/core"
	"hisab/internal/log"
)

// BookingAppender is the slice of the Sheets client the worker needs.
type BookingAppender interface {
	AppendBooking(ctx context.Context, kind, teamName string, b core.Booking) (string, error)
}

// ExportWorker appends one ledger row per booking event.
type ExportWorker struct {
	sheets BookingAppender
}

func NewExportWorker(sheets BookingAppender) *ExportWorker {
	return &ExportWorker{sheets: sheets}
}

// HandleBookingEvent processes a single booking event from AMQP. A returned
// error requeues the event.
func (w *ExportWorker) HandleBookingEvent(ctx context.Context, msg *amqp.BookingEventMessage) error {
	if msg.Kind == "" || msg.TeamName == "" {
		slog.WarnContext(ctx, "Dropping malformed booking event",
			"kind", msg.Kind,
			log.FieldTeamName, msg.TeamName)
		return nil
	}

	ref, err := w.sheets.AppendBooking(ctx, msg.Kind, msg.TeamName, msg.Booking)
	if err != nil {
		return fmt.Errorf("append booking event: %w", err)
	}

	slog.InfoContext(ctx, "Exported booking event",
		"kind", msg.Kind,
		log.FieldTeamName, msg.TeamName,
		log.FieldBookingID, msg.BookingID,
		log.FieldSheetsRef, ref)
	return nil
}
