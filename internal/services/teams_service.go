// Package services orchestrates booking operations across the store backend
// and the AMQP export pipeline.
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"hisab/internal/amqp"
	"hisab/internal/backend"
	"hisab/internal/core"
)

var (
	ErrNoTeamsSelected      = errors.New("no teams selected")
	ErrBookingNotFound      = errors.New("booking not found in current snapshot")
	ErrConfirmationDeclined = errors.New("confirmation declined")
)

// fanOutLimit bounds concurrent store calls during a multi-team booking
// creation.
const fanOutLimit = 4

// EventPublisher publishes booking mutation events for the export worker.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, msg *amqp.BookingEventMessage) error
}

// Confirmer is the capability to ask the operator before a destructive
// operation. The presentation layer implements it; a nil Confirmer means
// destructive operations proceed unasked.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// TeamResult is the outcome of one leg of a fan-out booking creation.
type TeamResult struct {
	TeamName string
	Err      error
}

// TeamService keeps the last fetched snapshot of the collection and routes
// every mutation through the store, re-fetching afterwards. The full re-fetch
// is the only consistency mechanism; there is no incremental cache to keep in
// step.
type TeamService struct {
	store     backend.Backend
	publisher EventPublisher
	confirm   Confirmer

	mu       sync.Mutex
	snapshot []core.Team
	snapSeq  uint64

	fetchSeq uint64
}

func NewTeamService(store backend.Backend, publisher EventPublisher, confirm Confirmer) *TeamService {
	return &TeamService{
		store:     store,
		publisher: publisher,
		confirm:   confirm,
	}
}

// RefreshTeams fetches the full collection and installs it as the current
// snapshot. Responses are sequenced: a fetch that started earlier than the
// one that produced the current snapshot is discarded, so a slow response
// never rolls the snapshot back.
func (s *TeamService) RefreshTeams(ctx context.Context) ([]core.Team, error) {
	seq := atomic.AddUint64(&s.fetchSeq, 1)

	teams, err := s.store.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq > s.snapSeq {
		s.snapshot = teams
		s.snapSeq = seq
	}
	return cloneTeams(s.snapshot), nil
}

// Snapshot returns the last fetched team list without touching the store.
func (s *TeamService) Snapshot() []core.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTeams(s.snapshot)
}

func (s *TeamService) CreateTeam(ctx context.Context, teamName string) error {
	// Invalid names are rejected before any store call.
	if err := core.ValidateTeamName(teamName); err != nil {
		return err
	}

	if err := s.store.CreateTeam(ctx, teamName); err != nil {
		return fmt.Errorf("create team: %w", err)
	}

	s.refreshAfterMutation(ctx)
	return nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, teamName string) error {
	if err := core.ValidateTeamName(teamName); err != nil {
		return err
	}
	if !s.confirmed(ctx, fmt.Sprintf("Delete team %q and all its bookings?", teamName)) {
		return ErrConfirmationDeclined
	}

	if err := s.store.DeleteTeam(ctx, teamName); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	s.publish(ctx, amqp.NewBookingEventMessage(amqp.EventTeamDeleted, teamName, core.Booking{}))
	s.refreshAfterMutation(ctx)
	return nil
}

// AddBookingToTeams creates one copy of the booking per selected team. The
// batch is explicit and non-atomic: every leg is attempted, each result is
// reported, and nothing is rolled back on partial failure. Each copy gets its
// own generated id.
func (s *TeamService) AddBookingToTeams(ctx context.Context, teamNames []string, b core.Booking) ([]TeamResult, error) {
	if len(teamNames) == 0 {
		return nil, ErrNoTeamsSelected
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	results := make([]TeamResult, len(teamNames))
	bookings := make([]core.Booking, len(teamNames))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	for i, teamName := range teamNames {
		bk := b
		bk.ID = newBookingID()
		bookings[i] = bk
		results[i] = TeamResult{TeamName: teamName}

		g.Go(func() error {
			results[i].Err = s.store.AddBooking(gctx, teamName, bookings[i])
			return nil
		})
	}
	g.Wait()

	for i, res := range results {
		if res.Err == nil {
			s.publish(ctx, amqp.NewBookingEventMessage(amqp.EventBookingCreated, res.TeamName, bookings[i]))
		}
	}

	s.refreshAfterMutation(ctx)
	return results, nil
}

// UpdateBookingByID resolves the booking id to a positional index against the
// current snapshot and updates in place. An id that is no longer in the
// snapshot means the list has changed under the operator; the error is
// surfaced rather than guessed around.
func (s *TeamService) UpdateBookingByID(ctx context.Context, teamName, bookingID string, b core.Booking) error {
	if err := b.Validate(); err != nil {
		return err
	}

	index, err := s.resolveIndex(teamName, bookingID)
	if err != nil {
		return err
	}

	b.ID = bookingID
	if err := s.store.UpdateBooking(ctx, teamName, index, b); err != nil {
		return fmt.Errorf("update booking: %w", err)
	}

	s.publish(ctx, amqp.NewBookingEventMessage(amqp.EventBookingUpdated, teamName, b))
	s.refreshAfterMutation(ctx)
	return nil
}

func (s *TeamService) DeleteBookingByID(ctx context.Context, teamName, bookingID string) error {
	if !s.confirmed(ctx, "Delete this booking?") {
		return ErrConfirmationDeclined
	}

	index, err := s.resolveIndex(teamName, bookingID)
	if err != nil {
		return err
	}
	return s.deleteAt(ctx, teamName, bookingID, index)
}

// UpdateBookingAt updates by raw position. Positional addressing is racy by
// contract: the index refers to the list as last fetched, and a re-fetch or
// reorder in between can shift it onto a different booking.
func (s *TeamService) UpdateBookingAt(ctx context.Context, teamName string, index int, b core.Booking) error {
	if err := b.Validate(); err != nil {
		return err
	}

	if err := s.store.UpdateBooking(ctx, teamName, index, b); err != nil {
		return fmt.Errorf("update booking: %w", err)
	}

	s.publish(ctx, amqp.NewBookingEventMessage(amqp.EventBookingUpdated, teamName, b))
	s.refreshAfterMutation(ctx)
	return nil
}

// DeleteBookingAt deletes by raw position. Same race caveat as
// UpdateBookingAt.
func (s *TeamService) DeleteBookingAt(ctx context.Context, teamName string, index int) error {
	if !s.confirmed(ctx, "Delete this booking?") {
		return ErrConfirmationDeclined
	}
	return s.deleteAt(ctx, teamName, "", index)
}

func (s *TeamService) deleteAt(ctx context.Context, teamName, bookingID string, index int) error {
	if err := s.store.DeleteBooking(ctx, teamName, index); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	s.publish(ctx, amqp.NewBookingEventMessage(amqp.EventBookingDeleted, teamName, core.Booking{ID: bookingID}))
	s.refreshAfterMutation(ctx)
	return nil
}

// resolveIndex maps a booking id to its position in the snapshot.
func (s *TeamService) resolveIndex(teamName, bookingID string) (int, error) {
	if bookingID == "" {
		return 0, ErrBookingNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.snapshot {
		if t.TeamName != teamName {
			continue
		}
		for i, b := range t.Bookings {
			if b.ID == bookingID {
				return i, nil
			}
		}
	}
	return 0, ErrBookingNotFound
}

func (s *TeamService) confirmed(ctx context.Context, prompt string) bool {
	if s.confirm == nil {
		return true
	}
	return s.confirm.Confirm(ctx, prompt)
}

// publish is best-effort: a broken broker must never fail the mutation that
// already succeeded against the store.
func (s *TeamService) publish(ctx context.Context, msg *amqp.BookingEventMessage) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishBookingEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish booking event",
			"error", err,
			"kind", msg.Kind,
			"team_name", msg.TeamName)
	}
}

func (s *TeamService) refreshAfterMutation(ctx context.Context) {
	if _, err := s.RefreshTeams(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to refresh teams after mutation", "error", err)
	}
}

func newBookingID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "bk_unknown"
	}
	return "bk_" + hex.EncodeToString(buf)
}

func cloneTeams(teams []core.Team) []core.Team {
	out := make([]core.Team, len(teams))
	for i, t := range teams {
		out[i] = core.Team{
			TeamName: t.TeamName,
			Bookings: append([]core.Booking(nil), t.Bookings...),
		}
	}
	return out
}
