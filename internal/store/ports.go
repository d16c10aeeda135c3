// Package store defines the outbound ports to the booking collection and the
// sentinel errors every implementation maps its failures to.
package store

import (
	"context"
	"errors"

	"hisab/internal/core"
)

var (
	ErrTeamExists      = errors.New("team already exists")
	ErrTeamNotFound    = errors.New("team not found")
	ErrIndexOutOfRange = errors.New("booking index out of range")
)

// Ports for outbound adapters. Mutations address bookings positionally; the
// service layer resolves booking IDs to indexes before calling these.
type (
	TeamLister interface {
		// ListTeams returns every team with its full booking list, in the
		// store's insertion order.
		ListTeams(ctx context.Context) ([]core.Team, error)
	}

	TeamWriter interface {
		// CreateTeam creates an empty team. ErrTeamExists when the name is
		// already taken.
		CreateTeam(ctx context.Context, teamName string) error
		// DeleteTeam removes a team and all of its bookings.
		DeleteTeam(ctx context.Context, teamName string) error
	}

	BookingWriter interface {
		// AddBooking appends a booking to the team's list.
		AddBooking(ctx context.Context, teamName string, b core.Booking) error
		// UpdateBooking replaces the booking at the given position.
		UpdateBooking(ctx context.Context, teamName string, index int, b core.Booking) error
		// DeleteBooking removes the booking at the given position; later
		// bookings shift down by one.
		DeleteBooking(ctx context.Context, teamName string, index int) error
	}
)
