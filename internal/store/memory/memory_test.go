package memory

import (
	"context"
	"errors"
	"testing"

	"hisab/internal/core"
	"hisab/internal/store"
)

func TestCreateAndListTeams(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.CreateTeam(ctx, "Alpha"); err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	if err := s.CreateTeam(ctx, "Alpha"); !errors.Is(err, store.ErrTeamExists) {
		t.Errorf("duplicate: err = %v, want ErrTeamExists", err)
	}

	teams, err := s.ListTeams(ctx)
	if err != nil {
		t.Fatalf("ListTeams: %v", err)
	}
	if len(teams) != 1 || teams[0].TeamName != "Alpha" {
		t.Errorf("teams = %+v", teams)
	}
}

func TestDeleteTeam(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Seed([]core.Team{{TeamName: "Alpha"}, {TeamName: "Beta"}})

	if err := s.DeleteTeam(ctx, "Alpha"); err != nil {
		t.Fatalf("DeleteTeam: %v", err)
	}
	if err := s.DeleteTeam(ctx, "Alpha"); !errors.Is(err, store.ErrTeamNotFound) {
		t.Errorf("err = %v, want ErrTeamNotFound", err)
	}

	teams, _ := s.ListTeams(ctx)
	if len(teams) != 1 || teams[0].TeamName != "Beta" {
		t.Errorf("teams = %+v", teams)
	}
}

func TestBookingLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Seed([]core.Team{{TeamName: "Alpha"}})

	if err := s.AddBooking(ctx, "Alpha", core.Booking{EntryFee: 100}); err != nil {
		t.Fatalf("AddBooking: %v", err)
	}
	if err := s.AddBooking(ctx, "Alpha", core.Booking{EntryFee: 50}); err != nil {
		t.Fatalf("AddBooking: %v", err)
	}
	if err := s.AddBooking(ctx, "Nope", core.Booking{}); !errors.Is(err, store.ErrTeamNotFound) {
		t.Errorf("err = %v, want ErrTeamNotFound", err)
	}

	if err := s.UpdateBooking(ctx, "Alpha", 1, core.Booking{EntryFee: 75}); err != nil {
		t.Fatalf("UpdateBooking: %v", err)
	}
	if err := s.UpdateBooking(ctx, "Alpha", 5, core.Booking{}); !errors.Is(err, store.ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}

	// Deleting index 1 keeps the booking originally at index 0.
	if err := s.DeleteBooking(ctx, "Alpha", 1); err != nil {
		t.Fatalf("DeleteBooking: %v", err)
	}
	teams, _ := s.ListTeams(ctx)
	if len(teams[0].Bookings) != 1 || teams[0].Bookings[0].EntryFee != 100 {
		t.Errorf("bookings = %+v", teams[0].Bookings)
	}
}

func TestListReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Seed([]core.Team{{TeamName: "Alpha", Bookings: []core.Booking{{EntryFee: 10}}}})

	teams, _ := s.ListTeams(ctx)
	teams[0].Bookings[0].EntryFee = 999

	again, _ := s.ListTeams(ctx)
	if again[0].Bookings[0].EntryFee != 10 {
		t.Errorf("store state leaked through a returned slice")
	}
}
