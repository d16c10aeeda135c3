package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"hisab/internal/core"
	"hisab/internal/store"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "hisab.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestTeamLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.CreateTeam(ctx, "Alpha"); err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	if err := repo.CreateTeam(ctx, "Alpha"); !errors.Is(err, store.ErrTeamExists) {
		t.Errorf("duplicate: err = %v, want ErrTeamExists", err)
	}

	if err := repo.CreateTeam(ctx, "Beta"); err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	teams, err := repo.ListTeams(ctx)
	if err != nil {
		t.Fatalf("ListTeams: %v", err)
	}
	if len(teams) != 2 || teams[0].TeamName != "Alpha" || teams[1].TeamName != "Beta" {
		t.Errorf("teams = %+v", teams)
	}

	if err := repo.DeleteTeam(ctx, "Alpha"); err != nil {
		t.Fatalf("DeleteTeam: %v", err)
	}
	if err := repo.DeleteTeam(ctx, "Alpha"); !errors.Is(err, store.ErrTeamNotFound) {
		t.Errorf("err = %v, want ErrTeamNotFound", err)
	}
}

func TestBookingRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.CreateTeam(ctx, "Alpha"); err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}

	b := core.Booking{
		ID:             "bk_01",
		Date:           "2024-05-01",
		Time:           "18:00",
		Server:         "EU",
		EntryFee:       150,
		Winning:        20,
		Discription:    "scrim night",
		Caster:         "cast1",
		CasterCost:     5,
		Production:     "prod1",
		ProductionCost: 10,
	}
	if err := repo.AddBooking(ctx, "Alpha", b); err != nil {
		t.Fatalf("AddBooking: %v", err)
	}

	teams, err := repo.ListTeams(ctx)
	if err != nil {
		t.Fatalf("ListTeams: %v", err)
	}
	if len(teams[0].Bookings) != 1 {
		t.Fatalf("bookings = %+v", teams[0].Bookings)
	}
	if got := teams[0].Bookings[0]; got != b {
		t.Errorf("got %+v, want %+v", got, b)
	}
}

func TestUpdateBooking(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	repo.CreateTeam(ctx, "Alpha")
	repo.AddBooking(ctx, "Alpha", core.Booking{EntryFee: 100})

	if err := repo.UpdateBooking(ctx, "Alpha", 0, core.Booking{EntryFee: 250}); err != nil {
		t.Fatalf("UpdateBooking: %v", err)
	}
	teams, _ := repo.ListTeams(ctx)
	if teams[0].Bookings[0].EntryFee != 250 {
		t.Errorf("entryFee = %v, want 250", teams[0].Bookings[0].EntryFee)
	}

	if err := repo.UpdateBooking(ctx, "Alpha", 3, core.Booking{}); !errors.Is(err, store.ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
	if err := repo.UpdateBooking(ctx, "Nope", 0, core.Booking{}); !errors.Is(err, store.ErrTeamNotFound) {
		t.Errorf("err = %v, want ErrTeamNotFound", err)
	}
}

func TestDeleteBookingRenumbers(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	repo.CreateTeam(ctx, "Alpha")
	repo.AddBooking(ctx, "Alpha", core.Booking{Discription: "first"})
	repo.AddBooking(ctx, "Alpha", core.Booking{Discription: "second"})
	repo.AddBooking(ctx, "Alpha", core.Booking{Discription: "third"})

	if err := repo.DeleteBooking(ctx, "Alpha", 1); err != nil {
		t.Fatalf("DeleteBooking: %v", err)
	}

	teams, _ := repo.ListTeams(ctx)
	bs := teams[0].Bookings
	if len(bs) != 2 || bs[0].Discription != "first" || bs[1].Discription != "third" {
		t.Errorf("bookings = %+v", bs)
	}

	// Positions stay dense: updating the shifted booking still works.
	if err := repo.UpdateBooking(ctx, "Alpha", 1, core.Booking{Discription: "third v2"}); err != nil {
		t.Errorf("update after renumber: %v", err)
	}
}

func TestDeleteTeamCascades(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	repo.CreateTeam(ctx, "Alpha")
	repo.AddBooking(ctx, "Alpha", core.Booking{EntryFee: 10})
	if err := repo.DeleteTeam(ctx, "Alpha"); err != nil {
		t.Fatalf("DeleteTeam: %v", err)
	}

	repo.CreateTeam(ctx, "Alpha")
	teams, _ := repo.ListTeams(ctx)
	if len(teams[0].Bookings) != 0 {
		t.Errorf("recreated team inherited bookings: %+v", teams[0].Bookings)
	}
}
