// Package memory is a mutex-guarded in-memory booking store. It backs the dev
// backend and doubles as the store fake in tests.
package memory

import (
	"context"
	"sync"

	"hisab/internal/core"
	"hisab/internal/store"
)

type Store struct {
	mu    sync.Mutex
	teams []core.Team
}

func New() *Store {
	return &Store{}
}

// Seed replaces the whole collection, keeping team order. Test helper.
func (s *Store) Seed(teams []core.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams = cloneTeams(teams)
}

func (s *Store) ListTeams(_ context.Context) ([]core.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTeams(s.teams), nil
}

func (s *Store) CreateTeam(_ context.Context, teamName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(teamName) >= 0 {
		return store.ErrTeamExists
	}
	s.teams = append(s.teams, core.Team{TeamName: teamName})
	return nil
}

func (s *Store) DeleteTeam(_ context.Context, teamName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(teamName)
	if i < 0 {
		return store.ErrTeamNotFound
	}
	s.teams = append(s.teams[:i], s.teams[i+1:]...)
	return nil
}

func (s *Store) AddBooking(_ context.Context, teamName string, b core.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(teamName)
	if i < 0 {
		return store.ErrTeamNotFound
	}
	s.teams[i].Bookings = append(s.teams[i].Bookings, b)
	return nil
}

func (s *Store) UpdateBooking(_ context.Context, teamName string, index int, b core.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(teamName)
	if i < 0 {
		return store.ErrTeamNotFound
	}
	if index < 0 || index >= len(s.teams[i].Bookings) {
		return store.ErrIndexOutOfRange
	}
	s.teams[i].Bookings[index] = b
	return nil
}

func (s *Store) DeleteBooking(_ context.Context, teamName string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(teamName)
	if i < 0 {
		return store.ErrTeamNotFound
	}
	bs := s.teams[i].Bookings
	if index < 0 || index >= len(bs) {
		return store.ErrIndexOutOfRange
	}
	s.teams[i].Bookings = append(bs[:index], bs[index+1:]...)
	return nil
}

// indexOf assumes s.mu is held.
func (s *Store) indexOf(teamName string) int {
	for i, t := range s.teams {
		if t.TeamName == teamName {
			return i
		}
	}
	return -1
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
