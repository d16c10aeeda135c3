package core

import (
	"errors"
	"strings"
)

type (
	// Booking is one scheduled event charged against a team. Field names and
	// JSON tags follow the wire format of the booking store, including the
	// historical "discription" spelling, which must not be corrected.
	Booking struct {
		// ID is assigned when the booking is created and travels with the
		// record through the store. Mutations are addressed by ID and resolved
		// to a positional index against the last fetched snapshot.
		ID             string `json:"bookingId,omitempty"`
		Date           string `json:"date"`
		Time           string `json:"time"`
		Server         string `json:"server"`
		EntryFee       Amount `json:"entryFee"`
		Winning        Amount `json:"winning"`
		Discription    string `json:"discription"`
		Caster         string `json:"caster"`
		CasterCost     Amount `json:"casterCost"`
		Production     string `json:"production"`
		ProductionCost Amount `json:"productionCost"`
	}

	// Team is a named owner of an ordered booking list. The order is
	// meaningful: it defines the index used by the store for updates and
	// deletes.
	Team struct {
		TeamName string    `json:"teamName"`
		Bookings []Booking `json:"bookings"`
	}
)

var (
	ErrEmptyTeamName  = errors.New("empty team name")
	ErrNegativeAmount = errors.New("negative amount")
)

// ValidateTeamName rejects empty or whitespace-only names. Callers must run
// this before any store call so that invalid names never reach the network.
func ValidateTeamName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyTeamName
	}
	return nil
}

func (b Booking) Validate() error {
	for _, v := range []Amount{b.EntryFee, b.Winning, b.CasterCost, b.ProductionCost} {
		if v < 0 {
			return ErrNegativeAmount
		}
	}
	return nil
}
