package core

import (
	"reflect"
	"testing"
)

func team(name string, fees ...float64) Team {
	t := Team{TeamName: name}
	for _, f := range fees {
		t.Bookings = append(t.Bookings, Booking{EntryFee: Amount(f)})
	}
	return t
}

func TestComputeTeamTotals(t *testing.T) {
	bookings := []Booking{
		{EntryFee: 100, Winning: 20, CasterCost: 5, ProductionCost: 10},
		{EntryFee: 50, CasterCost: 5},
	}

	got := ComputeTeamTotals(bookings)

	if got.EntryFee != 150 {
		t.Errorf("EntryFee = %v, want 150", got.EntryFee)
	}
	if got.Winning != 20 {
		t.Errorf("Winning = %v, want 20", got.Winning)
	}
	if got.TeamAmount != 130 {
		t.Errorf("TeamAmount = %v, want 130", got.TeamAmount)
	}
	if got.NetAmount != 110 {
		t.Errorf("NetAmount = %v, want 110", got.NetAmount)
	}
}

func TestComputeTeamTotalsEmpty(t *testing.T) {
	if got := ComputeTeamTotals(nil); got != (TeamTotals{}) {
		t.Errorf("empty list should be all zero, got %+v", got)
	}
}

func TestComputeGrandTotals(t *testing.T) {
	teams := []Team{
		{TeamName: "A", Bookings: []Booking{{EntryFee: 100, Winning: 30, CasterCost: 2, ProductionCost: 3}}},
		{TeamName: "B", Bookings: []Booking{{EntryFee: 200, Winning: 70, CasterCost: 8, ProductionCost: 7}}},
	}

	got := ComputeGrandTotals(teams)
	want := GrandTotals{EntryFee: 300, Winning: 100, CasterCost: 10, ProductionCost: 10}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestFilterTeams(t *testing.T) {
	teams := []Team{
		team("Alpha Strikers"),
		team("beta"),
		team(""),
		team("ALPHAomega"),
	}

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"substring match", "alpha", []string{"Alpha Strikers", "ALPHAomega"}},
		{"case insensitive", "BETA", []string{"beta"}},
		{"empty term keeps named teams", "", []string{"Alpha Strikers", "beta", "ALPHAomega"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTeams(teams, tt.term)
			var names []string
			for _, tm := range got {
				names = append(names, tm.TeamName)
			}
			if !reflect.DeepEqual(names, tt.want) {
				t.Errorf("got %v, want %v", names, tt.want)
			}
		})
	}
}

func TestFilterTeamsIdempotent(t *testing.T) {
	teams := []Team{team("Alpha"), team("Beta"), team("Alphabet")}

	once := FilterTeams(teams, "alpha")
	twice := FilterTeams(once, "alpha")
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filtering twice changed the result: %v vs %v", once, twice)
	}
}

func TestFilterTeamsDoesNotMutateInput(t *testing.T) {
	teams := []Team{team("Alpha"), team("Beta")}
	before := make([]Team, len(teams))
	copy(before, teams)

	FilterTeams(teams, "beta")

	if !reflect.DeepEqual(teams, before) {
		t.Errorf("input slice was mutated")
	}
}

func TestSortTeamsEntryFeeDesc(t *testing.T) {
	teams := []Team{
		team("low", 10),
		team("high", 300),
		team("mid", 100),
	}

	SortTeams(teams, SortEntryFeeDesc)

	got := []string{teams[0].TeamName, teams[1].TeamName, teams[2].TeamName}
	want := []string{"high", "mid", "low"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSortTeamsStableOnTies(t *testing.T) {
	teams := []Team{
		team("first", 100),
		team("second", 100),
		team("third", 100),
	}

	SortTeams(teams, SortEntryFeeDesc)

	got := []string{teams[0].TeamName, teams[1].TeamName, teams[2].TeamName}
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tie order changed: got %v, want %v", got, want)
	}
}

func TestSortTeamsOriginalLeavesOrder(t *testing.T) {
	teams := []Team{team("b", 10), team("a", 500)}
	SortTeams(teams, SortOriginal)
	if teams[0].TeamName != "b" {
		t.Errorf("original policy reordered teams")
	}
}

func TestBuildOverview(t *testing.T) {
	teams := []Team{
		{TeamName: "Alpha", Bookings: []Booking{{EntryFee: 100, Winning: 20}}},
		{TeamName: "Beta", Bookings: []Booking{{EntryFee: 400, Winning: 80}}},
		{TeamName: ""},
	}
	vs := ViewState{Sort: SortEntryFeeDesc}

	ov := BuildOverview(teams, vs, DefaultShareRules())

	if len(ov.Teams) != 2 {
		t.Fatalf("teams = %d, want 2", len(ov.Teams))
	}
	if ov.Teams[0].TeamName != "Beta" {
		t.Errorf("first team = %q, want Beta", ov.Teams[0].TeamName)
	}
	if ov.Grand.EntryFee != 500 || ov.Grand.Winning != 100 {
		t.Errorf("grand = %+v", ov.Grand)
	}
	if len(ov.Shares) != 3 {
		t.Fatalf("shares = %d, want 3", len(ov.Shares))
	}
	if ov.Shares[0].Share != 180 {
		t.Errorf("first share = %v, want 180", ov.Shares[0].Share)
	}
}

func TestBuildOverviewSearchScopesGrandTotals(t *testing.T) {
	teams := []Team{
		{TeamName: "Alpha", Bookings: []Booking{{EntryFee: 100}}},
		{TeamName: "Beta", Bookings: []Booking{{EntryFee: 900}}},
	}

	ov := BuildOverview(teams, ViewState{Search: "alpha"}, DefaultShareRules())

	if ov.Grand.EntryFee != 100 {
		t.Errorf("grand entry fee = %v, want 100 (filtered set only)", ov.Grand.EntryFee)
	}
}
