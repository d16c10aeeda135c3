package core

import (
	"sort"
	"strings"
)

// SortPolicy picks the ordering of the filtered team list. Both policies are
// deterministic; ties under SortEntryFeeDesc keep the original relative order.
type SortPolicy string

const (
	// SortEntryFeeDesc orders teams by their total entry fee, highest first.
	SortEntryFeeDesc SortPolicy = "entry-fee-desc"
	// SortOriginal preserves the order in which teams were fetched.
	SortOriginal SortPolicy = "original"
)

func (p SortPolicy) IsValid() bool {
	switch p {
	case SortEntryFeeDesc, SortOriginal:
		return true
	}
	return false
}

// ViewState is the explicit, serializable UI state handed to the engine.
// There are no ambient globals: everything the overview depends on is here.
type ViewState struct {
	Search      string     `json:"search"`
	Sort        SortPolicy `json:"sort"`
	EditingTeam string     `json:"editingTeam,omitempty"`
	EditingID   string     `json:"editingId,omitempty"`
}

type (
	// TeamTotals are the per-team sums over one booking list. All values stay
	// at full precision; only rendering rounds them.
	TeamTotals struct {
		EntryFee       float64
		Winning        float64
		CasterCost     float64
		ProductionCost float64
		// TeamAmount is entry fees minus winnings.
		TeamAmount float64
		// NetAmount additionally subtracts caster and production costs.
		NetAmount float64
	}

	// GrandTotals are the sums of raw booking fields across the filtered team
	// list.
	GrandTotals struct {
		EntryFee       float64
		Winning        float64
		CasterCost     float64
		ProductionCost float64
	}

	// TeamView pairs a team with its computed totals for rendering.
	TeamView struct {
		Team
		Totals TeamTotals
	}

	// Overview is everything one render of the booking overview needs.
	Overview struct {
		Teams  []TeamView
		Grand  GrandTotals
		Shares []StakeholderShare
	}
)

// ComputeTeamTotals sums one team's booking list. An empty or nil list yields
// all-zero totals. Missing or malformed numeric fields already decoded to 0.
func ComputeTeamTotals(bookings []Booking) TeamTotals {
	var t TeamTotals
	for _, b := range bookings {
		t.EntryFee += float64(b.EntryFee)
		t.Winning += float64(b.Winning)
		t.CasterCost += float64(b.CasterCost)
		t.ProductionCost += float64(b.ProductionCost)
	}
	t.TeamAmount = t.EntryFee - t.Winning
	t.NetAmount = t.EntryFee - t.Winning - t.CasterCost - t.ProductionCost
	return t
}

// ComputeGrandTotals sums raw booking fields across the given (already
// filtered) teams. It never reads per-team rounded display values.
func ComputeGrandTotals(teams []Team) GrandTotals {
	var g GrandTotals
	for _, team := range teams {
		for _, b := range team.Bookings {
			g.EntryFee += float64(b.EntryFee)
			g.Winning += float64(b.Winning)
			g.CasterCost += float64(b.CasterCost)
			g.ProductionCost += float64(b.ProductionCost)
		}
	}
	return g
}

// FilterTeams returns the teams whose name contains the search term,
// case-insensitively. The empty term matches every named team; teams with a
// missing or empty name are always excluded. The input is not mutated.
func FilterTeams(teams []Team, term string) []Team {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		if t.TeamName == "" {
			continue
		}
		if needle == "" || strings.Contains(strings.ToLower(t.TeamName), needle) {
			out = append(out, t)
		}
	}
	return out
}

// SortTeams orders teams in place according to the policy. SortEntryFeeDesc
// uses a stable sort so that equal totals keep their original relative order,
// which keeps renders reproducible.
func SortTeams(teams []Team, policy SortPolicy) {
	if policy != SortEntryFeeDesc {
		return
	}
	type keyed struct {
		team  Team
		total float64
	}
	ks := make([]keyed, len(teams))
	for i, t := range teams {
		ks[i] = keyed{team: t, total: ComputeTeamTotals(t.Bookings).EntryFee}
	}
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].total > ks[j].total })
	for i := range ks {
		teams[i] = ks[i].team
	}
}

// BuildOverview runs the whole engine: filter by the view state's search term,
// sort per policy, annotate each team with its totals, and derive grand totals
// and stakeholder shares from the filtered set. Pure: inputs are not mutated.
func BuildOverview(teams []Team, vs ViewState, rules []ShareRule) Overview {
	filtered := FilterTeams(teams, vs.Search)
	SortTeams(filtered, vs.Sort)

	views := make([]TeamView, len(filtered))
	for i, t := range filtered {
		views[i] = TeamView{Team: t, Totals: ComputeTeamTotals(t.Bookings)}
	}

	grand := ComputeGrandTotals(filtered)
	return Overview{
		Teams:  views,
		Grand:  grand,
		Shares: Distribute(rules, grand),
	}
}
