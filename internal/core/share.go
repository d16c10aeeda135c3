package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const percentSumTolerance = 1e-9

type (
	// ShareRule is one fixed-percentage stakeholder entry. Rules are static
	// configuration; the reference set is two stakeholders at 45% and one at
	// 10%. That percentages sum to 100 is a configuration precondition checked
	// by ValidateShareRules at load time, not re-checked by Distribute.
	ShareRule struct {
		Name    string
		Percent float64
	}

	// StakeholderShare is one computed slice of the share base.
	StakeholderShare struct {
		Name    string
		Percent float64
		// Share is the full-precision value; round only when rendering.
		Share float64
	}
)

var (
	ErrEmptyStakeholder   = errors.New("empty stakeholder name")
	ErrInvalidSharePct    = errors.New("share percent must be greater than 0")
	ErrShareSumNotHundred = errors.New("share percentages must sum to 100")
)

// DefaultShareRules returns the built-in distribution.
func DefaultShareRules() []ShareRule {
	return []ShareRule{
		{Name: "BISHAL", Percent: 45},
		{Name: "SMIT", Percent: 45},
		{Name: "MASTER DAI", Percent: 10},
	}
}

// ParseShareRules parses "NAME:PERCENT,NAME:PERCENT,..." as used in
// configuration. Names may contain spaces; percent accepts decimals.
func ParseShareRules(s string) ([]ShareRule, error) {
	var rules []ShareRule
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.LastIndex(part, ":")
		if idx < 0 {
			return nil, fmt.Errorf("share rule %q: want NAME:PERCENT", part)
		}
		name := strings.TrimSpace(part[:idx])
		pct, err := strconv.ParseFloat(strings.TrimSpace(part[idx+1:]), 64)
		if err != nil {
			return nil, fmt.Errorf("share rule %q: bad percent: %w", part, err)
		}
		rules = append(rules, ShareRule{Name: name, Percent: pct})
	}
	if err := ValidateShareRules(rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// ValidateShareRules enforces the configuration precondition: every rule is
// named, every percent is positive, and the percents sum to exactly 100.
func ValidateShareRules(rules []ShareRule) error {
	if len(rules) == 0 {
		return ErrShareSumNotHundred
	}
	var sum float64
	for _, r := range rules {
		if strings.TrimSpace(r.Name) == "" {
			return ErrEmptyStakeholder
		}
		if r.Percent <= 0 {
			return ErrInvalidSharePct
		}
		sum += r.Percent
	}
	if diff := sum - 100; diff > percentSumTolerance || diff < -percentSumTolerance {
		return fmt.Errorf("%w (got %v)", ErrShareSumNotHundred, sum)
	}
	return nil
}

// ShareBase is the pool divided among stakeholders: entry fees minus winnings.
// Caster and production costs are deliberately not subtracted here; the split
// applies to revenue net of payouts only, before production costs.
func ShareBase(g GrandTotals) float64 {
	return g.EntryFee - g.Winning
}

// Distribute computes every stakeholder's slice from the same share base. The
// base is computed once; it is never a running total that shrinks as shares
// are taken. Shares stay at full precision, so with percents summing to 100
// the shares sum back to the base exactly (up to float arithmetic).
func Distribute(rules []ShareRule, g GrandTotals) []StakeholderShare {
	base := ShareBase(g)
	shares := make([]StakeholderShare, len(rules))
	for i, r := range rules {
		shares[i] = StakeholderShare{
			Name:    r.Name,
			Percent: r.Percent,
			Share:   base * (r.Percent / 100),
		}
	}
	return shares
}
