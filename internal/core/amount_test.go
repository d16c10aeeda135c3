package core

import (
	"encoding/json"
	"testing"
)

func TestAmountUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Amount
	}{
		{"number", `42.5`, 42.5},
		{"integer", `150`, 150},
		{"zero", `0`, 0},
		{"negative", `-10`, -10},
		{"null", `null`, 0},
		{"numeric string", `"99.5"`, 99.5},
		{"empty string", `""`, 0},
		{"garbage string", `"abc"`, 0},
		{"bool", `true`, 0},
		{"object", `{"a":1}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Amount
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAmountMissingFieldDecodesToZero(t *testing.T) {
	var b Booking
	raw := `{"date":"2024-01-01","entryFee":100}`
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.EntryFee != 100 {
		t.Errorf("entryFee = %v, want 100", b.EntryFee)
	}
	if b.Winning != 0 || b.CasterCost != 0 || b.ProductionCost != 0 {
		t.Errorf("missing amounts should be zero, got %+v", b)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want Amount
	}{
		{"150", 150},
		{" 12.5 ", 12.5},
		{"", 0},
		{"abc", 0},
		{"-5", -5},
	}

	for _, tt := range tests {
		if got := ParseAmount(tt.in); got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDisplayRound(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{2.4, 2},
		{2.5, 3},
		{-2.5, -3},
		{0, 0},
	}

	for _, tt := range tests {
		if got := DisplayRound(tt.in); got != tt.want {
			t.Errorf("DisplayRound(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBookingValidate(t *testing.T) {
	ok := Booking{EntryFee: 100, Winning: 20}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid booking: %v", err)
	}

	bad := Booking{EntryFee: -1}
	if err := bad.Validate(); err != ErrNegativeAmount {
		t.Errorf("err = %v, want ErrNegativeAmount", err)
	}
}

func TestValidateTeamName(t *testing.T) {
	if err := ValidateTeamName("Alpha"); err != nil {
		t.Errorf("valid name: %v", err)
	}
	if err := ValidateTeamName("   "); err != ErrEmptyTeamName {
		t.Errorf("err = %v, want ErrEmptyTeamName", err)
	}
}
