package google

import (
	"context"
	"testing"

	"hisab/internal/core"
)

func TestBookingRowMatchesHeader(t *testing.T) {
	row := BookingRow("booking_created", "Alpha", core.Booking{})
	if len(row) != len(LedgerHeader) {
		t.Fatalf("row has %d columns, header has %d", len(row), len(LedgerHeader))
	}
}

func TestBookingRow(t *testing.T) {
	b := core.Booking{
		ID:             "bk_9",
		Date:           "2024-05-01",
		Time:           "18:00",
		Server:         "EU",
		EntryFee:       150,
		Winning:        20,
		Discription:    "scrim night",
		Caster:         "cast1",
		CasterCost:     5,
		Production:     "studio b",
		ProductionCost: 10,
	}

	row := BookingRow("booking_created", "Alpha", b)

	if row[0] != "booking_created" || row[1] != "Alpha" || row[2] != "bk_9" {
		t.Errorf("identity columns = %v", row[:3])
	}
	if row[6] != 150.0 || row[7] != 20.0 {
		t.Errorf("amount columns = %v %v", row[6], row[7])
	}
	if row[8] != "scrim night" {
		t.Errorf("description = %v", row[8])
	}
	if row[11] != "studio b" || row[12] != 10.0 {
		t.Errorf("production columns = %v %v", row[11], row[12])
	}
}

func TestNewFromEnvRequiresSpreadsheetID(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")

	if _, err := NewFromEnv(context.Background()); err == nil {
		t.Error("expected error without GOOGLE_SPREADSHEET_ID")
	}
}
