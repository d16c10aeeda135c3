package google

import "hisab/internal/core"

// LedgerHeader is the column layout of the ledger sheet.
var LedgerHeader = []string{
	"Event", "Team", "Booking ID", "Date", "Time", "Server",
	"Entry Fee", "Winning", "Description", "Caster", "Caster Cost",
	"Production", "Production Cost",
}

// BookingRow flattens a booking event into one ledger row matching
// LedgerHeader.
func BookingRow(kind, teamName string, b core.Booking) []any {
	return []any{
		kind,
		teamName,
		b.ID,
		b.Date,
		b.Time,
		b.Server,
		float64(b.EntryFee),
		float64(b.Winning),
		b.Discription,
		b.Caster,
		float64(b.CasterCost),
		b.Production,
		float64(b.ProductionCost),
	}
}
