package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"hisab/internal/core"
)

// BookingForm holds the parsed fields of a booking create/update submission.
type BookingForm struct {
	Teams     Teams
	Booking   core.Booking
	BookingID string
	Index     int
	HasIndex  bool
}

// Teams is the list of team names a submission targets.
type Teams []string

// ParseBookingForm extracts a booking and its target teams from form values.
// Amount fields tolerate empty and malformed input, matching the wire codec.
func ParseBookingForm(form url.Values) BookingForm {
	bf := BookingForm{
		Booking: core.Booking{
			Date:        sanitizeInput(form.Get("date")),
			Time:        sanitizeInput(form.Get("time")),
			Server:      sanitizeInput(form.Get("server")),
			Discription: sanitizeInput(form.Get("discription")),
			Caster:      sanitizeInput(form.Get("caster")),
			Production:  sanitizeInput(form.Get("production")),
		},
		Index: -1,
	}

	bf.Booking.EntryFee = core.ParseAmount(form.Get("entryFee"))
	bf.Booking.Winning = core.ParseAmount(form.Get("winning"))
	bf.Booking.CasterCost = core.ParseAmount(form.Get("casterCost"))
	bf.Booking.ProductionCost = core.ParseAmount(form.Get("productionCost"))

	for _, name := range form["teams"] {
		name = sanitizeInput(name)
		if name != "" {
			bf.Teams = append(bf.Teams, name)
		}
	}

	bf.BookingID = sanitizeInput(form.Get("bookingId"))
	if v := strings.TrimSpace(form.Get("index")); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			bf.Index = i
			bf.HasIndex = true
		}
	}

	return bf
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// ParseFormOrFail parses the request form and returns an error response on failure.
// Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Invalid request format")
	}
	return nil
}
