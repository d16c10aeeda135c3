package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hisab/internal/core"
	"hisab/internal/services"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	confirmedKey contextKey = "confirmed"
)

// withConfirmation marks the request context as carrying (or lacking) the
// operator's confirmation for a destructive operation.
func withConfirmation(ctx context.Context, confirmed bool) context.Context {
	return context.WithValue(ctx, confirmedKey, confirmed)
}

// requestConfirmer implements services.Confirmer from the request context:
// the browser's confirm dialog already ran, the form just reports the answer.
type requestConfirmer struct{}

func (requestConfirmer) Confirm(ctx context.Context, _ string) bool {
	confirmed, ok := ctx.Value(confirmedKey).(bool)
	return ok && confirmed
}

// NewConfirmer returns the Confirmer the team service should use when this
// server is the presentation layer.
func NewConfirmer() services.Confirmer {
	return requestConfirmer{}
}

// formatRupees renders a full-precision amount as whole rupees. Rounding
// happens here and nowhere else.
func formatRupees(v float64) string {
	return "Rs " + strconv.FormatInt(core.DisplayRound(v), 10)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
