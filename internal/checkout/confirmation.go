package checkout

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// newConfirmationNumber generates the human-facing booking identifier,
// e.g. "20260115-9F3A21C4". The date prefix keeps numbers roughly
// sortable; the random suffix makes them unique per call. Uniqueness
// is additionally enforced by the ledger's unique index.
func newConfirmationNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return now.UTC().Format("20060102") + "-" + suffix
}
