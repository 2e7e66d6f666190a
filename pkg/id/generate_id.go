package id

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewRequestID returns a random v4 UUID in canonical form.
func NewRequestID() string { return uuid.NewString() }

// AgreementID is stable per shareholder: registration year plus the
// zero-padded row id, e.g. AGR-2025-000042.
func AgreementID(shareholderID uint64, registeredAt time.Time) string {
	return fmt.Sprintf("AGR-%d-%06d", registeredAt.UTC().Year(), shareholderID)
}
