package utils

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultReferencePrefix is used when the caller supplies no prefix.
const DefaultReferencePrefix = "BK"

// NewBookingReference builds a booking reference from a prefix and a random
// alphanumeric suffix, e.g. "BK-7F3A91C2". Uniqueness is enforced by the
// bookings table; a collision at 8 hex chars surfaces as an insert error.
func NewBookingReference(prefix string) string {
	if prefix == "" {
		prefix = DefaultReferencePrefix
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return prefix + "-" + suffix
}
