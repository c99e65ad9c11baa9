// Package uuid generates time-ordered UUIDv7 identifiers for primary keys.
package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	googleuuid "github.com/google/uuid"
)

// New generates a UUIDv7 for the current instant. UUIDv7 is time-ordered,
// which keeps primary key indexes append-mostly.
func New() string {
	return NewAt(time.Now())
}

// NewAt generates a UUIDv7 whose timestamp component is taken from t.
//
// Layout (RFC 4122):
//   - 48 bits: Unix timestamp in milliseconds
//   - 4 bits: version (0111)
//   - 12 bits: random
//   - 2 bits: variant (10)
//   - 62 bits: random
func NewAt(t time.Time) string {
	var u [16]byte

	timestamp := uint64(t.UnixMilli())
	binary.BigEndian.PutUint64(u[0:8], timestamp<<16)

	if _, err := rand.Read(u[6:]); err != nil {
		// Fall back to a random UUIDv4 if the entropy source fails.
		return googleuuid.New().String()
	}

	u[6] = (u[6] & 0x0f) | 0x70
	u[8] = (u[8] & 0x3f) | 0x80

	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		binary.BigEndian.Uint32(u[0:4]),
		binary.BigEndian.Uint16(u[4:6]),
		binary.BigEndian.Uint16(u[6:8]),
		binary.BigEndian.Uint16(u[8:10]),
		u[10:16],
	)
}

// IsValid reports whether s is a parseable UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
