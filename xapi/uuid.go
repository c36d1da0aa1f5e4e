package xapi

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// RFC 4122 variant 1, versions 1-5. Stricter than uuid.Parse, which accepts
// any hex layout.
var uuidRe = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// ParseUUID parses s as a strict RFC 4122 UUID (variant 1, versions 1-5).
func ParseUUID(s string) (uuid.UUID, error) {
	if !uuidRe.MatchString(s) {
		return uuid.UUID{}, fmt.Errorf("uuid %q: %w", s, ErrInvalidValue)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("uuid %q: %w", s, ErrInvalidValue)
	}
	return id, nil
}
