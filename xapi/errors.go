// Package xapi holds the Experience API data model: statements and their
// component records, with validating setters and version-aware JSON codecs.
// Decoding is strict: unknown top-level keys, malformed identifiers and
// zoneless timestamps are errors, and every value that decodes re-encodes to
// an equivalent document.
package xapi

import "errors"

// Sentinel errors for the domain layer. Construction and decoding failures
// wrap one of these so callers can classify with errors.Is.
var (
	// ErrInvalidValue marks a value that has the right type but violates a
	// structural constraint: empty where non-empty is required, out of enum,
	// malformed UUID/IRI/language tag, non-ISO duration or timestamp.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidType marks input that cannot be converted to the declared
	// type at all (wrong JSON shape, nested language-map value, and so on).
	ErrInvalidType = errors.New("invalid type")

	// ErrUnknownField marks an unrecognized top-level key during decoding.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnsupportedVersion marks a protocol version outside the supported set.
	ErrUnsupportedVersion = errors.New("unsupported version")
)
