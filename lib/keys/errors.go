package keys

import "errors"

var (
	// ErrNotStructuredData is returned when a key record is not a JSON object.
	ErrNotStructuredData = errors.New("key record is not structured data")
	// ErrIncompleteKey is returned when a required key field is missing.
	ErrIncompleteKey = errors.New("key record is missing required values")
	// ErrUnacceptableKey is returned when the engine rejects the key values.
	ErrUnacceptableKey = errors.New("key record has invalid values")
)
