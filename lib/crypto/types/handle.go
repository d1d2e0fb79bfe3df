package types

// KeyHandle is an opaque reference to key material held by an Engine.
// Callers never inspect it, they only pass it back into the engine that
// produced it.
type KeyHandle interface {
	// CanDecrypt reports whether the private exponent was present and accepted
	CanDecrypt() bool
	// Zero clears all key material held by the handle. The handle must not be
	// used for block operations afterwards.
	Zero()
}
