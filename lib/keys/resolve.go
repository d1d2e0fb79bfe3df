package keys

import (
	"github.com/go-i2p/reesa/lib/crypto/types"
	"github.com/samber/oops"
)

// Resolver turns key material into engine handles. It only classifies:
// nothing is printed or logged.
type Resolver struct {
	engine types.Engine
}

// NewResolver returns a Resolver backed by engine.
func NewResolver(engine types.Engine) *Resolver {
	return &Resolver{engine: engine}
}

// Resolve loads m into the engine. The returned key is always usable for
// encryption, and for decryption only when the private exponent was
// present and accepted.
func (r *Resolver) Resolve(m KeyMaterial) (*ResolvedKey, error) {
	handle := r.engine.LoadKey(m.P, m.Q, m.PublicExponent, m.PrivateExponent, m.Modulus, m.TotientModulus)
	if handle == nil {
		return nil, oops.Wrapf(ErrUnacceptableKey, "engine rejected key with modulus of %d digits", len(m.Modulus))
	}
	return &ResolvedKey{handle: handle}, nil
}

// ResolvedKey owns an engine handle until Release.
type ResolvedKey struct {
	handle   types.KeyHandle
	released bool
}

// Public returns the handle for encryption.
func (k *ResolvedKey) Public() types.KeyHandle {
	return k.handle
}

// Private returns the handle for decryption, if the key has one.
func (k *ResolvedKey) Private() (types.KeyHandle, bool) {
	if !k.CanDecrypt() {
		return nil, false
	}
	return k.handle, true
}

// CanDecrypt reports whether the key is private-capable.
func (k *ResolvedKey) CanDecrypt() bool {
	return !k.released && k.handle.CanDecrypt()
}

// Release zeroes the engine handle. Further calls are no-ops.
func (k *ResolvedKey) Release() {
	if k.released {
		return
	}
	k.released = true
	k.handle.Zero()
}
