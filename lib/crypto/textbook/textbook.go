// Package textbook is a deterministic RSA primitive for tests. It performs
// unpadded modular exponentiation with math/big and checks nothing beyond
// the syntax of its inputs, so callers can feed it known vectors and
// inject block failures.
package textbook

import (
	"math/big"

	"github.com/go-i2p/reesa/lib/crypto/types"
	"github.com/samber/oops"
)

// Key is the fixture's key handle.
type Key struct {
	p, q, e, d, n, totient *big.Int
	released               bool
}

// CanDecrypt reports whether the private exponent is nonzero.
func (k *Key) CanDecrypt() bool {
	return !k.released && k.d.Sign() > 0
}

// Zero marks the key released.
func (k *Key) Zero() {
	k.released = true
}

// Engine is a textbook RSA implementation of types.Engine.
type Engine struct {
	fail     types.Status
	failAt   int
	overflow int

	// Calls counts EncryptBlock and DecryptBlock invocations.
	Calls int
	// Loads counts LoadKey invocations.
	Loads int
}

var _ types.Engine = (*Engine)(nil)

// NewEngine returns a fixture engine with no injected faults.
func NewEngine() *Engine {
	return &Engine{}
}

// FailWith makes every block call from the n-th one (1-based) onward
// return status.
func (e *Engine) FailWith(status types.Status, n int) *Engine {
	e.fail = status
	e.failAt = n
	return e
}

// Overflow prefixes n nonzero bytes to every block output.
func (e *Engine) Overflow(n int) *Engine {
	e.overflow = n
	return e
}

// LoadKey accepts any six base-10 strings.
func (e *Engine) LoadKey(p, q, publicExponent, privateExponent, modulus, totient string) types.KeyHandle {
	e.Loads++
	vals := make([]*big.Int, 6)
	for i, s := range []string{p, q, publicExponent, privateExponent, modulus, totient} {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok || v.Sign() < 0 {
			return nil
		}
		vals[i] = v
	}
	if vals[4].Sign() == 0 {
		return nil
	}
	return &Key{p: vals[0], q: vals[1], e: vals[2], d: vals[3], n: vals[4], totient: vals[5]}
}

// ExportKey returns the stored integers in decimal.
func (e *Engine) ExportKey(handle types.KeyHandle) (p, q, publicExponent, privateExponent, modulus, totient string, err error) {
	k, ok := handle.(*Key)
	if !ok || k == nil {
		err = oops.Errorf("not a textbook key: %T", handle)
		return
	}
	return k.p.String(), k.q.String(), k.e.String(), k.d.String(), k.n.String(), k.totient.String(), nil
}

// EncryptBlock returns block^e mod n. Blocks not below n are rejected
// like the real engine does.
func (e *Engine) EncryptBlock(handle types.KeyHandle, block []byte, width int) ([]byte, types.Status) {
	k, status := e.begin(handle)
	if !status.OK() {
		return nil, status
	}
	m := new(big.Int).SetBytes(block)
	if m.Cmp(k.n) >= 0 {
		return nil, types.StatusInputTooLarge
	}
	return e.finish(new(big.Int).Exp(m, k.e, k.n))
}

// DecryptBlock returns block^d mod n.
func (e *Engine) DecryptBlock(handle types.KeyHandle, block []byte, width int) ([]byte, types.Status) {
	k, status := e.begin(handle)
	if !status.OK() {
		return nil, status
	}
	if !k.CanDecrypt() {
		return nil, types.StatusNoPrivateKey
	}
	c := new(big.Int).SetBytes(block)
	if c.Cmp(k.n) >= 0 {
		return nil, types.StatusInputTooLarge
	}
	return e.finish(new(big.Int).Exp(c, k.d, k.n))
}

func (e *Engine) begin(handle types.KeyHandle) (*Key, types.Status) {
	e.Calls++
	if e.failAt > 0 && e.Calls >= e.failAt {
		return nil, e.fail
	}
	k, ok := handle.(*Key)
	if !ok || k == nil {
		return nil, types.StatusInvalidKey
	}
	if k.released {
		return nil, types.StatusReleased
	}
	return k, types.StatusOK
}

func (e *Engine) finish(v *big.Int) ([]byte, types.Status) {
	out := v.Bytes()
	if e.overflow > 0 {
		prefix := make([]byte, e.overflow)
		for i := range prefix {
			prefix[i] = 0xff
		}
		out = append(prefix, out...)
	}
	return out, types.StatusOK
}
