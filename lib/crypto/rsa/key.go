package rsa

import (
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/go-i2p/reesa/lib/crypto/types"
)

// Key is the engine's key handle. A Key with only the public exponent and
// modulus set is public-only and refuses DecryptBlock.
type Key struct {
	p, q     *big.Int
	e, d     *big.Int
	n        *big.Int
	totient  *big.Int
	modulus  *saferith.Modulus
	private  bool
	released bool
}

var _ types.KeyHandle = (*Key)(nil)

func newKey(p, q, e, d, n, totient *big.Int, private bool) *Key {
	return &Key{
		p:       p,
		q:       q,
		e:       e,
		d:       d,
		n:       n,
		totient: totient,
		modulus: saferith.ModulusFromBytes(n.Bytes()),
		private: private,
	}
}

// CanDecrypt reports whether the key carries an accepted private exponent.
func (k *Key) CanDecrypt() bool {
	return k.private && !k.released
}

// Zero overwrites every integer held by the key and marks it released.
func (k *Key) Zero() {
	if k.released {
		return
	}
	for _, x := range []*big.Int{k.p, k.q, k.e, k.d, k.n, k.totient} {
		wipe(x)
	}
	k.modulus = nil
	k.private = false
	k.released = true
	log.WithField("at", "Key.Zero").Debug("Released RSA key material")
}

// BitLen returns the bit length of the modulus, or 0 after Zero.
func (k *Key) BitLen() int {
	if k.released {
		return 0
	}
	return k.n.BitLen()
}

func wipe(x *big.Int) {
	if x == nil {
		return
	}
	clear(x.Bits())
	x.SetInt64(0)
}
