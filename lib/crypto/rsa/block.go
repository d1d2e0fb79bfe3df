package rsa

import (
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/go-i2p/reesa/lib/crypto/types"
)

// EncryptBlock computes block^e mod n.
func (e *Engine) EncryptBlock(handle types.KeyHandle, block []byte, width int) ([]byte, types.Status) {
	k, status := usableKey(handle)
	if !status.OK() {
		return nil, status
	}
	return k.transform(block, k.e, width)
}

// DecryptBlock computes block^d mod n. Public-only keys yield
// StatusNoPrivateKey.
func (e *Engine) DecryptBlock(handle types.KeyHandle, block []byte, width int) ([]byte, types.Status) {
	k, status := usableKey(handle)
	if !status.OK() {
		return nil, status
	}
	if !k.private {
		return nil, types.StatusNoPrivateKey
	}
	return k.transform(block, k.d, width)
}

func usableKey(handle types.KeyHandle) (*Key, types.Status) {
	k, ok := handle.(*Key)
	if !ok || k == nil {
		return nil, types.StatusInvalidKey
	}
	if k.released {
		return nil, types.StatusReleased
	}
	return k, types.StatusOK
}

// transform returns the minimal big-endian encoding of block^exponent mod n.
func (k *Key) transform(block []byte, exponent *big.Int, width int) ([]byte, types.Status) {
	if new(big.Int).SetBytes(block).Cmp(k.n) >= 0 {
		return nil, types.StatusInputTooLarge
	}
	x := new(saferith.Nat).SetBytes(block)
	x.Mod(x, k.modulus)
	y := new(saferith.Nat).SetBytes(exponent.Bytes())
	out := new(saferith.Nat).Exp(x, y, k.modulus).Big().Bytes()
	if len(out) > width {
		return nil, types.StatusWidthTooSmall
	}
	return out, types.StatusOK
}
