package keys

import (
	"encoding/hex"

	"github.com/go-i2p/reesa/lib/crypto/types"
	"github.com/samber/oops"
	"golang.org/x/crypto/blake2b"
)

// Field names of the key record.
const (
	FieldP               = "p"
	FieldQ               = "q"
	FieldPrivateExponent = "private_exponent"
	FieldPublicExponent  = "public_exponent"
	FieldModulus         = "modulus"
	FieldTotientModulus  = "totient_modulus"
)

// RequiredFields lists every field a complete record must carry.
var RequiredFields = []string{
	FieldP,
	FieldQ,
	FieldPrivateExponent,
	FieldPublicExponent,
	FieldModulus,
	FieldTotientModulus,
}

// KeyMaterial is a key record: six non-negative integers in canonical
// decimal form. It is a plain value and is never modified after creation.
type KeyMaterial struct {
	P               string `json:"p" yaml:"p"`
	Q               string `json:"q" yaml:"q"`
	PrivateExponent string `json:"private_exponent" yaml:"private_exponent"`
	PublicExponent  string `json:"public_exponent" yaml:"public_exponent"`
	Modulus         string `json:"modulus" yaml:"modulus"`
	TotientModulus  string `json:"totient_modulus" yaml:"totient_modulus"`
}

// Public returns the material with every private field replaced by "0".
func (m KeyMaterial) Public() KeyMaterial {
	return KeyMaterial{
		P:               "0",
		Q:               "0",
		PrivateExponent: "0",
		PublicExponent:  m.PublicExponent,
		Modulus:         m.Modulus,
		TotientModulus:  "0",
	}
}

// Fingerprint identifies the public half of the key: hex BLAKE2b-256 of
// "public_exponent:modulus".
func (m KeyMaterial) Fingerprint() string {
	sum := blake2b.Sum256([]byte(m.PublicExponent + ":" + m.Modulus))
	return hex.EncodeToString(sum[:])
}

// Export reads a handle back out of the engine that produced it.
func Export(engine types.Engine, handle types.KeyHandle) (KeyMaterial, error) {
	p, q, e, d, n, t, err := engine.ExportKey(handle)
	if err != nil {
		return KeyMaterial{}, oops.Wrapf(err, "failed to export key")
	}
	return KeyMaterial{
		P:               p,
		Q:               q,
		PrivateExponent: d,
		PublicExponent:  e,
		Modulus:         n,
		TotientModulus:  t,
	}, nil
}
