package types

// Engine is the arbitrary-precision RSA primitive used by the block driver.
//
// Block values travel as big-endian unsigned integers. Outputs are minimal
// width: leading zero bytes are dropped and the value zero is an empty slice.
// Callers are responsible for restoring a fixed block width.
type Engine interface {
	// LoadKey reads decimal integer strings into a key handle.
	// returns nil if the engine rejects the values
	LoadKey(p, q, publicExponent, privateExponent, modulus, totient string) KeyHandle
	// ExportKey writes a handle back out as canonical decimal strings
	ExportKey(key KeyHandle) (p, q, publicExponent, privateExponent, modulus, totient string, err error)
	// EncryptBlock raises block to the public exponent.
	// width is the declared output width the caller will reconcile to.
	EncryptBlock(key KeyHandle, block []byte, width int) ([]byte, Status)
	// DecryptBlock raises block to the private exponent.
	DecryptBlock(key KeyHandle, block []byte, width int) ([]byte, Status)
}

// KeyGenerator produces fresh key handles.
type KeyGenerator interface {
	GenerateKey() (KeyHandle, error)
}
