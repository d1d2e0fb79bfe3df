package filecrypt

import "errors"

var (
	// ErrPrivateKeyRequired is returned when decryption is asked of a
	// public-only key.
	ErrPrivateKeyRequired = errors.New("private key required")
	// ErrKeyFileExists is returned when key generation would overwrite a file.
	ErrKeyFileExists = errors.New("key file already exists")
)
