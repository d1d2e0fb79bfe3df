package types

import "fmt"

// Status is the result code of a single block transform. Zero is success.
type Status int

const (
	StatusOK Status = iota
	StatusInvalidKey
	StatusNoPrivateKey
	StatusInputTooLarge
	StatusWidthTooSmall
	StatusReleased
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidKey:
		return "invalid key handle"
	case StatusNoPrivateKey:
		return "private key required"
	case StatusInputTooLarge:
		return "block value not smaller than modulus"
	case StatusWidthTooSmall:
		return "output wider than declared block width"
	case StatusReleased:
		return "key handle already released"
	default:
		return fmt.Sprintf("status %d", int(s))
	}
}

// OK reports whether s is StatusOK.
func (s Status) OK() bool {
	return s == StatusOK
}
