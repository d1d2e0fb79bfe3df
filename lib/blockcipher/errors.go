package blockcipher

import (
	"errors"
	"fmt"

	"github.com/go-i2p/reesa/lib/crypto/types"
)

var (
	// ErrBlockProcessing matches every *BlockError with errors.Is.
	ErrBlockProcessing = errors.New("block processing failed")
	// ErrSameFile is returned when source and destination name one file.
	ErrSameFile = errors.New("source and destination are the same file")
)

// Statuses raised by the driver itself rather than the engine.
const (
	// StatusTruncated marks a trailing partial ciphertext block
	StatusTruncated types.Status = 100 + iota
	// StatusMalformedBlock marks a decrypted block with an invalid length prefix
	StatusMalformedBlock
)

// BlockError reports the failure of a single block.
type BlockError struct {
	Op     string
	Index  int
	Status types.Status
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("%s: block %d: %s", e.Op, e.Index, describe(e.Status))
}

// Is makes errors.Is(err, ErrBlockProcessing) true for any BlockError.
func (e *BlockError) Is(target error) bool {
	return target == ErrBlockProcessing
}

func describe(s types.Status) string {
	switch s {
	case StatusTruncated:
		return "truncated ciphertext block"
	case StatusMalformedBlock:
		return "malformed padded block"
	default:
		return s.String()
	}
}
