// Package padding implements the length-prefix block padding used by the
// block driver.
//
// A padded block is one length byte followed by the payload and zero fill,
// always width+1 bytes long:
//
//	[len(payload)] payload 0x00...
//
// A payload of exactly width bytes stores the sentinel value width in the
// length byte and needs no fill. This scheme only makes a short final chunk
// recoverable; it adds no cryptographic protection.
package padding

import (
	"errors"

	"github.com/samber/oops"
)

// MaxWidth is the largest payload width a single length byte can describe.
const MaxWidth = 255

var (
	ErrInvalidWidth   = errors.New("padding width out of range")
	ErrPayloadTooLong = errors.New("payload longer than padding width")
	ErrBlockSize      = errors.New("padded block has wrong size")
	ErrInvalidLength  = errors.New("stored payload length exceeds width")
)

// PaddingStrategy adds and removes padding for one block.
type PaddingStrategy interface {
	AddPadding(payload []byte) ([]byte, error)
	RemovePadding(block []byte) ([]byte, error)
}

// LengthPrefix is the PaddingStrategy for a fixed payload width.
type LengthPrefix struct {
	Width int
}

var _ PaddingStrategy = LengthPrefix{}

// AddPadding pads payload to Width+1 bytes.
func (p LengthPrefix) AddPadding(payload []byte) ([]byte, error) {
	return Pad(payload, p.Width)
}

// RemovePadding recovers the payload from a Width+1 byte block.
func (p LengthPrefix) RemovePadding(block []byte) ([]byte, error) {
	return Unpad(block, p.Width)
}

// Pad returns a width+1 byte block holding payload behind a length byte.
// len(payload) must not exceed width.
func Pad(payload []byte, width int) ([]byte, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	if len(payload) > width {
		return nil, oops.Wrapf(ErrPayloadTooLong, "payload is %d bytes, width is %d", len(payload), width)
	}
	block := make([]byte, width+1)
	// len(payload) == width doubles as the full-block sentinel
	block[0] = byte(len(payload))
	copy(block[1:], payload)
	return block, nil
}

// Unpad returns the payload stored in a block produced by Pad with the same
// width. Fill bytes after the payload are discarded unchecked.
func Unpad(block []byte, width int) ([]byte, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	if len(block) != width+1 {
		return nil, oops.Wrapf(ErrBlockSize, "block is %d bytes, want %d", len(block), width+1)
	}
	stored := int(block[0])
	if stored > width {
		return nil, oops.Wrapf(ErrInvalidLength, "stored length %d, width %d", stored, width)
	}
	payload := make([]byte, stored)
	copy(payload, block[1:1+stored])
	return payload, nil
}

func checkWidth(width int) error {
	if width < 1 || width > MaxWidth {
		return oops.Wrapf(ErrInvalidWidth, "width %d", width)
	}
	return nil
}
