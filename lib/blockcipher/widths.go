package blockcipher

import (
	"github.com/go-i2p/reesa/lib/config"
	"github.com/go-i2p/reesa/lib/padding"
	"github.com/samber/oops"
)

// Widths are the three block sizes of the stream protocol.
type Widths struct {
	// Plain is the payload bytes per plaintext block
	Plain int
	// Padded is Plain plus the length byte
	Padded int
	// Cipher is the bytes per ciphertext block
	Cipher int
}

// WidthsFromConfig derives Widths from the block configuration.
func WidthsFromConfig(b config.BlockConfig) Widths {
	return Widths{
		Plain:  b.PlainWidth,
		Padded: b.PaddedWidth(),
		Cipher: b.CipherWidth,
	}
}

// Validate checks the relationships between the widths.
func (w Widths) Validate() error {
	if w.Plain < 1 || w.Plain > padding.MaxWidth {
		return oops.Errorf("plain width %d out of range", w.Plain)
	}
	if w.Padded != w.Plain+1 {
		return oops.Errorf("padded width %d must be plain width + 1", w.Padded)
	}
	if w.Cipher < w.Padded {
		return oops.Errorf("cipher width %d smaller than padded width %d", w.Cipher, w.Padded)
	}
	return nil
}
