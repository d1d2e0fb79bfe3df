package blockcipher

import (
	"context"
	"errors"
	"io"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/reesa/lib/crypto/types"
	"github.com/go-i2p/reesa/lib/padding"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

// Stats summarizes a finished or aborted operation.
type Stats struct {
	Blocks   int
	BytesIn  int64
	BytesOut int64
}

// Driver runs the block protocol over an engine. A Driver holds no
// per-operation state and may be reused.
type Driver struct {
	widths  Widths
	engine  types.Engine
	padding padding.PaddingStrategy
}

// NewDriver returns a driver for the given widths and engine.
func NewDriver(widths Widths, engine types.Engine) (*Driver, error) {
	if err := widths.Validate(); err != nil {
		return nil, err
	}
	if engine == nil {
		return nil, oops.Errorf("block driver requires an engine")
	}
	return &Driver{
		widths:  widths,
		engine:  engine,
		padding: padding.LengthPrefix{Width: widths.Plain},
	}, nil
}

// Widths returns the driver's block widths.
func (d *Driver) Widths() Widths {
	return d.widths
}

// mode describes one direction of the block loop.
type mode struct {
	op        string
	readWidth int
	outWidth  int
	prepare   func(chunk []byte) ([]byte, types.Status)
	transform func(key types.KeyHandle, block []byte, width int) ([]byte, types.Status)
	finish    func(block []byte) ([]byte, types.Status)
}

// Encrypt reads r to EOF and writes one cipher block per plaintext chunk
// to w.
func (d *Driver) Encrypt(ctx context.Context, key types.KeyHandle, r io.Reader, w io.Writer) (Stats, error) {
	return d.run(ctx, key, r, w, mode{
		op:        "encrypt",
		readWidth: d.widths.Plain,
		outWidth:  d.widths.Cipher,
		prepare: func(chunk []byte) ([]byte, types.Status) {
			block, err := d.padding.AddPadding(chunk)
			if err != nil {
				return nil, StatusMalformedBlock
			}
			return block, types.StatusOK
		},
		transform: d.engine.EncryptBlock,
		finish: func(block []byte) ([]byte, types.Status) {
			return block, types.StatusOK
		},
	})
}

// Decrypt reads cipher blocks from r to EOF and writes the recovered
// payloads to w. The key must be private-capable.
func (d *Driver) Decrypt(ctx context.Context, key types.KeyHandle, r io.Reader, w io.Writer) (Stats, error) {
	return d.run(ctx, key, r, w, mode{
		op:        "decrypt",
		readWidth: d.widths.Cipher,
		outWidth:  d.widths.Padded,
		prepare: func(chunk []byte) ([]byte, types.Status) {
			if len(chunk) != d.widths.Cipher {
				return nil, StatusTruncated
			}
			return chunk, types.StatusOK
		},
		transform: d.engine.DecryptBlock,
		finish: func(block []byte) ([]byte, types.Status) {
			payload, err := d.padding.RemovePadding(block)
			if err != nil {
				return nil, StatusMalformedBlock
			}
			return payload, types.StatusOK
		},
	})
}

func (d *Driver) run(ctx context.Context, key types.KeyHandle, r io.Reader, w io.Writer, m mode) (Stats, error) {
	var stats Stats
	buf := make([]byte, m.readWidth)

	for index := 0; ; index++ {
		if ctx.Err() != nil {
			return stats, oops.Wrapf(context.Cause(ctx), "%s stopped before block %d", m.op, index)
		}

		n, err := io.ReadFull(r, buf)
		if n == 0 && errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			return stats, oops.Wrapf(err, "%s: failed to read block %d", m.op, index)
		}
		stats.BytesIn += int64(n)

		out, status := d.processBlock(key, buf[:n], m)
		if !status.OK() {
			blockErr := &BlockError{Op: m.op, Index: index, Status: status}
			log.WithFields(logger.Fields{
				"at":     "Driver.run",
				"op":     m.op,
				"block":  index,
				"status": int(status),
			}).Debug("Block processing failed")
			return stats, blockErr
		}

		written, err := w.Write(out)
		stats.BytesOut += int64(written)
		if err != nil {
			return stats, oops.Wrapf(err, "%s: failed to write block %d", m.op, index)
		}
		stats.Blocks++
	}

	log.WithFields(logger.Fields{
		"at":        "Driver.run",
		"op":        m.op,
		"blocks":    stats.Blocks,
		"bytes_in":  stats.BytesIn,
		"bytes_out": stats.BytesOut,
	}).Debug("Block stream complete")
	return stats, nil
}

// processBlock runs prepare, transform, reconcile and finish for one chunk.
func (d *Driver) processBlock(key types.KeyHandle, chunk []byte, m mode) ([]byte, types.Status) {
	block, status := m.prepare(chunk)
	if !status.OK() {
		return nil, status
	}
	out, status := m.transform(key, block, m.outWidth)
	if !status.OK() {
		return nil, status
	}
	fixed, ok := reconcile(out, m.outWidth)
	if !ok {
		return nil, types.StatusWidthTooSmall
	}
	return m.finish(fixed)
}
