package blockcipher

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/reesa/lib/config"
	"github.com/go-i2p/reesa/lib/crypto/types"
	"github.com/samber/oops"
)

// EncryptFile encrypts src into dst, creating or truncating dst with 0600
// permissions.
func (d *Driver) EncryptFile(ctx context.Context, key types.KeyHandle, src, dst string) (Stats, error) {
	return processFile(src, dst, func(r io.Reader, w io.Writer) (Stats, error) {
		return d.Encrypt(ctx, key, r, w)
	})
}

// DecryptFile decrypts src into dst, creating or truncating dst with 0600
// permissions.
func (d *Driver) DecryptFile(ctx context.Context, key types.KeyHandle, src, dst string) (Stats, error) {
	return processFile(src, dst, func(r io.Reader, w io.Writer) (Stats, error) {
		return d.Decrypt(ctx, key, r, w)
	})
}

// processFile owns both file handles for the duration of fn and closes
// them on every return path. Output already produced is flushed even when
// fn fails.
func processFile(src, dst string, fn func(io.Reader, io.Writer) (Stats, error)) (stats Stats, err error) {
	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return stats, oops.Wrapf(err, "failed to open source file")
	}
	defer in.Close()

	if err := checkDistinct(in, dst); err != nil {
		return stats, err
	}

	out, err := os.OpenFile(filepath.Clean(dst), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, config.SecureFilePermissions)
	if err != nil {
		return stats, oops.Wrapf(err, "failed to open destination file")
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = oops.Wrapf(cerr, "failed to close destination file")
		}
	}()

	bw := bufio.NewWriter(out)
	stats, err = fn(bufio.NewReader(in), bw)
	if ferr := bw.Flush(); ferr != nil && err == nil {
		err = oops.Wrapf(ferr, "failed to flush destination file")
	}

	log.WithFields(logger.Fields{
		"at":     "processFile",
		"src":    src,
		"dst":    dst,
		"blocks": stats.Blocks,
	}).Debug("File operation finished")
	return stats, err
}

// checkDistinct refuses a destination that is the already opened source,
// since truncating it would destroy the input before it is read.
func checkDistinct(in *os.File, dst string) error {
	dstInfo, err := os.Stat(filepath.Clean(dst))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return oops.Wrapf(err, "failed to stat destination file")
	}
	srcInfo, err := in.Stat()
	if err != nil {
		return oops.Wrapf(err, "failed to stat source file")
	}
	if os.SameFile(srcInfo, dstInfo) {
		return oops.Wrapf(ErrSameFile, "%s", dst)
	}
	return nil
}
