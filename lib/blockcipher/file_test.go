package blockcipher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-i2p/reesa/lib/crypto/textbook"
	"github.com/go-i2p/reesa/lib/crypto/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriver_FileRoundTrip(t *testing.T) {
	engine := textbook.NewEngine()
	key := generateKey(t, engine)
	d := newDriver(t, engine)

	dir := t.TempDir()
	src := filepath.Join(dir, "plain.txt")
	enc := filepath.Join(dir, "plain.enc")
	dec := filepath.Join(dir, "plain.dec")
	plain := payload(123)
	require.NoError(t, os.WriteFile(src, plain, 0o644))

	stats, err := d.EncryptFile(context.Background(), key, src, enc)
	require.NoError(t, err)
	assert.Equal(t, 9, stats.Blocks)

	info, err := os.Stat(enc)
	require.NoError(t, err)
	assert.Equal(t, int64(9*32), info.Size())
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	_, err = d.DecryptFile(context.Background(), key, enc, dec)
	require.NoError(t, err)
	got, err := os.ReadFile(dec)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestDriver_FileTruncatesDestination(t *testing.T) {
	engine := textbook.NewEngine()
	key := generateKey(t, engine)
	d := newDriver(t, engine)

	dir := t.TempDir()
	src := filepath.Join(dir, "in")
	dst := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(src, []byte("hi"), 0o644))
	require.NoError(t, os.WriteFile(dst, make([]byte, 500), 0o600))

	_, err := d.EncryptFile(context.Background(), key, src, dst)
	require.NoError(t, err)
	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, int64(32), info.Size())
}

func TestDriver_FileKeepsBlocksBeforeFailure(t *testing.T) {
	engine := textbook.NewEngine().FailWith(types.StatusInvalidKey, 2)
	key := generateKey(t, engine)
	d := newDriver(t, engine)

	dir := t.TempDir()
	src := filepath.Join(dir, "in")
	dst := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(src, payload(45), 0o644))

	_, err := d.EncryptFile(context.Background(), key, src, dst)
	require.ErrorIs(t, err, ErrBlockProcessing)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, int64(32), info.Size())
}

func TestDriver_FileMissingSource(t *testing.T) {
	engine := textbook.NewEngine()
	key := generateKey(t, engine)
	d := newDriver(t, engine)

	dir := t.TempDir()
	dst := filepath.Join(dir, "out")
	_, err := d.EncryptFile(context.Background(), key, filepath.Join(dir, "missing"), dst)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDriver_FileRefusesSameSourceAndDestination(t *testing.T) {
	engine := textbook.NewEngine()
	key := generateKey(t, engine)
	d := newDriver(t, engine)

	dir := t.TempDir()
	path := filepath.Join(dir, "plain.txt")
	plain := payload(100)
	require.NoError(t, os.WriteFile(path, plain, 0o644))
	link := filepath.Join(dir, "link.txt")
	require.NoError(t, os.Link(path, link))

	for _, dst := range []string{path, filepath.Join(dir, ".", "plain.txt"), link} {
		_, err := d.EncryptFile(context.Background(), key, path, dst)
		assert.ErrorIs(t, err, ErrSameFile, dst)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, plain, got, "source must be left intact")
	}

	_, err := d.DecryptFile(context.Background(), key, path, path)
	assert.ErrorIs(t, err, ErrSameFile)
	assert.Equal(t, 0, engine.Calls)
}
