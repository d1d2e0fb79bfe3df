package filecrypt

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-i2p/reesa/lib/blockcipher"
	"github.com/go-i2p/reesa/lib/config"
	"github.com/go-i2p/reesa/lib/crypto/rsa"
	"github.com/go-i2p/reesa/lib/crypto/textbook"
	"github.com/go-i2p/reesa/lib/crypto/types"
	"github.com/go-i2p/reesa/lib/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	d := config.Defaults()
	return &config.Config{Block: d.Block, Key: d.Key}
}

func newRSAService(t *testing.T) *Service {
	t.Helper()
	cfg := testConfig()
	engine := rsa.NewEngine(cfg.Key.Bits, cfg.Key.PublicExponent)
	s, err := NewService(cfg, engine, engine)
	require.NoError(t, err)
	return s
}

func TestService_GenerateShowRoundTrip(t *testing.T) {
	s := newRSAService(t)
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "nested", "key.json")

	info, err := s.GenerateKey(keyPath, false)
	require.NoError(t, err)
	assert.True(t, info.Private)
	assert.LessOrEqual(t, info.Bits, 256)
	assert.Greater(t, info.Bits, 240)

	shown, err := s.ShowKey(keyPath)
	require.NoError(t, err)
	assert.Equal(t, info.Material, shown.Material)
	assert.Equal(t, info.Fingerprint, shown.Fingerprint)
	assert.True(t, shown.Private)

	st, err := os.Stat(keyPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), st.Mode().Perm())
}

func TestService_GenerateRefusesOverwrite(t *testing.T) {
	s := newRSAService(t)
	keyPath := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(keyPath, []byte("keep me"), 0o600))

	_, err := s.GenerateKey(keyPath, false)
	assert.ErrorIs(t, err, ErrKeyFileExists)
	data, err := os.ReadFile(keyPath)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))

	_, err = s.GenerateKey(keyPath, true)
	require.NoError(t, err)
	_, err = keys.LoadKeyFile(keyPath)
	assert.NoError(t, err)
}

func TestService_EncryptDecryptFiles(t *testing.T) {
	s := newRSAService(t)
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "key.json")
	_, err := s.GenerateKey(keyPath, false)
	require.NoError(t, err)

	plain := []byte("attack at dawn, bring the block-mode RSA along with you")
	src := filepath.Join(dir, "msg.txt")
	enc := filepath.Join(dir, "msg.enc")
	dec := filepath.Join(dir, "msg.dec")
	require.NoError(t, os.WriteFile(src, plain, 0o644))

	stats, err := s.EncryptFile(context.Background(), keyPath, src, enc)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Blocks)

	_, err = s.DecryptFile(context.Background(), keyPath, enc, dec)
	require.NoError(t, err)
	got, err := os.ReadFile(dec)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestService_PublicKeyWorkflow(t *testing.T) {
	s := newRSAService(t)
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "key.json")
	pubPath := filepath.Join(dir, "key.pub.json")
	_, err := s.GenerateKey(keyPath, false)
	require.NoError(t, err)

	pub, err := s.ExportPublic(keyPath, pubPath)
	require.NoError(t, err)
	assert.False(t, pub.Private)
	assert.Equal(t, "0", pub.Material.PrivateExponent)

	shown, err := s.ShowKey(pubPath)
	require.NoError(t, err)
	assert.False(t, shown.Private)

	priv, err := s.ShowKey(keyPath)
	require.NoError(t, err)
	assert.Equal(t, priv.Fingerprint, shown.Fingerprint)

	// exporting from a public key is allowed
	_, err = s.ExportPublic(pubPath, filepath.Join(dir, "again.json"))
	require.NoError(t, err)

	src := filepath.Join(dir, "msg.txt")
	enc := filepath.Join(dir, "msg.enc")
	dec := filepath.Join(dir, "msg.dec")
	require.NoError(t, os.WriteFile(src, []byte("public encrypt"), 0o644))

	_, err = s.EncryptFile(context.Background(), pubPath, src, enc)
	require.NoError(t, err)

	_, err = s.DecryptFile(context.Background(), pubPath, enc, dec)
	assert.ErrorIs(t, err, ErrPrivateKeyRequired)
	_, statErr := os.Stat(dec)
	assert.True(t, os.IsNotExist(statErr))

	_, err = s.DecryptFile(context.Background(), keyPath, enc, dec)
	require.NoError(t, err)
}

func TestService_DecryptPublicKeyNoBlockCalls(t *testing.T) {
	cfg := testConfig()
	gen := rsa.NewEngine(cfg.Key.Bits, cfg.Key.PublicExponent)
	h, err := gen.GenerateKey()
	require.NoError(t, err)
	m, err := keys.Export(gen, h)
	require.NoError(t, err)

	dir := t.TempDir()
	pubPath := filepath.Join(dir, "pub.json")
	require.NoError(t, keys.StoreKeyFile(pubPath, m.Public()))
	src := filepath.Join(dir, "in")
	require.NoError(t, os.WriteFile(src, make([]byte, 64), 0o644))

	engine := textbook.NewEngine()
	s, err := NewService(cfg, engine, nil)
	require.NoError(t, err)

	_, err = s.DecryptFile(context.Background(), pubPath, src, filepath.Join(dir, "out"))
	assert.ErrorIs(t, err, ErrPrivateKeyRequired)
	assert.Equal(t, 0, engine.Calls)
	assert.Equal(t, 1, engine.Loads)
}

func TestService_KeyErrors(t *testing.T) {
	s := newRSAService(t)
	dir := t.TempDir()

	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		return p
	}

	cases := []struct {
		name string
		path string
		want error
	}{
		{"not json", write("a.json", "not json at all"), keys.ErrNotStructuredData},
		{"missing field", write("b.json", `{"p":"3","q":"11"}`), keys.ErrIncompleteKey},
		{"bad numbers", write("c.json", `{"p":"4","q":"11","private_exponent":"3","public_exponent":"7","modulus":"44","totient_modulus":"30"}`), keys.ErrUnacceptableKey},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.ShowKey(tc.path)
			assert.ErrorIs(t, err, tc.want)
			_, err = s.EncryptFile(context.Background(), tc.path, tc.path, filepath.Join(dir, "out"))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestService_BlockFailureSurfaces(t *testing.T) {
	cfg := testConfig()
	gen := rsa.NewEngine(cfg.Key.Bits, cfg.Key.PublicExponent)
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "key.json")

	seed, err := NewService(cfg, gen, gen)
	require.NoError(t, err)
	_, err = seed.GenerateKey(keyPath, false)
	require.NoError(t, err)

	engine := textbook.NewEngine().FailWith(types.StatusInputTooLarge, 1)
	s, err := NewService(cfg, engine, nil)
	require.NoError(t, err)

	src := filepath.Join(dir, "in")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))
	_, err = s.EncryptFile(context.Background(), keyPath, src, filepath.Join(dir, "out"))
	assert.ErrorIs(t, err, blockcipher.ErrBlockProcessing)
}

func TestNewService_InvalidWidths(t *testing.T) {
	cfg := testConfig()
	cfg.Block.CipherWidth = 4
	_, err := NewService(cfg, textbook.NewEngine(), nil)
	assert.Error(t, err)

	_, err = NewService(nil, textbook.NewEngine(), nil)
	assert.Error(t, err)
}
