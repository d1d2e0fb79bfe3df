// Package filecrypt ties key files, the key resolver and the block driver
// together into the operations the command line exposes.
package filecrypt

import (
	"context"
	"math/big"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/reesa/lib/blockcipher"
	"github.com/go-i2p/reesa/lib/config"
	"github.com/go-i2p/reesa/lib/crypto/types"
	"github.com/go-i2p/reesa/lib/keys"
	"github.com/go-i2p/reesa/lib/util"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

// Service runs key and file operations for one configuration.
type Service struct {
	cfg       *config.Config
	engine    types.Engine
	generator types.KeyGenerator
	resolver  *keys.Resolver
	driver    *blockcipher.Driver
}

// KeyInfo describes a key file.
type KeyInfo struct {
	Material    keys.KeyMaterial
	Private     bool
	Bits        int
	Fingerprint string
}

// NewService builds a Service. generator may be nil when no keys will be
// generated.
func NewService(cfg *config.Config, engine types.Engine, generator types.KeyGenerator) (*Service, error) {
	if cfg == nil {
		return nil, oops.Errorf("filecrypt service requires a configuration")
	}
	driver, err := blockcipher.NewDriver(blockcipher.WidthsFromConfig(cfg.Block), engine)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to create block driver")
	}
	return &Service{
		cfg:       cfg,
		engine:    engine,
		generator: generator,
		resolver:  keys.NewResolver(engine),
		driver:    driver,
	}, nil
}

// GenerateKey creates a new private key and stores it at path. An existing
// file is only replaced when force is set.
func (s *Service) GenerateKey(path string, force bool) (KeyInfo, error) {
	if s.generator == nil {
		return KeyInfo{}, oops.Errorf("no key generator configured")
	}
	if !force && util.CheckFileExists(path) {
		return KeyInfo{}, oops.Wrapf(ErrKeyFileExists, "%s", path)
	}

	handle, err := s.generator.GenerateKey()
	if err != nil {
		return KeyInfo{}, oops.Wrapf(err, "failed to generate key")
	}
	defer handle.Zero()

	m, err := keys.Export(s.engine, handle)
	if err != nil {
		return KeyInfo{}, err
	}
	if err := keys.StoreKeyFile(path, m); err != nil {
		return KeyInfo{}, err
	}

	log.WithFields(logger.Fields{
		"at":          "GenerateKey",
		"path":        path,
		"bits":        s.cfg.Key.Bits,
		"fingerprint": m.Fingerprint(),
	}).Debug("Generated key")
	return newKeyInfo(m, true), nil
}

// ShowKey loads and validates the key at path.
func (s *Service) ShowKey(path string) (KeyInfo, error) {
	m, resolved, err := s.resolve(path)
	if err != nil {
		return KeyInfo{}, err
	}
	defer resolved.Release()
	return newKeyInfo(m, resolved.CanDecrypt()), nil
}

// ExportPublic writes the public half of the key at src to dst. src may
// itself be public-only.
func (s *Service) ExportPublic(src, dst string) (KeyInfo, error) {
	_, resolved, err := s.resolve(src)
	if err != nil {
		return KeyInfo{}, err
	}
	defer resolved.Release()

	m, err := keys.Export(s.engine, resolved.Public())
	if err != nil {
		return KeyInfo{}, err
	}
	pub := m.Public()

	check, err := s.resolver.Resolve(pub)
	if err != nil {
		return KeyInfo{}, oops.Wrapf(err, "public key derived from %s is unusable", src)
	}
	check.Release()

	if err := keys.StoreKeyFile(dst, pub); err != nil {
		return KeyInfo{}, err
	}
	return newKeyInfo(pub, false), nil
}

// EncryptFile encrypts src into dst with the key at keyPath.
func (s *Service) EncryptFile(ctx context.Context, keyPath, src, dst string) (blockcipher.Stats, error) {
	_, resolved, err := s.resolve(keyPath)
	if err != nil {
		return blockcipher.Stats{}, err
	}
	defer resolved.Release()

	stats, err := s.driver.EncryptFile(ctx, resolved.Public(), src, dst)
	if err != nil {
		return stats, oops.Wrapf(err, "failed to encrypt %s", src)
	}
	return stats, nil
}

// DecryptFile decrypts src into dst with the private key at keyPath. A
// public-only key fails before any file is opened.
func (s *Service) DecryptFile(ctx context.Context, keyPath, src, dst string) (blockcipher.Stats, error) {
	_, resolved, err := s.resolve(keyPath)
	if err != nil {
		return blockcipher.Stats{}, err
	}
	defer resolved.Release()

	private, ok := resolved.Private()
	if !ok {
		return blockcipher.Stats{}, oops.Wrapf(ErrPrivateKeyRequired, "%s holds only a public key", keyPath)
	}

	stats, err := s.driver.DecryptFile(ctx, private, src, dst)
	if err != nil {
		return stats, oops.Wrapf(err, "failed to decrypt %s", src)
	}
	return stats, nil
}

func (s *Service) resolve(path string) (keys.KeyMaterial, *keys.ResolvedKey, error) {
	m, err := keys.LoadKeyFile(path)
	if err != nil {
		return keys.KeyMaterial{}, nil, err
	}
	resolved, err := s.resolver.Resolve(m)
	if err != nil {
		return keys.KeyMaterial{}, nil, oops.Wrapf(err, "key file %s", path)
	}
	return m, resolved, nil
}

func newKeyInfo(m keys.KeyMaterial, private bool) KeyInfo {
	info := KeyInfo{
		Material:    m,
		Private:     private,
		Fingerprint: m.Fingerprint(),
	}
	if n, ok := new(big.Int).SetString(m.Modulus, 10); ok {
		info.Bits = n.BitLen()
	}
	return info
}
