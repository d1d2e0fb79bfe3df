package keys

import (
	"os"
	"path/filepath"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/reesa/lib/config"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

// StoreKeyFile writes m to path with 0600 permissions, creating missing
// parent directories with 0700.
func StoreKeyFile(path string, m KeyMaterial) error {
	log.WithFields(logger.Fields{
		"at":   "StoreKeyFile",
		"path": path,
	}).Debug("Storing key file")

	if err := config.CreateSecureDirectory(filepath.Dir(path)); err != nil {
		return oops.Wrapf(err, "failed to create key directory")
	}
	if err := config.WriteSecureFile(path, Encode(m)); err != nil {
		log.WithError(err).Error("Failed to write key file")
		return oops.Wrapf(err, "failed to write key file")
	}

	log.WithFields(logger.Fields{
		"at":          "StoreKeyFile",
		"path":        path,
		"fingerprint": m.Fingerprint(),
	}).Debug("Successfully stored key file")
	return nil
}

// LoadKeyFile reads and decodes the key record at path. I/O failures are
// returned as-is (wrapped); format problems carry ErrNotStructuredData or
// ErrIncompleteKey.
func LoadKeyFile(path string) (KeyMaterial, error) {
	log.WithFields(logger.Fields{
		"at":   "LoadKeyFile",
		"path": path,
	}).Debug("Loading key file")

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return KeyMaterial{}, oops.Wrapf(err, "key file not found: %s", path)
		}
		return KeyMaterial{}, oops.Wrapf(err, "failed to read key file")
	}

	if secure, statErr := config.IsPathSecure(path, config.SecureFilePermissions); statErr == nil && !secure {
		log.WithField("path", path).Warn("Key file is readable by other users")
	}

	m, err := Decode(data)
	if err != nil {
		return KeyMaterial{}, oops.Wrapf(err, "failed to decode key file %s", path)
	}

	log.WithField("at", "LoadKeyFile").Debug("Successfully loaded key file")
	return m, nil
}
