package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

// SecureFilePermissions for files containing sensitive data (keys, ciphertext)
const SecureFilePermissions = 0o600

// SecureDirPermissions for directories containing sensitive files
const SecureDirPermissions = 0o700

// CreateSecureDirectory creates a directory with secure permissions.
// Use this for directories that contain or will contain key files.
func CreateSecureDirectory(path string) error {
	cleanPath := filepath.Clean(path)

	if err := os.MkdirAll(cleanPath, SecureDirPermissions); err != nil {
		return oops.Wrapf(err, "failed to create secure directory %q", cleanPath)
	}

	log.WithFields(logger.Fields{
		"at":   "CreateSecureDirectory",
		"path": cleanPath,
		"mode": fmt.Sprintf("%04o", SecureDirPermissions),
	}).Debug("created secure directory")

	return nil
}

// WriteSecureFile writes data to a file with secure permissions, replacing
// any previous content.
func WriteSecureFile(path string, data []byte) error {
	cleanPath := filepath.Clean(path)

	if err := os.WriteFile(cleanPath, data, SecureFilePermissions); err != nil {
		return oops.Wrapf(err, "failed to write secure file %q", cleanPath)
	}

	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(cleanPath, SecureFilePermissions); err != nil {
		log.WithFields(logger.Fields{
			"at":     "WriteSecureFile",
			"reason": "chmod_failed",
			"path":   cleanPath,
			"error":  err.Error(),
		}).Warn("could not set secure permissions on file")
	}

	return nil
}

// IsPathSecure checks if a file or directory has secure permissions.
// Returns true if the path exists and has permissions <= maxMode.
func IsPathSecure(path string, maxMode os.FileMode) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil // Non-existent paths are "secure"
		}
		return false, err
	}

	actualPerm := info.Mode().Perm()
	if actualPerm&^maxMode != 0 {
		return false, nil
	}

	return true, nil
}
