package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/reesa/lib/util"
	"github.com/samber/oops"
	"github.com/spf13/viper"
)

var (
	CfgFile string
	log     = logger.GetGoI2PLogger()
)

const REESA_BASE_DIR = ".reesa"

// Config is an immutable snapshot of the settings in effect for one run.
// It is built once at startup and passed by reference to the components
// that need it.
type Config struct {
	Block BlockConfig
	Key   KeyConfig
}

// BlockConfig holds the block widths of the stream protocol.
type BlockConfig struct {
	// PlainWidth is the number of payload bytes per plaintext block
	PlainWidth int
	// CipherWidth is the number of bytes per ciphertext block
	CipherWidth int
}

// PaddedWidth is PlainWidth plus the length prefix byte.
func (b BlockConfig) PaddedWidth() int {
	return b.PlainWidth + 1
}

// KeyConfig holds key generation parameters.
type KeyConfig struct {
	Bits           int
	PublicExponent int64
}

// InitConfig loads the configuration file into viper, creating the default
// file when none exists and no explicit file was requested.
func InitConfig() error {
	if CfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(CfgFile)
	} else {
		viper.AddConfigPath(BuildReesaDirPath())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("REESA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	return handleConfigFile()
}

func setDefaults() {
	defaults := Defaults()

	viper.SetDefault("block.plain_width", defaults.Block.PlainWidth)
	viper.SetDefault("block.cipher_width", defaults.Block.CipherWidth)

	viper.SetDefault("key.bits", defaults.Key.Bits)
	viper.SetDefault("key.public_exponent", defaults.Key.PublicExponent)
}

// CurrentConfig builds a Config from the current viper settings and
// validates it.
func CurrentConfig() (*Config, error) {
	cfg := &Config{
		Block: BlockConfig{
			PlainWidth:  viper.GetInt("block.plain_width"),
			CipherWidth: viper.GetInt("block.cipher_width"),
		},
		Key: KeyConfig{
			Bits:           viper.GetInt("key.bits"),
			PublicExponent: viper.GetInt64("key.public_exponent"),
		},
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func createDefaultConfig(defaultConfigDir string) error {
	defaultConfigFile := filepath.Join(defaultConfigDir, "config.yaml")
	if err := CreateSecureDirectory(defaultConfigDir); err != nil {
		return oops.Wrapf(err, "could not create config directory")
	}

	if err := viper.SafeWriteConfigAs(defaultConfigFile); err != nil {
		return oops.Wrapf(err, "could not write default config file")
	}

	log.WithField("file", defaultConfigFile).Debug("Created default configuration")
	return nil
}

func handleConfigFile() error {
	err := viper.ReadInConfig()
	if err == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("Using config file")
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	switch {
	case errors.As(err, &notFound) && CfgFile == "":
		return createDefaultConfig(BuildReesaDirPath())
	case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
		return oops.Wrapf(err, "config file %s is not found", CfgFile)
	default:
		return oops.Wrapf(err, "error reading config file")
	}
}

// BuildReesaDirPath returns the per-user configuration directory.
func BuildReesaDirPath() string {
	return filepath.Join(util.UserHome(), REESA_BASE_DIR)
}
