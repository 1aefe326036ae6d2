package commands

import (
	"io"
	"os"

	"github.com/maksimkurb/cgproxy/src/internal/config"
	"github.com/maksimkurb/cgproxy/src/internal/errors"
	"github.com/maksimkurb/cgproxy/src/internal/log"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	Verbose    bool

	// Stdout receives command output. Nil means os.Stdout.
	Stdout io.Writer
}

func (c *AppContext) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

// loadConfigOrFail loads the configuration file over the defaults.
// A missing or unreadable file is a FILE_ERROR, an invalid one a PARAM_ERROR.
func loadConfigOrFail(configPath string) (*config.Config, error) {
	cfg := config.NewConfig()
	if _, err := cfg.LoadFromFile(configPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigOrDefaults is loadConfigOrFail that tolerates a missing file.
func loadConfigOrDefaults(configPath string) (*config.Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Warnf("Configuration file %s not found, using defaults", configPath)
		return config.NewConfig(), nil
	}
	return loadConfigOrFail(configPath)
}

// usageError marks bad command-line arguments as PARAM_ERROR.
func usageError(message string, cause error) error {
	return errors.NewParamError(message, cause)
}
