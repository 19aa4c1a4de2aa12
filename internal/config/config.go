package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agents-at-scale/ark-cli/pkg/printer"
)

// EnvPrefix is prepended to every environment variable the CLI reads.
const EnvPrefix = "ARK_"

// FileName is the config file looked up in the working and home directories.
const FileName = ".arkrc"

// Config holds the CLI configuration.
// Precedence, lowest first: defaults, .arkrc.yaml, environment, flags.
type Config struct {
	KubectlPath string `env:"KUBECTL_PATH" envDefault:"kubectl" yaml:"kubectlPath" json:"kubectlPath"`
	HelmPath    string `env:"HELM_PATH" envDefault:"helm" yaml:"helmPath" json:"helmPath"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"warn" yaml:"logLevel" json:"logLevel"`
	Verbose     bool   `env:"VERBOSE" envDefault:"false" yaml:"verbose" json:"verbose"`
	Output      string `env:"OUTPUT" envDefault:"table" yaml:"output" json:"output"`

	Marketplace MarketplaceConfig `yaml:"marketplace" json:"marketplace"`

	// ConfigFile is the file the values were read from, if any.
	ConfigFile string `yaml:"-" json:"-"`
}

// MarketplaceConfig points at the marketplace chart registry
type MarketplaceConfig struct {
	Repository string `env:"MARKETPLACE_REPOSITORY" envDefault:"https://github.com/mckinsey/agents-at-scale-marketplace" yaml:"repository" json:"repository"`
	Registry   string `env:"MARKETPLACE_REGISTRY" envDefault:"oci://ghcr.io/mckinsey/agents-at-scale-marketplace/charts" yaml:"registry" json:"registry"`
}

// fileKeys maps .arkrc.yaml keys to the environment variable (sans prefix)
// they stand in for.
var fileKeys = map[string]string{
	"kubectlPath":            "KUBECTL_PATH",
	"helmPath":               "HELM_PATH",
	"logLevel":               "LOG_LEVEL",
	"verbose":                "VERBOSE",
	"output":                 "OUTPUT",
	"marketplace.repository": "MARKETPLACE_REPOSITORY",
	"marketplace.registry":   "MARKETPLACE_REGISTRY",
}

// NewConfig loads .env, then .arkrc.yaml from the working directory or the
// home directory, then ARK_* environment variables.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}

	return Load(dirs, os.Environ())
}

// Load builds a Config from the first .arkrc.yaml found in dirs and the
// given environment (in os.Environ form). Environment values win over the
// file.
func Load(dirs []string, environ []string) (*Config, error) {
	vars := env.ToMap(environ)

	file, err := readConfigFile(dirs)
	if err != nil {
		return nil, err
	}

	var used string
	if file != nil {
		used = file.ConfigFileUsed()
		for key, name := range fileKeys {
			if !file.IsSet(key) {
				continue
			}
			if _, ok := vars[EnvPrefix+name]; ok {
				continue
			}
			vars[EnvPrefix+name] = file.GetString(key)
		}
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: vars,
	}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ConfigFile = used
	return &cfg, nil
}

// readConfigFile returns nil when no config file exists in dirs.
func readConfigFile(dirs []string) (*viper.Viper, error) {
	if len(dirs) == 0 {
		return nil, nil
	}

	v := viper.New()
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(filepath.Clean(dir))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	return v, nil
}

// Validate checks values that cannot be checked by type alone.
func (c *Config) Validate() error {
	if _, err := printer.ParseOutputType(c.Output); err != nil {
		return err
	}
	if c.KubectlPath == "" {
		return errors.New("kubectl path must not be empty")
	}
	if c.HelmPath == "" {
		return errors.New("helm path must not be empty")
	}
	return nil
}
