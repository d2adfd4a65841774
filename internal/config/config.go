// Package config loads tempobj settings from a YAML file and the
// environment and turns them into a namespace registry.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/aigotowork/tempobj"
)

// Config holds the complete CLI configuration
type Config struct {
	Defaults   ObjectConfig            `yaml:"defaults" json:"defaults"`
	Namespaces map[string]ObjectConfig `yaml:"namespaces,omitempty" json:"namespaces,omitempty"`
	Logging    LoggingConfig           `yaml:"logging" json:"logging"`
}

// ObjectConfig holds temp object settings. Zero values inherit: namespace
// fields fall back to the defaults section, defaults fall back to the
// library defaults.
type ObjectConfig struct {
	BlockSize  int    `yaml:"block_size,omitempty" json:"block_size,omitempty"`
	TempDir    string `yaml:"temp_dir,omitempty" json:"temp_dir,omitempty"`
	TempPrefix string `yaml:"temp_prefix,omitempty" json:"temp_prefix,omitempty"`
	FileMode   string `yaml:"file_mode,omitempty" json:"file_mode,omitempty"` // octal, e.g. "0644"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"` // console or json
}

// EnvConfigPath names the environment variable pointing at a config file.
const EnvConfigPath = "TEMPOBJ_CONFIG"

// Default returns the built-in configuration.
func Default() Config {
	d := tempobj.DefaultConfig()
	return Config{
		Defaults: ObjectConfig{
			BlockSize:  d.BlockSize,
			TempDir:    d.TempDir,
			TempPrefix: d.TempPrefix,
			FileMode:   fmt.Sprintf("%04o", uint32(d.FileMode)),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from multiple sources in order of precedence:
// 1. Environment variables (highest precedence)
// 2. Configuration file: path if given, else $TEMPOBJ_CONFIG, else ./tempobj.yaml
// 3. Default values (lowest precedence)
//
// It returns the configuration and a description of where it came from.
func Load(path string) (*Config, string, error) {
	config := Default()

	source, err := loadFromFile(&config, path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config file: %w", err)
	}

	if err := loadFromEnv(&config); err != nil {
		return nil, "", fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, "", fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, source, nil
}

// LoadFromFile loads a specific configuration file without environment
// overrides.
func LoadFromFile(path string) (*Config, error) {
	config := Default()

	if err := decodeFile(&config, path); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func loadFromFile(config *Config, explicit string) (string, error) {
	if explicit != "" {
		// An explicitly requested file must exist.
		return explicit, decodeFile(config, explicit)
	}

	configPaths := []string{
		os.Getenv(EnvConfigPath),
		"./tempobj.yaml",
	}

	for _, path := range configPaths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		return path, decodeFile(config, path)
	}

	return "built-in defaults (no config file found)", nil
}

func decodeFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// loadFromEnv loads configuration from environment variables
func loadFromEnv(config *Config) error {
	if val := os.Getenv("TEMPOBJ_BLOCK_SIZE"); val != "" {
		size, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("TEMPOBJ_BLOCK_SIZE: %w", err)
		}
		config.Defaults.BlockSize = size
	}
	if val := os.Getenv("TEMPOBJ_TEMP_DIR"); val != "" {
		config.Defaults.TempDir = val
	}
	if val := os.Getenv("TEMPOBJ_TEMP_PREFIX"); val != "" {
		config.Defaults.TempPrefix = val
	}
	if val := os.Getenv("TEMPOBJ_FILE_MODE"); val != "" {
		config.Defaults.FileMode = val
	}

	if val := os.Getenv("TEMPOBJ_LOG_LEVEL"); val != "" {
		config.Logging.Level = val
	}
	if val := os.Getenv("TEMPOBJ_LOG_FORMAT"); val != "" {
		config.Logging.Format = val
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	// Building the registry validates every section.
	_, err := c.Registry(nil)
	return err
}

// Convert converts the YAML form into a library Config.
func (oc ObjectConfig) Convert() (tempobj.Config, error) {
	config := tempobj.Config{
		BlockSize:  oc.BlockSize,
		TempDir:    oc.TempDir,
		TempPrefix: oc.TempPrefix,
	}

	if oc.FileMode != "" {
		mode, err := strconv.ParseUint(oc.FileMode, 8, 32)
		if err != nil {
			return tempobj.Config{}, fmt.Errorf("%w: file mode %q is not octal", tempobj.ErrInvalidConfig, oc.FileMode)
		}
		config.FileMode = os.FileMode(mode)
	}

	return config, nil
}

// Registry builds a namespace registry: the defaults section becomes the
// registry defaults and every namespace is defined on top of it.
func (c *Config) Registry(logger tempobj.Logger) (*tempobj.Registry, error) {
	defaults, err := c.Defaults.Convert()
	if err != nil {
		return nil, fmt.Errorf("defaults: %w", err)
	}

	registry, err := tempobj.NewRegistry(tempobj.WithConfig(defaults), tempobj.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("defaults: %w", err)
	}

	names := make([]string, 0, len(c.Namespaces))
	for name := range c.Namespaces {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		nsConfig, err := c.Namespaces[name].Convert()
		if err != nil {
			return nil, fmt.Errorf("namespace %s: %w", name, err)
		}
		if _, err := registry.Define(name, nsConfig); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// NewLogger builds a zap logger from the logging section. Logs go to
// stderr so command output on stdout stays machine-readable.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	var zc zap.Config
	if strings.EqualFold(c.Logging.Format, "json") {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}

// ToYAML renders the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Resolve returns the effective settings of a namespace. Unknown
// namespaces resolve to the defaults.
func (c *Config) Resolve(namespace string) (tempobj.Config, error) {
	registry, err := c.Registry(nil)
	if err != nil {
		return tempobj.Config{}, err
	}
	return registry.Namespace(namespace).Config(), nil
}
