package tempobj

import (
	"fmt"
	"os"
	"strings"
)

// DefaultBlockSize is the chunk size used by Chunks when none is configured.
const DefaultBlockSize = 8192

// Config holds the settings a TempObject is created with.
// It is fixed at construction; changing a Config afterwards does not affect
// objects already created from it.
type Config struct {
	// BlockSize is the number of bytes per chunk yielded by Chunks and Each.
	// Default: 8192
	BlockSize int

	// TempDir is the directory owned temp files are created in.
	// Default: "" (os.TempDir())
	TempDir string

	// TempPrefix is prepended to owned temp file names.
	// Default: "tempobj-"
	TempPrefix string

	// FileMode is the permission mode WriteToFile gives destination files.
	// Default: 0644
	FileMode os.FileMode
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BlockSize:  DefaultBlockSize,
		TempDir:    "",
		TempPrefix: "tempobj-",
		FileMode:   0644,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: block size must be positive, got %d", ErrInvalidConfig, c.BlockSize)
	}
	if strings.ContainsAny(c.TempPrefix, `/\`) {
		return fmt.Errorf("%w: temp prefix %q contains a path separator", ErrInvalidConfig, c.TempPrefix)
	}
	if c.FileMode&^os.ModePerm != 0 {
		return fmt.Errorf("%w: file mode %v has non-permission bits", ErrInvalidConfig, c.FileMode)
	}
	return nil
}

// mergeConfig takes a provided config and replaces any values not set with
// the defaults. TempDir is skipped since the empty string already means the
// OS default.
func mergeConfig(c Config) Config {
	d := DefaultConfig()
	if c.BlockSize == 0 {
		c.BlockSize = d.BlockSize
	}
	if c.TempPrefix == "" {
		c.TempPrefix = d.TempPrefix
	}
	if c.FileMode == 0 {
		c.FileMode = d.FileMode
	}
	return c
}

// overlayConfig returns base with every non-zero field of over applied.
func overlayConfig(base, over Config) Config {
	if over.BlockSize != 0 {
		base.BlockSize = over.BlockSize
	}
	if over.TempDir != "" {
		base.TempDir = over.TempDir
	}
	if over.TempPrefix != "" {
		base.TempPrefix = over.TempPrefix
	}
	if over.FileMode != 0 {
		base.FileMode = over.FileMode
	}
	return base
}
