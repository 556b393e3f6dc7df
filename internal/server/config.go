package server

import (
	"fmt"
	"os"

	"github.com/ironsheep/shrink-png/internal/shrink"
)

// Environment variables read by LoadConfig.
const (
	EnvLogLevel    = "SHRINKPNG_LOG_LEVEL"
	EnvCompression = "SHRINKPNG_COMPRESSION"
)

// Config holds server settings.
type Config struct {
	// Debug enables per-request logging to stderr.
	Debug bool

	// Compression is the zlib effort used when writing shrunk images.
	Compression shrink.CompressionLevel
}

// LoadConfig builds a Config from the environment.
//
//   - SHRINKPNG_LOG_LEVEL=debug enables debug logging
//   - SHRINKPNG_COMPRESSION=default|none|speed|best selects the encoder level
func LoadConfig() (Config, error) {
	level, err := shrink.ParseCompressionLevel(os.Getenv(EnvCompression))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", EnvCompression, err)
	}
	return Config{
		Debug:       os.Getenv(EnvLogLevel) == "debug",
		Compression: level,
	}, nil
}
