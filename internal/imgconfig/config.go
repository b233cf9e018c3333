// Package imgconfig holds the small set of engine-level tunables that don't
// belong in the archive format itself: how cautious to be about free disk
// space before a big write, how large pack's streaming copy buffer is, and
// which version cmd/imgtool defaults to for a bare "create".
package imgconfig

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config controls engine behavior that isn't dictated by the on-disk
// format. Zero value is not valid on its own; use Default() or Load().
type Config struct {
	// PackCopyBufferBytes sizes the streaming copy buffer Pack uses when
	// relocating a payload that isn't already at its target offset.
	PackCopyBufferBytes int `json:"pack_copy_buffer_bytes"`

	// PreflightDiskCheck, when true, makes ImportFile and Pack check
	// available free space before writing and fail fast with a KindIO
	// error instead of discovering ENOSPC mid-copy.
	PreflightDiskCheck bool `json:"preflight_disk_check"`

	// DefaultCreateVersion is the archive version cmd/imgtool's "create"
	// subcommand uses when the caller doesn't name one explicitly.
	// One of "ver1" or "ver2".
	DefaultCreateVersion string `json:"default_create_version"`
}

// Default returns the engine's built-in tunables.
func Default() *Config {
	return &Config{
		PackCopyBufferBytes:  1 << 20, // 1 MiB, per spec.md §4.5's recommendation
		PreflightDiskCheck:   true,
		DefaultCreateVersion: "ver2",
	}
}

// Load reads a JSON config file, applying Default() for any field the file
// omits.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.DefaultCreateVersion != "ver1" && cfg.DefaultCreateVersion != "ver2" {
		return nil, fmt.Errorf("config %s: default_create_version must be \"ver1\" or \"ver2\"", path)
	}
	return cfg, nil
}
