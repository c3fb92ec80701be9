// Package config loads CLI configuration: an optional .glintrc.toml file
// overlaid with environment variables, the way stackedboxes-romualdo's
// test-suite config loads a .toml file and mna-nenuphar's go.mod carries
// caarlos0/env for struct-tag-driven environment overlays.
package config

import (
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/pelletier/go-toml/v2"
)

// Config controls CLI-level behavior that sits outside the CORE contract:
// none of it changes compiler or VM semantics.
type Config struct {
	// HistoryFile is where the REPL's readline history is persisted.
	HistoryFile string `toml:"history_file" env:"GLINT_HISTORY_FILE"`
	// Disassemble, when true, prints a chunk's disassembly right after it
	// compiles, before handing it to the VM.
	Disassemble bool `toml:"disassemble" env:"GLINT_DISASSEMBLE"`
	// CapturePrints routes the REPL's VM prints into an in-memory buffer
	// instead of stdout; useful for embedding glint or for the test CLI.
	CapturePrints bool `toml:"capture_prints" env:"GLINT_CAPTURE_PRINTS"`
}

// Default returns the configuration used when no .glintrc.toml is present
// and no environment overrides are set.
func Default() Config {
	return Config{HistoryFile: ".glint_history"}
}

// Load reads path (if it exists) as TOML into Default(), then applies any
// GLINT_* environment variable overrides on top. A missing file is not an
// error: it just means every field keeps its default.
func Load(path string) (Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
