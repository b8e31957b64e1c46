package kaleido

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

type Emit string

const (
	EmitNone Emit = "none"
	EmitAST  Emit = "ast"
	EmitIR   Emit = "ir"
)

type Config struct {
	AnonPrefix string `toml:"anon_prefix"`
	Emit       Emit   `toml:"emit"`
	Verbose    bool   `toml:"verbose"`
}

func DefaultConfig() *Config {
	return &Config{
		AnonPrefix: DefaultAnonPrefix,
		Emit:       EmitNone,
	}
}

// LoadConfig reads a TOML file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Emit {
	case EmitNone, EmitAST, EmitIR:
	default:
		return fmt.Errorf("invalid emit mode %q (want none, ast or ir)", c.Emit)
	}

	if c.AnonPrefix == "" {
		return fmt.Errorf("anon_prefix must not be empty")
	}

	return nil
}
