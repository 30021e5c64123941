// Package config loads typed configuration structs from environment
// variables. Services define their own struct with `env` tags and call Load;
// invariants beyond parsing live in the service's validate method.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into cfg using `env` and `envDefault`
// struct tags. cfg must be a pointer to a struct.
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
