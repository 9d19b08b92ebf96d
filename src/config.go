package main

import (
	"fmt"
	"github.com/caarlos0/env/v11"
	"time"
)

//EnvOptions represents the command line level configuration
//the defaults are read from the environment and overridden by the flags
type EnvOptions struct {
	Width       int           `env:"BITLIFE_WIDTH" envDefault:"64"`
	Height      int           `env:"BITLIFE_HEIGHT" envDefault:"64"`
	Interval    time.Duration `env:"BITLIFE_INTERVAL" envDefault:"100ms"`
	MaxSteps    int           `env:"BITLIFE_MAX_STEPS" envDefault:"1000"`
	Seed        int64         `env:"BITLIFE_SEED"`
	Pattern     string        `env:"BITLIFE_PATTERN" envDefault:"glider"` //empty means an empty field
	Interactive bool          `env:"BITLIFE_INTERACTIVE"`
	RandomData  bool          `env:"BITLIFE_RANDOM"`
}

//parseEnv loads the defaults from environment variables
func parseEnv() (*EnvOptions, error) {
	eo := &EnvOptions{}
	if err := env.Parse(eo); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return eo, nil
}
