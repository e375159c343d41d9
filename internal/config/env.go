// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
)

// Environment variable names.
const (
	EnvSeed     = "VECTEROIDS_SEED"
	EnvAudio    = "VECTEROIDS_AUDIO"
	EnvLogLevel = "VECTEROIDS_LOG_LEVEL"
	EnvFPS      = "VECTEROIDS_FPS"
	EnvSSHHost  = "SSH_HOST"
	EnvSSHPort  = "SSH_PORT"
	EnvHostKey  = "SSH_HOST_KEY"
)

// Defaults.
const (
	DefaultFPS         = 60
	DefaultSSHHost     = "::"
	DefaultSSHPort     = "2222"
	DefaultHostKeyPath = "/app/keys/host_key"
)

// Config holds the settings shared by the frontends.
type Config struct {
	Seed     int64 // 0 seeds from the clock
	Audio    bool
	LogLevel log.Level
	FPS      int

	SSHHost     string
	SSHPort     string
	HostKeyPath string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Audio:       true,
		LogLevel:    log.InfoLevel,
		FPS:         DefaultFPS,
		SSHHost:     DefaultSSHHost,
		SSHPort:     DefaultSSHPort,
		HostKeyPath: DefaultHostKeyPath,
	}
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup reads the configuration through lookup. Invalid values keep
// their default; the returned Config is always usable and the error lists
// every value that was rejected.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	var errs []error

	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSeed, err))
		} else {
			cfg.Seed = seed
		}
	}

	if v, ok := lookup(EnvAudio); ok && v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvAudio, err))
		} else {
			cfg.Audio = on
		}
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		level, err := log.ParseLevel(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvLogLevel, err))
		} else {
			cfg.LogLevel = level
		}
	}

	if v, ok := lookup(EnvFPS); ok && v != "" {
		fps, err := strconv.Atoi(v)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", EnvFPS, err))
		case fps < 1 || fps > 240:
			errs = append(errs, fmt.Errorf("%s: %d out of range 1-240", EnvFPS, fps))
		default:
			cfg.FPS = fps
		}
	}

	if v, ok := lookup(EnvSSHHost); ok {
		cfg.SSHHost = v
	}
	if v, ok := lookup(EnvSSHPort); ok && v != "" {
		cfg.SSHPort = v
	}
	if v, ok := lookup(EnvHostKey); ok {
		cfg.HostKeyPath = v
	}

	return cfg, errors.Join(errs...)
}
