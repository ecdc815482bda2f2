// Package config loads thresh settings from an ini file.
//
// A config file holds one section per profile:
//
//	[default]
//	log_level = warn
//
//	[ci]
//	quiet = true
//	seed = 42
package config

import (
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"

	"github.com/vegasq/thresh/internal/logging"
)

const DefaultConfigFile = "~/.thresh/config"
const DefaultConfigProfile = "default"

// Config holds the settings a profile can carry
type Config struct {
	Quiet    bool
	LogLevel logging.LogLevel
	// Seed makes random expressions reproducible; nil means unseeded
	Seed *uint64
}

// Default returns the settings used when no file provides any
func Default() *Config {
	return &Config{LogLevel: logging.LevelWarn}
}

// Expand the given file path if it start with a ~/
func expandUser(fname string) (string, error) {
	if strings.HasPrefix(fname, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return path.Join(home, fname[2:]), nil
	}
	return fname, nil
}

// Load the named stanza from the source.
// Source can be either filename or config bytes
func loadStanza(source interface{}, profile string) (*ini.Section, error) {
	info, err := ini.Load(source)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading config")
	}
	if !info.HasSection(profile) {
		return nil, errors.Errorf("config profile '%s' not found", profile)
	}
	return info.Section(profile), nil
}

func parseConfigStanza(stanza *ini.Section, cfg *Config) error {
	if stanza.HasKey("quiet") {
		quiet, err := stanza.Key("quiet").Bool()
		if err != nil {
			return errors.Wrapf(err, "invalid quiet value %q", stanza.Key("quiet").String())
		}
		cfg.Quiet = quiet
	}
	if v := stanza.Key("log_level").String(); v != "" {
		cfg.LogLevel = logging.ParseLevel(v)
	}
	if stanza.HasKey("seed") {
		seed, err := stanza.Key("seed").Uint64()
		if err != nil {
			return errors.Wrapf(err, "invalid seed value %q", stanza.Key("seed").String())
		}
		cfg.Seed = &seed
	}
	return nil
}

// LoadConfigString applies the given profile of the provided config source
func LoadConfigString(source, profile string, cfg *Config) error {
	stanza, err := loadStanza([]byte(source), profile)
	if err != nil {
		return err
	}
	return parseConfigStanza(stanza, cfg)
}

// LoadConfigFile applies the given profile of the named config file
func LoadConfigFile(fname, profile string, cfg *Config) error {
	fname, err := expandUser(fname)
	if err != nil {
		return err
	}
	stanza, err := loadStanza(fname, profile)
	if err != nil {
		return err
	}
	return parseConfigStanza(stanza, cfg)
}

// Load resolves the settings for one invocation. A missing default file is
// not an error; an explicit file or a non-default profile must exist.
func Load(fname, profile string) (*Config, error) {
	cfg := Default()
	if fname == "" {
		fname = DefaultConfigFile
	}
	if profile == "" {
		profile = DefaultConfigProfile
	}

	expanded, err := expandUser(fname)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(expanded); os.IsNotExist(err) {
		if fname == DefaultConfigFile && profile == DefaultConfigProfile {
			return cfg, nil
		}
		return nil, errors.Errorf("config file '%s' not found", fname)
	}

	if err := LoadConfigFile(expanded, profile, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
