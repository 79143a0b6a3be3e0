// Copyright 2026 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config assembles the writer configuration from CLI flags, the
// process environment, and an optional TOML sink file.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
	lwerrors "github.com/pingcap/log-writer/pkg/errors"
)

// Environment variables required by the default supabase sink.
const (
	EnvSupabaseURL            = "SUPABASE_URL"
	EnvSupabaseServiceRoleKey = "SUPABASE_SERVICE_ROLE_KEY"
)

// Supported sink kinds.
const (
	SinkSupabase = "supabase"
	SinkPostgres = "postgres"
	SinkMySQL    = "mysql"
)

// SinkConfig selects the insertion backend. Kind, DSN and Table may come
// from the TOML file; the supabase connection settings only come from the
// environment.
type SinkConfig struct {
	Kind  string `toml:"kind"`
	DSN   string `toml:"dsn"`
	Table string `toml:"table"`

	SupabaseURL    string `toml:"-"`
	ServiceRoleKey string `toml:"-"`
}

// Config is the full writer configuration.
type Config struct {
	Script   string
	Count    int
	Interval time.Duration
	Follow   bool
	Sink     SinkConfig
}

// Load builds the configuration from the CLI surface. intervalSeconds is
// the raw --interval value; fractional seconds are allowed. configPath,
// when non-empty, points at a TOML sink file overriding the defaults.
func Load(script string, count int, intervalSeconds float64, follow bool, table, configPath string) (*Config, error) {
	cfg := &Config{
		Script:   script,
		Count:    count,
		Interval: time.Duration(intervalSeconds * float64(time.Second)),
		Follow:   follow,
		Sink: SinkConfig{
			Kind:  SinkSupabase,
			Table: table,
		},
	}

	if configPath != "" {
		if err := cfg.Sink.loadFile(configPath); err != nil {
			return nil, err
		}
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.Sink.Kind == SinkSupabase {
		if err := cfg.Sink.loadEnv(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (s *SinkConfig) loadFile(path string) error {
	if filepath.Ext(path) != ".toml" {
		return lwerrors.ErrLoadConfig.GenWithStackByArgs(
			"sink config must be a .toml file: " + path)
	}

	meta, err := toml.DecodeFile(path, s)
	if err != nil {
		return lwerrors.WrapError(lwerrors.ErrLoadConfig, err, path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return lwerrors.ErrLoadConfig.GenWithStackByArgs(
			errors.Errorf("unknown keys in sink config: %v", undecoded).Error())
	}
	return nil
}

func (s *SinkConfig) loadEnv() error {
	url := strings.TrimSpace(os.Getenv(EnvSupabaseURL))
	if url == "" {
		return lwerrors.ErrMissingConfig.GenWithStackByArgs(EnvSupabaseURL)
	}
	key := strings.TrimSpace(os.Getenv(EnvSupabaseServiceRoleKey))
	if key == "" {
		return lwerrors.ErrMissingConfig.GenWithStackByArgs(EnvSupabaseServiceRoleKey)
	}

	s.SupabaseURL = url
	s.ServiceRoleKey = key
	return nil
}

func (c *Config) normalize() {
	c.Script = strings.TrimSpace(c.Script)
	c.Sink.Kind = strings.ToLower(strings.TrimSpace(c.Sink.Kind))
	c.Sink.Table = strings.TrimSpace(c.Sink.Table)
	c.Sink.DSN = strings.TrimSpace(c.Sink.DSN)
}

func (c *Config) validate() error {
	if c.Script == "" {
		return lwerrors.ErrEmptyScriptName.GenWithStackByArgs()
	}
	if c.Count < 0 {
		return lwerrors.ErrInvalidConfig.GenWithStackByArgs("count must not be negative")
	}
	if c.Interval < 0 {
		return lwerrors.ErrInvalidConfig.GenWithStackByArgs("interval must not be negative")
	}
	if c.Sink.Table == "" {
		return lwerrors.ErrInvalidConfig.GenWithStackByArgs("table must not be empty")
	}

	switch c.Sink.Kind {
	case SinkSupabase:
	case SinkPostgres, SinkMySQL:
		if c.Sink.DSN == "" {
			return lwerrors.ErrInvalidConfig.GenWithStackByArgs(
				"sink kind " + c.Sink.Kind + " requires a dsn")
		}
	default:
		return lwerrors.ErrUnknownSink.GenWithStackByArgs(c.Sink.Kind)
	}
	return nil
}
