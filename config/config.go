// Package config loads the gossip node's runtime configuration from a
// YAML file, following the same load-then-apply-defaults-then-validate
// shape used elsewhere in this codebase's config loaders.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the node's own advertised gossip endpoint.
type ServerConfig struct {
	NodeID   string `yaml:"node_id"`
	Host     string `yaml:"host"`
	BindPort int    `yaml:"bind_port"`
}

// GossipConfig configures the memberlist-backed transport.
type GossipConfig struct {
	SeedNodes       []string      `yaml:"seed_nodes"`
	GossipInterval  time.Duration `yaml:"gossip_interval"`
	ProbeTimeout    time.Duration `yaml:"probe_timeout"`
	ProbeInterval   time.Duration `yaml:"probe_interval"`
	PushPullInterval time.Duration `yaml:"push_pull_interval"`
}

// TableConfig configures the wallclock window applied to incoming gossip
// values and the background loop that trims the purged queue.
type TableConfig struct {
	InsertTimeoutMs uint64        `yaml:"insert_timeout_ms"`
	PurgeTrimAfter  time.Duration `yaml:"purge_trim_after"`
	PurgeInterval   time.Duration `yaml:"purge_interval"`
}

// MetricsConfig configures the Prometheus HTTP exporter.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// LoggingConfig holds the file's logging section. cmd/crdsnode does not
// read it: the logger is selected by the --dev-log flag alone.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Config is the complete node configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Gossip  GossipConfig  `yaml:"gossip"`
	Table   TableConfig   `yaml:"table"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

// Defaults holds the configuration applied to any field left zero-valued
// after loading a file, mirroring this codebase's practice of exposing a
// package-level Defaults value for its protocol configuration.
var Defaults = Config{
	Server: ServerConfig{
		Host:     "0.0.0.0",
		BindPort: 7946,
	},
	Gossip: GossipConfig{
		GossipInterval:   200 * time.Millisecond,
		ProbeTimeout:     500 * time.Millisecond,
		ProbeInterval:    1 * time.Second,
		PushPullInterval: 30 * time.Second,
	},
	Table: TableConfig{
		InsertTimeoutMs: 15_000,
		PurgeTrimAfter:  15 * time.Minute,
		PurgeInterval:   5 * time.Minute,
	},
	Metrics: MetricsConfig{
		Enabled: true,
		Host:    "0.0.0.0",
		Port:    9090,
		Path:    "/metrics",
	},
	Logging: LoggingConfig{
		Level: "info",
	},
}

// Load reads and parses the YAML file at path, applies Defaults to any
// zero-valued field, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Defaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults restores the default for any covered field that is zero
// after parsing. Load parses on top of a copy of Defaults, so a field the
// file omits already holds its default; a field is zero here only when
// the file sets it to zero or empty explicitly.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = Defaults.Server.Host
	}
	if cfg.Server.BindPort == 0 {
		cfg.Server.BindPort = Defaults.Server.BindPort
	}
	if cfg.Gossip.GossipInterval == 0 {
		cfg.Gossip.GossipInterval = Defaults.Gossip.GossipInterval
	}
	if cfg.Gossip.ProbeTimeout == 0 {
		cfg.Gossip.ProbeTimeout = Defaults.Gossip.ProbeTimeout
	}
	if cfg.Gossip.ProbeInterval == 0 {
		cfg.Gossip.ProbeInterval = Defaults.Gossip.ProbeInterval
	}
	if cfg.Gossip.PushPullInterval == 0 {
		cfg.Gossip.PushPullInterval = Defaults.Gossip.PushPullInterval
	}
	if cfg.Table.InsertTimeoutMs == 0 {
		cfg.Table.InsertTimeoutMs = Defaults.Table.InsertTimeoutMs
	}
	if cfg.Table.PurgeTrimAfter == 0 {
		cfg.Table.PurgeTrimAfter = Defaults.Table.PurgeTrimAfter
	}
	if cfg.Table.PurgeInterval == 0 {
		cfg.Table.PurgeInterval = Defaults.Table.PurgeInterval
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = Defaults.Metrics.Port
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = Defaults.Metrics.Path
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = Defaults.Logging.Level
	}
}

// Validate rejects configurations that cannot be started.
func (c *Config) Validate() error {
	if c.Server.NodeID == "" {
		return fmt.Errorf("server.node_id is required")
	}
	if c.Server.BindPort < 1 || c.Server.BindPort > 65535 {
		return fmt.Errorf("server.bind_port must be between 1 and 65535")
	}
	if c.Metrics.Enabled && (c.Metrics.Port < 1 || c.Metrics.Port > 65535) {
		return fmt.Errorf("metrics.port must be between 1 and 65535")
	}
	return nil
}
