// Package config loads the server's YAML configuration, applying defaults
// after unmarshal the way FUZOJ's cmd/gateway config loader does.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultGRPCAddr       = "0.0.0.0:50051"
	defaultMetricsAddr    = "0.0.0.0:9090"
	defaultAdmissionLimit = 10
	defaultGlobalRPS      = 50.0
	defaultPerPeerRPS     = 5.0
	defaultPerPeerBurst   = 10
	defaultShutdownWait   = 10 * time.Second
	defaultSandboxHelper  = "dcodex-sandbox-init"
)

// ServerConfig holds the gRPC listener settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// MetricsConfig holds the ambient HTTP listener settings for
// Prometheus scraping and liveness checks.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// AdmissionConfig bounds concurrent sandboxed jobs.
type AdmissionConfig struct {
	MaxConcurrent int64 `yaml:"maxConcurrent"`
}

// RateLimitConfig holds global and per-peer request-rate limits, enforced
// in front of (not instead of) the admission bound.
type RateLimitConfig struct {
	GlobalRPS  float64 `yaml:"globalRPS"`
	PerPeerRPS float64 `yaml:"perPeerRPS"`
	PerPeerBurst int   `yaml:"perPeerBurst"`
}

// SandboxConfig points at the re-exec helper binary applying rlimits.
type SandboxConfig struct {
	HelperPath string `yaml:"helperPath"`
}

// Config is the top-level server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Admission AdmissionConfig `yaml:"admission"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Sandbox   SandboxConfig   `yaml:"sandbox"`
}

// Load reads and parses the YAML file at path, filling in defaults for any
// zero-valued field. A missing file is not an error: the process still
// runs with every default applied, matching the original server, which
// never required a config file to start.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return withDefaults(&cfg), nil
			}
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	return withDefaults(&cfg), nil
}

func withDefaults(cfg *Config) *Config {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultGRPCAddr
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = defaultShutdownWait
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = defaultMetricsAddr
	}
	if cfg.Admission.MaxConcurrent == 0 {
		cfg.Admission.MaxConcurrent = defaultAdmissionLimit
	}
	if cfg.RateLimit.GlobalRPS == 0 {
		cfg.RateLimit.GlobalRPS = defaultGlobalRPS
	}
	if cfg.RateLimit.PerPeerRPS == 0 {
		cfg.RateLimit.PerPeerRPS = defaultPerPeerRPS
	}
	if cfg.RateLimit.PerPeerBurst == 0 {
		cfg.RateLimit.PerPeerBurst = defaultPerPeerBurst
	}
	if cfg.Sandbox.HelperPath == "" {
		cfg.Sandbox.HelperPath = defaultSandboxHelper
	}
	return cfg
}
