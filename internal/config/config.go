// Package config loads process configuration from YAML plus
// SCHED_-prefixed environment overrides, grounded on
// internal/config/config.go's viper Load/DefaultConfig/Validate shape —
// trimmed to the sections this façade actually has (no P2P, consensus,
// or replication config here).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete process configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Solver  SolverConfig  `yaml:"solver" mapstructure:"solver"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig holds the HTTP façade's listen and hardening settings.
type ServerConfig struct {
	Listen          string        `yaml:"listen" mapstructure:"listen"`
	StaticDir       string        `yaml:"static_dir" mapstructure:"static_dir"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	CORSOrigins     []string      `yaml:"cors_origins" mapstructure:"cors_origins"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
}

// SolverConfig holds the default annealing tunables /solve falls back
// to when a request omits them.
type SolverConfig struct {
	InitialTemperature float64 `yaml:"initial_temperature" mapstructure:"initial_temperature"`
	CoolingRate        float64 `yaml:"cooling_rate" mapstructure:"cooling_rate"`
	MaxIterations      uint32  `yaml:"max_iterations" mapstructure:"max_iterations"`
}

// LoggingConfig holds the root logger's level and format.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Default returns the configuration used when no file or env override
// is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:         "127.0.0.1:3000",
			StaticDir:      "./web/public",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			CORSOrigins:    []string{"*"},
			RateLimitRPS:   10,
			RateLimitBurst: 20,
		},
		Solver: SolverConfig{
			InitialTemperature: 100.0,
			CoolingRate:        0.995,
			MaxIterations:      10000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configFile (if non-empty) or searches the standard
// locations, applies SCHED_-prefixed environment overrides, and
// unmarshals on top of Default().
func Load(configFile string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/schedcore")
	}

	v.SetEnvPrefix("SCHED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Unmarshal only sees keys viper already knows, so every key is bound
	// explicitly: SCHED_SERVER_LISTEN overrides server.listen, and so on.
	for _, key := range []string{
		"server.listen", "server.static_dir", "server.read_timeout", "server.write_timeout",
		"server.cors_origins", "server.rate_limit_rps", "server.rate_limit_burst",
		"solver.initial_temperature", "solver.cooling_rate", "solver.max_iterations",
		"logging.level", "logging.format",
	} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations the solver or server cannot run
// with.
func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen must not be empty")
	}
	if c.Solver.CoolingRate <= 0 || c.Solver.CoolingRate >= 1 {
		return fmt.Errorf("solver.cooling_rate must be in (0, 1), got %v", c.Solver.CoolingRate)
	}
	if c.Solver.MaxIterations == 0 {
		return fmt.Errorf("solver.max_iterations must be > 0")
	}
	return nil
}
