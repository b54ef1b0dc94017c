// Package app provides the application initialization and wiring.
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bnema/dockcmd/internal/adapters/in/http/middleware"
	"github.com/bnema/dockcmd/internal/domain"
	"github.com/bnema/dockcmd/internal/logging"
	"github.com/bnema/dockcmd/internal/usecase/analyzer"
)

// EnvPrefix prefixes environment overrides, e.g. DOCKCMD_SERVER_PORT.
const EnvPrefix = "DOCKCMD"

// Config holds the application configuration.
type Config struct {
	Server struct {
		Host            string        `mapstructure:"host"`
		Port            int           `mapstructure:"port"`
		BodyLimit       string        `mapstructure:"body_limit"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
		TrustedProxies  []string      `mapstructure:"trusted_proxies"`
	} `mapstructure:"server"`

	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		File   struct {
			Enabled    bool   `mapstructure:"enabled"`
			Path       string `mapstructure:"path"`
			MaxSize    int    `mapstructure:"max_size"`
			MaxBackups int    `mapstructure:"max_backups"`
			MaxAge     int    `mapstructure:"max_age"`
			Compress   bool   `mapstructure:"compress"`
		} `mapstructure:"file"`
	} `mapstructure:"logging"`

	Analyzer struct {
		MaxInputLength int `mapstructure:"max_input_length"`
		Defaults       struct {
			Network   string `mapstructure:"network"`
			Driver    string `mapstructure:"driver"`
			Subnet    string `mapstructure:"subnet"`
			Gateway   string `mapstructure:"gateway"`
			MTU       int    `mapstructure:"mtu"`
			EnableICC bool   `mapstructure:"enable_icc"`
		} `mapstructure:"defaults"`
	} `mapstructure:"analyzer"`

	Engine struct {
		Enabled bool   `mapstructure:"enabled"`
		Host    string `mapstructure:"host"`
	} `mapstructure:"engine"`

	API struct {
		AllowedCIDRs []string `mapstructure:"allowed_cidrs"`
		RateLimit    struct {
			Enabled       bool          `mapstructure:"enabled"`
			Backend       string        `mapstructure:"backend"`
			GlobalRPS     float64       `mapstructure:"global_rps"`
			PerIPRPS      float64       `mapstructure:"per_ip_rps"`
			Burst         int           `mapstructure:"burst"`
			IdleTTL       time.Duration `mapstructure:"idle_ttl"`
			SweepInterval time.Duration `mapstructure:"sweep_interval"`
		} `mapstructure:"rate_limit"`
	} `mapstructure:"api"`
}

// LoadConfig reads configuration from configPath, or from the standard
// search paths when configPath is empty. A missing config file is not an
// error; defaults and environment overrides still apply.
func LoadConfig(configPath string) (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)
	ConfigureViper(v, configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigureViper sets up viper with standard config file search paths.
// Config file: dockcmd.yml
// Search paths (in order): current directory, ~/.config/dockcmd, /etc/dockcmd
func ConfigureViper(v *viper.Viper, configPath string) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.SetConfigName("dockcmd")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/dockcmd")
	v.AddConfigPath("/etc/dockcmd")
}

func setDefaults(v *viper.Viper) {
	stock := domain.DefaultEngineDefaults()

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.body_limit", "64K")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.enabled", false)
	v.SetDefault("logging.file.path", "")
	v.SetDefault("logging.file.max_size", 100)
	v.SetDefault("logging.file.max_backups", 3)
	v.SetDefault("logging.file.max_age", 28)
	v.SetDefault("logging.file.compress", true)
	v.SetDefault("analyzer.max_input_length", analyzer.DefaultMaxInputLength)
	v.SetDefault("analyzer.defaults.network", stock.NetworkName)
	v.SetDefault("analyzer.defaults.driver", stock.NetworkDriver)
	v.SetDefault("analyzer.defaults.subnet", stock.Subnet)
	v.SetDefault("analyzer.defaults.gateway", stock.Gateway)
	v.SetDefault("analyzer.defaults.mtu", stock.MTU)
	v.SetDefault("analyzer.defaults.enable_icc", stock.EnableICC)
	v.SetDefault("engine.enabled", false)
	v.SetDefault("engine.host", "")
	v.SetDefault("api.allowed_cidrs", []string{})
	v.SetDefault("api.rate_limit.enabled", true)
	v.SetDefault("api.rate_limit.backend", "memory")
	v.SetDefault("api.rate_limit.global_rps", 200)
	v.SetDefault("api.rate_limit.per_ip_rps", 20)
	v.SetDefault("api.rate_limit.burst", 40)
	v.SetDefault("api.rate_limit.idle_ttl", "10m")
	v.SetDefault("api.rate_limit.sweep_interval", "1m")
}

// loadDotEnv loads path into the process environment when it exists.
// Variables already set are left alone.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration for values the application cannot run with.
func (c Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		add("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		add("logging.format must be console or json, got %q", c.Logging.Format)
	}
	if c.Logging.File.Enabled && c.Logging.File.Path == "" {
		add("logging.file.path is required when file logging is enabled")
	}
	if c.Analyzer.MaxInputLength < 0 {
		add("analyzer.max_input_length must not be negative")
	}

	d := c.Analyzer.Defaults
	if d.Network == "" || d.Driver == "" {
		add("analyzer.defaults.network and analyzer.defaults.driver must be set")
	}
	if d.MTU < 68 || d.MTU > 65535 {
		add("analyzer.defaults.mtu must be between 68 and 65535, got %d", d.MTU)
	}
	if (d.Subnet == "") != (d.Gateway == "") {
		add("analyzer.defaults.subnet and analyzer.defaults.gateway must be set together")
	} else if d.Subnet != "" {
		prefix, err := netip.ParsePrefix(d.Subnet)
		gw, gwErr := netip.ParseAddr(d.Gateway)
		switch {
		case err != nil:
			add("analyzer.defaults.subnet: %v", err)
		case gwErr != nil:
			add("analyzer.defaults.gateway: %v", gwErr)
		case !prefix.Contains(gw):
			add("analyzer.defaults.gateway %s is outside subnet %s", d.Gateway, d.Subnet)
		}
	}

	if _, invalid := middleware.ParseTrustedProxies(c.Server.TrustedProxies); len(invalid) > 0 {
		add("server.trusted_proxies has invalid entries: %s", strings.Join(invalid, ", "))
	}
	if _, invalid := middleware.ParseTrustedProxies(c.API.AllowedCIDRs); len(invalid) > 0 {
		add("api.allowed_cidrs has invalid entries: %s", strings.Join(invalid, ", "))
	}

	rl := c.API.RateLimit
	if rl.Enabled && rl.Backend != "none" {
		if rl.GlobalRPS <= 0 || rl.PerIPRPS <= 0 || rl.Burst <= 0 {
			add("api.rate_limit needs positive global_rps, per_ip_rps and burst")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// EngineDefaults converts the analyzer defaults section.
func (c Config) EngineDefaults() domain.EngineDefaults {
	d := c.Analyzer.Defaults
	return domain.EngineDefaults{
		NetworkName:   d.Network,
		NetworkDriver: d.Driver,
		Subnet:        d.Subnet,
		Gateway:       d.Gateway,
		MTU:           d.MTU,
		EnableICC:     d.EnableICC,
	}
}

// LoggingConfig converts the logging section.
func (c Config) LoggingConfig() logging.Config {
	f := c.Logging.File
	return logging.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		File: logging.FileConfig{
			Enabled:    f.Enabled,
			Path:       f.Path,
			MaxSize:    f.MaxSize,
			MaxBackups: f.MaxBackups,
			MaxAge:     f.MaxAge,
			Compress:   f.Compress,
		},
	}
}

// Address is the listen address of the HTTP server.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
