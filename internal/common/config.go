package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string            `toml:"environment"` // "development" or "production"
	Server      ServerConfig      `toml:"server"`
	Storage     StorageConfig     `toml:"storage"`
	Logging     LoggingConfig     `toml:"logging"`
	Generation  GenerationConfig  `toml:"generation"`
	Templates   TemplatesConfig   `toml:"templates"`
	Auth        AuthConfig        `toml:"auth"`
	Maintenance MaintenanceConfig `toml:"maintenance"`
	RateLimit   RateLimitConfig   `toml:"ratelimit"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Format     string   `toml:"format"`      // "json" or "text"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

// GenerationConfig tunes the document generation engine
type GenerationConfig struct {
	TickInterval time.Duration `toml:"tick_interval"` // Progress tick period (default: 2s)
	// Probability that a freshly created job starts processing immediately
	// instead of sitting in pending (0.0-1.0, default: 0.7)
	StartProcessingProbability float64 `toml:"start_processing_probability"`
	// Simulated per-creation latency window; both zero disables the delay
	CreationDelayMin time.Duration `toml:"creation_delay_min"` // default: 500ms
	CreationDelayMax time.Duration `toml:"creation_delay_max"` // default: 1.5s
}

// TemplatesConfig controls the template catalog service
type TemplatesConfig struct {
	SeedDir      string        `toml:"seed_dir"`      // Directory containing template seed files (TOML)
	SeedDefaults bool          `toml:"seed_defaults"` // Load compiled-in demo templates when the catalog is empty
	UploadDelay  time.Duration `toml:"upload_delay"`  // Simulated upload processing latency (default: 1.5s)
	ListDelay    time.Duration `toml:"list_delay"`    // Simulated catalog fetch latency (default: 500ms)
}

// AuthConfig holds the demo credential store and login simulation
type AuthConfig struct {
	Email      string        `toml:"email"`       // Accepted demo email (default: user@example.com)
	Password   string        `toml:"password"`    // Accepted demo password
	LoginDelay time.Duration `toml:"login_delay"` // Simulated login latency (default: 800ms)
}

// MaintenanceConfig controls the scheduled storage maintenance sweep
type MaintenanceConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // Cron schedule format
}

// RateLimitConfig controls the HTTP rate-limit middleware
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings should be exposed in docugen.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05",
		},
		Generation: GenerationConfig{
			TickInterval:               2 * time.Second,
			StartProcessingProbability: 0.7,
			CreationDelayMin:           500 * time.Millisecond,
			CreationDelayMax:           1500 * time.Millisecond,
		},
		Templates: TemplatesConfig{
			SeedDir:      "./templates",
			SeedDefaults: true,
			UploadDelay:  1500 * time.Millisecond,
			ListDelay:    500 * time.Millisecond,
		},
		Auth: AuthConfig{
			Email:      "user@example.com",
			Password:   "password",
			LoginDelay: 800 * time.Millisecond,
		},
		Maintenance: MaintenanceConfig{
			Enabled:  true,
			Schedule: "0 */30 * * * *", // Every 30 minutes (cron format with seconds)
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 50,
			Burst:             100,
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env -> CLI
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files.
// Later files override earlier files; env vars override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("DOCUGEN_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("DOCUGEN_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("DOCUGEN_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Storage configuration
	if badgerPath := os.Getenv("DOCUGEN_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Logging configuration
	if level := os.Getenv("DOCUGEN_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("DOCUGEN_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("DOCUGEN_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Generation configuration
	if tick := os.Getenv("DOCUGEN_GENERATION_TICK_INTERVAL"); tick != "" {
		if d, err := time.ParseDuration(tick); err == nil {
			config.Generation.TickInterval = d
		}
	}
	if prob := os.Getenv("DOCUGEN_GENERATION_START_PROBABILITY"); prob != "" {
		if p, err := strconv.ParseFloat(prob, 64); err == nil && p >= 0 && p <= 1 {
			config.Generation.StartProcessingProbability = p
		}
	}
	if min := os.Getenv("DOCUGEN_GENERATION_CREATION_DELAY_MIN"); min != "" {
		if d, err := time.ParseDuration(min); err == nil {
			config.Generation.CreationDelayMin = d
		}
	}
	if max := os.Getenv("DOCUGEN_GENERATION_CREATION_DELAY_MAX"); max != "" {
		if d, err := time.ParseDuration(max); err == nil {
			config.Generation.CreationDelayMax = d
		}
	}

	// Templates configuration
	if seedDir := os.Getenv("DOCUGEN_TEMPLATES_SEED_DIR"); seedDir != "" {
		config.Templates.SeedDir = seedDir
	}

	// Auth configuration
	if email := os.Getenv("DOCUGEN_AUTH_EMAIL"); email != "" {
		config.Auth.Email = email
	}
	if password := os.Getenv("DOCUGEN_AUTH_PASSWORD"); password != "" {
		config.Auth.Password = password
	}

	// Maintenance configuration
	if enabled := os.Getenv("DOCUGEN_MAINTENANCE_ENABLED"); enabled != "" {
		if e, err := strconv.ParseBool(enabled); err == nil {
			config.Maintenance.Enabled = e
		}
	}
	if schedule := os.Getenv("DOCUGEN_MAINTENANCE_SCHEDULE"); schedule != "" {
		config.Maintenance.Schedule = schedule
	}

	// Rate limit configuration
	if rps := os.Getenv("DOCUGEN_RATELIMIT_RPS"); rps != "" {
		if r, err := strconv.ParseFloat(rps, 64); err == nil && r > 0 {
			config.RateLimit.RequestsPerSecond = r
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
// Command-line flags have highest priority.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks configuration invariants before startup
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Generation.TickInterval <= 0 {
		return fmt.Errorf("generation tick interval must be positive, got %s", c.Generation.TickInterval)
	}
	if p := c.Generation.StartProcessingProbability; p < 0 || p > 1 {
		return fmt.Errorf("start processing probability must be in [0,1], got %v", p)
	}
	if c.Generation.CreationDelayMin > c.Generation.CreationDelayMax {
		return fmt.Errorf("creation delay min %s exceeds max %s",
			c.Generation.CreationDelayMin, c.Generation.CreationDelayMax)
	}
	return nil
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
