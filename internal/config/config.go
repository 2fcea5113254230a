package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the root configuration for both the jobs API and the tool server.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

type ServerConfig struct {
	Name string     `mapstructure:"name"`
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

// BackendConfig selects which jobs backend the tool dispatch layer targets.
// An empty BaseURL means the dispatcher runs against the in-process store;
// otherwise it issues REST calls to the given jobs API.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SchedulerConfig holds the simulated backend latency per lifecycle step.
// Delays are fixed and independent of the requested sample count.
type SchedulerConfig struct {
	StartDelay    time.Duration `mapstructure:"start_delay"`
	MidpointDelay time.Duration `mapstructure:"midpoint_delay"`
	CompleteDelay time.Duration `mapstructure:"complete_delay"`
}

// Load reads configuration from the given file (or ./configs/config.yaml when
// empty) with environment variable overrides, e.g. BACKEND_BASE_URL.
func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.name", "synth-data-designer")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("backend.base_url", "")
	v.SetDefault("backend.timeout", "30s")
	v.SetDefault("scheduler.start_delay", "2s")
	v.SetDefault("scheduler.midpoint_delay", "4s")
	v.SetDefault("scheduler.complete_delay", "6s")

	// Read config file (optional, env vars and defaults cover everything)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
