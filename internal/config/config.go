// Package config handles loading and validating the voxsplit configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nadzzz/voxsplit/internal/lang"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the root configuration for voxsplit.
type Config struct {
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	TTS      TTSConfig      `mapstructure:"tts"`
	Server   ServerConfig   `mapstructure:"server"`
	Output   OutputConfig   `mapstructure:"output"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PipelineConfig tunes segmentation, normalization and chunking.
type PipelineConfig struct {
	MaxChunkLength     int               `mapstructure:"max_chunk_length"`
	DefaultLanguage    string            `mapstructure:"default_language"`
	SupportedLanguages []string          `mapstructure:"supported_languages"`
	ShortTokenLength   int               `mapstructure:"short_token_length"`
	Workers            int               `mapstructure:"workers"` // 0 means GOMAXPROCS
	Exceptions         []string          `mapstructure:"exceptions"`
	Expansions         map[string]string `mapstructure:"expansions"`
}

// Languages parses the supported language list and the default language.
func (p PipelineConfig) Languages() (lang.Set, lang.Code, error) {
	supported, err := lang.ParseSet(p.SupportedLanguages)
	if err != nil {
		return lang.Set{}, "", fmt.Errorf("%w: pipeline.supported_languages: %w", ErrInvalid, err)
	}
	def, err := lang.ParseCode(p.DefaultLanguage)
	if err != nil {
		return lang.Set{}, "", fmt.Errorf("%w: pipeline.default_language: %w", ErrInvalid, err)
	}
	return supported, def, nil
}

// TTSConfig selects and configures the text-to-speech backend.
type TTSConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	Backend string      `mapstructure:"backend"` // "piper"
	Piper   PiperConfig `mapstructure:"piper"`
}

// PiperConfig holds Piper TTS settings (Wyoming protocol).
//
// For a single Piper instance that serves all languages, set Endpoint.
// For per-language instances, set Endpoints which maps ISO-639-1 codes to
// individual Wyoming TCP endpoints; Endpoint is then the fallback.
type PiperConfig struct {
	Endpoint       string            `mapstructure:"endpoint"`
	Endpoints      map[string]string `mapstructure:"endpoints"`
	Voices         map[string]string `mapstructure:"voices"`
	VoiceCacheSize int               `mapstructure:"voice_cache_size"`
}

// ServerConfig holds the service-mode settings.
type ServerConfig struct {
	HealthPort int        `mapstructure:"health_port"`
	HTTP       HTTPConfig `mapstructure:"http"`
	GRPC       GRPCConfig `mapstructure:"grpc"`
}

// GRPCConfig configures the gRPC transport.
type GRPCConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// OutputConfig controls where the speak command writes audio.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// TracingConfig controls OpenTelemetry export.
type TracingConfig struct {
	Exporter     string  `mapstructure:"exporter"` // none, stdout
	ServiceName  string  `mapstructure:"service_name"`
	SamplingRate float64 `mapstructure:"sampling_rate"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Options control how Load finds its inputs.
type Options struct {
	// File is an explicit config file; empty means the standard search order.
	File string
	// EnvFile is a dotenv file loaded before reading the environment.
	// Empty means ".env" when present.
	EnvFile string
	// Flags are bound over every other source when set on the command line.
	Flags *pflag.FlagSet
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"max-chunk-length": "pipeline.max_chunk_length",
	"default-language": "pipeline.default_language",
	"languages":        "pipeline.supported_languages",
	"workers":          "pipeline.workers",
	"piper":            "tts.piper.endpoint",
	"output":           "output.dir",
	"log-level":        "logging.level",
	"log-format":       "logging.format",
	"http-port":        "server.http.port",
	"grpc-port":        "server.grpc.port",
	"health-port":      "server.health_port",
	"trace":            "tracing.exporter",
}

// Load reads the configuration from flags, environment variables, the config
// file and defaults, in that order of precedence. If opts.File is empty the
// standard search order applies: ./voxsplit.yaml, ./configs/voxsplit.yaml,
// /etc/voxsplit/voxsplit.yaml.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("voxsplit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/voxsplit")
	}

	// Environment variables: VOXSPLIT_PIPELINE_MAX_CHUNK_LENGTH, VOXSPLIT_TTS_PIPER_ENDPOINT, etc.
	v.SetEnvPrefix("VOXSPLIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	// Read config file (optional; env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Debug("no config file found, using defaults and environment variables")
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Endpoints may reference the environment, e.g. "${PIPER_HOST}".
	cfg.TTS.Piper.Endpoint = resolveEnvRef(cfg.TTS.Piper.Endpoint)
	for code, ep := range cfg.TTS.Piper.Endpoints {
		cfg.TTS.Piper.Endpoints[code] = resolveEnvRef(ep)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pipeline.max_chunk_length", 1000)
	v.SetDefault("pipeline.default_language", "uk")
	v.SetDefault("pipeline.supported_languages", []string{"en", "uk", "ru", "fr", "de", "es"})
	v.SetDefault("pipeline.short_token_length", 10)
	v.SetDefault("pipeline.workers", 0)
	v.SetDefault("tts.enabled", true)
	v.SetDefault("tts.backend", "piper")
	v.SetDefault("tts.piper.endpoint", "localhost:10200")
	v.SetDefault("tts.piper.voice_cache_size", 16)
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("server.http.enabled", true)
	v.SetDefault("server.http.port", 8080)
	v.SetDefault("server.grpc.enabled", true)
	v.SetDefault("server.grpc.port", 50051)
	v.SetDefault("output.dir", "voxsplit-out")
	v.SetDefault("tracing.exporter", "none")
	v.SetDefault("tracing.service_name", "voxsplit")
	v.SetDefault("tracing.sampling_rate", 1.0)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// loadEnvFile loads a dotenv file without overriding variables already set.
// A missing default ".env" is not an error; a missing explicit file is.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	supported, def, err := c.Pipeline.Languages()
	if err != nil {
		return err
	}
	if supported.Len() == 0 {
		return fmt.Errorf("%w: pipeline.supported_languages is empty", ErrInvalid)
	}
	for _, c := range lang.Builtin {
		if !supported.Contains(c) {
			return fmt.Errorf("%w: pipeline.supported_languages %v must include %q", ErrInvalid, supported.Codes(), c)
		}
	}
	if !supported.Contains(def) {
		return fmt.Errorf("%w: default language %q is not in supported languages %v", ErrInvalid, def, supported.Codes())
	}
	if c.Pipeline.MaxChunkLength <= 0 {
		return fmt.Errorf("%w: pipeline.max_chunk_length must be positive, got %d", ErrInvalid, c.Pipeline.MaxChunkLength)
	}
	if c.Pipeline.ShortTokenLength <= 0 {
		return fmt.Errorf("%w: pipeline.short_token_length must be positive, got %d", ErrInvalid, c.Pipeline.ShortTokenLength)
	}
	if c.Pipeline.Workers < 0 {
		return fmt.Errorf("%w: pipeline.workers must not be negative", ErrInvalid)
	}
	if c.TTS.Enabled && c.TTS.Backend != "piper" {
		return fmt.Errorf("%w: unknown tts backend %q", ErrInvalid, c.TTS.Backend)
	}
	switch c.Tracing.Exporter {
	case "", "none", "stdout":
	default:
		return fmt.Errorf("%w: unknown tracing exporter %q", ErrInvalid, c.Tracing.Exporter)
	}
	return nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		envKey := val[2 : len(val)-1]
		if envVal := os.Getenv(envKey); envVal != "" {
			return envVal
		}
	}
	return val
}
