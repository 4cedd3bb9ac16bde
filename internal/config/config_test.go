package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadzzz/voxsplit/internal/lang"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Should apply defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := Load(Options{})
		require.NoError(t, err)
		assert.Equal(t, 1000, cfg.Pipeline.MaxChunkLength)
		assert.Equal(t, "uk", cfg.Pipeline.DefaultLanguage)
		assert.Equal(t, []string{"en", "uk", "ru", "fr", "de", "es"}, cfg.Pipeline.SupportedLanguages)
		assert.Equal(t, 10, cfg.Pipeline.ShortTokenLength)
		assert.Equal(t, "localhost:10200", cfg.TTS.Piper.Endpoint)
		assert.Equal(t, "none", cfg.Tracing.Exporter)
	})

	t.Run("Should read a config file", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "voxsplit.yaml", `
pipeline:
  max_chunk_length: 300
  default_language: ru
  supported_languages: [ru, en, uk]
tts:
  piper:
    endpoints:
      uk: piper-uk:10200
    voices:
      uk: uk_UA-lada-x_low
`)
		cfg, err := Load(Options{File: path})
		require.NoError(t, err)
		assert.Equal(t, 300, cfg.Pipeline.MaxChunkLength)
		assert.Equal(t, "ru", cfg.Pipeline.DefaultLanguage)
		assert.Equal(t, "piper-uk:10200", cfg.TTS.Piper.Endpoints["uk"])
		assert.Equal(t, "uk_UA-lada-x_low", cfg.TTS.Piper.Voices["uk"])

		supported, def, err := cfg.Pipeline.Languages()
		require.NoError(t, err)
		assert.Equal(t, lang.Russian, def)
		assert.Equal(t, []lang.Code{lang.Russian, lang.English, lang.Ukrainian}, supported.Codes())
	})

	t.Run("Should let the environment override the file", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "voxsplit.yaml", "pipeline:\n  max_chunk_length: 300\n")
		t.Setenv("VOXSPLIT_PIPELINE_MAX_CHUNK_LENGTH", "450")

		cfg, err := Load(Options{File: path})
		require.NoError(t, err)
		assert.Equal(t, 450, cfg.Pipeline.MaxChunkLength)
	})

	t.Run("Should let flags override the environment", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("VOXSPLIT_PIPELINE_MAX_CHUNK_LENGTH", "450")

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.Int("max-chunk-length", 0, "")
		require.NoError(t, flags.Parse([]string{"--max-chunk-length=120"}))

		cfg, err := Load(Options{Flags: flags})
		require.NoError(t, err)
		assert.Equal(t, 120, cfg.Pipeline.MaxChunkLength)
	})

	t.Run("Should load a dotenv file", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		t.Setenv("VOXSPLIT_OUTPUT_DIR", "")
		require.NoError(t, os.Unsetenv("VOXSPLIT_OUTPUT_DIR"))
		writeFile(t, dir, ".env", "VOXSPLIT_OUTPUT_DIR=/tmp/speech\nPIPER_HOST=piper.lan:10200\n")
		writeFile(t, dir, "voxsplit.yaml", "tts:\n  piper:\n    endpoint: ${PIPER_HOST}\n")
		t.Cleanup(func() { _ = os.Unsetenv("PIPER_HOST") })

		cfg, err := Load(Options{})
		require.NoError(t, err)
		assert.Equal(t, "/tmp/speech", cfg.Output.Dir)
		assert.Equal(t, "piper.lan:10200", cfg.TTS.Piper.Endpoint)
	})

	t.Run("Should fail on a missing explicit env file", func(t *testing.T) {
		_, err := Load(Options{EnvFile: filepath.Join(t.TempDir(), "missing.env")})
		assert.Error(t, err)
	})

	t.Run("Should reject a supported set missing segmenter languages", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("VOXSPLIT_PIPELINE_SUPPORTED_LANGUAGES", "uk,ru")

		_, err := Load(Options{})
		require.ErrorIs(t, err, ErrInvalid)
		assert.Contains(t, err.Error(), `"en"`)
	})

	t.Run("Should reject an unsupported default language", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("VOXSPLIT_PIPELINE_DEFAULT_LANGUAGE", "pl")

		_, err := Load(Options{})
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Pipeline: PipelineConfig{
				MaxChunkLength:     1000,
				DefaultLanguage:    "uk",
				SupportedLanguages: []string{"en", "uk", "ru"},
				ShortTokenLength:   10,
			},
			TTS: TTSConfig{Enabled: true, Backend: "piper"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "Should reject a non-positive chunk length", mutate: func(c *Config) { c.Pipeline.MaxChunkLength = 0 }},
		{name: "Should reject a non-positive short token length", mutate: func(c *Config) { c.Pipeline.ShortTokenLength = -1 }},
		{name: "Should reject negative workers", mutate: func(c *Config) { c.Pipeline.Workers = -2 }},
		{name: "Should reject malformed language codes", mutate: func(c *Config) { c.Pipeline.SupportedLanguages = []string{"english"} }},
		{name: "Should reject a set without English", mutate: func(c *Config) { c.Pipeline.SupportedLanguages = []string{"uk", "ru"} }},
		{name: "Should reject a set without Russian", mutate: func(c *Config) { c.Pipeline.SupportedLanguages = []string{"en", "uk", "de"} }},
		{name: "Should reject an empty supported set", mutate: func(c *Config) { c.Pipeline.SupportedLanguages = nil }},
		{name: "Should reject unknown tts backends", mutate: func(c *Config) { c.TTS.Backend = "espeak" }},
		{name: "Should reject unknown exporters", mutate: func(c *Config) { c.Tracing.Exporter = "zipkin" }},
	}

	base := valid()
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("Should honour level and format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LoggingConfig{Level: "warn", Format: "json"}, &buf)
		logger.Info("hidden")
		logger.Warn("shown", "lang", "uk")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), `"msg":"shown"`)
		assert.Contains(t, buf.String(), `"lang":"uk"`)
	})
}
