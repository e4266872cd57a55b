package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cadence/internal/core"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     App     `mapstructure:"app"`
	Plan    Plan    `mapstructure:"plan"`
	LLM     LLM     `mapstructure:"llm"`
	Output  Output  `mapstructure:"output"`
	Server  Server  `mapstructure:"server"`
	Logging Logging `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Debug      bool   `mapstructure:"debug"`
	ConfigFile string `mapstructure:"config_file"`
}

// Plan holds plan generation configuration
type Plan struct {
	Days        int    `mapstructure:"days"`
	CatalogPath string `mapstructure:"catalog_path"`
	Seed        int64  `mapstructure:"seed"` // 0 keeps template selection deterministic by day
}

// LLM holds caption enhancement configuration
type LLM struct {
	Enabled          bool         `mapstructure:"enabled"`
	Provider         string       `mapstructure:"provider"`
	ModelPath        string       `mapstructure:"model_path"`
	Timeout          string       `mapstructure:"timeout"`
	TimeoutTotal     string       `mapstructure:"timeout_total"`
	Workers          int          `mapstructure:"workers"`
	MaxAttempts      int          `mapstructure:"max_attempts"`
	MaxCaptionLength int          `mapstructure:"max_caption_length"`
	MaxTokens        int          `mapstructure:"max_tokens"`
	Temperature      float32      `mapstructure:"temperature"`
	OpenAI           OpenAIConfig `mapstructure:"openai"`
	Ollama           OllamaConfig `mapstructure:"ollama"`
	Gemini           GeminiConfig `mapstructure:"gemini"`
}

// OpenAIConfig holds configuration for OpenAI-compatible servers such as llama-server
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// OllamaConfig holds Ollama configuration
type OllamaConfig struct {
	Host  string `mapstructure:"host"`
	Model string `mapstructure:"model"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Output holds export configuration
type Output struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
}

// Server holds HTTP API configuration
type Server struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	RequestTimeout string   `mapstructure:"request_timeout"`
	CORSOrigins    []string `mapstructure:"cors_origins"`
}

// Logging holds logging configuration
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Supported completion providers.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".cadence")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.SetEnvPrefix("cadence")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.App.ConfigFile = viper.ConfigFileUsed()

	if err := postProcessConfig(config); err != nil {
		return nil, fmt.Errorf("error post-processing config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Local endpoints used when nothing else is configured.
const (
	DefaultOpenAIBaseURL = "http://localhost:8080/v1"
	DefaultOllamaHost    = "http://localhost:11434"
)

// DefaultLLM returns the LLM settings applied when no config file or
// environment overrides them.
func DefaultLLM() LLM {
	return LLM{
		Provider:         ProviderOpenAI,
		Timeout:          "30s",
		TimeoutTotal:     "2m",
		Workers:          1,
		MaxAttempts:      1,
		MaxCaptionLength: 280,
		MaxTokens:        150,
		Temperature:      0.7,
		OpenAI:           OpenAIConfig{BaseURL: DefaultOpenAIBaseURL, Model: "local-model"},
		Ollama:           OllamaConfig{Host: DefaultOllamaHost, Model: "llama3.2:3b"},
		Gemini:           GeminiConfig{Model: "gemini-flash-lite-latest"},
	}
}

// WithDefaults fills every unset field of l from DefaultLLM. Settings built in
// code rather than loaded through viper go through this before use.
func (l LLM) WithDefaults() LLM {
	d := DefaultLLM()
	if l.Provider == "" {
		l.Provider = d.Provider
	}
	if l.Timeout == "" {
		l.Timeout = d.Timeout
	}
	if l.TimeoutTotal == "" {
		l.TimeoutTotal = d.TimeoutTotal
	}
	if l.Workers < 1 {
		l.Workers = d.Workers
	}
	if l.MaxAttempts < 1 {
		l.MaxAttempts = d.MaxAttempts
	}
	if l.MaxCaptionLength <= 0 {
		l.MaxCaptionLength = d.MaxCaptionLength
	}
	if l.MaxTokens <= 0 {
		l.MaxTokens = d.MaxTokens
	}
	if l.Temperature == 0 {
		l.Temperature = d.Temperature
	}
	if l.OpenAI.BaseURL == "" {
		l.OpenAI.BaseURL = d.OpenAI.BaseURL
	}
	if l.OpenAI.Model == "" {
		l.OpenAI.Model = d.OpenAI.Model
	}
	if l.Ollama.Host == "" {
		l.Ollama.Host = d.Ollama.Host
	}
	if l.Ollama.Model == "" {
		l.Ollama.Model = d.Ollama.Model
	}
	if l.Gemini.Model == "" {
		l.Gemini.Model = d.Gemini.Model
	}
	return l
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app.debug", false)

	viper.SetDefault("plan.days", core.DefaultDays)
	viper.SetDefault("plan.catalog_path", "")
	viper.SetDefault("plan.seed", 0)

	llm := DefaultLLM()
	viper.SetDefault("llm.enabled", false)
	viper.SetDefault("llm.provider", llm.Provider)
	viper.SetDefault("llm.timeout", llm.Timeout)
	viper.SetDefault("llm.timeout_total", llm.TimeoutTotal)
	viper.SetDefault("llm.workers", llm.Workers)
	viper.SetDefault("llm.max_attempts", llm.MaxAttempts)
	viper.SetDefault("llm.max_caption_length", llm.MaxCaptionLength)
	viper.SetDefault("llm.max_tokens", llm.MaxTokens)
	viper.SetDefault("llm.temperature", llm.Temperature)
	viper.SetDefault("llm.openai.base_url", llm.OpenAI.BaseURL)
	viper.SetDefault("llm.openai.model", llm.OpenAI.Model)
	viper.SetDefault("llm.ollama.host", llm.Ollama.Host)
	viper.SetDefault("llm.ollama.model", llm.Ollama.Model)
	viper.SetDefault("llm.gemini.model", llm.Gemini.Model)

	viper.SetDefault("output.path", "content_calendar.csv")
	viper.SetDefault("output.format", "")

	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.request_timeout", "3m")
	viper.SetDefault("server.cors_origins", []string{})

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("llm.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	bindEnvKeys("llm.openai.api_key", []string{
		"OPENAI_API_KEY",
	})

	bindEnvKeys("llm.openai.base_url", []string{
		"OPENAI_BASE_URL",
		"LLAMA_SERVER_URL",
	})

	bindEnvKeys("llm.ollama.host", []string{
		"OLLAMA_HOST",
	})

	bindEnvKeys("app.debug", []string{
		"DEBUG",
		"CADENCE_DEBUG",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// postProcessConfig applies post-processing to configuration values
func postProcessConfig(config *Config) error {
	if config.Output.Path != "" {
		config.Output.Path = expandPath(config.Output.Path)
	}
	if config.Plan.CatalogPath != "" {
		config.Plan.CatalogPath = expandPath(config.Plan.CatalogPath)
	}
	if config.LLM.ModelPath != "" {
		config.LLM.ModelPath = expandPath(config.LLM.ModelPath)
	}

	config.LLM.Provider = strings.ToLower(strings.TrimSpace(config.LLM.Provider))
	config.Output.Format = strings.ToLower(strings.TrimSpace(config.Output.Format))
	if config.App.Debug {
		config.Logging.Level = "debug"
	}

	durations := map[string]string{
		"llm.timeout":            config.LLM.Timeout,
		"llm.timeout_total":      config.LLM.TimeoutTotal,
		"server.request_timeout": config.Server.RequestTimeout,
	}

	for key, duration := range durations {
		if duration != "" {
			if _, err := time.ParseDuration(duration); err != nil {
				return fmt.Errorf("invalid duration for %s: %s", key, duration)
			}
		}
	}

	return nil
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// validateConfig ensures configuration values are usable
func validateConfig(config *Config) error {
	var errors []string

	if !core.ValidDays(config.Plan.Days) {
		errors = append(errors, core.NewInvalidRangeError(config.Plan.Days).Error()+" (plan.days)")
	}

	switch config.LLM.Provider {
	case ProviderOpenAI, ProviderOllama:
	case ProviderGemini:
		if config.LLM.Enabled && config.LLM.Gemini.APIKey == "" {
			errors = append(errors, "Gemini API key is required when llm.provider is gemini. Set GEMINI_API_KEY environment variable or llm.gemini.api_key in config file")
		}
	default:
		errors = append(errors, fmt.Sprintf("Unknown LLM provider: %s. Supported: openai, ollama, gemini", config.LLM.Provider))
	}

	if config.LLM.Workers < 1 {
		errors = append(errors, fmt.Sprintf("llm.workers must be at least 1, got %d", config.LLM.Workers))
	}
	if config.LLM.MaxAttempts < 1 {
		errors = append(errors, fmt.Sprintf("llm.max_attempts must be at least 1, got %d", config.LLM.MaxAttempts))
	}
	if config.LLM.MaxCaptionLength < 10 {
		errors = append(errors, fmt.Sprintf("llm.max_caption_length must be at least 10, got %d", config.LLM.MaxCaptionLength))
	}

	switch config.Output.Format {
	case "", "csv", "json":
	default:
		errors = append(errors, fmt.Sprintf("Unknown output format: %s. Supported: csv, json", config.Output.Format))
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		errors = append(errors, fmt.Sprintf("server.port must be between 1 and 65535, got %d", config.Server.Port))
	}

	switch strings.ToLower(config.Logging.Format) {
	case "console", "json":
	default:
		errors = append(errors, fmt.Sprintf("Unknown logging format: %s. Supported: console, json", config.Logging.Format))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// CallTimeout is the per-request provider timeout.
func (l LLM) CallTimeout() time.Duration { return parseDuration(l.Timeout, 30*time.Second) }

// TotalTimeout bounds the whole enhancement phase.
func (l LLM) TotalTimeout() time.Duration { return parseDuration(l.TimeoutTotal, 2*time.Minute) }

// Timeout bounds a single API request.
func (s Server) Timeout() time.Duration { return parseDuration(s.RequestTimeout, 3*time.Minute) }

// Addr is the listen address.
func (s Server) Addr() string { return fmt.Sprintf("%s:%d", s.Host, s.Port) }

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Convenience getters for commonly used configuration values
func GetPlan() Plan     { return Get().Plan }
func GetLLM() LLM       { return Get().LLM }
func GetServer() Server { return Get().Server }

// Reset clears the global configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viper.Reset()
}
