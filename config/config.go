// Package config loads citydesk configuration from the environment, an
// optional .env file and an optional YAML file. Configuration is plain
// data passed to constructors; a missing API key is not a load error —
// the affected client simply answers unauthorized.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names for the provider API keys.
const (
	EnvWeatherKey    = "OPENWEATHER_API_KEY"
	EnvTimeKey       = "TIMEZONEDB_API_KEY"
	EnvDirectionsKey = "GOOGLE_MAPS_PLATFORM_API_KEY"
)

type WeatherConfig struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Units   string        `yaml:"units"`
	Timeout time.Duration `yaml:"timeout"`
}

type TimeConfig struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	// LocalZones answers from the local tz database instead of the remote API.
	LocalZones bool `yaml:"local_zones"`
}

type DirectionsConfig struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Mode    string        `yaml:"mode"`
	Timeout time.Duration `yaml:"timeout"`
}

type LLMConfig struct {
	// Provider one of openai, anthropic, gemini, cohere.
	Provider     string `yaml:"provider"`
	Model        string `yaml:"model"`
	BaseURL      string `yaml:"base_url"`
	OpenAIKey    string `yaml:"openai_api_key"`
	AnthropicKey string `yaml:"anthropic_api_key"`
	GeminiKey    string `yaml:"gemini_api_key"`
	CohereKey    string `yaml:"cohere_api_key"`
}

// Config carries the per-source sections handed to client constructors.
type Config struct {
	Weather    WeatherConfig    `yaml:"weather"`
	Time       TimeConfig       `yaml:"time"`
	Directions DirectionsConfig `yaml:"directions"`
	LLM        LLMConfig        `yaml:"llm"`
}

// LoadDotenv loads .env files into the process environment. Missing files
// are not an error.
func LoadDotenv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}
}

// FromEnv reads configuration from environment variables.
func FromEnv() *Config {
	return &Config{
		Weather: WeatherConfig{
			APIKey:  os.Getenv(EnvWeatherKey),
			BaseURL: os.Getenv("OPENWEATHER_BASE_URL"),
			Units:   os.Getenv("OPENWEATHER_UNITS"),
		},
		Time: TimeConfig{
			APIKey:     os.Getenv(EnvTimeKey),
			BaseURL:    os.Getenv("TIMEZONEDB_BASE_URL"),
			LocalZones: os.Getenv("TIMEZONEDB_LOCAL_ZONES") == "true",
		},
		Directions: DirectionsConfig{
			APIKey:  os.Getenv(EnvDirectionsKey),
			BaseURL: os.Getenv("GOOGLE_MAPS_BASE_URL"),
			Mode:    os.Getenv("GOOGLE_MAPS_MODE"),
		},
		LLM: LLMConfig{
			Provider:     os.Getenv("LLM_PROVIDER"),
			Model:        os.Getenv("LLM_MODEL"),
			BaseURL:      os.Getenv("LLM_BASE_URL"),
			OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
			AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
			GeminiKey:    os.Getenv("GEMINI_API_KEY"),
			CohereKey:    os.Getenv("COHERE_API_KEY"),
		},
	}
}

// FromFile loads configuration from a YAML file.
func FromFile(path string) (*Config, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg := new(Config)
	if err := yaml.Unmarshal(bs, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// Load combines an optional YAML file with the environment; environment
// values win when both are set.
func Load(path string) (*Config, error) {
	cfg := new(Config)
	if path != "" {
		fileCfg, err := FromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}
	cfg.Merge(FromEnv())
	return cfg, nil
}

// Merge overlays non-zero values from src.
func (c *Config) Merge(src *Config) {
	mergeString(&c.Weather.APIKey, src.Weather.APIKey)
	mergeString(&c.Weather.BaseURL, src.Weather.BaseURL)
	mergeString(&c.Weather.Units, src.Weather.Units)
	mergeDuration(&c.Weather.Timeout, src.Weather.Timeout)
	mergeString(&c.Time.APIKey, src.Time.APIKey)
	mergeString(&c.Time.BaseURL, src.Time.BaseURL)
	mergeDuration(&c.Time.Timeout, src.Time.Timeout)
	if src.Time.LocalZones {
		c.Time.LocalZones = true
	}
	mergeString(&c.Directions.APIKey, src.Directions.APIKey)
	mergeString(&c.Directions.BaseURL, src.Directions.BaseURL)
	mergeString(&c.Directions.Mode, src.Directions.Mode)
	mergeDuration(&c.Directions.Timeout, src.Directions.Timeout)
	mergeString(&c.LLM.Provider, src.LLM.Provider)
	mergeString(&c.LLM.Model, src.LLM.Model)
	mergeString(&c.LLM.BaseURL, src.LLM.BaseURL)
	mergeString(&c.LLM.OpenAIKey, src.LLM.OpenAIKey)
	mergeString(&c.LLM.AnthropicKey, src.LLM.AnthropicKey)
	mergeString(&c.LLM.GeminiKey, src.LLM.GeminiKey)
	mergeString(&c.LLM.CohereKey, src.LLM.CohereKey)
}

// Missing returns the environment variable names of absent provider keys.
func (c Config) Missing() []string {
	var missing []string
	if c.Weather.APIKey == "" {
		missing = append(missing, EnvWeatherKey)
	}
	if c.Time.APIKey == "" && !c.Time.LocalZones {
		missing = append(missing, EnvTimeKey)
	}
	if c.Directions.APIKey == "" {
		missing = append(missing, EnvDirectionsKey)
	}
	return missing
}

// Ready reports whether every provider key is present.
func (c Config) Ready() bool {
	return len(c.Missing()) == 0
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func mergeDuration(dst *time.Duration, src time.Duration) {
	if src != 0 {
		*dst = src
	}
}
