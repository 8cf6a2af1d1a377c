// Package config loads service settings from a JSON file, an optional
// .env file and the environment, in that order of precedence (lowest first).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the CLI and server need.
type Config struct {
	ServerAddr      string     `json:"server_addr,omitempty"`
	GenerationDelay Duration   `json:"generation_delay,omitempty"`
	ShareDir        string     `json:"share_dir,omitempty"`
	StoreSize       int        `json:"store_size,omitempty"`
	RateLimit       float64    `json:"rate_limit,omitempty"`
	RateBurst       int        `json:"rate_burst,omitempty"`
	LLM             *LLMConfig `json:"llm,omitempty"`
}

// LLMConfig selects the narrator. Provider "template" (the default)
// needs nothing else.
type LLMConfig struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

// Duration is a time.Duration written as "3s" in JSON.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"3s\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ServerAddr:      ":8080",
		GenerationDelay: Duration(3 * time.Second),
		ShareDir:        "shared",
		StoreSize:       256,
		RateLimit:       1,
		RateBurst:       5,
		LLM:             &LLMConfig{Provider: "template"},
	}
}

// Load builds a Config. A missing file at path is not an error.
func Load(path string) (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, err
		default:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}
	if cfg.LLM == nil {
		cfg.LLM = &LLMConfig{Provider: "template"}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if c.StoreSize <= 0 {
		return errors.New("store_size must be positive")
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		return errors.New("rate_limit and rate_burst must not be negative")
	}
	if c.GenerationDelay < 0 {
		return errors.New("generation_delay must not be negative")
	}
	if c.LLM == nil {
		return nil
	}
	switch c.LLM.Provider {
	case "", "template":
	case "openai", "deepseek":
		if c.LLM.Model == "" {
			return fmt.Errorf("llm provider %s requires llm.model", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("llm provider %s not supported", c.LLM.Provider)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.ServerAddr, "EB_ADDR")
	setString(&cfg.ShareDir, "EB_SHARE_DIR")
	setString(&cfg.LLM.Provider, "EB_LLM_PROVIDER")
	setString(&cfg.LLM.Model, "EB_LLM_MODEL")
	setString(&cfg.LLM.APIKey, "OPENAI_API_KEY")
	setString(&cfg.LLM.BaseURL, "EB_LLM_BASE_URL")

	if v := os.Getenv("EB_GENERATION_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("EB_GENERATION_DELAY: %w", err)
		}
		cfg.GenerationDelay = Duration(d)
	}
	if v := os.Getenv("EB_STORE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("EB_STORE_SIZE: %w", err)
		}
		cfg.StoreSize = n
	}
	if v := os.Getenv("EB_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("EB_RATE_LIMIT: %w", err)
		}
		cfg.RateLimit = f
	}
	if v := os.Getenv("EB_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("EB_RATE_BURST: %w", err)
		}
		cfg.RateBurst = n
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
