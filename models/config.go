// Package models defines the shared value types, error taxonomy, and
// runtime configuration for linguacheck.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Thresholds are the tuning constants behind the report verdict and the
// detector's confidence heuristic. They are policy, not contract: defaults
// reproduce current behavior but callers may reconfigure them.
type Thresholds struct {
	GoodScore          int     `yaml:"good_score"`           // >= is "good" band
	FairScore          int     `yaml:"fair_score"`           // >= is "fair" band
	LinguisticIssues   int     `yaml:"linguistic_issues"`    // < for "good" verdict
	TerminologyIssues  int     `yaml:"terminology_issues"`   // < for "good" verdict
	ConfidenceCap      float64 `yaml:"confidence_cap"`       // detector confidence ceiling
	ConfidenceDivisor  int     `yaml:"confidence_divisor"`   // chars per unit of confidence
	MinDetectionLength int     `yaml:"min_detection_length"` // below this, detection is skipped
}

// Config holds all runtime settings. Defaults mirror the tool's fixed
// constants; an optional config.yaml overlays them and the OpenAI key comes
// from the environment.
type Config struct {
	APIKey string `yaml:"-"`

	Model       string        `yaml:"model"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`

	UserAgent        string `yaml:"user_agent"`
	MaxContentLength int    `yaml:"max_content_length"`
	MaxVariantPages  int    `yaml:"max_variant_pages"`

	BaselineLanguage   string   `yaml:"baseline_language"`
	SupportedLanguages []string `yaml:"supported_languages"`
	KeyTerms           []string `yaml:"key_terms"`

	Thresholds Thresholds `yaml:"thresholds"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Model:            "gpt-4",
		MaxTokens:        4000,
		Temperature:      0.3,
		Timeout:          30 * time.Second,
		UserAgent:        "Linguistic Analysis Tool 1.0",
		MaxContentLength: 100000,
		MaxVariantPages:  5,
		BaselineLanguage: "en",
		SupportedLanguages: []string{
			"en", "es", "fr", "de", "it", "pt", "nl", "pl", "cs",
			"sk", "hu", "ro", "bg", "hr", "sl", "et", "lv", "lt",
		},
		Thresholds: Thresholds{
			GoodScore:          80,
			FairScore:          60,
			LinguisticIssues:   5,
			TerminologyIssues:  3,
			ConfidenceCap:      0.9,
			ConfidenceDivisor:  1000,
			MinDetectionLength: 10,
		},
	}
}

// LoadConfig builds the runtime config: defaults, then the yaml file at
// path if it exists, then the API key from OPENAI_API_KEY. A missing yaml
// file is fine; a missing API key is a ConfigError, raised here so startup
// fails before any network activity.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	if cfg.APIKey == "" {
		return nil, &ConfigError{Reason: "OpenAI API key is required. Please set OPENAI_API_KEY environment variable."}
	}

	return cfg, nil
}
