// Package config handles configuration for the report generator,
// including defaults, environment overlay, JSON overlay, and
// command-line flags.
package config

import (
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/dmitrijs2005/patientwatch/internal/common"
)

// Config holds runtime settings for a patientwatch run.
//
// Fields:
//   - CredentialPath: service-account credential file for the document store.
//   - StartDate: first day of the report calendar range.
//   - Emails: ordered roster of user identifiers to analyze.
//   - Exclude: users left out of notification eligibility.
//   - MarkdownPath / ExcelPath: output artifact locations.
//   - FollowupWeeks / OnboardingDays / WeightWindowDays: follow-up policy knobs.
//   - Verbose: enables debug logging.
type Config struct {
	CredentialPath   string
	StartDate        civil.Date
	Emails           []string
	Exclude          []string
	MarkdownPath     string
	ExcelPath        string
	FollowupWeeks    int
	OnboardingDays   int
	WeightWindowDays int
	Verbose          bool
}

// LoadDefaults populates Config with defaults. The roster and start date
// have no sensible defaults and must come from the JSON config.
func (c *Config) LoadDefaults() {
	c.MarkdownPath = "README.md"
	c.ExcelPath = "patient_activity.xlsx"
	c.FollowupWeeks = 4
	c.OnboardingDays = 7
	c.WeightWindowDays = 14
}

// Validate checks that the required fields are present after all layers
// were applied.
func (c *Config) Validate() error {
	if c.CredentialPath == "" {
		return fmt.Errorf("%w: credential_path is required", common.ErrorInvalidConfig)
	}
	if !c.StartDate.IsValid() {
		return fmt.Errorf("%w: start_date is required", common.ErrorInvalidConfig)
	}
	if len(c.Emails) == 0 {
		return fmt.Errorf("%w: emails must not be empty", common.ErrorInvalidConfig)
	}
	if c.FollowupWeeks <= 0 || c.OnboardingDays < 0 || c.WeightWindowDays <= 0 {
		return fmt.Errorf("%w: follow-up policy values out of range", common.ErrorInvalidConfig)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, from an optional JSON file and finally from
// command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
