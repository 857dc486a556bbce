package config

import (
	"encoding/json"
	"fmt"
	"os"

	"cloud.google.com/go/civil"

	"github.com/dmitrijs2005/patientwatch/internal/common"
	"github.com/dmitrijs2005/patientwatch/internal/flagx"
)

// JsonConfig is the intermediate DTO for reading JSON configuration
// files. After unmarshalling, its set fields are copied into the runtime
// Config.
type JsonConfig struct {
	CredentialPath   string   `json:"credential_path"`
	StartDate        string   `json:"start_date"`
	Emails           []string `json:"emails"`
	Exclude          []string `json:"exclude"`
	MarkdownPath     string   `json:"markdown_path"`
	ExcelPath        string   `json:"excel_path"`
	FollowupWeeks    int      `json:"followup_weeks"`
	OnboardingDays   *int     `json:"onboarding_days"`
	WeightWindowDays int      `json:"weight_window_days"`
}

// parseJson loads configuration values from a JSON file into the
// provided Config. The file path is taken from the -c or -config
// command-line flags; when neither is set, no JSON file is loaded.
func parseJson(config *Config) error {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	return loadJsonFile(config, jsonConfigFile)
}

func loadJsonFile(config *Config, path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", common.ErrorInvalidConfig, path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("%w: parse %s: %v", common.ErrorInvalidConfig, path, err)
	}

	if c.CredentialPath != "" {
		config.CredentialPath = c.CredentialPath
	}
	if c.StartDate != "" {
		d, err := civil.ParseDate(c.StartDate)
		if err != nil {
			return fmt.Errorf("%w: start_date %q: %v", common.ErrorInvalidConfig, c.StartDate, err)
		}
		config.StartDate = d
	}
	if len(c.Emails) > 0 {
		config.Emails = c.Emails
	}
	if len(c.Exclude) > 0 {
		config.Exclude = c.Exclude
	}
	if c.MarkdownPath != "" {
		config.MarkdownPath = c.MarkdownPath
	}
	if c.ExcelPath != "" {
		config.ExcelPath = c.ExcelPath
	}
	if c.FollowupWeeks > 0 {
		config.FollowupWeeks = c.FollowupWeeks
	}
	if c.OnboardingDays != nil {
		// pointer so that an explicit zero disables the grace window
		config.OnboardingDays = *c.OnboardingDays
	}
	if c.WeightWindowDays > 0 {
		config.WeightWindowDays = c.WeightWindowDays
	}

	return nil
}
