package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the process environment, loading a local
// .env file first when one exists.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	config.CredentialPath = getenv("PATIENTWATCH_CREDENTIAL", config.CredentialPath)
	config.MarkdownPath = getenv("PATIENTWATCH_MARKDOWN", config.MarkdownPath)
	config.ExcelPath = getenv("PATIENTWATCH_EXCEL", config.ExcelPath)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
