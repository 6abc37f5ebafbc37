package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	InputDir   string
	OutputDir  string
	OutputFile string
	DBPath     string

	ExtractWorkers int

	IMAPHost     string
	IMAPPort     int
	IMAPSecure   bool
	IMAPUser     string
	IMAPPassword string
	IMAPMarkSeen bool

	IntakeLabel       string
	IntakeIntervalSec int
	IntakeFetchMax    int
	IntakeAutoRun     bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		InputDir:   getEnv("INPUT_DIR", filepath.Join(cwd, "input_docs")),
		OutputDir:  getEnv("OUTPUT_DIR", filepath.Join(cwd, "output")),
		OutputFile: getEnv("OUTPUT_FILE", "Master_Material_List.xlsx"),
		DBPath:     getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),

		ExtractWorkers: getEnvInt("EXTRACT_WORKERS", 4),

		IMAPHost:     getEnv("IMAP_HOST", ""),
		IMAPPort:     getEnvInt("IMAP_PORT", 993),
		IMAPSecure:   getEnvBool("IMAP_SECURE", true),
		IMAPUser:     getEnv("IMAP_USER", ""),
		IMAPPassword: getEnv("IMAP_PASSWORD", ""),
		IMAPMarkSeen: getEnvBool("IMAP_MARK_SEEN", false),

		IntakeLabel:       getEnv("INTAKE_LABEL", "INBOX"),
		IntakeIntervalSec: getEnvInt("INTAKE_INTERVAL_SEC", 60),
		IntakeFetchMax:    getEnvInt("INTAKE_FETCH_MAX", 20),
		IntakeAutoRun:     getEnvBool("INTAKE_AUTO_RUN", true),
	}

	return cfg, nil
}

// OutputPath is where the consolidated workbook lands.
func (c Config) OutputPath() string {
	return filepath.Join(c.OutputDir, c.OutputFile)
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
