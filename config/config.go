package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	XLSXOutputPath string
	ChartOutputDir string
	HTMLOutputPath string
	PDFOutputPath  string

	ChromeBin     string
	PDFTimeoutSec int
	MaxRetries    int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		XLSXOutputPath: getEnv("XLSX_OUTPUT_PATH", "./output/report.xlsx"),
		ChartOutputDir: getEnv("CHART_OUTPUT_DIR", "./output/charts"),
		HTMLOutputPath: getEnv("HTML_OUTPUT_PATH", "./output/report.html"),
		PDFOutputPath:  getEnv("PDF_OUTPUT_PATH", "./output/report.pdf"),

		ChromeBin:     getEnv("CHROME_BIN", ""),
		PDFTimeoutSec: getEnvInt("PDF_TIMEOUT_SEC", 60),
		MaxRetries:    getEnvInt("MAX_RETRIES", 3),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
