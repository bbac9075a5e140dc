package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Log     LogConfig
	OCR     OCRConfig
	Extract ExtractConfig
}

// LogConfig holds logging-related configuration
type LogConfig struct {
	Level string
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Pdftotext   string
	Pdftoppm    string
	Tesseract   string
	Language    string
	DPI         int
	MaxPages    int
	TessdataDir string
}

// ExtractConfig holds extraction pipeline configuration
type ExtractConfig struct {
	ConfidenceThreshold float64
	Workers             int
	QueueSize           int
	ProcessTimeout      time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: getEnv("INVOICE_LOG_LEVEL", "info"),
		},
		OCR: OCRConfig{
			Pdftotext:   getEnv("INVOICE_PDFTOTEXT", "pdftotext"),
			Pdftoppm:    getEnv("INVOICE_PDFTOPPM", "pdftoppm"),
			Tesseract:   getEnv("INVOICE_TESSERACT", "tesseract"),
			Language:    getEnv("INVOICE_OCR_LANG", "eng"),
			DPI:         getEnvAsInt("INVOICE_OCR_DPI", 300),
			MaxPages:    getEnvAsInt("INVOICE_OCR_MAX_PAGES", 0),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
		},
		Extract: ExtractConfig{
			ConfidenceThreshold: getEnvAsFloat64("INVOICE_CONFIDENCE_THRESHOLD", 0.1),
			Workers:             getEnvAsInt("INVOICE_WORKERS", 4),
			QueueSize:           getEnvAsInt("INVOICE_QUEUE_SIZE", 256),
			ProcessTimeout:      getEnvAsDuration("INVOICE_PROCESS_TIMEOUT", 3*time.Minute),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Extract.ConfidenceThreshold < 0 || c.Extract.ConfidenceThreshold > 1 {
		return NewAppError("CONFIG_ERROR", "INVOICE_CONFIDENCE_THRESHOLD must be within [0,1]", ErrInvalidInput)
	}
	if c.Extract.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "INVOICE_WORKERS must be positive", ErrInvalidInput)
	}
	if c.OCR.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", "INVOICE_OCR_DPI must be positive", ErrInvalidInput)
	}
	return nil
}
