package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the top-level application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Extract ExtractConfig `yaml:"extract"`
	OCR     OCRConfig     `yaml:"ocr"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	MaxUploadMB int    `yaml:"max_upload_mb"` // per-request upload cap (default: 50)
}

// ExtractConfig holds settings for the extraction pipeline.
type ExtractConfig struct {
	PDFTimeoutSeconds int `yaml:"pdf_timeout_seconds"` // cap on PDF document loading (default: 30)
	MaxConcurrent     int `yaml:"max_concurrent"`      // parallel extractions per batch (default: 4)
}

// OCRConfig holds settings for image text recognition.
type OCRConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Language string `yaml:"language"` // tesseract language code (default: "eng")
}

// defaults returns a Config populated with sensible default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			MaxUploadMB: 50,
		},
		Extract: ExtractConfig{
			PDFTimeoutSeconds: 30,
			MaxConcurrent:     4,
		},
		OCR: OCRConfig{
			Enabled:  true,
			Language: "eng",
		},
	}
}

// Load reads a YAML configuration file at path and returns a Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// LoadDefault tries to load "config.yaml" from the current directory.
// If the file does not exist, it returns sensible defaults.
// Any other error (e.g. permission denied, malformed YAML) is returned.
func LoadDefault() (*Config, error) {
	cfg, err := Load("config.yaml")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaults(), nil
		}
		return nil, err
	}
	return cfg, nil
}
