package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, loaded from the environment.
type Config struct {
	Port     string `env:"EASYSHOP_PORT" envDefault:"8080"`
	DBPath   string `env:"EASYSHOP_DB_PATH" envDefault:"easyshop.db"`
	LogLevel string `env:"EASYSHOP_LOG_LEVEL" envDefault:"info"`

	// Timezone lists are tagged and grouped in; timestamps stay UTC in
	// the database.
	Timezone string `env:"EASYSHOP_TIMEZONE" envDefault:"Asia/Dhaka"`

	// Upload storage. Backend "local" writes under UploadDir; "s3" uses
	// the bucket settings below.
	UploadBackend  string `env:"EASYSHOP_UPLOAD_BACKEND" envDefault:"local"`
	UploadDir      string `env:"EASYSHOP_UPLOAD_DIR" envDefault:"uploads"`
	UploadBaseURL  string `env:"EASYSHOP_UPLOAD_BASE_URL" envDefault:"/media"`
	S3Bucket       string `env:"EASYSHOP_S3_BUCKET"`
	S3Region       string `env:"EASYSHOP_S3_REGION"`
	S3Endpoint     string `env:"EASYSHOP_S3_ENDPOINT"`
	S3AccessKey    string `env:"EASYSHOP_S3_ACCESS_KEY"`
	S3SecretKey    string `env:"EASYSHOP_S3_SECRET_KEY"`
	S3PublicPrefix string `env:"EASYSHOP_S3_PUBLIC_PREFIX"`

	// Optional TTF with Bengali glyph coverage for PDF export.
	PDFFontPath string `env:"EASYSHOP_PDF_FONT"`

	ShutdownTimeout time.Duration `env:"EASYSHOP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Location resolves the configured timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
