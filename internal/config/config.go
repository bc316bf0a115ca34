package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.llib.dev/frameless/pkg/logging"
)

// Config holds all application configuration
type Config struct {
	ServerAddr  string `env:"SERVER_ADDR" envDefault:":8080"`
	ContentDir  string `env:"CONTENT_DIR" envDefault:"content"`
	OutputDir   string `env:"OUTPUT_DIR" envDefault:"out"`
	StaticDir   string `env:"STATIC_DIR" envDefault:"static"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Strict      bool   `env:"STRICT" envDefault:"false"`
	LoadWorkers int    `env:"LOAD_WORKERS" envDefault:"8"`
	Site        Site   `envPrefix:"SITE_"`
}

// Site holds the text and links shared by every page
type Site struct {
	Title        string `env:"TITLE" envDefault:"chris_hacker"`
	Author       string `env:"AUTHOR" envDefault:"Chris Hacker"`
	Tagline      string `env:"TAGLINE" envDefault:"software, data and the occasional side quest"`
	BaseURL      string `env:"BASE_URL" envDefault:"/"`
	EasterEggURL string `env:"EASTER_EGG_URL"`
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the values env parsing cannot
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ContentDir) == "" {
		return fmt.Errorf("CONTENT_DIR is required")
	}
	if c.LoadWorkers < 1 {
		return fmt.Errorf("LOAD_WORKERS must be positive, got %d", c.LoadWorkers)
	}
	switch logging.Level(c.LogLevel) {
	case logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError:
	default:
		return fmt.Errorf("unknown LOG_LEVEL %q", c.LogLevel)
	}
	if !strings.HasSuffix(c.Site.BaseURL, "/") {
		c.Site.BaseURL += "/"
	}
	return nil
}

// Logger builds the structured logger writing to out
func (c *Config) Logger(out io.Writer) *logging.Logger {
	return &logging.Logger{
		Out:   out,
		Level: logging.Level(c.LogLevel),
	}
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
