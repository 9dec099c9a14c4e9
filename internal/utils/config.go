package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/benmeehan/climate-search/internal/constants"
	"github.com/benmeehan/climate-search/pkg/file"
	"github.com/benmeehan/climate-search/pkg/page"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read from the working directory by LoadConfig.
const DefaultEnvFile = ".env"

// Environment variables that override secrets from the configuration file.
const (
	EnvMapsAPIKey        = "MAPS_API_KEY"
	EnvS3AccessKeyID     = "S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "S3_SECRET_ACCESS_KEY"
)

// Config represents the structure of the configuration file.
type Config struct {
	Maps struct {
		APIKey  string        `yaml:"api_key"`  // Google maps API Key
		BaseURL string        `yaml:"base_url"` // Override for the maps web service endpoint
		Country string        `yaml:"country"`  // Country predictions are restricted to
		Timeout time.Duration `yaml:"timeout"`  // Timeout per predictions or details request
	} `yaml:"maps"`

	Session struct {
		RotateAfterResolve bool `yaml:"rotate_after_resolve"` // Start a new session token after every resolution
	} `yaml:"session"`

	Page struct {
		Template  string         `yaml:"template"`  // Path to the page template, embedded default when empty
		BaseURL   string         `yaml:"base_url"`  // URL relative form actions are resolved against
		Selectors page.Selectors `yaml:"selectors"` // Form, input and results selectors
	} `yaml:"page"`

	Submission struct {
		Timeout time.Duration `yaml:"timeout"` // Timeout for the backend POST
	} `yaml:"submission"`

	Render struct {
		Workers     int    `yaml:"workers"`      // Number of charts drawn concurrently
		ChartHeight string `yaml:"chart_height"` // CSS height of every chart
	} `yaml:"render"`

	History struct {
		StateFile string `yaml:"state_file"` // Path to store the URL history, in memory when empty
		BasePath  string `yaml:"base_path"`  // Path the query string is appended to
	} `yaml:"history"`

	Output struct {
		File string `yaml:"file"` // Path the rendered page is written to
	} `yaml:"output"`

	Publish struct {
		Enabled         bool   `yaml:"enabled"`           // Enable/disable uploads to object storage
		Endpoint        string `yaml:"endpoint"`          // S3-compatible endpoint host
		Region          string `yaml:"region"`            // Region used when creating the bucket
		AccessKeyID     string `yaml:"access_key_id"`     // Object storage access key
		SecretAccessKey string `yaml:"secret_access_key"` // Object storage secret key
		UseSSL          bool   `yaml:"use_ssl"`           // Connect over TLS
		Bucket          string `yaml:"bucket"`            // Bucket result pages are uploaded to
		Prefix          string `yaml:"prefix"`            // Object name prefix
	} `yaml:"publish"`

	Logging struct {
		Level  string `yaml:"level"`  // zerolog level name
		Pretty bool   `yaml:"pretty"` // Human readable console output
	} `yaml:"logging"`
}

// LoadConfig loads the YAML configuration from the specified file, applies
// overrides from the environment (and a .env file when present) and fills in
// defaults. It returns an error if loading or validation fails.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	var config Config
	err := fileClient.ReadYamlFile(filename, &config)
	if err != nil {
		return nil, err
	}

	if err := LoadEnvFile(DefaultEnvFile); err != nil {
		return nil, err
	}

	config.applyEnv()
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadEnvFile exports the variables of a dotenv file into the process
// environment without overriding variables that are already set. A missing
// file is not an error; a malformed one is.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvMapsAPIKey); v != "" {
		c.Maps.APIKey = v
	}
	if v := os.Getenv(EnvS3AccessKeyID); v != "" {
		c.Publish.AccessKeyID = v
	}
	if v := os.Getenv(EnvS3SecretAccessKey); v != "" {
		c.Publish.SecretAccessKey = v
	}
}

func (c *Config) applyDefaults() {
	if c.Maps.Country == "" {
		c.Maps.Country = constants.DefaultCountry
	}
	if c.Maps.Timeout <= 0 {
		c.Maps.Timeout = constants.DefaultMapsTimeout
	}
	if c.Submission.Timeout <= 0 {
		c.Submission.Timeout = constants.DefaultSubmitTimeout
	}
	if c.Render.Workers <= 0 {
		c.Render.Workers = constants.DefaultRenderWorkers
	}
	if c.History.BasePath == "" {
		c.History.BasePath = "/"
	}

	sel := &c.Page.Selectors
	if sel.Form == "" {
		sel.Form = page.DefaultSelectors.Form
	}
	if sel.Input == "" {
		sel.Input = page.DefaultSelectors.Input
	}
	if sel.Results == "" {
		sel.Results = page.DefaultSelectors.Results
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate reports configuration that cannot produce a working search.
func (c *Config) Validate() error {
	if c.Maps.APIKey == "" {
		return fmt.Errorf("maps api key is required (set maps.api_key or %s)", EnvMapsAPIKey)
	}
	if c.Page.BaseURL == "" {
		return errors.New("page.base_url is required")
	}

	if c.Publish.Enabled {
		if c.Publish.Endpoint == "" || c.Publish.Bucket == "" {
			return errors.New("publish.endpoint and publish.bucket are required when publishing is enabled")
		}
		if c.Publish.AccessKeyID == "" || c.Publish.SecretAccessKey == "" {
			return fmt.Errorf("object storage credentials are required (set %s and %s)", EnvS3AccessKeyID, EnvS3SecretAccessKey)
		}
	}

	return nil
}
