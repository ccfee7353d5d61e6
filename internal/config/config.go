package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

// Config holds all application configuration.
type Config struct {
	Mode Mode   `yaml:"mode"`
	Port string `yaml:"port"`

	Engine struct {
		ModelName    string `yaml:"model_name"`
		APIKey       string `yaml:"api_key"`
		GCPProjectID string `yaml:"gcp_project_id"`
		GCPLocation  string `yaml:"gcp_location"`
		UseMock      bool   `yaml:"use_mock"`
	} `yaml:"engine"`

	Dataset struct {
		FundsURL       string `yaml:"funds_url"`
		DetailsURL     string `yaml:"details_url"`
		CommoditiesURL string `yaml:"commodities_url"`
		RefreshCron    string `yaml:"refresh_cron"`
	} `yaml:"dataset"`

	Storage struct {
		Backend string `yaml:"backend"` // "memory" or "firestore"
	} `yaml:"storage"`

	Recorder struct {
		SQLitePath string `yaml:"sqlite_path"` // empty disables recording
	} `yaml:"recorder"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error; defaults and env apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if v := os.Getenv("DRAVINA_MODE"); v != "" {
		cfg.Mode = Mode(v)
	}
	if v := os.Getenv("DRAVINA_PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.Engine.APIKey = v
	}
	if v := os.Getenv("DRAVINA_MODEL_NAME"); v != "" {
		cfg.Engine.ModelName = v
	}
	if v := os.Getenv("DRAVINA_GCP_PROJECT"); v != "" {
		cfg.Engine.GCPProjectID = v
	}
	if v := os.Getenv("DRAVINA_GCP_LOCATION"); v != "" {
		cfg.Engine.GCPLocation = v
	}
	if v := os.Getenv("DRAVINA_USE_MOCK_ENGINE"); v == "1" || v == "true" {
		cfg.Engine.UseMock = true
	}
	if v := os.Getenv("DRAVINA_FUNDS_URL"); v != "" {
		cfg.Dataset.FundsURL = v
	}
	if v := os.Getenv("DRAVINA_DETAILS_URL"); v != "" {
		cfg.Dataset.DetailsURL = v
	}
	if v := os.Getenv("DRAVINA_COMMODITIES_URL"); v != "" {
		cfg.Dataset.CommoditiesURL = v
	}
	if v := os.Getenv("DRAVINA_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("DRAVINA_SQLITE_PATH"); v != "" {
		cfg.Recorder.SQLitePath = v
	}

	cfg.applyDefaults()

	if cfg.Mode == ModeGCP && cfg.Engine.GCPProjectID == "" {
		return nil, fmt.Errorf("DRAVINA_GCP_PROJECT must be set in gcp mode")
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeLocal
	}
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.Engine.ModelName == "" {
		c.Engine.ModelName = "gemini-2.5-flash"
	}
	if c.Engine.GCPLocation == "" {
		c.Engine.GCPLocation = "us-central1"
	}
	if c.Dataset.RefreshCron == "" {
		// every 6 hours, matching the upstream scraper's publish cadence
		c.Dataset.RefreshCron = "0 0 */6 * * *"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "memory"
	}
	if c.Mode == ModeLocal && !c.Engine.UseMock && c.Engine.APIKey == "" {
		c.Engine.UseMock = true
	}
}
