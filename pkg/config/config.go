package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type ProviderConfig struct {
	APIKey string `yaml:"api_key"`
}

// AuditConfig tunes the consolidation pipeline and report generation.
type AuditConfig struct {
	// PublishThreshold is the minimum confidence for an issue to reach
	// verification.
	PublishThreshold float64 `yaml:"publish_threshold"`

	// MaxRetries is the number of additional attempts for collaborator calls.
	MaxRetries int `yaml:"max_retries"`

	// VerifyTimeoutSeconds bounds the verification collaborator call.
	VerifyTimeoutSeconds int `yaml:"verify_timeout_seconds"`

	// MaxReportIssues caps the number of issues in the final report.
	MaxReportIssues int `yaml:"max_report_issues"`

	// ExtractorBaseURL points at the external text-extraction service.
	// Plain-text documents are read directly and do not need it.
	ExtractorBaseURL string `yaml:"extractor_base_url"`

	// OutputDir receives generated reports.
	OutputDir string `yaml:"output_dir"`

	// FeaturesFile overrides the embedded reference feature checklist.
	FeaturesFile string `yaml:"features_file"`
}

type Config struct {
	SelectedProvider string                    `yaml:"selected_provider"`
	SelectedModel    string                    `yaml:"selected_model"`
	Providers        map[string]ProviderConfig `yaml:"providers"`
	Audit            AuditConfig               `yaml:"audit"`
}

func defaultConfig() *Config {
	return &Config{
		SelectedProvider: "gemini",
		SelectedModel:    "gemini-1.5-pro",
		Providers:        make(map[string]ProviderConfig),
		Audit: AuditConfig{
			PublishThreshold:     0.75,
			MaxRetries:           2,
			VerifyTimeoutSeconds: 180,
			MaxReportIssues:      7,
			OutputDir:            "reports",
		},
	}
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".docaudit")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	if cfg.Audit.PublishThreshold <= 0 || cfg.Audit.PublishThreshold > 1 {
		cfg.Audit.PublishThreshold = 0.75
	}
	if cfg.Audit.MaxReportIssues <= 0 {
		cfg.Audit.MaxReportIssues = 7
	}
	return cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// 0600 permissions for security (api keys)
	return os.WriteFile(path, data, 0600)
}

func (c *Config) SetAPIKey(provider, key string) {
	p := c.Providers[provider]
	p.APIKey = key
	c.Providers[provider] = p
}

func (c *Config) GetAPIKey(provider string) string {
	return c.Providers[provider].APIKey
}

// VerifyTimeout returns the configured verification timeout as a duration.
func (c *Config) VerifyTimeout() time.Duration {
	if c.Audit.VerifyTimeoutSeconds <= 0 {
		return 3 * time.Minute
	}
	return time.Duration(c.Audit.VerifyTimeoutSeconds) * time.Second
}
