package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds nr-alert-analyzer configuration loaded from
// .nr-alert-analyzer.yaml.
type Config struct {
	APIKeys         map[string]string `yaml:"api_keys"`
	AccountID       int               `yaml:"account_id"`
	Region          string            `yaml:"region"` // us or eu
	Days            int               `yaml:"days"`
	Limit           int               `yaml:"limit"`
	TopN            int               `yaml:"top_n"`
	Format          string            `yaml:"format"`
	ExcludeWarnings bool              `yaml:"exclude_warnings"`
	AI              AIConfig          `yaml:"ai"`
}

// AIConfig configures the optional summarization call.
type AIConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
}

// Load searches for .nr-alert-analyzer.yaml or .nr-alert-analyzer.yml in the
// given directory and returns the parsed config. Returns an empty Config if
// no file is found.
func Load(dir string) (Config, error) {
	candidates := []string{
		filepath.Join(dir, ".nr-alert-analyzer.yaml"),
		filepath.Join(dir, ".nr-alert-analyzer.yml"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	return Config{}, nil
}
