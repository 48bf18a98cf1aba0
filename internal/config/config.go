package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Input      Input      `yaml:"input"`
	Vectorizer Vectorizer `yaml:"vectorizer"`
	Report     Report     `yaml:"report"`
	Output     Output     `yaml:"output"`
	Logging    Logging    `yaml:"logging"`
}

type Input struct {
	CSVPath    string `yaml:"csv_path"`
	TextColumn string `yaml:"text_column"`
	Feeds      []Feed `yaml:"feeds"`
}

type Feed struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

// Vectorizer holds the vocabulary pruning thresholds.
type Vectorizer struct {
	MinTermCount     int     `yaml:"min_term_count"`
	MinDocProportion float64 `yaml:"min_doc_proportion"`
	MaxDocProportion float64 `yaml:"max_doc_proportion"`
}

type Report struct {
	WordcloudMaxTerms int `yaml:"wordcloud_max_terms"`
	SampleRows        int `yaml:"sample_rows"`
}

type Output struct {
	DataDir    string `yaml:"data_dir"`
	FiguresDir string `yaml:"figures_dir"`
	ReportsDir string `yaml:"reports_dir"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for reviewlens.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "reviewlens")
}

// DataDir returns the XDG data directory for reviewlens.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "reviewlens")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/reviewlens/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'reviewlens init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Input: Input{
			TextColumn: "Review",
		},
		Vectorizer: Vectorizer{
			MinTermCount:     5,
			MinDocProportion: 0.0005,
			MaxDocProportion: 0.8,
		},
		Report: Report{
			WordcloudMaxTerms: 250,
			SampleRows:        500,
		},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

// GetFiguresDir returns the directory chart files are written to.
func (c *Config) GetFiguresDir() string {
	if c.Output.FiguresDir != "" {
		return c.Output.FiguresDir
	}
	return filepath.Join(c.GetDataDir(), "figures")
}

// GetReportsDir returns the directory CSV and summary reports are written to.
func (c *Config) GetReportsDir() string {
	if c.Output.ReportsDir != "" {
		return c.Output.ReportsDir
	}
	return filepath.Join(c.GetDataDir(), "reports")
}

// GetArtifactsDir returns the directory the vocabulary and transformer
// artifacts are written to.
func (c *Config) GetArtifactsDir() string {
	return filepath.Join(c.GetDataDir(), "artifacts")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
