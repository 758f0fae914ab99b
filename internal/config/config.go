// Package config handles repository layout and analysis configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Repository layout under the project root.
const (
	WeaksigDir = ".weaksig"
	ConfigFile = "config.yml"
	CorpusFile = "corpus.jsonl"
	VocabFile  = "keywords.txt"
	CacheDir   = "cache"
	DBFile     = "corpus.db"
	ResultsDir = "results"
)

// Result artifact file names.
const (
	TFFile         = "tf.csv"
	DFFile         = "df.csv"
	DoVFile        = "dov.csv"
	DoDFile        = "dod.csv"
	BestWFile      = "best_w.json"
	AllSignalsFile = "validated_all.csv"
	HighImpactFile = "high_impact.csv"
)

// PeriodConfig defines one named analysis period. End is exclusive.
type PeriodConfig struct {
	Name  string `yaml:"name"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
}

// Config is the analysis configuration stored in .weaksig/config.yml.
type Config struct {
	Topics      []string       `yaml:"topics"`       // corpus filter: substrings matched in title/abstract
	StartYear   int            `yaml:"start_year"`   // corpus filter, inclusive
	EndYear     int            `yaml:"end_year"`     // corpus filter, inclusive
	Periods     []PeriodConfig `yaml:"periods"`      // analysis periods
	WCandidates []float64      `yaml:"w_candidates"` // decay parameter grid for ws optimize
	W           float64        `yaml:"w"`            // currently selected decay parameter
}

// Default returns the configuration a fresh repository starts with.
func Default() *Config {
	return &Config{
		Topics:    []string{"computer vision"},
		StartYear: 2010,
		EndYear:   2022,
		Periods: []PeriodConfig{
			{Name: "P1", Start: 2010, End: 2014},
			{Name: "P2", Start: 2014, End: 2018},
			{Name: "P3", Start: 2018, End: 2023},
		},
		WCandidates: []float64{0.025, 0.05, 0.075, 0.1},
		W:           0.05,
	}
}

// WeaksigPath returns the path to the .weaksig directory from a root path.
func WeaksigPath(root string) string {
	return filepath.Join(root, WeaksigDir)
}

// ConfigPath returns the path to config.yml from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, WeaksigDir, ConfigFile)
}

// CorpusPath returns the path to corpus.jsonl from a root path.
func CorpusPath(root string) string {
	return filepath.Join(root, WeaksigDir, CorpusFile)
}

// VocabPath returns the path to the keyword vocabulary file from a root path.
func VocabPath(root string) string {
	return filepath.Join(root, VocabFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, WeaksigDir, CacheDir)
}

// DBPath returns the path to corpus.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, WeaksigDir, CacheDir, DBFile)
}

// ResultsPath returns the path to the results directory from a root path.
func ResultsPath(root string) string {
	return filepath.Join(root, WeaksigDir, ResultsDir)
}

// ResultPath returns the path of a named result artifact from a root path.
func ResultPath(root, name string) string {
	return filepath.Join(root, WeaksigDir, ResultsDir, name)
}

// IsRepository checks if the given path contains a weaksig repository.
func IsRepository(root string) bool {
	info, err := os.Stat(WeaksigPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a weaksig repository.
// Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a weaksig repository (no .weaksig directory found)")
		}
		abs = parent
	}
}

// Load reads and validates configuration from the repository at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.StartYear > c.EndYear {
		return fmt.Errorf("start_year %d is after end_year %d", c.StartYear, c.EndYear)
	}
	if len(c.Periods) == 0 {
		return errors.New("no analysis periods defined")
	}
	seen := make(map[string]bool, len(c.Periods))
	for _, p := range c.Periods {
		if p.Name == "" {
			return errors.New("period with empty name")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate period name %q", p.Name)
		}
		seen[p.Name] = true
		if p.Start >= p.End {
			return fmt.Errorf("period %s: start %d is not before end %d", p.Name, p.Start, p.End)
		}
	}
	if len(c.WCandidates) == 0 {
		return errors.New("no w candidates defined")
	}
	return nil
}
