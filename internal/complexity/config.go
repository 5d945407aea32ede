package complexity

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Interstellar-code/taskmaster/internal/errors"
)

// Weights are the percentage contributions of each scoring component.
// They must sum to 100.
type Weights struct {
	Length    int `yaml:"length"`
	Keywords  int `yaml:"keywords"`
	Structure int `yaml:"structure"`
	Technical int `yaml:"technical"`
	Scope     int `yaml:"scope"`
}

// LengthBucket maps a character-count ceiling to a component score.
// A zero MaxChars marks the unbounded final bucket.
type LengthBucket struct {
	MaxChars int `yaml:"maxChars"`
	Points   int `yaml:"points"`
}

// KeywordTier is one class of complexity-signaling terms with its weight.
type KeywordTier struct {
	Name   string   `yaml:"name"`
	Weight int      `yaml:"weight"`
	Terms  []string `yaml:"terms"`
}

// Config is the scoring vocabulary and thresholds. It is configuration
// data, not logic: the scorer is generic over any table the caller injects,
// and a YAML file can override every field.
type Config struct {
	Weights        Weights        `yaml:"weights"`
	LengthBuckets  []LengthBucket `yaml:"lengthBuckets"`
	KeywordTiers   []KeywordTier  `yaml:"keywordTiers"`
	TechnicalTerms []string       `yaml:"technicalTerms"`
	ScopePhrases   []string       `yaml:"scopePhrases"`

	// Threshold marks an item complex on the heuristic 0-100 scale.
	Threshold int `yaml:"threshold"`

	// ReportThreshold marks an item complex on a rich-analysis report's
	// 0-10 scale.
	ReportThreshold float64 `yaml:"reportThreshold"`
}

// DefaultConfig returns the built-in scoring vocabulary.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Length:    25,
			Keywords:  30,
			Structure: 20,
			Technical: 15,
			Scope:     10,
		},
		LengthBuckets: []LengthBucket{
			{MaxChars: 60, Points: 20},
			{MaxChars: 150, Points: 40},
			{MaxChars: 400, Points: 70},
			{Points: 100},
		},
		KeywordTiers: []KeywordTier{
			{
				Name:   "architecture",
				Weight: 3,
				Terms: []string{
					"architecture", "security", "authentication", "authorization",
					"integration", "distributed", "scalability", "migration",
					"infrastructure", "microservice",
				},
			},
			{
				Name:   "implementation",
				Weight: 2,
				Terms: []string{
					"implement", "build", "design", "develop", "create",
					"refactor", "optimize", "establish",
				},
			},
			{
				Name:   "maintenance",
				Weight: 1,
				Terms: []string{
					"fix", "update", "adjust", "modify", "tweak", "correct",
					"rename", "cleanup",
				},
			},
		},
		TechnicalTerms: []string{
			"algorithm", "concurrency", "concurrent", "parallel", "streaming",
			"caching", "cache", "distributed", "database", "queue",
			"encryption", "authentication", "integration", "protocol",
			"machine learning", "indexing", "replication",
		},
		ScopePhrases: []string{
			"and", "with", "multiple", "including", "across", "both",
			"several", "various", "as well as", "end-to-end",
		},
		Threshold:       60,
		ReportThreshold: 5,
	}
}

// LoadConfig reads a YAML vocabulary override. Fields left empty in the file
// keep their defaults, so a partial override is valid.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeScoreConfigRead,
			fmt.Sprintf("read scoring config %s", path), err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeScoreConfigRead,
			fmt.Sprintf("parse scoring config %s", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration's internal consistency.
func (c Config) Validate() error {
	sum := c.Weights.Length + c.Weights.Keywords + c.Weights.Structure +
		c.Weights.Technical + c.Weights.Scope
	if sum != 100 {
		return errors.NewScoreConfigError(fmt.Sprintf("component weights sum to %d", sum), nil)
	}

	if len(c.LengthBuckets) == 0 {
		return errors.NewScoreConfigError("no length buckets", nil)
	}
	if last := c.LengthBuckets[len(c.LengthBuckets)-1]; last.MaxChars != 0 {
		return errors.NewScoreConfigError("final length bucket must be unbounded (maxChars 0)", nil)
	}

	for _, tier := range c.KeywordTiers {
		if tier.Weight <= 0 {
			return errors.NewScoreConfigError(
				fmt.Sprintf("keyword tier %q has non-positive weight", tier.Name), nil)
		}
		if len(tier.Terms) == 0 {
			return errors.NewScoreConfigError(
				fmt.Sprintf("keyword tier %q has no terms", tier.Name), nil)
		}
	}

	if c.Threshold < 0 || c.Threshold > 100 {
		return errors.NewScoreConfigError(
			fmt.Sprintf("threshold %d out of range 0-100", c.Threshold), nil)
	}
	if c.ReportThreshold < 0 || c.ReportThreshold > 10 {
		return errors.NewScoreConfigError(
			fmt.Sprintf("report threshold %v out of range 0-10", c.ReportThreshold), nil)
	}
	return nil
}
