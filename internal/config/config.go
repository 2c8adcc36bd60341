// Package config provides configuration for the anonymization service.
package config

import (
	"runtime"

	"github.com/spf13/viper"

	"github.com/digimosa/pii-redact/internal/models"
)

type Config struct {
	Port    string
	Workers int
	Verbose bool

	// NERBackendURL points at an external model server (Ollama-style
	// generate endpoint). Empty means the built-in rule recognizer.
	NERBackendURL string
	NERModel      string

	// WhitelistPath is the file containing values never to be flagged.
	WhitelistPath string

	// AuditDBPath is the sqlite file for request audit records. Empty
	// disables persistence.
	AuditDBPath string

	// ConsistentPseudonymization numbers tokens so identical source text
	// of one category gets the same token within one input.
	ConsistentPseudonymization bool

	// MinConfidence holds the per-category floor applied before span
	// resolution. Categories missing from the map use DefaultMinConfidence.
	MinConfidence map[models.Category]float64
}

// DefaultMinConfidence applies to categories without an explicit floor.
const DefaultMinConfidence = 0.5

func DefaultConfig() *Config {
	return &Config{
		Port:          "8000",
		Workers:       runtime.NumCPU(),
		WhitelistPath: "whitelist.txt",
		AuditDBPath:   "audit.db",
		MinConfidence: map[models.Category]float64{
			// Checksum-gated categories only emit high-confidence
			// candidates; the floor is a backstop, not a filter.
			models.CategoryIBAN:       0.9,
			models.CategoryCreditCard: 0.9,
			models.CategoryTaxID:      0.6,
			models.CategoryPhone:      0.6,
			models.CategoryEmail:      0.6,
			models.CategoryURL:        0.6,
			models.CategoryDate:       0.6,
			models.CategoryAddress:    0.6,
			models.CategoryPerson:     0.5,
			models.CategoryLocation:   0.5,
			models.CategoryProfession: 0.6,
		},
	}
}

// Threshold returns the minimum confidence for a category.
func (c *Config) Threshold(cat models.Category) float64 {
	if v, ok := c.MinConfidence[cat]; ok {
		return v
	}
	return DefaultMinConfidence
}

// Load builds the configuration from defaults, an optional .env file and
// the environment.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // .env is optional

	viper.SetDefault("PORT", "8000")
	viper.SetDefault("WORKERS", runtime.NumCPU())
	viper.SetDefault("WHITELIST_PATH", "whitelist.txt")
	viper.SetDefault("AUDIT_DB_PATH", "audit.db")
	viper.SetDefault("CONSISTENT_PSEUDONYMIZATION", false)
	viper.AutomaticEnv()

	cfg := DefaultConfig()
	cfg.Port = viper.GetString("PORT")
	cfg.Workers = viper.GetInt("WORKERS")
	cfg.Verbose = viper.GetBool("VERBOSE")
	cfg.NERBackendURL = viper.GetString("NER_BACKEND_URL")
	cfg.NERModel = viper.GetString("NER_MODEL")
	cfg.WhitelistPath = viper.GetString("WHITELIST_PATH")
	cfg.AuditDBPath = viper.GetString("AUDIT_DB_PATH")
	cfg.ConsistentPseudonymization = viper.GetBool("CONSISTENT_PSEUDONYMIZATION")

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}
