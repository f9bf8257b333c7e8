package config

import (
	"fmt"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config represents the scanner configuration
type Config struct {
	// Scan settings
	Path    string   `mapstructure:"path"`                        // path to scan
	Workers int      `mapstructure:"workers" validate:"gte=1"`    // hashing and classification workers
	MaxSize string   `mapstructure:"max_size" validate:"size"`    // size ceiling for hashing and classification
	Exclude []string `mapstructure:"exclude"`                     // directory names pruned before descent

	// Session reconstruction
	SessionGapHours float64 `mapstructure:"session_gap_hours" validate:"gt=0"` // gap that closes a work session
	SessionMinFiles int     `mapstructure:"session_min_files" validate:"gte=1"` // minimum files per session
	SessionLimit    int     `mapstructure:"session_limit" validate:"gte=0"`     // most recent sessions kept, 0 keeps all

	// Duplicate detection
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" validate:"gt=0,lte=1"` // near-duplicate name ratio

	// Classification
	ClassifyExtensions []string `mapstructure:"classify_extensions"` // extensions whose content is classified
	ClassifySections   bool     `mapstructure:"classify_sections"`   // also classify markdown sections
	RulesPath          string   `mapstructure:"rules_path"`          // YAML rules file, built-in rules when empty

	// Report settings
	ReportFormat string `mapstructure:"report_format" validate:"omitempty,oneof=json txt text md markdown html"`
	OutputFile   string `mapstructure:"output_file"`  // output file path
	HistoryDB    string `mapstructure:"history_db"`   // SQLite scan history, disabled when empty
	MetricsFile  string `mapstructure:"metrics_file"` // Prometheus textfile, disabled when empty

	// AI settings
	AI AIConfig `mapstructure:"ai"` // optional LLM commentary
}

// AIConfig holds LLM summary configuration
type AIConfig struct {
	Enabled  bool   `mapstructure:"ai_enabled"`                                  // Enable LLM commentary
	Model    string `mapstructure:"ai_model" validate:"oneof=haiku sonnet opus"` // Model: haiku, sonnet, opus
	APIToken string `mapstructure:"ai_token"`                                    // Anthropic API token
	Timeout  int    `mapstructure:"ai_timeout" validate:"gte=0"`                 // Seconds per request
	Language string `mapstructure:"ai_language" validate:"oneof=en ru es"`       // Commentary language
}

// DefaultExclude lists dependency and build directories skipped by default
var DefaultExclude = []string{
	"node_modules", "__pycache__", ".git", "dist", "build", "target",
	"vendor", ".next", ".nuxt", "coverage", "site-packages",
}

var sizePattern = regexp.MustCompile(`^[0-9]+[KkMmGg]?$`)

// LoadConfig loads configuration from environment variables and defaults
func LoadConfig() (*Config, error) {
	return load(newViper())
}

// LoadConfigFile loads configuration from a YAML file, then environment variables
func LoadConfigFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return load(v)
}

func newViper() *viper.Viper {
	v := viper.New()

	// Set defaults
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("max_size", "50M")
	v.SetDefault("exclude", DefaultExclude)
	v.SetDefault("session_gap_hours", 4.0)
	v.SetDefault("session_min_files", 3)
	v.SetDefault("session_limit", 0)
	v.SetDefault("similarity_threshold", 0.85)
	v.SetDefault("classify_extensions", []string{"md", "markdown", "html", "htm"})
	v.SetDefault("classify_sections", false)
	v.SetDefault("rules_path", "")
	v.SetDefault("report_format", "")
	v.SetDefault("history_db", "")
	v.SetDefault("metrics_file", "")

	// AI defaults
	v.SetDefault("ai.ai_enabled", false)
	v.SetDefault("ai.ai_model", "haiku")
	v.SetDefault("ai.ai_timeout", 30)
	v.SetDefault("ai.ai_language", "en")

	// Read environment variables
	v.SetEnvPrefix("TREELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints after flags and environment are applied
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("size", func(fl validator.FieldLevel) bool {
		return sizePattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// SessionGap returns the session gap threshold as a duration
func (c *Config) SessionGap() time.Duration {
	return time.Duration(c.SessionGapHours * float64(time.Hour))
}

// ShouldClassify determines if a file's content is classified based on extension
func (c *Config) ShouldClassify(extension string) bool {
	for _, ext := range c.ClassifyExtensions {
		if strings.EqualFold(strings.TrimPrefix(ext, "."), extension) {
			return true
		}
	}
	return false
}
