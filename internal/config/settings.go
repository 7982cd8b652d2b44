package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/danieljhkim/cleanslate/internal/filter"
	"github.com/danieljhkim/cleanslate/internal/geom"
	"github.com/danieljhkim/cleanslate/internal/matcher"
)

// EnvPrefix prefixes every environment variable that overrides a setting,
// e.g. CLEANSLATE_ACCEPT_THRESHOLD.
const EnvPrefix = "CLEANSLATE"

// Settings holds the tunable merge settings.
type Settings struct {
	// CheapRejectThreshold is the box overlap ratio below which a pair
	// scores 0 without containment tests.
	CheapRejectThreshold float64 `mapstructure:"cheap_reject_threshold" json:"cheap_reject_threshold" yaml:"cheap_reject_threshold"`

	// BoxWeight and NodeWeight blend the box and node overlap ratios.
	BoxWeight  float64 `mapstructure:"box_weight" json:"box_weight" yaml:"box_weight"`
	NodeWeight float64 `mapstructure:"node_weight" json:"node_weight" yaml:"node_weight"`

	// AcceptThreshold is the score a pair must strictly exceed to merge.
	AcceptThreshold float64 `mapstructure:"accept_threshold" json:"accept_threshold" yaml:"accept_threshold"`

	// TargetTag is the tag key that marks footprints as buildings.
	TargetTag string `mapstructure:"target_tag" json:"target_tag" yaml:"target_tag"`

	// FilterText is the expression of the clean-slate filter.
	FilterText string `mapstructure:"filter_text" json:"filter_text" yaml:"filter_text"`

	// BatchName labels each merge in the undo journal.
	BatchName string `mapstructure:"batch_name" json:"batch_name" yaml:"batch_name"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	est := geom.DefaultConfig()
	return Settings{
		CheapRejectThreshold: est.CheapReject,
		BoxWeight:            est.BoxWeight,
		NodeWeight:           est.NodeWeight,
		AcceptThreshold:      matcher.DefaultConfig().AcceptThreshold,
		TargetTag:            "building",
		FilterText:           filter.CleanSlateText,
		BatchName:            "Clean Slate Merge",
	}
}

// Load reads settings in order of precedence:
// 1. Environment variables (CLEANSLATE_*)
// 2. .env.local, then .env in the working directory
// 3. configFile, when it exists
// 4. Defaults
func Load(configFile string) (Settings, error) {
	loadEnvFiles()

	v := viper.New()
	defaults := DefaultSettings()
	v.SetDefault("cheap_reject_threshold", defaults.CheapRejectThreshold)
	v.SetDefault("box_weight", defaults.BoxWeight)
	v.SetDefault("node_weight", defaults.NodeWeight)
	v.SetDefault("accept_threshold", defaults.AcceptThreshold)
	v.SetDefault("target_tag", defaults.TargetTag)
	v.SetDefault("filter_text", defaults.FilterText)
	v.SetDefault("batch_name", defaults.BatchName)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !isMissing(err) {
			return Settings{}, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks that thresholds are in [0,1] and the weights sum to 1.
func (s Settings) Validate() error {
	if err := s.Estimator().Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := s.Matcher().Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if strings.TrimSpace(s.TargetTag) == "" {
		return errors.New("invalid settings: target tag must not be empty")
	}
	if _, err := filter.Compile(s.FilterText); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// Estimator returns the overlap estimator constants.
func (s Settings) Estimator() geom.Config {
	return geom.Config{
		CheapReject: s.CheapRejectThreshold,
		BoxWeight:   s.BoxWeight,
		NodeWeight:  s.NodeWeight,
	}
}

// Matcher returns the matcher settings.
func (s Settings) Matcher() matcher.Config {
	return matcher.Config{AcceptThreshold: s.AcceptThreshold}
}

// loadEnvFiles loads .env files. godotenv never overwrites variables that
// are already set, so .env.local is loaded first to take precedence.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func isMissing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}
