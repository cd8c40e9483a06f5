package recommendation

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable scoring parameters of the engine.
type Config struct {
	// category weights
	BrowseWeight   float64 `yaml:"browse_weight"`
	PurchaseWeight float64 `yaml:"purchase_weight"`

	// content scoring
	ExactMatchBonus   float64 `yaml:"exact_match_bonus"`
	PartialMatchBonus float64 `yaml:"partial_match_bonus"`
	TagMatchBonus     float64 `yaml:"tag_match_bonus"`

	// PartialMatchIncludesExact also grants the partial bonus to the
	// category that already matched exactly.
	PartialMatchIncludesExact bool `yaml:"partial_match_includes_exact"`

	SegmentBoost       float64 `yaml:"segment_boost"`
	PremiumPriceFloor  float64 `yaml:"premium_price_floor"`
	BudgetPriceCeiling float64 `yaml:"budget_price_ceiling"`

	// share of the requested limit filled by each source
	ContentShare       float64 `yaml:"content_share"`
	CollaborativeShare float64 `yaml:"collaborative_share"`
	CollaborativeScore float64 `yaml:"collaborative_score"`

	BrowsingWindowDays int `yaml:"browsing_window_days"`
	PurchaseWindowDays int `yaml:"purchase_window_days"`

	FreshnessWindow time.Duration `yaml:"freshness_window"`
	RetentionCap    int           `yaml:"retention_cap"`
	DefaultLimit    int           `yaml:"default_limit"`

	// GenerateTimeout bounds one shared generation, independent of the
	// request that started it.
	GenerateTimeout time.Duration `yaml:"generate_timeout"`

	// Seed of the collaborative picker; 0 seeds from the clock.
	Seed int64 `yaml:"seed"`
}

const (
	defaultBrowseWeight       = 0.7
	defaultPurchaseWeight     = 1.0
	defaultExactMatchBonus    = 2.0
	defaultPartialMatchBonus  = 0.5
	defaultTagMatchBonus      = 0.3
	defaultSegmentBoost       = 1.2
	defaultPremiumPriceFloor  = 100
	defaultBudgetPriceCeiling = 50
	defaultContentShare       = 0.7
	defaultCollaborativeShare = 0.3
	defaultCollaborativeScore = 0.5
	defaultBrowsingWindowDays = 30
	defaultPurchaseWindowDays = 180
	defaultFreshnessWindow    = 24 * time.Hour
	defaultRetentionCap       = 5
	defaultLimit              = 10
	defaultGenerateTimeout    = 30 * time.Second
)

func DefaultConfig() Config {
	return Config{
		BrowseWeight:   defaultBrowseWeight,
		PurchaseWeight: defaultPurchaseWeight,

		ExactMatchBonus:   defaultExactMatchBonus,
		PartialMatchBonus: defaultPartialMatchBonus,
		TagMatchBonus:     defaultTagMatchBonus,

		SegmentBoost:       defaultSegmentBoost,
		PremiumPriceFloor:  defaultPremiumPriceFloor,
		BudgetPriceCeiling: defaultBudgetPriceCeiling,

		ContentShare:       defaultContentShare,
		CollaborativeShare: defaultCollaborativeShare,
		CollaborativeScore: defaultCollaborativeScore,

		BrowsingWindowDays: defaultBrowsingWindowDays,
		PurchaseWindowDays: defaultPurchaseWindowDays,

		FreshnessWindow: defaultFreshnessWindow,
		RetentionCap:    defaultRetentionCap,
		DefaultLimit:    defaultLimit,
		GenerateTimeout: defaultGenerateTimeout,
	}
}

// LoadConfigFile overlays the YAML file at path on top of base.
// Keys missing from the file keep their value from base.
func LoadConfigFile(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read scoring config: %w", err)
	}

	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return base, fmt.Errorf("parse scoring config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return base, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.ContentShare < 0 || c.ContentShare > 1 {
		return errors.New("content_share must be within [0, 1]")
	}
	if c.CollaborativeShare < 0 || c.CollaborativeShare > 1 {
		return errors.New("collaborative_share must be within [0, 1]")
	}
	if c.BrowseWeight < 0 || c.PurchaseWeight < 0 {
		return errors.New("signal weights must be non-negative")
	}
	if c.ExactMatchBonus < 0 || c.PartialMatchBonus < 0 || c.TagMatchBonus < 0 {
		return errors.New("match bonuses must be non-negative")
	}
	if c.SegmentBoost <= 0 {
		return errors.New("segment_boost must be positive")
	}
	if c.CollaborativeScore < 0 {
		return errors.New("collaborative_score must be non-negative")
	}
	if c.BrowsingWindowDays <= 0 || c.PurchaseWindowDays <= 0 {
		return errors.New("history windows must be positive")
	}
	if c.FreshnessWindow <= 0 {
		return errors.New("freshness_window must be positive")
	}
	if c.RetentionCap <= 0 {
		return errors.New("retention_cap must be positive")
	}
	if c.GenerateTimeout <= 0 {
		return errors.New("generate_timeout must be positive")
	}
	if c.DefaultLimit <= 0 {
		return errors.New("default_limit must be positive")
	}
	return nil
}
