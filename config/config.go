package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"azai/billing"
	"azai/clock"
	"azai/confidence"
	"azai/pipeline"
)

const (
	KeyDatesReferenceYear     = "dates.reference_year"
	KeyBillingUnitMinutes     = "billing.unit_minutes"
	KeyBillingFloorMinMinutes = "billing.minimum_floor.min_minutes"
	KeyBillingFloorMaxMinutes = "billing.minimum_floor.max_minutes"
	KeyBillingFloorUnits      = "billing.minimum_floor.units"
	KeyBillingUnitRate        = "billing.unit_rate"
	KeyConfidenceAutoAccept   = "confidence.auto_accept"
	KeyConfidenceReview       = "confidence.review_recommended"
	KeyConfidenceManualReview = "confidence.manual_review_required"
	KeyNormalizeOCRCleanup    = "normalize.ocr_cleanup"
	KeyNormalizeWorkers       = "normalize.workers"
	KeyNormalizeOCRArtifacts  = "normalize.ocr_artifacts"
	KeyLogLevel               = "log.level"
	KeyLogFormat              = "log.format"
)

const (
	defaultReferenceYear = 2024
	defaultWorkers       = 4
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
)

type Config struct {
	Dates      DatesConfig      `mapstructure:"dates"`
	Billing    BillingConfig    `mapstructure:"billing"`
	Confidence ConfidenceConfig `mapstructure:"confidence"`
	Normalize  NormalizeConfig  `mapstructure:"normalize"`
	Log        LogConfig        `mapstructure:"log"`
}

type DatesConfig struct {
	// ReferenceYear fills dates written without a year when the sheet has
	// no usable week header. 0 means the current year.
	ReferenceYear int `mapstructure:"reference_year" validate:"gte=0,lte=9999"`
}

type BillingConfig struct {
	UnitMinutes  int         `mapstructure:"unit_minutes" validate:"gt=0,lte=60"`
	MinimumFloor FloorConfig `mapstructure:"minimum_floor"`
	UnitRate     float64     `mapstructure:"unit_rate" validate:"gte=0"`
}

type FloorConfig struct {
	MinMinutes int `mapstructure:"min_minutes" validate:"gte=0"`
	MaxMinutes int `mapstructure:"max_minutes" validate:"gte=0"`
	Units      int `mapstructure:"units" validate:"gte=0"`
}

type ConfidenceConfig struct {
	AutoAccept           float64 `mapstructure:"auto_accept" validate:"gte=0,lte=1"`
	ReviewRecommended    float64 `mapstructure:"review_recommended" validate:"gte=0,lte=1"`
	ManualReviewRequired float64 `mapstructure:"manual_review_required" validate:"gte=0,lte=1"`
}

type NormalizeConfig struct {
	OCRCleanup   bool     `mapstructure:"ocr_cleanup"`
	Workers      int      `mapstructure:"workers" validate:"gte=1,lte=64"`
	OCRArtifacts []string `mapstructure:"ocr_artifacts"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

func (c Config) BillingRules() billing.Rules {
	return billing.Rules{
		UnitMinutes:     c.Billing.UnitMinutes,
		FloorMinMinutes: c.Billing.MinimumFloor.MinMinutes,
		FloorMaxMinutes: c.Billing.MinimumFloor.MaxMinutes,
		FloorUnits:      c.Billing.MinimumFloor.Units,
	}
}

func (c Config) Thresholds() confidence.Thresholds {
	return confidence.Thresholds{
		AutoAccept:           c.Confidence.AutoAccept,
		ReviewRecommended:    c.Confidence.ReviewRecommended,
		ManualReviewRequired: c.Confidence.ManualReviewRequired,
	}
}

func (c Config) PipelineOptions(logger zerolog.Logger) pipeline.Options {
	return pipeline.Options{
		ReferenceYear: c.Dates.ReferenceYear,
		Rules:         c.BillingRules(),
		Thresholds:    c.Thresholds(),
		OCRCleanup:    c.Normalize.OCRCleanup,
		OCRArtifacts:  c.Normalize.OCRArtifacts,
		Workers:       c.Normalize.Workers,
		Logger:        logger,
	}
}

// Keys lists every settable configuration key in file order.
func Keys() []string {
	return []string{
		KeyDatesReferenceYear,
		KeyBillingUnitMinutes,
		KeyBillingFloorMinMinutes,
		KeyBillingFloorMaxMinutes,
		KeyBillingFloorUnits,
		KeyBillingUnitRate,
		KeyConfidenceAutoAccept,
		KeyConfidenceReview,
		KeyConfidenceManualReview,
		KeyNormalizeOCRCleanup,
		KeyNormalizeWorkers,
		KeyNormalizeOCRArtifacts,
		KeyLogLevel,
		KeyLogFormat,
	}
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// Default returns the validated built-in configuration.
func Default() *Config {
	local := viper.New()
	setDefaults(local)
	cfg, err := loadAndValidateFromViper(local)
	if err != nil {
		panic(fmt.Sprintf("built-in configuration is invalid: %v", err))
	}
	return cfg
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# azai configuration
dates:
  # Year for dates written without one when the sheet has no week header.
  # 0 uses the current year.
  reference_year: 2024

billing:
  unit_minutes: 15
  # Shifts of 35-59 minutes always bill 3 units.
  minimum_floor:
    min_minutes: 35
    max_minutes: 59
    units: 3
  # Charge per unit on exported service lines. 0 leaves amounts empty.
  unit_rate: 0

confidence:
  auto_accept: 0.95
  review_recommended: 0.80
  manual_review_required: 0.60

normalize:
  ocr_cleanup: false
  workers: 4
  ocr_artifacts: ["BBAL", "|", "~", "___", "###", "@@", "\\"]

log:
  level: info
  format: console
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateBilling(cfg.Billing); err != nil {
		return nil, err
	}
	if err := cfg.Thresholds().Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := billing.DefaultRules()
	thresholds := confidence.DefaultThresholds()

	v.SetDefault(KeyDatesReferenceYear, defaultReferenceYear)
	v.SetDefault(KeyBillingUnitMinutes, defaults.UnitMinutes)
	v.SetDefault(KeyBillingFloorMinMinutes, defaults.FloorMinMinutes)
	v.SetDefault(KeyBillingFloorMaxMinutes, defaults.FloorMaxMinutes)
	v.SetDefault(KeyBillingFloorUnits, defaults.FloorUnits)
	v.SetDefault(KeyBillingUnitRate, 0.0)
	v.SetDefault(KeyConfidenceAutoAccept, thresholds.AutoAccept)
	v.SetDefault(KeyConfidenceReview, thresholds.ReviewRecommended)
	v.SetDefault(KeyConfidenceManualReview, thresholds.ManualReviewRequired)
	v.SetDefault(KeyNormalizeOCRCleanup, false)
	v.SetDefault(KeyNormalizeWorkers, defaultWorkers)
	v.SetDefault(KeyNormalizeOCRArtifacts, append([]string(nil), clock.DefaultArtifacts...))
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyLogFormat, defaultLogFormat)
}

func validateBilling(cfg BillingConfig) error {
	floor := cfg.MinimumFloor
	if floor.Units == 0 {
		return nil
	}
	if floor.MinMinutes <= 0 {
		return fmt.Errorf("validation failed: billing.minimum_floor.min_minutes must be > 0 when units is set")
	}
	if floor.MaxMinutes < floor.MinMinutes {
		return fmt.Errorf(
			"validation failed: billing.minimum_floor.max_minutes (%d) must not be below min_minutes (%d)",
			floor.MaxMinutes,
			floor.MinMinutes,
		)
	}
	return nil
}
