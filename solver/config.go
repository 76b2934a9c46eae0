package solver

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// RestartType names one of spec.md 4.8's five restart policies.
type RestartType string

const (
	RestartNever    RestartType = "never"
	RestartGeom     RestartType = "geom"
	RestartLuby     RestartType = "luby"
	RestartGlue     RestartType = "glue"
	RestartGlueGeom RestartType = "glue_geom"
)

// Config is every tunable the core reads, covering spec.md 6's table
// plus the ambient decode/validate path SPEC_FULL.md 6 adds. Field
// names mirror the original solver's snake_case keys via mapstructure
// tags, so a decoded options map round-trips without renaming.
type Config struct {
	PolarityMode PolarityMode `mapstructure:"polarity_mode" validate:"gte=0,lte=5"`
	RandomVarFreq float64     `mapstructure:"rnd_var_freq" validate:"gte=0,lte=1"`

	RestartType  RestartType `mapstructure:"restart_type" validate:"oneof=never geom luby glue glue_geom"`
	RestartFirst int         `mapstructure:"restart_first" validate:"gte=1"`
	RestartInc   float64     `mapstructure:"restart_inc" validate:"gte=1"`
	BlockingRestarts bool    `mapstructure:"blocking_restarts"`

	GluePutLev0IfBelowOrEq uint32 `mapstructure:"glue_put_lev0_if_below_or_eq"`
	GluePutLev1IfBelowOrEq uint32 `mapstructure:"glue_put_lev1_if_below_or_eq"`

	EveryLev1Reduce        int     `mapstructure:"every_lev1_reduce" validate:"gte=1"`
	EveryLev2Reduce        int     `mapstructure:"every_lev2_reduce" validate:"gte=1"`
	MaxTempLev2LearntCls   int     `mapstructure:"max_temp_lev2_learnt_clauses" validate:"gte=1"`
	IncMaxTempLev2RedCls   float64 `mapstructure:"inc_max_temp_lev2_red_cls" validate:"gte=1"`

	DoRecursiveMinim bool `mapstructure:"do_recursive_minim"`
	DoMinimRedMore   bool `mapstructure:"do_minim_red_more"`

	ChronoBtThresh int `mapstructure:"diff_declev_for_chrono" validate:"gte=-1"`

	BranchStrategySetup string  `mapstructure:"branch_strategy_setup"`
	BranchSwitchEvery   int     `mapstructure:"branch_switch_every" validate:"gte=0"`
	MapleStepSize       float64 `mapstructure:"maple_step_size" validate:"gte=0,lte=1"`
	MapleMinStepSize    float64 `mapstructure:"maple_min_step_size" validate:"gte=0,lte=1"`
	MapleStepSizeDec    float64 `mapstructure:"maple_step_size_dec" validate:"gte=0,lte=1"`

	DoMaxGlueDel bool   `mapstructure:"do_max_glue_del"`
	MaxGlue      uint32 `mapstructure:"max_glue"`

	SyncEveryConf int `mapstructure:"sync_every_conf" validate:"gte=0"`

	CleanLev0EveryUnits int `mapstructure:"clean_lev0_every_units" validate:"gte=1"`

	DebugLib bool `mapstructure:"debug_lib"`

	Seed int64 `mapstructure:"seed"`
}

// DefaultConfig mirrors the original solver's built-in defaults, the
// same way the teacher's zero-value Options struct doubles as sane
// defaults before CLI overrides are applied.
func DefaultConfig() Config {
	return Config{
		PolarityMode: PolarityAutomatic,
		RandomVarFreq: 0,

		RestartType:      RestartGlue,
		RestartFirst:     100,
		RestartInc:       2,
		BlockingRestarts: true,

		GluePutLev0IfBelowOrEq: 2,
		GluePutLev1IfBelowOrEq: 6,

		EveryLev1Reduce:      10000,
		EveryLev2Reduce:      1000,
		MaxTempLev2LearntCls: 30000,
		IncMaxTempLev2RedCls: 1.1,

		DoRecursiveMinim: true,
		DoMinimRedMore:   true,

		ChronoBtThresh: 100,

		BranchStrategySetup: "vsids1",
		BranchSwitchEvery:   0,
		MapleStepSize:       0.40,
		MapleMinStepSize:    0.06,
		MapleStepSizeDec:    0.000001,

		DoMaxGlueDel: false,
		MaxGlue:      ^uint32(0),

		SyncEveryConf: 2000,

		CleanLev0EveryUnits: 1,

		DebugLib: false,
		Seed:     0,
	}
}

var configValidator = validator.New()

// DecodeConfig decodes a generic options map (as produced by a parsed
// options file or CLI flag set) into Config, layered over
// DefaultConfig, then validates it. Grounded on
// jinterlante1206-AleutianLocal's config stack, which pairs
// mapstructure decode with validator tag checks the same way.
func DecodeConfig(raw map[string]interface{}) (Config, error) {
	cfg := DefaultConfig()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return cfg, fmt.Errorf("building config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if err := configValidator.Struct(&cfg); err != nil {
		return cfg, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}
