// Package config handles build configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/automdl/pkg/qc"
)

// Config holds all build settings.
type Config struct {
	Compiler CompilerConfig `yaml:"compiler"`
	Build    BuildConfig    `yaml:"build"`
	Paths    PathsConfig    `yaml:"paths"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CompilerConfig holds studiomdl invocation settings.
type CompilerConfig struct {
	Path       string `yaml:"path"`     // studiomdl executable; empty disables compiling
	GameDir    string `yaml:"game_dir"` // Directory containing gameinfo.txt
	Quiet      bool   `yaml:"quiet"`
	NoWarnings bool   `yaml:"no_warnings"`
	NoX360     bool   `yaml:"no_x360"`
	NoP4       bool   `yaml:"no_p4"`
	FastBuild  bool   `yaml:"fast_build"`
	ExtraArgs  string `yaml:"extra_args"`
}

// BuildConfig holds the options applied to every model in a batch.
type BuildConfig struct {
	StaticProp       bool     `yaml:"static_prop"`
	Mass             string   `yaml:"mass"` // Kilograms; ignored for static props
	SurfaceProp      string   `yaml:"surface_prop"`
	MostlyOpaque     bool     `yaml:"mostly_opaque"`
	Scale            float64  `yaml:"scale"`
	MaterialPathMode string   `yaml:"material_path_mode"` // "auto" or "manual"
	MaterialPaths    []string `yaml:"material_paths"`
	MakeFolders      bool     `yaml:"make_folders"`
	MakeVMTs         bool     `yaml:"make_vmts"`
}

// PathsConfig holds file system locations.
type PathsConfig struct {
	ModelsRoot string `yaml:"models_root"` // Derived from the scene path when empty
	TempDir    string `yaml:"temp_dir"`    // OS temp dir when empty
	OutputDir  string `yaml:"output_dir"`  // Destination for exported artifacts
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Validation errors.
var (
	ErrInvalidMass         = errors.New("mass value is invalid")
	ErrInvalidMaterialMode = errors.New("material path mode must be auto or manual")
	ErrNegativeScale       = errors.New("scale must not be negative")
	ErrMissingSurfaceProp  = errors.New("surface prop is required")
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Compiler: CompilerConfig{
			Quiet:      true,
			NoWarnings: true,
			NoX360:     true,
			NoP4:       true,
		},
		Build: BuildConfig{
			StaticProp:       false,
			Mass:             "35",
			SurfaceProp:      "Concrete",
			Scale:            100,
			MaterialPathMode: string(qc.AutoPaths),
			MakeFolders:      true,
			MakeVMTs:         true,
		},
		Paths: PathsConfig{
			OutputDir: ".",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the options that must be usable before any object is
// processed.
func (c *Config) Validate() error {
	b := &c.Build
	if !b.StaticProp {
		if _, err := parseMass(b.Mass); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidMass, b.Mass)
		}
	}
	switch qc.PathMode(b.MaterialPathMode) {
	case qc.AutoPaths, qc.ManualPaths:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMaterialMode, b.MaterialPathMode)
	}
	if b.Scale < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeScale, b.Scale)
	}
	if strings.TrimSpace(b.SurfaceProp) == "" {
		return ErrMissingSurfaceProp
	}
	return nil
}

func parseMass(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
