package config

import (
	"github.com/Faultbox/automdl/internal/studiomdl"
	"github.com/Faultbox/automdl/pkg/qc"
)

// BuildOptions is the validated, read-only view of the configuration that
// the pipeline consumes.
type BuildOptions struct {
	StaticProp    bool
	Mass          float64
	SurfaceProp   string
	MostlyOpaque  bool
	Scale         float64
	PathMode      qc.PathMode
	MaterialPaths []string
	MakeFolders   bool
	MakeVMTs      bool

	ModelsRoot string
	TempDir    string
	OutputDir  string
}

// BuildOptions validates the configuration and returns a copy of the build
// settings. Static props always get a mass of 1.
func (c *Config) BuildOptions() (BuildOptions, error) {
	if err := c.Validate(); err != nil {
		return BuildOptions{}, err
	}

	mass := float64(qc.StaticMass)
	if !c.Build.StaticProp {
		mass, _ = parseMass(c.Build.Mass)
	}

	return BuildOptions{
		StaticProp:    c.Build.StaticProp,
		Mass:          mass,
		SurfaceProp:   c.Build.SurfaceProp,
		MostlyOpaque:  c.Build.MostlyOpaque,
		Scale:         c.Build.Scale,
		PathMode:      qc.PathMode(c.Build.MaterialPathMode),
		MaterialPaths: append([]string(nil), c.Build.MaterialPaths...),
		MakeFolders:   c.Build.MakeFolders,
		MakeVMTs:      c.Build.MakeVMTs,
		ModelsRoot:    c.Paths.ModelsRoot,
		TempDir:       c.Paths.TempDir,
		OutputDir:     c.Paths.OutputDir,
	}, nil
}

// StudioMDL returns the studiomdl runner described by the configuration, or
// nil when no compiler path is set.
func (c *Config) StudioMDL() *studiomdl.Compiler {
	if c.Compiler.Path == "" {
		return nil
	}
	cc := c.Compiler
	return &studiomdl.Compiler{
		Path:       cc.Path,
		GameDir:    cc.GameDir,
		Quiet:      cc.Quiet,
		NoWarnings: cc.NoWarnings,
		NoX360:     cc.NoX360,
		NoP4:       cc.NoP4,
		FastBuild:  cc.FastBuild,
		ExtraArgs:  cc.ExtraArgs,
	}
}
