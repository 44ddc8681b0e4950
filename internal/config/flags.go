package config

import "flag"

// Flags holds the command-line overrides registered on a flag set.
type Flags struct {
	fs *flag.FlagSet

	config       *string
	debug        *bool
	studiomdl    *string
	gameDir      *string
	static       *bool
	mass         *string
	surfaceProp  *string
	mostlyOpaque *bool
	scale        *float64
	fastBuild    *bool
	tempDir      *string
	modelsRoot   *string
	logFile      *string
}

// RegisterFlags defines the shared build flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	def := Default()
	return &Flags{
		fs:           fs,
		config:       fs.String("config", "", "Path to config file"),
		debug:        fs.Bool("debug", false, "Enable debug logging"),
		studiomdl:    fs.String("studiomdl", "", "Path to the studiomdl executable"),
		gameDir:      fs.String("game", "", "Game directory containing gameinfo.txt"),
		static:       fs.Bool("static", def.Build.StaticProp, "Compile as a static prop"),
		mass:         fs.String("mass", def.Build.Mass, "Mass in kilograms"),
		surfaceProp:  fs.String("surfaceprop", def.Build.SurfaceProp, "Surface property"),
		mostlyOpaque: fs.Bool("mostlyopaque", def.Build.MostlyOpaque, "Render in two passes for transparent materials"),
		scale:        fs.Float64("scale", def.Build.Scale, "Model scale factor"),
		fastBuild:    fs.Bool("fastbuild", def.Compiler.FastBuild, "Pass -fastbuild to studiomdl"),
		tempDir:      fs.String("temp", "", "Directory for intermediate files"),
		modelsRoot:   fs.String("models-root", "", "Models folder the output paths are relative to"),
		logFile:      fs.String("log", "", "Also write logs to this file"),
	}
}

// ConfigPath returns the explicit config path if provided via -config flag.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// apply copies the flags given on the command line into cfg. Flags left
// at their defaults do not override file values.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			if *f.debug {
				cfg.Logging.Level = "debug"
			}
		case "studiomdl":
			cfg.Compiler.Path = *f.studiomdl
		case "game":
			cfg.Compiler.GameDir = *f.gameDir
		case "static":
			cfg.Build.StaticProp = *f.static
		case "mass":
			cfg.Build.Mass = *f.mass
		case "surfaceprop":
			cfg.Build.SurfaceProp = *f.surfaceProp
		case "mostlyopaque":
			cfg.Build.MostlyOpaque = *f.mostlyOpaque
		case "scale":
			cfg.Build.Scale = *f.scale
		case "fastbuild":
			cfg.Compiler.FastBuild = *f.fastBuild
		case "temp":
			cfg.Paths.TempDir = *f.tempDir
		case "models-root":
			cfg.Paths.ModelsRoot = *f.modelsRoot
		case "log":
			cfg.Logging.LogFile = *f.logFile
		}
	})
}
