package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/automdl/internal/config"
	"github.com/Faultbox/automdl/internal/logger"
	"github.com/Faultbox/automdl/internal/pipeline"
	"github.com/Faultbox/automdl/internal/scene"
	"github.com/Faultbox/automdl/internal/watch"
)

// setup loads configuration and starts logging for a command.
func setup(f *config.Flags) (*config.Config, bool) {
	cfg, err := config.Load(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return nil, false
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return nil, false
	}
	logger.Sugar.Debugf("Config: %+v", cfg)
	return cfg, true
}

// compileOptions validates the configuration for a compile run of scenePath.
// Every failure here aborts before any object is processed.
func compileOptions(cfg *config.Config, scenePath string) (pipeline.Options, error) {
	build, err := cfg.BuildOptions()
	if err != nil {
		return pipeline.Options{}, err
	}

	compiler := cfg.StudioMDL()
	if compiler == nil {
		return pipeline.Options{}, errors.New("no studiomdl configured: set compiler.path or pass -studiomdl")
	}
	if err := compiler.Check(); err != nil {
		return pipeline.Options{}, err
	}
	if cfg.Compiler.GameDir == "" {
		return pipeline.Options{}, errors.New("no game directory configured: set compiler.game_dir or pass -game")
	}

	root, dir, err := pipeline.ModelDir(scenePath, build.ModelsRoot)
	if err != nil {
		return pipeline.Options{}, err
	}
	build.ModelsRoot = root

	return pipeline.Options{Build: build, ModelDir: dir, Compiler: compiler, Log: logger.Log}, nil
}

func compileScene(ctx context.Context, scenePath string, opts pipeline.Options) int {
	s, err := scene.Load(scenePath)
	if err != nil {
		logger.Error("failed to load scene", zap.Error(err))
		return 1
	}

	sum := pipeline.Run(ctx, s.Pair(), opts)
	for _, e := range sum.Errors {
		fmt.Fprintf(os.Stderr, "Error: %v\n", e)
	}
	fmt.Println(sum.String())

	switch sum.Outcome() {
	case pipeline.Succeeded:
		return 0
	case pipeline.Partial:
		return 2
	default:
		return 1
	}
}

func cmdCompile(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	f := config.RegisterFlags(fs)
	fs.Usage = usage(fs, "<scene>")
	fs.Parse(args)

	scenePath, ok := sceneArg(fs)
	if !ok {
		return 1
	}
	cfg, ok := setup(f)
	if !ok {
		return 1
	}
	defer logger.Sync()

	opts, err := compileOptions(cfg, scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return compileScene(ctx, scenePath, opts)
}

func cmdExport(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	f := config.RegisterFlags(fs)
	output := fs.String("o", "", "Output directory (default: paths.output_dir)")
	fs.Usage = usage(fs, "<scene>")
	fs.Parse(args)

	scenePath, ok := sceneArg(fs)
	if !ok {
		return 1
	}
	cfg, ok := setup(f)
	if !ok {
		return 1
	}
	defer logger.Sync()

	build, err := cfg.BuildOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *output != "" {
		build.OutputDir = *output
	}
	build.TempDir = build.OutputDir

	opts := pipeline.Options{Build: build, KeepArtifacts: true, Log: logger.Log}
	if root, dir, err := pipeline.ModelDir(scenePath, build.ModelsRoot); err == nil {
		opts.Build.ModelsRoot = root
		opts.ModelDir = dir
	} else {
		logger.Warn("model paths will be relative to the models root", zap.Error(err))
		opts.Build.ModelsRoot = ""
	}
	return compileScene(ctx, scenePath, opts)
}

func cmdWatch(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	f := config.RegisterFlags(fs)
	debounce := fs.Duration("debounce", watch.DefaultDebounce, "Time writes must settle before rebuilding")
	fs.Usage = usage(fs, "<scene>")
	fs.Parse(args)

	scenePath, ok := sceneArg(fs)
	if !ok {
		return 1
	}
	cfg, ok := setup(f)
	if !ok {
		return 1
	}
	defer logger.Sync()

	opts, err := compileOptions(cfg, scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	compileScene(ctx, scenePath, opts)
	err = watch.Run(ctx, scenePath, *debounce, func(ctx context.Context) error {
		compileScene(ctx, scenePath, opts)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
