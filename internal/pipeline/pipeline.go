// Package pipeline drives a batch build: for every visual object it writes
// the geometry and build script, runs the compiler and cleans up.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/automdl/internal/config"
	"github.com/Faultbox/automdl/internal/logger"
	"github.com/Faultbox/automdl/internal/scene"
	"github.com/Faultbox/automdl/internal/studiomdl"
	"github.com/Faultbox/automdl/pkg/encoding"
	"github.com/Faultbox/automdl/pkg/islands"
	"github.com/Faultbox/automdl/pkg/mesh"
	"github.com/Faultbox/automdl/pkg/qc"
	"github.com/Faultbox/automdl/pkg/skins"
	"github.com/Faultbox/automdl/pkg/smd"
	"github.com/Faultbox/automdl/pkg/vmt"
)

// Compiler turns a build script into a model. *studiomdl.Compiler is the
// production implementation.
type Compiler interface {
	Compile(ctx context.Context, qcPath string) error
}

// Options configure a batch run.
type Options struct {
	Build config.BuildOptions

	// ModelDir is the output directory relative to the models root, as
	// returned by ModelDir.
	ModelDir string

	// Compiler is nil to only generate files.
	Compiler Compiler

	// KeepArtifacts leaves the generated files in Build.TempDir.
	KeepArtifacts bool

	Log *zap.Logger
}

// Run processes jobs in order. Per-object failures are recorded and the
// batch continues; a missing compiler or a cancelled context stops it.
func Run(ctx context.Context, jobs []scene.Job, opts Options) Summary {
	log := opts.Log
	if log == nil {
		log = logger.Log
	}
	workDir := opts.Build.TempDir
	if workDir == "" {
		workDir = os.TempDir()
	}

	var sum Summary
	if err := os.MkdirAll(workDir, 0755); err != nil {
		sum.Errors = append(sum.Errors, ObjectError{Object: "*", Err: fmt.Errorf("creating work directory: %w", err)})
		sum.Aborted = true
		return sum
	}

	b := &builder{opts: opts, log: log, workDir: workDir, sum: &sum, used: make(map[string]bool)}
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			sum.Aborted = true
			log.Warn("batch cancelled", zap.Error(err))
			break
		}

		err := b.build(ctx, job)
		if err == nil {
			sum.Compiled++
			continue
		}
		sum.Errors = append(sum.Errors, ObjectError{Object: job.Visual.Name, Err: err})
		log.Error("build failed", logger.Object(job.Visual.Name), zap.Error(err))

		if errors.Is(err, studiomdl.ErrNotFound) || errors.Is(err, context.Canceled) {
			sum.Aborted = true
			break
		}
	}

	log.Info("batch finished",
		zap.Stringer("outcome", sum.Outcome()),
		zap.Int("compiled", sum.Compiled),
		zap.Int("errors", len(sum.Errors)),
		zap.Int("warnings", len(sum.Warnings)))
	return sum
}

type builder struct {
	opts    Options
	log     *zap.Logger
	workDir string
	sum     *Summary
	used    map[string]bool // sanitized names already taken in this batch
}

func (b *builder) warn(object, msg string, fields ...zap.Field) {
	b.sum.Warnings = append(b.sum.Warnings, object+": "+msg)
	b.log.Warn(msg, append([]zap.Field{logger.Object(object)}, fields...)...)
}

// name returns the file-safe, batch-unique name for an object.
func (b *builder) name(object string) string {
	name := encoding.SanitizeName(object)
	if name == "" {
		name = fmt.Sprintf("default_model_%d", b.sum.Compiled)
		b.warn(object, "name has no usable characters, using "+name)
	}
	base := name
	for i := 1; b.used[name]; i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	if name != base {
		b.warn(object, "name already used in this batch, using "+name)
	}
	b.used[name] = true
	return name
}

func (b *builder) build(ctx context.Context, job scene.Job) error {
	vis := job.Visual
	name := b.name(vis.Name)
	files := newArtifacts(b.workDir, name)
	log := b.log.With(logger.Object(vis.Name))
	log.Info("processing", zap.String("name", name))

	if !b.opts.KeepArtifacts {
		defer b.cleanup(vis.Name, files)
	}

	if err := vis.Mesh.Validate(); err != nil {
		return fmt.Errorf("evaluating mesh: %w", err)
	}
	if len(vis.Mesh.Triangles) == 0 {
		return fmt.Errorf("evaluating mesh: %w", mesh.ErrNoTriangles)
	}
	if err := smd.WriteFile(files.path(files.reference), vis.Mesh, vis.Slots, smd.PolicyFor(false, vis.Slots)); err != nil {
		return fmt.Errorf("exporting visual geometry: %w", err)
	}

	var collision *qc.Collision
	if col := job.Collision; col != nil {
		if err := smd.WriteFile(files.path(files.physics), col.Mesh, col.Slots, smd.CollisionPolicy()); err != nil {
			return fmt.Errorf("exporting collision geometry from %s: %w", col.Name, err)
		}
		pieces := islands.CountMesh(col.Mesh)
		if pieces < 1 {
			b.warn(vis.Name, "collision mesh has no vertices, assuming a single piece")
			pieces = 1
		}
		log.Debug("collision pieces", zap.Int("pieces", pieces))
		collision = &qc.Collision{File: files.physics, Pieces: pieces, Mass: b.opts.Build.Mass}
	}

	opts := &b.opts.Build
	modelPath := ModelPath(b.opts.ModelDir, name)
	hasMaterials := vis.Slots.HasMaterials()
	model := &qc.Model{
		Path:          modelPath,
		Scale:         opts.Scale,
		Reference:     files.reference,
		Skins:         skins.Infer(vis.Slots),
		StaticProp:    opts.StaticProp,
		MostlyOpaque:  opts.MostlyOpaque,
		SurfaceProp:   opts.SurfaceProp,
		MaterialPaths: qc.MaterialPaths(opts.PathMode, opts.MaterialPaths, modelPath, hasMaterials),
		Collision:     collision,
	}
	if !model.Skins.Empty() {
		log.Debug("skin families", zap.Strings("bases", model.Skins.Bases), zap.Int("skins", len(model.Skins.Skins)))
	}
	if err := qc.WriteFile(files.path(files.script), model); err != nil {
		return fmt.Errorf("writing build script: %w", err)
	}

	if b.opts.Compiler != nil {
		if err := b.opts.Compiler.Compile(ctx, files.path(files.script)); err != nil {
			return err
		}
	}

	if hasMaterials && opts.MakeFolders {
		b.materials(vis, model.MaterialPaths)
	}
	log.Info("finished", zap.String("model", modelPath+".mdl"))
	return nil
}

// materials creates material folders and, in auto path mode, placeholder
// definitions. Failures are warnings.
func (b *builder) materials(vis *scene.Object, searchPaths []string) {
	opts := &b.opts.Build
	if opts.ModelsRoot == "" {
		b.warn(vis.Name, "models root unknown, skipping material folders")
		return
	}
	gameDir := filepath.Dir(opts.ModelsRoot)

	for _, sp := range searchPaths {
		if !opts.MakeVMTs || opts.PathMode != qc.AutoPaths {
			if _, err := vmt.MakeDir(gameDir, sp); err != nil {
				b.warn(vis.Name, "could not create material folder", zap.Error(err))
			}
			continue
		}
		created, err := vmt.WritePlaceholders(gameDir, sp, vis.Slots.Names())
		if err != nil {
			b.warn(vis.Name, "could not write placeholder materials", zap.Error(err))
		}
		for _, path := range created {
			b.log.Debug("placeholder material", logger.Object(vis.Name), zap.String("path", path))
		}
	}
}

// cleanup removes every generated file of an object. Removal failures are
// warnings.
func (b *builder) cleanup(object string, files artifacts) {
	for _, path := range files.all() {
		err := os.Remove(path)
		if err == nil || errors.Is(err, os.ErrNotExist) {
			continue
		}
		b.warn(object, "could not remove temporary file", zap.String("path", path), zap.Error(err))
	}
}
