package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/automdl/pkg/encoding"
)

// ErrNoModelsRoot is returned when a scene is not saved below a models folder.
var ErrNoModelsRoot = errors.New("scene is not inside a models folder")

// FindModelsRoot returns the deepest ancestor directory of path named
// "models".
func FindModelsRoot(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	for dir := filepath.Dir(abs); ; {
		if strings.EqualFold(filepath.Base(dir), "models") {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// ModelDir returns the directory of scenePath relative to the models root,
// with forward slashes and "" for the root itself. When modelsRoot is empty
// it is found with FindModelsRoot.
func ModelDir(scenePath, modelsRoot string) (root, dir string, err error) {
	if modelsRoot == "" {
		var ok bool
		if modelsRoot, ok = FindModelsRoot(scenePath); !ok {
			return "", "", fmt.Errorf("%w: %s", ErrNoModelsRoot, scenePath)
		}
	}
	absRoot, err := filepath.Abs(modelsRoot)
	if err != nil {
		return "", "", err
	}
	absScene, err := filepath.Abs(scenePath)
	if err != nil {
		return "", "", err
	}

	rel, err := filepath.Rel(absRoot, filepath.Dir(absScene))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", fmt.Errorf("%w: %s is outside %s", ErrNoModelsRoot, scenePath, modelsRoot)
	}
	if rel == "." {
		rel = ""
	}
	return absRoot, encoding.NormalizePath(filepath.ToSlash(rel)), nil
}

// ModelPath joins the model directory and object name as studiomdl expects
// in $modelname, without extension.
func ModelPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// artifacts are the intermediate files generated for one object.
type artifacts struct {
	dir       string
	reference string // file names, relative to dir
	physics   string
	script    string
}

func newArtifacts(dir, name string) artifacts {
	return artifacts{
		dir:       dir,
		reference: name + "_ref.smd",
		physics:   name + "_phy.smd",
		script:    "qc_" + name + ".qc",
	}
}

func (a artifacts) path(file string) string {
	return filepath.Join(a.dir, file)
}

func (a artifacts) all() []string {
	return []string{a.path(a.reference), a.path(a.physics), a.path(a.script)}
}
