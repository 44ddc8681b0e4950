// Package vmt writes placeholder material definition files next to a
// compiled model so the engine has something to bind each material to.
package vmt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Shader used by every placeholder.
const Shader = "VertexLitGeneric"

// Content returns the placeholder definition for a material found under the
// given search path.
func Content(searchPath, name string) string {
	base := strings.TrimSuffix(searchPath, "/") + "/" + name
	return fmt.Sprintf("%s\n{\n\t$basetexture %q\n}", Shader, base)
}

// Dir returns the directory under materialsRoot that a search path maps to.
// materialsRoot is the game directory containing both models/ and materials/.
func Dir(materialsRoot, searchPath string) string {
	rel := strings.TrimPrefix(strings.ReplaceAll(searchPath, `\`, "/"), "models/")
	if rel == "models" {
		rel = ""
	}
	return filepath.Join(materialsRoot, "materials", filepath.FromSlash(rel))
}

// MakeDir creates the materials directory for a search path.
func MakeDir(materialsRoot, searchPath string) (string, error) {
	dir := Dir(materialsRoot, searchPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating material directory: %w", err)
	}
	return dir, nil
}

// WritePlaceholders creates the materials directory for searchPath and one
// <name>.vmt per material. Existing files are never overwritten. It returns
// the paths of the files it created.
func WritePlaceholders(materialsRoot, searchPath string, names []string) ([]string, error) {
	dir, err := MakeDir(materialsRoot, searchPath)
	if err != nil {
		return nil, err
	}

	var created []string
	for _, name := range names {
		if name == "" {
			continue
		}
		path := filepath.Join(dir, name+".vmt")
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("creating %s: %w", path, err)
		}
		_, err = f.WriteString(Content(searchPath, name))
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return created, fmt.Errorf("writing %s: %w", path, err)
		}
		created = append(created, path)
	}
	return created, nil
}
