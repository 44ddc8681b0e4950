package qc

import (
	"path"
	"strings"
)

// PathMode selects how $cdmaterials search paths are computed.
type PathMode string

// Material path modes.
const (
	AutoPaths   PathMode = "auto"
	ManualPaths PathMode = "manual"
)

// ModelsFolder is the interchange root folder that auto search paths are
// prefixed with.
const ModelsFolder = "models"

// MaterialPaths computes the $cdmaterials list for a model. Manual paths get
// a trailing slash; auto mode derives a single path from the model's output
// directory. A model without materials has no search paths.
func MaterialPaths(mode PathMode, manual []string, modelPath string, hasMaterials bool) []string {
	if !hasMaterials {
		return nil
	}

	if mode == ManualPaths {
		paths := make([]string, 0, len(manual))
		for _, p := range manual {
			p = strings.ReplaceAll(p, `\`, "/")
			if !strings.HasSuffix(p, "/") {
				p += "/"
			}
			paths = append(paths, p)
		}
		return paths
	}

	dir := path.Dir(strings.ReplaceAll(modelPath, `\`, "/"))
	if dir == "." || dir == "/" {
		return []string{ModelsFolder}
	}
	return []string{ModelsFolder + "/" + dir}
}
