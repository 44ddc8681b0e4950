// Package scene loads glTF scenes into exportable mesh objects and pairs
// visual objects with their collision proxies.
package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/Faultbox/automdl/pkg/encoding"
	"github.com/Faultbox/automdl/pkg/mesh"
)

// CollisionPrefix marks an object as the collision proxy of the visual object
// named by the rest of its name.
const CollisionPrefix = "COL_"

// Scene errors.
var (
	ErrNoScene         = errors.New("scene: document has no scenes")
	ErrMissingPosition = errors.New("scene: primitive has no POSITION attribute")
)

// Object is a named mesh in the scene, in its world rotation and scale.
type Object struct {
	Name   string
	Hidden bool
	Mesh   *mesh.Mesh
	Slots  mesh.MaterialSlots
}

// IsCollision reports whether the object is a collision proxy.
func (o *Object) IsCollision() bool {
	return len(o.Name) >= len(CollisionPrefix) &&
		strings.EqualFold(o.Name[:len(CollisionPrefix)], CollisionPrefix)
}

// Scene is the set of mesh objects of a document.
type Scene struct {
	Path    string
	Objects []*Object
}

// Job is one model to build: a visual object and its optional collision
// proxy.
type Job struct {
	Visual    *Object
	Collision *Object
}

// Pair returns one job per visible, non-collision object, in scene order.
// The collision proxy of an object named X is the object named COL_X,
// compared case-insensitively; it may be hidden.
func (s *Scene) Pair() []Job {
	proxies := make(map[string]*Object)
	for _, o := range s.Objects {
		if !o.IsCollision() {
			continue
		}
		key := strings.ToLower(o.Name[len(CollisionPrefix):])
		if _, ok := proxies[key]; !ok {
			proxies[key] = o
		}
	}

	var jobs []Job
	for _, o := range s.Objects {
		if o.Hidden || o.IsCollision() {
			continue
		}
		jobs = append(jobs, Job{Visual: o, Collision: proxies[strings.ToLower(o.Name)]})
	}
	return jobs
}

// Object returns the first object with the given name, compared
// case-insensitively after ASCII folding.
func (s *Scene) Object(name string) *Object {
	for _, o := range s.Objects {
		if encoding.EqualFold(o.Name, name) {
			return o
		}
	}
	return nil
}

// Load opens a .gltf or .glb file.
func Load(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	s, err := FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	s.Path = path
	return s, nil
}
