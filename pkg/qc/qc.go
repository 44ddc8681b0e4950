// Package qc generates the QC build script consumed by studiomdl.
package qc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/automdl/pkg/skins"
)

// Fixed collision and sequence parameters.
const (
	Inertia         = 1
	Damping         = 0
	RotDamping      = 0
	StaticMass      = 1
	SequenceFPS     = 30
	SequenceFadeIn  = 0.2
	SequenceFadeOut = 0.2
)

// Collision describes the $collisionmodel block.
type Collision struct {
	File   string  // Physics geometry file, e.g. "crate_phy.smd"
	Pieces int     // Island count of the physics mesh
	Mass   float64 // Ignored for static props
}

// Concave reports whether the physics mesh is split into several convex pieces.
func (c *Collision) Concave() bool {
	return c.Pieces > 1
}

// Model is the build directive for one compiled model.
type Model struct {
	Path          string // Output path relative to models/, without extension
	Scale         float64
	Reference     string // Visual geometry file
	Skins         skins.Table
	StaticProp    bool
	MostlyOpaque  bool
	SurfaceProp   string
	MaterialPaths []string
	Collision     *Collision // nil when the model has no physics mesh
}

// Write emits the QC text for m.
func Write(w io.Writer, m *Model) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "$modelname %s\n", quote(m.Path+".mdl"))
	if m.Scale != 1.0 {
		fmt.Fprintf(bw, "$scale %.6f\n", m.Scale)
	}
	bw.WriteString("\n")

	fmt.Fprintf(bw, "$bodygroup \"Body\"\n{\n\tstudio %s\n}\n", quote(m.Reference))

	if !m.Skins.Empty() {
		bw.WriteString("\n")
		writeTextureGroup(bw, m.Skins)
	}

	if m.StaticProp {
		bw.WriteString("\n$staticprop\n")
	}
	if m.MostlyOpaque {
		bw.WriteString("\n$mostlyopaque\n")
	}

	fmt.Fprintf(bw, "\n$surfaceprop %s\n", quote(m.SurfaceProp))
	bw.WriteString("\n$contents \"solid\"\n\n")

	if len(m.MaterialPaths) == 0 {
		bw.WriteString("$cdmaterials \"\"\n")
	}
	for _, p := range m.MaterialPaths {
		fmt.Fprintf(bw, "$cdmaterials %s\n", quote(p))
	}
	bw.WriteString("\n")

	fmt.Fprintf(bw, "$sequence \"idle\" {\n\t%s\n\tfps %d\n\tfadein %s\n\tfadeout %s\n\tloop\n}\n",
		quote(m.Reference), SequenceFPS, number(SequenceFadeIn), number(SequenceFadeOut))

	if c := m.Collision; c != nil {
		mass := c.Mass
		if m.StaticProp {
			mass = StaticMass
		}
		fmt.Fprintf(bw, "\n$collisionmodel %s {\n", quote(c.File))
		if c.Concave() {
			fmt.Fprintf(bw, "\t$concave\n\t$maxconvexpieces %d\n", c.Pieces)
		}
		fmt.Fprintf(bw, "\t$mass %s\n\t$inertia %d\n\t$damping %d\n\t$rotdamping %d\n",
			number(mass), Inertia, Damping, RotDamping)
		bw.WriteString("\t$rootbone \" \"\n}\n")
	}

	return bw.Flush()
}

// WriteFile writes the QC for m to path.
func WriteFile(path string, m *Model) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return Write(f, m)
}

func writeTextureGroup(bw *bufio.Writer, t skins.Table) {
	bw.WriteString("$texturegroup skinfamilies\n{\n")
	for _, row := range t.Rows() {
		quoted := make([]string, len(row))
		for i, name := range row {
			quoted[i] = quote(name)
		}
		fmt.Fprintf(bw, "\t{ %s }\n", strings.Join(quoted, " "))
	}
	bw.WriteString("}\n")
}

func quote(s string) string {
	return `"` + s + `"`
}

// number formats a value as plain decimal text with no exponent and no
// trailing zeros.
func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
