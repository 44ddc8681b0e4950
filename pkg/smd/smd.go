// Package smd writes and reads the StudioMDL Data (SMD) triangle format:
// a plain-text triangle soup bound to a single root joint at the origin.
package smd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Faultbox/automdl/pkg/math"
	"github.com/Faultbox/automdl/pkg/mesh"
)

// header declares the format version, one parentless root joint and a
// single zero-pose keyframe.
const header = "version 1\n" +
	"nodes\n" +
	"0 \"root\" -1\n" +
	"end\n" +
	"skeleton\n" +
	"time 0\n" +
	"0 0 0 0 0 0 0\n" +
	"end\n"

const (
	trianglesOpen = "triangles\n"
	footer        = "end\n"
)

// Write serializes m into w using the policy p. The mesh is validated
// first; nothing is written for an invalid mesh.
func Write(w io.Writer, m *mesh.Mesh, slots mesh.MaterialSlots, p Policy) error {
	if err := m.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(header)
	bw.WriteString(trianglesOpen)

	buf := make([]byte, 0, 128)
	for i := range m.Triangles {
		tri := &m.Triangles[i]

		bw.WriteString(p.label(slots, tri))
		bw.WriteByte('\n')

		var face math.Vec3
		flat := p.Normals == FaceNormalWhenFlat && !tri.Smooth
		if flat {
			face = m.FaceNormal(tri)
		}

		for c := 0; c < 3; c++ {
			v := m.Vertices[tri.Verts[c]]
			normal := v.Normal
			if flat {
				normal = face
			}
			buf = appendRecord(buf[:0], v.Position, normal, m.UV(tri, c))
			bw.Write(buf)
		}
	}

	bw.WriteString(footer)
	return bw.Flush()
}

// WriteFile writes the SMD to path. A partially written file is removed.
func WriteFile(path string, m *mesh.Mesh, slots mesh.MaterialSlots, p Policy) (err error) {
	if err := m.Validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	return Write(f, m, slots, p)
}

// appendRecord appends one vertex line:
// bone, position, normal, uv, and the trailing link-count placeholder.
func appendRecord(b []byte, pos, normal math.Vec3, uv math.Vec2) []byte {
	b = append(b, "0  "...)
	b = appendFloats(b, pos.X, pos.Y, pos.Z)
	b = append(b, "  "...)
	b = appendFloats(b, normal.X, normal.Y, normal.Z)
	b = append(b, "  "...)
	b = appendFloats(b, uv.X, uv.Y)
	b = append(b, " 0\n"...)
	return b
}

func appendFloats(b []byte, fs ...float32) []byte {
	for i, f := range fs {
		if i > 0 {
			b = append(b, ' ')
		}
		b = strconv.AppendFloat(b, float64(f), 'f', 6, 32)
	}
	return b
}
