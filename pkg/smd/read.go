package smd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/automdl/pkg/math"
)

// SMD read errors.
var (
	ErrMissingTriangles = errors.New("smd: no triangles section")
	ErrTruncated        = errors.New("smd: truncated triangle")
	ErrBadRecord        = errors.New("smd: malformed vertex record")
)

// Record is one vertex line of a triangle.
type Record struct {
	Bone     int
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}

// Face is a labelled triangle as stored in the file.
type Face struct {
	Material string
	Records  [3]Record
}

// Document holds the triangles section of a parsed SMD.
type Document struct {
	Version int
	Faces   []Face
}

// Read parses the version line and the triangles section. The nodes and
// skeleton sections are skipped.
func Read(r io.Reader) (*Document, error) {
	sc := bufio.NewScanner(r)
	doc := &Document{}

	line := 0
	next := func() (string, bool) {
		for sc.Scan() {
			line++
			s := strings.TrimSpace(sc.Text())
			if s != "" {
				return s, true
			}
		}
		return "", false
	}

	inTriangles := false
	for {
		s, ok := next()
		if !ok {
			break
		}

		if !inTriangles {
			switch {
			case strings.HasPrefix(s, "version"):
				v, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(s, "version")))
				if err != nil {
					return nil, fmt.Errorf("smd: line %d: bad version: %w", line, err)
				}
				doc.Version = v
			case s == "triangles":
				inTriangles = true
			}
			continue
		}

		if s == "end" {
			return doc, sc.Err()
		}

		face := Face{Material: s}
		for c := 0; c < 3; c++ {
			rec, ok := next()
			if !ok {
				return nil, fmt.Errorf("%w: material %q", ErrTruncated, s)
			}
			parsed, err := parseRecord(rec)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			face.Records[c] = parsed
		}
		doc.Faces = append(doc.Faces, face)
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !inTriangles {
		return nil, ErrMissingTriangles
	}
	return doc, nil
}

func parseRecord(s string) (Record, error) {
	fields := strings.Fields(s)
	if len(fields) < 9 {
		return Record{}, fmt.Errorf("%w: %d fields", ErrBadRecord, len(fields))
	}

	bone, err := strconv.Atoi(fields[0])
	if err != nil {
		return Record{}, fmt.Errorf("%w: bone %q", ErrBadRecord, fields[0])
	}

	var f [8]float32
	for i := range f {
		v, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return Record{}, fmt.Errorf("%w: %q", ErrBadRecord, fields[i+1])
		}
		f[i] = float32(v)
	}

	return Record{
		Bone:     bone,
		Position: math.Vec3{X: f[0], Y: f[1], Z: f[2]},
		Normal:   math.Vec3{X: f[3], Y: f[4], Z: f[5]},
		UV:       math.Vec2{X: f[6], Y: f[7]},
	}, nil
}
