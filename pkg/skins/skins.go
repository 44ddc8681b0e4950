// Package skins infers skin families from material naming conventions.
//
// A material named "<base>_skin<N>" is variant N of the material "<base>".
// Inference produces the ordered list of base materials that have variants
// and a dense table of skins, each mapping every base to the material shown
// for that skin.
package skins

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Faultbox/automdl/pkg/mesh"
)

var skinPattern = regexp.MustCompile(`(?i)^(.*)_skin(\d+)$`)

// Table is an inferred skin family table.
type Table struct {
	// Bases lists the base materials that have at least one variant,
	// sorted by their original casing.
	Bases []string

	// Skins maps dense skin ids, starting at 1, to a base -> variant mapping.
	Skins map[int]map[string]string
}

// Empty reports whether the table defines no skins.
func (t Table) Empty() bool {
	return len(t.Bases) == 0 || len(t.Skins) == 0
}

// Rows returns the material rows of the table: row 0 lists the bases, each
// following row lists the material shown for every base in skin 1, 2, ...
func (t Table) Rows() [][]string {
	if t.Empty() {
		return nil
	}

	rows := make([][]string, 0, len(t.Skins)+1)
	rows = append(rows, append([]string(nil), t.Bases...))
	for id := 1; id <= len(t.Skins); id++ {
		skin := t.Skins[id]
		row := make([]string, len(t.Bases))
		for i, base := range t.Bases {
			if variant, ok := skin[base]; ok {
				row[i] = variant
			} else {
				row[i] = base
			}
		}
		rows = append(rows, row)
	}
	return rows
}

type variantKey struct {
	base string // lowercase
	id   int
}

// Infer builds the skin table for an object's material slots.
func Infer(slots mesh.MaterialSlots) Table {
	// original casing per lowercase name, first slot wins
	original := make(map[string]string)
	candidates := make(map[string]map[int]struct{})
	variants := make(map[variantKey]string)

	for _, name := range slots {
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		if _, ok := original[lower]; !ok {
			original[lower] = name
		}

		match := skinPattern.FindStringSubmatch(name)
		if match == nil {
			continue
		}
		id, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}
		base := strings.ToLower(match[1])
		if candidates[base] == nil {
			candidates[base] = make(map[int]struct{})
		}
		candidates[base][id] = struct{}{}
		variants[variantKey{base, id}] = name
	}

	// A candidate only counts when its base exists as a material itself.
	var bases []string
	ids := make(map[int]struct{})
	for lower, seen := range candidates {
		name, ok := original[lower]
		if !ok {
			continue
		}
		bases = append(bases, name)
		for id := range seen {
			ids[id] = struct{}{}
		}
	}
	if len(bases) == 0 || len(ids) == 0 {
		return Table{}
	}
	sort.Strings(bases)

	order := make([]int, 0, len(ids))
	for id := range ids {
		order = append(order, id)
	}
	sort.Ints(order)

	var kept []map[string]string
	for _, id := range order {
		row := make(map[string]string, len(bases))
		changed := false
		for _, base := range bases {
			if variant, ok := variants[variantKey{strings.ToLower(base), id}]; ok {
				row[base] = variant
				if variant != base {
					changed = true
				}
			} else {
				row[base] = base
			}
		}
		if changed {
			kept = append(kept, row)
		}
	}
	if len(kept) == 0 {
		return Table{Bases: bases}
	}

	skins := make(map[int]map[string]string, len(kept))
	for i, row := range kept {
		skins[i+1] = row
	}
	return Table{Bases: bases, Skins: skins}
}
