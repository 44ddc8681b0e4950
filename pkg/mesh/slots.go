package mesh

// MaterialSlots is the ordered material slot list of an object.
// An empty string marks an empty slot.
type MaterialSlots []string

// Resolve returns the material name for a triangle's material index,
// falling back to DefaultMaterial for out-of-range or empty slots.
func (s MaterialSlots) Resolve(index int) string {
	if index < 0 || index >= len(s) || s[index] == "" {
		return DefaultMaterial
	}
	return s[index]
}

// HasMaterials reports whether any slot holds a material.
func (s MaterialSlots) HasMaterials() bool {
	for _, name := range s {
		if name != "" {
			return true
		}
	}
	return false
}

// Names returns the non-empty slot names in slot order, without duplicates.
func (s MaterialSlots) Names() []string {
	seen := make(map[string]struct{}, len(s))
	var names []string
	for _, name := range s {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
