package encoding

import "testing"

func TestFoldASCII(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"crate", "crate"},
		{"Café", "Cafe"},
		{"naïve_déjà", "naive_deja"},
		{"Ångström", "Angstrom"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FoldASCII(tt.in); got != tt.want {
			t.Errorf("FoldASCII(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"crate", "crate"},
		{"Crate_01-b", "Crate_01-b"},
		{"crate.001", "crate_001"},
		{"my crate", "my_crate"},
		{"Café", "Cafe"},
		{"箱", "_"},
		{"a/b\\c", "a_b_c"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`props\crates`, "props/crates"},
		{"props/crates/", "props/crates"},
		{"/", "/"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizePath(tt.in); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEqualFold(t *testing.T) {
	if !EqualFold("COL_Café", "col_cafe") {
		t.Error("EqualFold should ignore case and accents")
	}
	if EqualFold("crate", "crates") {
		t.Error("EqualFold matched different names")
	}
}
