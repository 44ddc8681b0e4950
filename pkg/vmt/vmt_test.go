package vmt

import (
	"os"
	"path/filepath"
	"testing"
)

func TestContent(t *testing.T) {
	want := "VertexLitGeneric\n{\n\t$basetexture \"models/props/metal\"\n}"
	if got := Content("models/props", "metal"); got != want {
		t.Errorf("Content() = %q, want %q", got, want)
	}
	if got := Content("models/props/", "metal"); got != want {
		t.Errorf("Content() with trailing slash = %q, want %q", got, want)
	}
}

func TestDir(t *testing.T) {
	root := filepath.FromSlash("/game")
	tests := []struct {
		searchPath string
		want       string
	}{
		{"models/props", filepath.Join(root, "materials", "props")},
		{"models/props/crates", filepath.Join(root, "materials", "props", "crates")},
		{"models", filepath.Join(root, "materials")},
		{"custom/", filepath.Join(root, "materials", "custom")},
	}
	for _, tt := range tests {
		if got := Dir(root, tt.searchPath); got != tt.want {
			t.Errorf("Dir(%q) = %q, want %q", tt.searchPath, got, tt.want)
		}
	}
}

func TestWritePlaceholders(t *testing.T) {
	root := t.TempDir()

	created, err := WritePlaceholders(root, "models/props", []string{"metal", "", "wood"})
	if err != nil {
		t.Fatalf("WritePlaceholders() error = %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("created %d files, want 2", len(created))
	}

	data, err := os.ReadFile(filepath.Join(root, "materials", "props", "metal.vmt"))
	if err != nil {
		t.Fatalf("reading placeholder: %v", err)
	}
	if string(data) != Content("models/props", "metal") {
		t.Errorf("placeholder content = %q", data)
	}
}

func TestWritePlaceholdersKeepsExisting(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "materials", "props")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	existing := filepath.Join(dir, "metal.vmt")
	if err := os.WriteFile(existing, []byte("hand made"), 0644); err != nil {
		t.Fatal(err)
	}

	created, err := WritePlaceholders(root, "models/props", []string{"metal", "wood"})
	if err != nil {
		t.Fatalf("WritePlaceholders() error = %v", err)
	}
	if len(created) != 1 || filepath.Base(created[0]) != "wood.vmt" {
		t.Errorf("created = %v, want only wood.vmt", created)
	}

	data, _ := os.ReadFile(existing)
	if string(data) != "hand made" {
		t.Errorf("existing file overwritten: %q", data)
	}
}
