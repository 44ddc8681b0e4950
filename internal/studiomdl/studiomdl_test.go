package studiomdl

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgs(t *testing.T) {
	tests := []struct {
		name string
		c    Compiler
		want []string
	}{
		{
			name: "all flags",
			c:    Compiler{GameDir: "/hl2", Quiet: true, NoWarnings: true, NoX360: true, NoP4: true, FastBuild: true},
			want: []string{"-game", "/hl2", "-nop4", "-quiet", "-fastbuild", "-nowarnings", "-nox360", "qc_crate.qc"},
		},
		{
			name: "bare",
			c:    Compiler{GameDir: "/hl2"},
			want: []string{"-game", "/hl2", "qc_crate.qc"},
		},
		{
			name: "extra args",
			c:    Compiler{GameDir: "/my game", NoP4: true, ExtraArgs: `-verbose -x "two words"`},
			want: []string{"-game", "/my game", "-nop4", "-verbose", "-x", "two words", "qc_crate.qc"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := tt.c.Args("qc_crate.qc")
			require.NoError(t, err)
			assert.Equal(t, tt.want, args)
		})
	}
}

func TestArgsBadQuoting(t *testing.T) {
	c := Compiler{ExtraArgs: `-x "unterminated`}
	_, err := c.Args("a.qc")
	assert.Error(t, err)
}

func TestCompileNotFound(t *testing.T) {
	c := Compiler{Path: filepath.Join(t.TempDir(), "missing-studiomdl")}
	err := c.Compile(context.Background(), "a.qc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func script(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake compiler")
	}
	path := filepath.Join(t.TempDir(), "studiomdl")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func TestCompileSuccess(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "args.txt")
	path := script(t, `echo "$@" > `+out+"\n")

	c := Compiler{Path: path, GameDir: "/hl2", Quiet: true}
	require.NoError(t, c.Compile(context.Background(), "qc_crate.qc"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "-game /hl2 -quiet qc_crate.qc\n", string(data))
}

func TestCompileFailure(t *testing.T) {
	path := script(t, "echo 'ERROR: bad smd' >&2\nexit 3\n")

	c := Compiler{Path: path, GameDir: "/hl2"}
	err := c.Compile(context.Background(), "qc_crate.qc")

	var ce *CompileError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Equal(t, 3, ce.ExitCode)
	assert.Equal(t, "qc_crate.qc", ce.QC)
	assert.Contains(t, ce.Error(), "ERROR: bad smd")
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestCompileFailureFallsBackToStdout(t *testing.T) {
	path := script(t, "echo 'line one'\necho 'ERROR: missing material'\nexit 1\n")

	c := Compiler{Path: path}
	err := c.Compile(context.Background(), "a.qc")

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, ce.Stderr, "ERROR: missing material")
}

func TestLastLines(t *testing.T) {
	assert.Equal(t, "c\nd", lastLines("a\nb\nc\nd\n", 2))
	assert.Equal(t, "a", lastLines("a", 5))
}
