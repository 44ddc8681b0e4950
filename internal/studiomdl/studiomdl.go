// Package studiomdl runs the external Source model compiler on a QC script.
package studiomdl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mattn/go-shellwords"
)

// ErrNotFound is returned when the compiler executable does not exist.
// It is fatal for a batch: no further object can be compiled.
var ErrNotFound = errors.New("studiomdl not found")

// CompileError reports a non-zero compiler exit.
type CompileError struct {
	QC       string
	ExitCode int
	Stderr   string
}

func (e *CompileError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("studiomdl failed on %s (exit %d)", e.QC, e.ExitCode)
	}
	return fmt.Sprintf("studiomdl failed on %s (exit %d): %s", e.QC, e.ExitCode, msg)
}

// Compiler describes a studiomdl installation and the flags it runs with.
type Compiler struct {
	Path       string
	GameDir    string
	Quiet      bool
	NoWarnings bool
	NoX360     bool
	NoP4       bool
	FastBuild  bool
	ExtraArgs  string // Shell-quoted, appended before the QC path
}

// Args returns the command line arguments, without the executable, used to
// compile qcPath.
func (c *Compiler) Args(qcPath string) ([]string, error) {
	args := []string{"-game", c.GameDir}
	if c.NoP4 {
		args = append(args, "-nop4")
	}
	if c.Quiet {
		args = append(args, "-quiet")
	}
	if c.FastBuild {
		args = append(args, "-fastbuild")
	}
	if c.NoWarnings {
		args = append(args, "-nowarnings")
	}
	if c.NoX360 {
		args = append(args, "-nox360")
	}

	if c.ExtraArgs != "" {
		extra, err := shellwords.Parse(c.ExtraArgs)
		if err != nil {
			return nil, fmt.Errorf("parsing extra args %q: %w", c.ExtraArgs, err)
		}
		args = append(args, extra...)
	}

	return append(args, qcPath), nil
}

// Check reports ErrNotFound when the executable cannot be resolved.
func (c *Compiler) Check() error {
	if _, err := exec.LookPath(c.Path); err != nil {
		return fmt.Errorf("%w at %s: %v", ErrNotFound, c.Path, err)
	}
	return nil
}

// Compile runs the compiler on qcPath and blocks until it exits.
func (c *Compiler) Compile(ctx context.Context, qcPath string) error {
	if err := c.Check(); err != nil {
		return err
	}
	args, err := c.Args(qcPath)
	if err != nil {
		return err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w at %s", ErrNotFound, c.Path)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// studiomdl reports most errors on stdout
		out := stderr.String()
		if strings.TrimSpace(out) == "" {
			out = lastLines(stdout.String(), 20)
		}
		return &CompileError{QC: qcPath, ExitCode: exitErr.ExitCode(), Stderr: out}
	}
	return fmt.Errorf("running studiomdl: %w", err)
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
