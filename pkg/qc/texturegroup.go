package qc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Texture group parse errors.
var (
	ErrNoTextureGroup  = errors.New("qc: no $texturegroup block")
	ErrBadTextureGroup = errors.New("qc: malformed $texturegroup block")
)

// ParseTextureGroup extracts the material rows of the first $texturegroup
// block in a QC script. Row 0 is the base row.
func ParseTextureGroup(r io.Reader) ([][]string, error) {
	sc := bufio.NewScanner(r)

	found := false
	for sc.Scan() {
		if strings.HasPrefix(strings.TrimSpace(sc.Text()), "$texturegroup") {
			found = true
			break
		}
	}
	if !found {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNoTextureGroup
	}

	var rows [][]string
	depth := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case line == "{" && depth == 0:
			depth = 1
		case line == "}" && depth == 1:
			return rows, nil
		case depth == 1 && strings.HasPrefix(line, "{") && strings.HasSuffix(line, "}"):
			row, err := parseRow(strings.TrimSuffix(strings.TrimPrefix(line, "{"), "}"))
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		default:
			return nil, fmt.Errorf("%w: unexpected %q", ErrBadTextureGroup, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: unterminated block", ErrBadTextureGroup)
}

// parseRow splits a sequence of double-quoted names.
func parseRow(s string) ([]string, error) {
	var row []string
	for {
		s = strings.TrimSpace(s)
		if s == "" {
			return row, nil
		}
		if s[0] != '"' {
			return nil, fmt.Errorf("%w: expected quoted name in %q", ErrBadTextureGroup, s)
		}
		end := strings.IndexByte(s[1:], '"')
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated name in %q", ErrBadTextureGroup, s)
		}
		row = append(row, s[1:end+1])
		s = s[end+2:]
	}
}
