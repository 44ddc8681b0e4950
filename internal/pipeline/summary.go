package pipeline

import (
	"fmt"
	"strings"
)

// Outcome classifies a finished batch.
type Outcome int

// Batch outcomes.
const (
	Nothing   Outcome = iota // No object was eligible
	Succeeded                // Every object compiled
	Partial                  // Some objects compiled, some failed
	Failed                   // No object compiled and errors occurred
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case Partial:
		return "partial"
	case Failed:
		return "failed"
	default:
		return "nothing"
	}
}

// ObjectError is a failure attributed to one scene object.
type ObjectError struct {
	Object string
	Err    error
}

func (e ObjectError) Error() string {
	return fmt.Sprintf("%s: %v", e.Object, e.Err)
}

func (e ObjectError) Unwrap() error {
	return e.Err
}

// Summary is the result of a batch run.
type Summary struct {
	Compiled int
	Errors   []ObjectError
	Warnings []string

	// Aborted is set when a fatal error stopped the batch early.
	Aborted bool
}

// Outcome classifies the summary.
func (s *Summary) Outcome() Outcome {
	switch {
	case s.Compiled > 0 && len(s.Errors) == 0:
		return Succeeded
	case s.Compiled > 0:
		return Partial
	case len(s.Errors) == 0:
		return Nothing
	default:
		return Failed
	}
}

// String returns a one-line report of the batch.
func (s *Summary) String() string {
	var b strings.Builder
	switch s.Outcome() {
	case Succeeded:
		fmt.Fprintf(&b, "compiled %d model(s)", s.Compiled)
	case Partial:
		fmt.Fprintf(&b, "compiled %d model(s) with %d error(s)", s.Compiled, len(s.Errors))
	case Failed:
		fmt.Fprintf(&b, "failed to compile any model: %d error(s)", len(s.Errors))
	default:
		b.WriteString("no visible mesh objects found, nothing compiled")
	}
	if s.Aborted {
		b.WriteString(" (aborted)")
	}
	if len(s.Warnings) > 0 {
		fmt.Fprintf(&b, ", %d warning(s)", len(s.Warnings))
	}
	return b.String()
}
