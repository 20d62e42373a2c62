package batch

import (
	"log/slog"

	"github.com/CTAG07/coursegen/pkg/resolve"
)

// State is where a course stands in a run. Emitted and failed are terminal.
type State string

const (
	StatePending State = "pending"
	StateEmitted State = "emitted"
	StateFailed  State = "failed"
)

// Result is the outcome for one course.
type Result struct {
	ID    int
	Title string
	// Dir is the course directory, empty when the course failed before naming.
	Dir string
	// Line is the source line of the record or fragment, 0 when unknown.
	Line     int
	State    State
	Tier     resolve.Tier
	Category string
	Err      error
}

func (r Result) fail(logger *slog.Logger, stage string, err error) Result {
	r.State = StateFailed
	r.Err = err
	logger.Warn("Course failed", "stage", stage, "dir", r.Dir, "error", err)
	return r
}

// Summary is the ordered outcome of a run.
type Summary struct {
	RunID   string
	Results []Result
}

// Emitted counts courses whose artifacts were written.
func (s Summary) Emitted() int {
	return s.count(StateEmitted)
}

// Failed counts courses that could not be generated, including malformed fragments.
func (s Summary) Failed() int {
	return s.count(StateFailed)
}

// Failures returns the failed results in order.
func (s Summary) Failures() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.State == StateFailed {
			out = append(out, r)
		}
	}
	return out
}

func (s Summary) count(state State) int {
	n := 0
	for _, r := range s.Results {
		if r.State == state {
			n++
		}
	}
	return n
}
