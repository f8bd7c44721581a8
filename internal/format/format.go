// Package format defines the value type that identifies a processing
// artifact: a climate variable at a specific processing stage. Formats are
// immutable and comparable, and are used throughout the planner as map and
// set keys.
package format

import "fmt"

// Variable names a physical quantity being processed, e.g. "tas" or "pr".
// The set of variables is open; it is defined by the plan files, not by code.
type Variable string

// Stage is the processing phase an artifact belongs to. The set is closed
// and has a domain ordering: preprocessed -> timeseries -> rechunked. Not
// every processor uses every stage.
type Stage string

const (
	StagePreprocessed Stage = "preprocessed"
	StageTimeseries   Stage = "timeseries"
	StageRechunked    Stage = "rechunked"
)

// ParseStage converts a user-supplied string into a Stage.
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case StagePreprocessed, StageTimeseries, StageRechunked:
		return Stage(s), nil
	}
	return "", fmt.Errorf("unknown processing stage %q", s)
}

// Format identifies one processing artifact as a (variable, stage) pair.
// Two Formats are equal iff both fields are equal.
type Format struct {
	Variable Variable
	Stage    Stage
}

// String renders the format as "variable:stage" for diagnostics.
func (f Format) String() string {
	return fmt.Sprintf("%s:%s", f.Variable, f.Stage)
}
