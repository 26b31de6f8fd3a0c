// Package stage orchestrates silver runs: read bronze, flatten, overwrite
// silver.
package stage

import "fmt"

// RunResult tracks counts and errors from one silver run.
type RunResult struct {
	RecordsRead       int
	MalformedPayloads int

	BaseRows    int
	TypeRows    int
	AbilityRows int
	StatRows    int
	MoveRows    int

	DryRun bool

	Errors []string
}

// AddError records an error message.
func (r *RunResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *RunResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the run.
func (r *RunResult) Summary() string {
	return fmt.Sprintf(
		"records=%d malformed=%d base=%d types=%d abilities=%d stats=%d moves=%d errors=%d",
		r.RecordsRead, r.MalformedPayloads,
		r.BaseRows, r.TypeRows, r.AbilityRows, r.StatRows, r.MoveRows,
		len(r.Errors),
	)
}
