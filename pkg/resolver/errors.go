package resolver

import "fmt"

// SpawnFailure means the resolver helper's sub-process could not be
// created at all (exec.Start failed).
type SpawnFailure struct {
	Cause error
}

func (e *SpawnFailure) Error() string {
	return fmt.Sprintf("couldn't spawn the resolver helper: %v", e.Cause)
}

func (e *SpawnFailure) Unwrap() error { return e.Cause }

// NonZeroExit means the resolver helper ran and exited with a nonzero
// status: an external plugin failure, not a crawler bug. Output is the
// captured, merged stdout/stderr; HasOutput is false when output
// capture was disabled for the call, in which case Tips should advise
// rerunning with capture enabled.
type NonZeroExit struct {
	Output    string
	HasOutput bool
	Status    int
}

func (e *NonZeroExit) Error() string {
	return fmt.Sprintf("the resolver helper exited with status %d", e.Status)
}

// IOStage names the step of a resolver call that failed with an I/O
// error, distinguishing the three possible failure points named in
// spec.md §4.B/§7.
type IOStage string

const (
	StageTempDir   IOStage = "create temporary directory"
	StageOpenFile  IOStage = "open result file"
	StageParseJSON IOStage = "parse result JSON"
)

// IOFailure wraps a local filesystem or decoding error unrelated to
// the plugin itself: temp-directory creation, opening the result
// file, or parsing it as JSON.
type IOFailure struct {
	Stage IOStage
	Cause error
}

func (e *IOFailure) Error() string {
	return fmt.Sprintf("couldn't %s: %v", e.Stage, e.Cause)
}

func (e *IOFailure) Unwrap() error { return e.Cause }
