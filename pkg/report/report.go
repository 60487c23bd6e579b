package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cuemby/addoncrawl/pkg/access"
	"github.com/cuemby/addoncrawl/pkg/invocation"
	"github.com/cuemby/addoncrawl/pkg/reproduce"
	"github.com/cuemby/addoncrawl/pkg/resolver"
)

// Severity classifies a report for display: roughly how urgently a
// human needs to look at it.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Kind discriminates the three report variants.
type Kind int

const (
	// KindVisitor is a report the user-supplied visitor chose to emit.
	KindVisitor Kind = iota
	// KindResolverFailure is a failed §4.B resolve call.
	KindResolverFailure
	// KindWorkerPanic is a recovered panic in a scheduler worker.
	KindWorkerPanic
)

// LogGroup is one labeled, truncated group of captured output lines,
// e.g. {"last 20 log lines", [...]}.
type LogGroup struct {
	Label string
	Lines []string
}

// Report is the tagged union spec.md §4.D describes. Only the fields
// relevant to Kind are meaningful; see the constructors.
type Report struct {
	Kind   Kind
	Child  access.Descriptor
	Parent *access.Descriptor

	// Set by NewVisitor.
	visitorSeverity Severity
	visitorSummary  string
	visitorTips     []string
	visitorLogs     []LogGroup
	visitorInternal bool

	// Set by NewResolverFailure.
	resolverErr error
}

// NewVisitor builds a KindVisitor report. internal marks whether the
// visitor considers this its own bug versus the plugin's.
func NewVisitor(child access.Descriptor, parent *access.Descriptor, severity Severity, summary string, tips []string, logs []LogGroup, internal bool) Report {
	return Report{
		Kind:            KindVisitor,
		Child:           child,
		Parent:          parent,
		visitorSeverity: severity,
		visitorSummary:  summary,
		visitorTips:     tips,
		visitorLogs:     logs,
		visitorInternal: internal,
	}
}

// NewResolverFailure builds a KindResolverFailure report from one of
// the resolver package's three error types.
func NewResolverFailure(child access.Descriptor, err error) Report {
	return Report{Kind: KindResolverFailure, Child: child, resolverErr: err}
}

// NewWorkerPanic builds a KindWorkerPanic report.
func NewWorkerPanic(child access.Descriptor, parent *access.Descriptor) Report {
	return Report{Kind: KindWorkerPanic, Child: child, Parent: parent}
}

// Severity returns the report's severity. Resolver failures and
// worker panics are always SeverityError; a visitor report carries its
// own.
func (r Report) Severity() Severity {
	switch r.Kind {
	case KindVisitor:
		return r.visitorSeverity
	default:
		return SeverityError
	}
}

// Summary returns a one-line human-readable description.
func (r Report) Summary() string {
	switch r.Kind {
	case KindVisitor:
		return r.visitorSummary
	case KindResolverFailure:
		return fmt.Sprintf("can't get data from a plugin: %v", r.resolverErr)
	case KindWorkerPanic:
		return "a worker panicked unexpectedly"
	default:
		return fmt.Sprintf("report.Kind(%d)", int(r.Kind))
	}
}

// IsInternal reports whether this is (heuristically) a bug in the
// crawler itself rather than in the plugin it's driving. Visitor
// reports carry their own flag; a resolver failure is internal unless
// its cause is a plugin nonzero exit; a worker panic is always
// internal.
func (r Report) IsInternal() bool {
	switch r.Kind {
	case KindVisitor:
		return r.visitorInternal
	case KindResolverFailure:
		var nz *resolver.NonZeroExit
		return !errors.As(r.resolverErr, &nz)
	default:
		return true
	}
}

// Logs returns the captured-output groups relevant to this report: the
// visitor's own logs for a visitor report, the truncated resolver
// output for a nonzero-exit resolver failure, and none for anything
// else.
func (r Report) Logs() []LogGroup {
	switch r.Kind {
	case KindVisitor:
		return r.visitorLogs
	case KindResolverFailure:
		var nz *resolver.NonZeroExit
		if errors.As(r.resolverErr, &nz) && nz.HasOutput {
			return []LogGroup{truncateLog(nz.Output)}
		}
		return nil
	default:
		return nil
	}
}

// Tips returns the report's advisory strings, finishing with an
// auto-generated reproducer command when ran is non-nil. ran is the
// invocation descriptor the crawl was actually started with.
func (r Report) Tips(ran *invocation.Invocation) []string {
	var tips []string

	if r.Kind == KindVisitor {
		tips = append(tips, r.visitorTips...)
	}

	if r.Kind == KindResolverFailure {
		var nz *resolver.NonZeroExit
		if errors.As(r.resolverErr, &nz) && !nz.HasOutput {
			tips = append(tips, "log not available. To have it displayed in the report, run without the flag that disables output capture.")
		}
	}

	if r.IsInternal() {
		tips = append(tips, "this is likely an issue in the crawler itself")
	}

	if ran != nil {
		tips = append(tips, "to reproduce this error, run: "+reproduce.Build(ran, r.Child, r.Parent))
	}

	return tips
}

// truncateLog splits raw on newlines, drops trailing empty lines, then
// keeps at most the last 20 remaining lines, labeling the group
// according to whether anything was dropped.
func truncateLog(raw string) LogGroup {
	lines := strings.Split(raw, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	allIncluded := true
	for len(lines) > 20 {
		lines = lines[1:]
		allIncluded = false
	}

	var label string
	switch {
	case len(lines) == 0:
		label = "the plugin had no log output"
	case allIncluded && len(lines) == 1:
		label = "the only log line"
	case allIncluded:
		label = fmt.Sprintf("all %d log lines", len(lines))
	default:
		label = fmt.Sprintf("last %d log lines", len(lines))
	}

	return LogGroup{Label: label, Lines: lines}
}
