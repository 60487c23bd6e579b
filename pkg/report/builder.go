package report

import "github.com/cuemby/addoncrawl/pkg/access"

// Builder accumulates the pieces of a visitor report before the
// scheduler knows which node it's attached to. A visitor builds one
// per call via NewErrorBuilder/NewWarningBuilder/NewInfoBuilder,
// chains Tip/Log/Internal as needed, then hands it to the scheduler,
// which calls Build once it has the child/parent descriptors.
//
// Grounded on kodi_recurse/src/report_builder.rs's ReportBuilder.
type Builder struct {
	summary  string
	severity Severity
	tips     []string
	logs     []LogGroup
	internal bool
}

// NewErrorBuilder starts a SeverityError visitor report.
func NewErrorBuilder(summary string) *Builder {
	return &Builder{summary: summary, severity: SeverityError}
}

// NewWarningBuilder starts a SeverityWarning visitor report.
func NewWarningBuilder(summary string) *Builder {
	return &Builder{summary: summary, severity: SeverityWarning}
}

// NewInfoBuilder starts a SeverityInfo visitor report.
func NewInfoBuilder(summary string) *Builder {
	return &Builder{summary: summary, severity: SeverityInfo}
}

// Internal marks whether this report indicates a crawler bug rather
// than a plugin bug. Defaults to false.
func (b *Builder) Internal(internal bool) *Builder {
	b.internal = internal
	return b
}

// Tip appends one advisory string.
func (b *Builder) Tip(tip string) *Builder {
	b.tips = append(b.tips, tip)
	return b
}

// Log appends one labeled group of captured output lines.
func (b *Builder) Log(label string, lines []string) *Builder {
	b.logs = append(b.logs, LogGroup{Label: label, Lines: lines})
	return b
}

// Build finalizes the report for the given node.
func (b *Builder) Build(child access.Descriptor, parent *access.Descriptor) Report {
	return NewVisitor(child, parent, b.severity, b.summary, b.tips, b.logs, b.internal)
}
