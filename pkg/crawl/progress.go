package crawl

import "github.com/cuemby/addoncrawl/pkg/report"

// ProgressSink is the optional, caller-supplied progress observer
// described in spec.md §4.E. Implementations must be safe for
// concurrent use; the scheduler calls it from every node's own
// goroutine.
type ProgressSink interface {
	// AddTotal is called once per node whose visitor chose to descend,
	// with the number of children it enumerated (0 for a leaf). It is
	// not called for skipped nodes, failed resolves, or nodes whose
	// visitor returned ok=false.
	AddTotal(n int)
	// AddFinished is called once per node as soon as that node's own
	// visit (resolve, skip check, visitor call) completes, regardless
	// of whether it goes on to spawn children.
	AddFinished(n int)
	// Report is called with every report as it's produced, in addition
	// to it being appended to the final returned collection.
	Report(r report.Report)
	// Finish is called exactly once, after the crawl has completed.
	Finish()
}
