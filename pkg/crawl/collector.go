package crawl

import (
	"sync"

	"github.com/cuemby/addoncrawl/pkg/report"
)

// collector owns the shared report slice (spec.md §5: "protected by a
// mutex; append is the only operation") and the keep-going decision of
// whether appending a report should poison the gate.
type collector struct {
	mu        sync.Mutex
	reports   []report.Report
	keepGoing bool
	gate      *gate
	progress  ProgressSink
}

// add appends r and, if keepGoing is false, poisons the gate. The
// report-collection lock is released before the gate is touched, per
// spec.md §5's lock ordering (counter before reports, never the
// reverse, and never both held at once here).
func (c *collector) add(r report.Report) {
	c.mu.Lock()
	c.reports = append(c.reports, r)
	c.mu.Unlock()

	if c.progress != nil {
		c.progress.Report(r)
	}
	if !c.keepGoing {
		c.gate.poison()
	}
}

func (c *collector) addTotal(n int) {
	if c.progress != nil {
		c.progress.AddTotal(n)
	}
}

func (c *collector) finishedOne() {
	if c.progress != nil {
		c.progress.AddFinished(1)
	}
}

func (c *collector) snapshot() []report.Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]report.Report, len(c.reports))
	copy(out, c.reports)
	return out
}
