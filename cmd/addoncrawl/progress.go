package main

import (
	"github.com/cuemby/addoncrawl/pkg/metrics"
	"github.com/cuemby/addoncrawl/pkg/report"
)

// progressSink adapts a crawl's progress events onto the metrics
// package's gauges and counters. It lives here rather than in
// pkg/metrics because pkg/report (needed for its Report method's
// parameter type) already sits downstream of pkg/metrics via
// pkg/resolver; importing it back from pkg/metrics would cycle.
type progressSink struct{}

func newProgressSink() *progressSink { return &progressSink{} }

func (p *progressSink) AddTotal(n int)    { metrics.NodesPending.Add(float64(n)) }
func (p *progressSink) AddFinished(n int) { metrics.NodesPending.Sub(float64(n)); metrics.NodesVisitedTotal.Add(float64(n)) }

func (p *progressSink) Report(r report.Report) {
	metrics.ReportsTotal.WithLabelValues(reportKindLabel(r.Kind), r.Severity().String()).Inc()
}

func (p *progressSink) Finish() { metrics.NodesPending.Set(0) }

func reportKindLabel(k report.Kind) string {
	switch k {
	case report.KindVisitor:
		return "visitor"
	case report.KindResolverFailure:
		return "resolver_failure"
	case report.KindWorkerPanic:
		return "worker_panic"
	default:
		return "unknown"
	}
}
