package main

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/cuemby/addoncrawl/pkg/access"
	"github.com/cuemby/addoncrawl/pkg/metrics"
	"github.com/cuemby/addoncrawl/pkg/report"
)

func TestProgressSinkReportIncrementsByKindAndSeverity(t *testing.T) {
	p := newProgressSink()
	before := testutil.ToFloat64(metrics.ReportsTotal.WithLabelValues("resolver_failure", "error"))

	p.Report(report.NewResolverFailure(access.New("p", "", access.Config{}), errBoom{}))

	after := testutil.ToFloat64(metrics.ReportsTotal.WithLabelValues("resolver_failure", "error"))
	assert.Equal(t, before+1, after)
}

func TestProgressSinkAddTotalAndAddFinishedTrackPending(t *testing.T) {
	p := newProgressSink()
	p.AddTotal(3)
	p.AddFinished(1)
	p.Finish()
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.NodesPending))
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
