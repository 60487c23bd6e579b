package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cuemby/addoncrawl/pkg/access"
	"github.com/cuemby/addoncrawl/pkg/invocation"
	"github.com/cuemby/addoncrawl/pkg/resolver"
)

func TestVisitorBuilderProducesReport(t *testing.T) {
	child := access.New("plugin://a", "", access.Config{})
	r := NewErrorBuilder("leaf carries children too").
		Internal(true).
		Tip("check the plugin's get_content implementation").
		Log("stdout", []string{"line one"}).
		Build(child, nil)

	assert.Equal(t, KindVisitor, r.Kind)
	assert.Equal(t, SeverityError, r.Severity())
	assert.Equal(t, "leaf carries children too", r.Summary())
	assert.True(t, r.IsInternal())
	assert.Len(t, r.Logs(), 1)
}

func TestResolverFailureIsNotInternalForNonZeroExit(t *testing.T) {
	child := access.New("plugin://broken", "", access.Config{})
	err := &resolver.NonZeroExit{Output: "boom\n", HasOutput: true, Status: 2}
	r := NewResolverFailure(child, err)

	assert.Equal(t, SeverityError, r.Severity())
	assert.False(t, r.IsInternal())
	logs := r.Logs()
	assert.Len(t, logs, 1)
	assert.Equal(t, []string{"boom"}, logs[0].Lines)
}

func TestResolverFailureIsInternalForSpawnFailure(t *testing.T) {
	child := access.New("plugin://broken", "", access.Config{})
	err := &resolver.SpawnFailure{}
	r := NewResolverFailure(child, err)

	assert.True(t, r.IsInternal())
	assert.Empty(t, r.Logs())
}

func TestWorkerPanicAlwaysInternal(t *testing.T) {
	child := access.New("plugin://a", "", access.Config{})
	r := NewWorkerPanic(child, nil)

	assert.True(t, r.IsInternal())
	assert.Equal(t, "a worker panicked unexpectedly", r.Summary())
}

func TestTipsIncludesReproducerCommand(t *testing.T) {
	ran := invocation.New("addoncrawl")
	ran.Order = []string{"path", "jobs", "keep-going"}
	ran.SetArg("path", "plugin://root")
	ran.SetArg("jobs", "8")
	ran.SetBool("keep-going", true)

	child := access.New("plugin://root/child", "", access.Config{})
	r := NewResolverFailure(child, &resolver.NonZeroExit{Status: 1})

	tips := r.Tips(ran)
	assert.NotEmpty(t, tips)
	last := tips[len(tips)-1]
	assert.Contains(t, last, "to reproduce this error, run:")
	assert.Contains(t, last, "plugin://root/child")
}

func TestTruncateLogLabelsByLineCount(t *testing.T) {
	g := truncateLog("a\nb\nc\n\n")
	assert.Equal(t, "all 3 log lines", g.Label)
	assert.Equal(t, []string{"a", "b", "c"}, g.Lines)

	single := truncateLog("only\n")
	assert.Equal(t, "the only log line", single.Label)

	empty := truncateLog("")
	assert.Equal(t, "the plugin had no log output", empty.Label)
}
