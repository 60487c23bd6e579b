package resolver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/addoncrawl/pkg/access"
)

// fakeHelper writes a tiny shell script standing in for the bundled
// resolver helper: it ignores every argument except the one it needs
// (the output path, argv[3] after the script path) and the exit code
// it's told to produce via the FAKE_HELPER_EXIT env var.
func fakeHelper(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fake-helper.sh")
	script := `#!/bin/sh
out="$4"
if [ -n "$FAKE_HELPER_STDERR" ]; then
	echo "$FAKE_HELPER_STDERR" 1>&2
fi
if [ -n "$FAKE_HELPER_EXIT" ] && [ "$FAKE_HELPER_EXIT" != "0" ]; then
	exit "$FAKE_HELPER_EXIT"
fi
echo '{"type":"Content","sub_content":[],"resolved_listitem":null}' > "$out"
exit 0
`
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func newTestResolver(t *testing.T, capture bool) *Resolver {
	t.Helper()
	r, err := New(Config{
		RuntimeCommand: []string{"sh", fakeHelper(t)},
		PluginRoot:     "/plugins",
		CacheTTL:       time.Minute,
		CacheCapacity:  16,
		CaptureOutput:  capture,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestResolveSuccessParsesResultAndCaches(t *testing.T) {
	r := newTestResolver(t, true)
	d := access.New("plugin://a/b", "", access.Config{})

	result, err := r.Resolve(d)
	require.NoError(t, err)
	assert.Equal(t, 0, int(result.Kind))
	assert.False(t, result.Page.IsLeaf())

	cached, ok := r.cache.Get(d)
	require.True(t, ok)
	assert.Equal(t, result, cached)
}

func TestResolveNonZeroExitCapturesOutput(t *testing.T) {
	r := newTestResolver(t, true)
	t.Setenv("FAKE_HELPER_EXIT", "2")
	t.Setenv("FAKE_HELPER_STDERR", "boom")

	_, err := r.Resolve(access.New("plugin://broken", "", access.Config{}))
	require.Error(t, err)

	var nz *NonZeroExit
	require.ErrorAs(t, err, &nz)
	assert.Equal(t, 2, nz.Status)
	assert.Contains(t, nz.Output, "boom")
	assert.True(t, nz.HasOutput)
}

func TestResolveNonZeroExitWithoutCapture(t *testing.T) {
	r := newTestResolver(t, false)
	t.Setenv("FAKE_HELPER_EXIT", "1")

	_, err := r.Resolve(access.New("plugin://broken", "", access.Config{}))
	require.Error(t, err)

	var nz *NonZeroExit
	require.ErrorAs(t, err, &nz)
	assert.False(t, nz.HasOutput)
	assert.Empty(t, nz.Output)
}

func TestResolveSpawnFailureForMissingRuntime(t *testing.T) {
	r, err := New(Config{
		RuntimeCommand: []string{"/no/such/interpreter"},
		CacheCapacity:  4,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	_, err = r.Resolve(access.New("plugin://a", "", access.Config{}))
	require.Error(t, err)

	var sf *SpawnFailure
	require.ErrorAs(t, err, &sf)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, expandHome("~"))
	assert.Equal(t, filepath.Join(home, "plugins"), expandHome("~/plugins"))
	assert.Equal(t, "/plugins", expandHome("/plugins"))
	assert.Equal(t, "~user/plugins", expandHome("~user/plugins"))
	assert.Equal(t, "", expandHome(""))
}

func TestNewExpandsPluginRootHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	r, err := New(Config{
		RuntimeCommand: []string{"sh", fakeHelper(t)},
		PluginRoot:     "~/plugins",
		CacheCapacity:  4,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	assert.Equal(t, filepath.Join(home, "plugins"), r.cfg.PluginRoot)
}

func TestBuildArgvOrdersInputsAndPreferences(t *testing.T) {
	r := newTestResolver(t, true)
	cfg := access.Config{}
	cfg.Language.Values = []string{"en"}
	cfg.Resolution.Values = []string{"1080p"}
	d := access.New("plugin://a", "x%3Ay", cfg)

	argv := r.buildArgv(d, "/tmp/out.json")

	assert.Contains(t, argv, "-I")
	assert.Contains(t, argv, "-AL")
	assert.Contains(t, argv, "language_order")
	assert.Contains(t, argv, "en")
	assert.Contains(t, argv, "resolution_order")
	assert.Contains(t, argv, "1080p")
	assert.Equal(t, "plugin://a", argv[len(r.cfg.RuntimeCommand)+2])
}
