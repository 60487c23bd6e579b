package resolver

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cuemby/addoncrawl/pkg/access"
	"github.com/cuemby/addoncrawl/pkg/cache"
	"github.com/cuemby/addoncrawl/pkg/log"
	"github.com/cuemby/addoncrawl/pkg/metrics"
	"github.com/cuemby/addoncrawl/pkg/model"
	"github.com/cuemby/addoncrawl/pkg/sandbox"
)

//go:embed assets/*
var assets embed.FS

// Config configures one Resolver instance: the resolver runtime
// command (e.g. "python3"), the plugin-root path, the cache's
// lifetime/capacity, and the optional sandbox wrapper.
type Config struct {
	// RuntimeCommand is the interpreter (or binary) that runs the
	// extracted helper script, e.g. []string{"python3"}.
	RuntimeCommand []string
	PluginRoot     string
	CacheTTL       time.Duration
	CacheCapacity  int

	// Sandbox, when non-nil, wraps every call per pkg/sandbox's
	// contract. Its PluginRoot and ReadWriteDir fields are overwritten
	// per call; only WrapperCommand and ExtraReadOnly are read from the
	// caller-supplied value.
	Sandbox *sandbox.Config

	// CaptureOutput controls whether stdout/stderr of the helper
	// sub-process is captured and attached to a NonZeroExit error.
	// Disabling it is how the reproducer's "--no-catch-output" flag takes
	// effect (spec.md §4.F): a rerun with capture off reproduces timing
	// more faithfully for plugins sensitive to pipe buffering.
	CaptureOutput bool
}

// Resolver runs the external helper sub-process once per uncached
// AccessDescriptor, memoizing successes in an internal timed cache.
// One Resolver owns one process-wide temporary directory holding the
// extracted helper script, released by Close.
type Resolver struct {
	cfg        Config
	cache      *cache.Cache
	scriptPath string
	scriptDir  string
}

// New extracts the embedded helper script into a fresh process-owned
// temporary directory and builds a Resolver ready to serve Resolve
// calls. Grounded on pkg/embedded/containerd.go's extractBinary: embed
// the payload, write it out once, keep the directory alive for the
// life of the owner.
func New(cfg Config) (*Resolver, error) {
	cfg.PluginRoot = expandHome(cfg.PluginRoot)

	dir, err := os.MkdirTemp("", "addoncrawl-helper-*")
	if err != nil {
		return nil, &IOFailure{Stage: StageTempDir, Cause: err}
	}

	data, err := assets.ReadFile("assets/resolve.py")
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("resolver: reading embedded helper script: %w", err)
	}

	scriptPath := filepath.Join(dir, "resolve.py")
	if err := os.WriteFile(scriptPath, data, 0o755); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("resolver: extracting embedded helper script: %w", err)
	}

	return &Resolver{
		cfg:        cfg,
		cache:      cache.New(cfg.CacheTTL, cfg.CacheCapacity),
		scriptPath: scriptPath,
		scriptDir:  dir,
	}, nil
}

// expandHome expands a leading "~" or "~/..." in path to the current
// user's home directory, per spec.md §4.B ("the plugin-root is
// home-expanded at construction time"). Any other path, including one
// that merely contains a "~" past the first character, is returned
// unchanged; a failure to determine the home directory leaves path as
// given rather than erroring the whole resolver out.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// Close removes the process-wide temporary directory holding the
// extracted helper script. Safe to call once, at resolver teardown.
func (r *Resolver) Close() error {
	return os.RemoveAll(r.scriptDir)
}

// Resolve returns the cached or freshly computed model.Result for d.
// On a cache hit no sub-process is spawned. On a miss it composes the
// helper's argument list per spec.md §4.B, optionally wraps it via the
// sandbox, runs it, and parses its JSON output. Only successful
// resolves are cached; the three failure kinds (spawn failure,
// nonzero exit, I/O failure) are returned as distinct error types for
// pkg/report to classify.
func (r *Resolver) Resolve(d access.Descriptor) (model.Result, error) {
	if cached, ok := r.cache.Get(d); ok {
		metrics.CacheHitsTotal.Inc()
		return cached, nil
	}
	metrics.CacheMissesTotal.Inc()

	timer := metrics.NewTimer()
	result, err := r.resolveUncached(d)
	timer.ObserveDuration(metrics.ResolverCallDuration)

	if err != nil {
		metrics.ResolverCallsTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return model.Result{}, err
	}
	metrics.ResolverCallsTotal.WithLabelValues("success").Inc()
	r.cache.Set(d, result)
	return result, nil
}

// outcomeLabel classifies a resolver error for the calls-total metric.
func outcomeLabel(err error) string {
	switch err.(type) {
	case *SpawnFailure:
		return "spawn_failure"
	case *NonZeroExit:
		return "nonzero_exit"
	case *IOFailure:
		return "io_failure"
	default:
		return "other"
	}
}

func (r *Resolver) resolveUncached(d access.Descriptor) (model.Result, error) {
	callID := uuid.New().String()
	callDir, err := os.MkdirTemp("", "addoncrawl-call-"+callID+"-*")
	if err != nil {
		return model.Result{}, &IOFailure{Stage: StageTempDir, Cause: err}
	}
	defer os.RemoveAll(callDir)

	outputPath := filepath.Join(callDir, "result.json")
	argv := r.buildArgv(d, outputPath)

	if r.cfg.Sandbox != nil {
		sb := *r.cfg.Sandbox
		sb.PluginRoot = r.cfg.PluginRoot
		sb.ReadWriteDir = callDir
		argv = sb.Wrap(argv)
	}

	dlog := log.WithDescriptor(d.Path)
	dlog.Debug().Str("call_id", callID).Strs("argv", argv).Msg("invoking resolver helper")

	cmd := exec.Command(argv[0], argv[1:]...)

	var output []byte
	if r.cfg.CaptureOutput {
		out, runErr := cmd.CombinedOutput()
		output = out
		err = runErr
	} else {
		err = cmd.Run()
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return model.Result{}, &NonZeroExit{
				Output:    string(output),
				HasOutput: r.cfg.CaptureOutput,
				Status:    exitErr.ExitCode(),
			}
		}
		return model.Result{}, &SpawnFailure{Cause: err}
	}

	f, err := os.Open(outputPath)
	if err != nil {
		return model.Result{}, &IOFailure{Stage: StageOpenFile, Cause: err}
	}
	defer f.Close()

	var result model.Result
	if err := json.NewDecoder(f).Decode(&result); err != nil {
		return model.Result{}, &IOFailure{Stage: StageParseJSON, Cause: err}
	}
	return result, nil
}

// buildArgv composes the resolver runtime command and its arguments,
// per spec.md §4.B: runtime command, helper script path, plugin root,
// descriptor path, output file, one "-I <input>" pair per input, then
// one "-AL <key> <value>" triple per entry of each preference list in
// language/resolution/format order.
func (r *Resolver) buildArgv(d access.Descriptor, outputPath string) []string {
	argv := append([]string{}, r.cfg.RuntimeCommand...)
	argv = append(argv, r.scriptPath, r.cfg.PluginRoot, d.Path, outputPath)

	for _, in := range d.Inputs {
		argv = append(argv, "-I", in)
	}
	addPrefs := func(key string, values []string) {
		for _, v := range values {
			argv = append(argv, "-AL", key, v)
		}
	}
	addPrefs("language_order", d.Config.Language.Values)
	addPrefs("resolution_order", d.Config.Resolution.Values)
	addPrefs("format_order", d.Config.Format.Values)
	return argv
}
