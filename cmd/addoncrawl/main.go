package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cuemby/addoncrawl/pkg/access"
	"github.com/cuemby/addoncrawl/pkg/crawl"
	"github.com/cuemby/addoncrawl/pkg/invocation"
	"github.com/cuemby/addoncrawl/pkg/log"
	"github.com/cuemby/addoncrawl/pkg/metrics"
	"github.com/cuemby/addoncrawl/pkg/report"
	"github.com/cuemby/addoncrawl/pkg/resolver"
	"github.com/cuemby/addoncrawl/pkg/sandbox"
)

var (
	// Version information (set via ldflags during build)
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "addoncrawl",
	Short:   "Crawl a Kodi-like plugin tree in parallel",
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("addoncrawl version %s (%s)\n", Version, Commit))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")

	rootCmd.PersistentFlags().String("path", "", "Root path to crawl (required)")
	rootCmd.PersistentFlags().String("parent-path", "", "Path whose resolve supplies the root's parent page, if any")
	rootCmd.PersistentFlags().Int("jobs", 4, "Maximum number of concurrent workers")
	rootCmd.PersistentFlags().Bool("keep-going", false, "Keep crawling past the first report instead of stopping")
	rootCmd.PersistentFlags().Bool("no-catch-output", false, "Don't capture the resolver helper's stdout/stderr")
	rootCmd.PersistentFlags().String("lang-order", "", "Colon-separated language preference order")
	rootCmd.PersistentFlags().String("res-order", "", "Colon-separated resolution preference order")
	rootCmd.PersistentFlags().String("format-order", "", "Colon-separated format preference order")
	rootCmd.PersistentFlags().String("plugin-root", "", "Plugin root directory passed to the resolver helper")
	rootCmd.PersistentFlags().String("sandbox", "", "Sandbox wrapper command (e.g. bwrap); empty disables sandboxing")
	rootCmd.PersistentFlags().String("metrics-addr", "", "Address to serve Prometheus metrics and health endpoints on (e.g. 127.0.0.1:9090); empty disables")

	cobra.OnInitialize(initLogging)

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(mirrorCmd)
}

func initLogging() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")

	log.Init(log.Config{
		Level:      log.Level(logLevel),
		JSONOutput: logJSON,
	})
}

// newResolver builds the resolver configured from the process's
// persistent flags, registering it with the health checker so
// /ready reflects whether the helper script was extracted.
func newResolver(cmd *cobra.Command) (*resolver.Resolver, error) {
	pluginRoot, _ := cmd.Flags().GetString("plugin-root")
	noCatchOutput, _ := cmd.Flags().GetBool("no-catch-output")
	sandboxWrapper, _ := cmd.Flags().GetString("sandbox")

	var sb *sandbox.Config
	if sandboxWrapper != "" {
		sb = &sandbox.Config{WrapperCommand: sandboxWrapper}
		metrics.RegisterComponent("sandbox", true, "")
	} else {
		metrics.RegisterComponent("sandbox", true, "disabled")
	}

	r, err := resolver.New(resolver.Config{
		RuntimeCommand: []string{"python3"},
		PluginRoot:     pluginRoot,
		CacheTTL:       5 * time.Minute,
		CacheCapacity:  1024,
		Sandbox:        sb,
		CaptureOutput:  !noCatchOutput,
	})
	if err != nil {
		metrics.RegisterComponent("resolver", false, err.Error())
		return nil, err
	}
	metrics.RegisterComponent("resolver", true, "")

	if pluginRoot != "" {
		metrics.RegisterComponent("plugin_root", true, "")
	} else {
		metrics.RegisterComponent("plugin_root", true, "unset")
	}
	return r, nil
}

func rootDescriptor(cmd *cobra.Command) (access.Descriptor, error) {
	path, _ := cmd.Flags().GetString("path")
	if path == "" {
		return access.Descriptor{}, fmt.Errorf("--path is required")
	}
	langOrder, _ := cmd.Flags().GetString("lang-order")
	resOrder, _ := cmd.Flags().GetString("res-order")
	formatOrder, _ := cmd.Flags().GetString("format-order")

	cfg := access.ConfigFromFlags(map[string]string{
		"lang_ord": langOrder,
		"res_ord":  resOrder,
		"form_ord": formatOrder,
	})
	return access.New(path, "", cfg), nil
}

func topParent(cmd *cobra.Command, cfg access.Config) *access.Descriptor {
	parentPath, _ := cmd.Flags().GetString("parent-path")
	if parentPath == "" {
		return nil
	}
	d := access.New(parentPath, "", cfg)
	return &d
}

// buildInvocation reconstructs the command line that actually ran, so
// a failed report's Tips can offer a reproducer (pkg/reproduce).
func buildInvocation(cmd *cobra.Command) *invocation.Invocation {
	inv := invocation.New("addoncrawl")
	inv.Order = []string{
		"path", "parent-path", "jobs", "plugin-root",
		"lang-order", "res-order", "format-order", "sandbox",
	}

	setStringArg(inv, cmd, "path")
	setStringArg(inv, cmd, "parent-path")
	setStringArg(inv, cmd, "plugin-root")
	setStringArg(inv, cmd, "lang-order")
	setStringArg(inv, cmd, "res-order")
	setStringArg(inv, cmd, "format-order")
	setStringArg(inv, cmd, "sandbox")

	if jobs, err := cmd.Flags().GetInt("jobs"); err == nil {
		inv.SetArg("jobs", fmt.Sprintf("%d", jobs))
	}
	setBoolArg(inv, cmd, "keep-going")
	setBoolArg(inv, cmd, "no-catch-output")

	sub := invocation.New(cmd.Name())
	inv.SubCommand = sub
	return inv
}

func setStringArg(inv *invocation.Invocation, cmd *cobra.Command, key string) {
	v, err := cmd.Flags().GetString(key)
	if err == nil && v != "" {
		inv.SetArg(key, v)
	}
}

func setBoolArg(inv *invocation.Invocation, cmd *cobra.Command, key string) {
	v, err := cmd.Flags().GetBool(key)
	if err == nil && v {
		inv.SetBool(key, true)
	}
}

// printReports writes every report to stderr in the order they were
// produced, including the reproducer tip built from ran.
func printReports(reports []report.Report, ran *invocation.Invocation) {
	for _, r := range reports {
		fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", r.Severity(), r.Child.Path, r.Summary())
		for _, tip := range r.Tips(ran) {
			fmt.Fprintf(os.Stderr, "  tip: %s\n", tip)
		}
		for _, group := range r.Logs() {
			fmt.Fprintf(os.Stderr, "  %s:\n", group.Label)
			for _, line := range group.Lines {
				fmt.Fprintf(os.Stderr, "    %s\n", line)
			}
		}
	}
}

// exitCode implements spec.md §6's status policy: zero unless at
// least one report was produced.
func exitCode(reports []report.Report) int {
	if len(reports) > 0 {
		return 1
	}
	return 0
}

// startMetricsServer serves the Prometheus scrape endpoint and the
// health/readiness/liveness handlers on addr in the background, so a
// long mirror run can be probed from outside the process. Grounded on
// cmd/warren/main.go's metrics-server goroutine; a bind failure is
// logged rather than fatal, since metrics are diagnostic, not required
// for the crawl itself to proceed.
func startMetricsServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/health", metrics.HealthHandler())
	mux.Handle("/ready", metrics.ReadyHandler())
	mux.Handle("/live", metrics.LivenessHandler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.WithComponent("metrics").Error().Err(err).Msg("metrics server stopped")
		}
	}()
	log.WithComponent("metrics").Info().Str("addr", addr).Msg("serving metrics and health endpoints")
}

// runCrawl wires one crawl end to end: resolver, root descriptor,
// gate configuration and the metrics progress sink, then prints and
// exits according to the outcome. T is whatever per-branch state a
// visitor needs to thread down to its children (e.g. mirror's
// destination directory).
func runCrawl[T any](
	cmd *cobra.Command,
	initial T,
	visit func(ctx *crawl.Context, data T) (T, bool, error),
	skip func(ctx *crawl.Context, data T) bool,
) error {
	if metricsAddr, _ := cmd.Flags().GetString("metrics-addr"); metricsAddr != "" {
		metrics.SetVersion(Version)
		startMetricsServer(metricsAddr)
	}

	r, err := newResolver(cmd)
	if err != nil {
		return err
	}
	defer r.Close()

	root, err := rootDescriptor(cmd)
	if err != nil {
		return err
	}
	parent := topParent(cmd, root.Config)

	jobs, _ := cmd.Flags().GetInt("jobs")
	keepGoing, _ := cmd.Flags().GetBool("keep-going")

	outcome := crawl.Run(crawl.Config[T]{
		Resolver:    r,
		Root:        root,
		TopParent:   parent,
		InitialData: initial,
		Jobs:        jobs,
		KeepGoing:   keepGoing,
		Progress:    newProgressSink(),
		Visit: func(ctx *crawl.Context, data T) (T, bool) {
			childData, ok, visitErr := visit(ctx, data)
			if visitErr != nil {
				ctx.Report(report.NewErrorBuilder(visitErr.Error()).Internal(true))
				return data, false
			}
			return childData, ok
		},
		Skip: func(ctx *crawl.Context, data T) bool {
			if skip == nil {
				return false
			}
			return skip(ctx, data)
		},
	})

	if outcome.RootPrompt != nil {
		fmt.Fprintln(os.Stderr, "the root resolved to a keyboard prompt instead of content; nothing to crawl")
	}

	printReports(outcome.Reports, buildInvocation(cmd))
	if code := exitCode(outcome.Reports); code != 0 {
		os.Exit(code)
	}
	return nil
}
