package sandbox

import (
	"os"
	"strings"

	specs "github.com/opencontainers/runtime-spec/specs-go"
)

// LibraryPathEnv is the ambient library search variable whose
// colon-separated elements become additional read-only binds, per
// spec.md §4.B.
const LibraryPathEnv = "LD_LIBRARY_PATH"

// systemDirs is the small, fixed set of system directories the
// resolver helper needs read access to regardless of the plugin being
// run.
var systemDirs = []string{"/usr", "/lib", "/lib64", "/bin", "/etc/resolv.conf"}

// Config describes one sandboxed resolver call: the plugin root, any
// caller-configured extra read-only paths, and the single read-write
// directory the call is allowed to write its result into.
type Config struct {
	WrapperCommand string
	PluginRoot     string
	ExtraReadOnly  []string
	ReadWriteDir   string
}

// Mounts builds the fixed read-only bind list plus the single
// read-write bind for cfg.ReadWriteDir, in the order spec.md §4.B
// documents: plugin root, system directories, LD_LIBRARY_PATH
// elements, caller-configured extra paths, then the read-write bind.
func (cfg Config) Mounts() []specs.Mount {
	var mounts []specs.Mount
	addReadOnly := func(path string) {
		if path == "" {
			return
		}
		mounts = append(mounts, specs.Mount{
			Source:      path,
			Destination: path,
			Type:        "bind",
			Options:     []string{"ro"},
		})
	}

	addReadOnly(cfg.PluginRoot)
	for _, dir := range systemDirs {
		addReadOnly(dir)
	}
	for _, entry := range strings.Split(os.Getenv(LibraryPathEnv), ":") {
		addReadOnly(entry)
	}
	for _, extra := range cfg.ExtraReadOnly {
		addReadOnly(extra)
	}

	if cfg.ReadWriteDir != "" {
		mounts = append(mounts, specs.Mount{
			Source:      cfg.ReadWriteDir,
			Destination: cfg.ReadWriteDir,
			Type:        "bind",
			Options:     []string{"rw"},
		})
	}

	return mounts
}

// Wrap prepends the wrapper invocation and its bind flags to innerArgv,
// the resolver runtime command and its own arguments. The wrapper's
// bind syntax (--ro-bind SRC DST / --bind SRC DST, binds terminated by
// "--") matches bubblewrap, the reference implementation of this
// "opaque command wrapper" contract; any wrapper honoring the same
// flags is a drop-in replacement.
func (cfg Config) Wrap(innerArgv []string) []string {
	argv := []string{cfg.WrapperCommand}
	for _, m := range cfg.Mounts() {
		if containsOption(m.Options, "ro") {
			argv = append(argv, "--ro-bind", m.Source, m.Destination)
		} else {
			argv = append(argv, "--bind", m.Source, m.Destination)
		}
	}
	argv = append(argv, "--")
	argv = append(argv, innerArgv...)
	return argv
}

func containsOption(options []string, want string) bool {
	for _, o := range options {
		if o == want {
			return true
		}
	}
	return false
}
