/*
Package resolver runs the external helper sub-process that expands one
access.Descriptor into a model.Result, per spec.md §4.B. One Resolver
owns a process-wide temporary directory holding a helper script
extracted from an embedded asset (mirroring
pkg/embedded/containerd.go's extractBinary) and an internal
pkg/cache.Cache that memoizes successful calls.

Each call composes an argument list (helper script, plugin root,
descriptor path, per-call output file, -I inputs, -AL preference
triples), optionally wraps it through pkg/sandbox, runs it with
os/exec, and parses the JSON it wrote. Failures are reported as one of
three distinct error types (SpawnFailure, NonZeroExit, IOFailure) so
pkg/report can classify internal-vs-plugin-caused failures without
string matching.
*/
package resolver
