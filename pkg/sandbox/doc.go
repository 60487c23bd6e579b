/*
Package sandbox builds the argv prefix for the opaque command wrapper
that isolates a resolver helper sub-process, per spec.md §4.B/§6. The
wrapper binary itself (bubblewrap-style) and what it actually does with
its bind arguments are explicitly out of scope (spec.md §1): this
package only knows how to describe the mount list and turn it into
argv tokens, the same vocabulary the teacher's pkg/runtime uses for
OCI mounts (github.com/opencontainers/runtime-spec).
*/
package sandbox
