/*
Package cache is the timed, bounded cache shared across concurrent
resolver calls (spec.md §4.C): a mapping from access.Descriptor to a
resolved model.Result with two independent eviction axes — a
time-to-live per entry, and an approximate-LRU capacity bound built on
github.com/hashicorp/golang-lru, the same package the teacher's
dependency graph already carries (indirectly, via raft/containerd) for
exactly this "bounded map" job.

All operations serialize under a single mutex; a panic from the
underlying LRU (which would indicate real memory corruption, not a
recoverable condition) permanently degrades the cache to "always miss"
rather than propagating, mirroring the poisoned-lock handling of the
original Rust implementation (kodi_rust/src/kodi.rs), which has no
direct Go equivalent (Go mutexes don't poison) but the same "a failed
cache operation must never cost correctness" intent.
*/
package cache
