/*
Package crawl implements the bounded-parallelism recursive scheduler
(spec.md §4.E): one goroutine per visited node, admission to run gated
by a counted semaphore with a caller-configured cap, first-failure
"poison" cancellation or best-effort keep-going, and panic recovery
that never double-counts a decremented worker slot.

# Concurrency contract

Each node visit runs on its own goroutine. Before spawning a child, the
parent blocks on gate.admit(); if that admission fills the last
available slot, the parent joins the child inline instead of deferring
it, which guarantees forward progress even if the whole quota is held
by a chain of parents each waiting on their own children (the
"last-slot rule"). Every other child's handle is joined after the
parent finishes spawning all of its children.

# Cancellation

A single boolean, KeepGoing, controls what happens when a report is
appended: if false, the shared poison flag is set, in-flight admission
waiters are released to abandon their remaining spawns, and no further
resolver calls are started for nodes not already in flight. Running
goroutines are never interrupted; they finish their current node.

# Panic recovery

Every child goroutine carries a per-child atomic boolean recording
whether it reached its own "decrement the active counter" step before
a panic, if any. The parent recovers the panic at join time, converts
it into a WorkerPanic report, and decrements the counter on the
child's behalf only if the child had not already done so itself.

Grounded on kodi_recurse/src/recurse_kodi.rs (RecurseInfo,
SpawnNewThreadData, kodi_recurse_inner_thread, kodi_recurse_par),
translated from thread::spawn/JoinHandle into goroutines plus
done-channels, and from a one-shot Mutex<usize>+Condvar pair into the
same pattern with an added periodic broadcast (package-private
gate.go) standing in for Rust's Condvar::wait_timeout, which Go's
sync.Cond has no equivalent for.
*/
package crawl
