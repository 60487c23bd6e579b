package reproduce

import (
	"github.com/kballard/go-shellquote"

	"github.com/cuemby/addoncrawl/pkg/access"
	"github.com/cuemby/addoncrawl/pkg/invocation"
)

// Build renders the shell-safe reproducer command for one failing
// node: a clone of ran, mutated per spec.md §4.F, then shell-quoted.
// child is the descriptor whose visit produced the report; parent is
// its referencing descriptor, if known.
func Build(ran *invocation.Invocation, child access.Descriptor, parent *access.Descriptor) string {
	repro := Mutate(ran, child, parent)
	return shellquote.Join(repro.Tokens()...)
}

// Mutate returns a clone of ran with the mutations spec.md §4.F
// requires for a single-threaded, uncaptured reproduction of one
// node: "keep-going" removed, the output-capture-disabling flag set,
// jobs forced to 1, and path/parent-path replaced to target child
// (and, if known, its parent).
func Mutate(ran *invocation.Invocation, child access.Descriptor, parent *access.Descriptor) *invocation.Invocation {
	repro := ran.Clone()

	repro.SetBool("keep-going", false)
	repro.SetBool("no-catch-output", true)
	repro.SetArg("jobs", "1")
	repro.SetArg("path", child.Path)

	if parent != nil {
		repro.SetArg("parent-path", parent.Path)
	} else {
		repro.RemoveArg("parent-path")
	}

	return repro
}
