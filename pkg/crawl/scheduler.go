package crawl

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/cuemby/addoncrawl/pkg/access"
	"github.com/cuemby/addoncrawl/pkg/log"
	"github.com/cuemby/addoncrawl/pkg/model"
	"github.com/cuemby/addoncrawl/pkg/report"
)

// Resolver is the subset of *resolver.Resolver the scheduler needs.
// Defined here, rather than imported, so tests can supply a fake
// without touching real sub-processes.
type Resolver interface {
	Resolve(d access.Descriptor) (model.Result, error)
}

// SkipFunc decides whether to skip a node and all of its children. It
// may append reports to ctx before returning.
type SkipFunc[T any] func(ctx *Context, data T) bool

// VisitFunc is called once per non-skipped node. It returns the data
// to hand to each child plus whether to descend at all; returning
// ok=false stops the walk at this node without visiting its children,
// matching spec.md §4.E step 5 ("if the visitor returned no
// child-data, stop").
type VisitFunc[T any] func(ctx *Context, data T) (childData T, ok bool)

// Config is everything Run needs for one crawl, per spec.md §4.E's
// "Top-level invocation" section.
type Config[T any] struct {
	Resolver Resolver

	// Root is the descriptor to start crawling from.
	Root access.Descriptor
	// TopParent, if set, is resolved once eagerly to furnish the
	// root's parent page for sub-entry lookup. A failure here short
	// circuits the whole crawl to a single ResolverFailure report.
	TopParent *access.Descriptor

	InitialData T
	Visit       VisitFunc[T]
	Skip        SkipFunc[T]

	// KeepGoing, when false, poisons the crawl on the first report.
	KeepGoing bool
	// Jobs is the concurrency cap; must be >= 1.
	Jobs int

	Progress ProgressSink
}

// Outcome is everything Run returns: the collected reports, plus the
// root's prompt when the root itself resolved to one (spec.md §8,
// boundary case "A resolver Prompt result at the root is not an
// error"). RootPrompt is nil whenever the root resolved to content (or
// failed, in which case Reports carries the failure).
type Outcome struct {
	Reports    []report.Report
	RootPrompt *model.Prompt
}

// Run drives one crawl to completion and returns every report
// collected, in the order they were appended.
func Run[T any](cfg Config[T]) Outcome {
	if cfg.Jobs < 1 {
		panic("crawl: Jobs must be >= 1")
	}

	g := newGate(cfg.Jobs, 1)
	defer g.close()

	runID := uuid.New().String()
	coll := &collector{keepGoing: cfg.KeepGoing, gate: g, progress: cfg.Progress}
	sched := &scheduler[T]{resolver: cfg.Resolver, visit: cfg.Visit, skip: cfg.Skip, gate: g, coll: coll, runID: runID}

	var parentPage *model.Page
	var parentAccess *access.Descriptor
	if cfg.TopParent != nil {
		result, err := cfg.Resolver.Resolve(*cfg.TopParent)
		if err != nil {
			return Outcome{Reports: []report.Report{report.NewResolverFailure(*cfg.TopParent, err)}}
		}
		if result.Kind == model.ResultContent {
			page := result.Page
			parentPage = &page
			parent := *cfg.TopParent
			parentAccess = &parent
		}
	}

	decremented := &atomic.Bool{}
	done := make(chan struct{})
	var panicked atomic.Bool
	go func() {
		defer func() {
			if r := recover(); r != nil {
				panicked.Store(true)
				log.WithComponent("crawl").Error().
					Interface("panic", r).
					Str("run_id", runID).
					Str("path", cfg.Root.Path).
					Msg("recovered panic in root worker")
			}
			close(done)
		}()
		sched.visitNode(cfg.Root, parentPage, parentAccess, cfg.InitialData, decremented, true)
	}()
	<-done

	if panicked.Load() {
		if !decremented.Load() {
			g.release()
		}
		coll.add(report.NewWorkerPanic(cfg.Root, nil))
	}

	if cfg.Progress != nil {
		cfg.Progress.Finish()
	}

	return Outcome{Reports: coll.snapshot(), RootPrompt: sched.rootPrompt}
}

// scheduler holds the state shared by every node's goroutine during
// one Run call.
type scheduler[T any] struct {
	resolver Resolver
	visit    VisitFunc[T]
	skip     SkipFunc[T]
	gate     *gate
	coll     *collector

	rootPrompt *model.Prompt
	runID      string
}

// visitNode implements the per-node lifecycle of spec.md §4.E: resolve,
// build context, skip predicate, visitor, decrement-before-spawn, then
// admission-gated child spawning with the last-slot inline-join rule.
func (s *scheduler[T]) visitNode(d access.Descriptor, parentPage *model.Page, parentAccess *access.Descriptor, data T, decremented *atomic.Bool, isRoot bool) {
	result, err := s.resolver.Resolve(d)
	if err != nil {
		s.coll.add(report.NewResolverFailure(d, err))
		s.finishNode(decremented)
		return
	}

	if result.Kind != model.ResultContent {
		if isRoot {
			// A prompt at the root is not an error (spec.md §3); surface
			// it via Outcome.RootPrompt instead of descending.
			s.rootPrompt = &result.Prompt
			s.finishNode(decremented)
			return
		}
		// A prompt below the root is an internal inconsistency, not
		// something a plugin author can be asked to fix: the helper
		// contract only allows a keyboard prompt at the top level.
		s.coll.add(report.NewVisitor(d, parentAccess, report.SeverityError,
			fmt.Sprintf("resolver returned %s below the root; not descending", result.Kind), nil, nil, true))
		s.finishNode(decremented)
		return
	}

	page := result.Page
	var subFromParent *model.SubContent
	if parentPage != nil {
		for i := range parentPage.Children {
			if parentPage.Children[i].URL == d.Path {
				sc := parentPage.Children[i]
				subFromParent = &sc
				if page.Leaf != nil {
					page.Leaf.Extend(sc.ListItem)
				}
				break
			}
		}
	}

	ctx := &Context{Page: page, SubContentFromParent: subFromParent, Access: d, ParentAccess: parentAccess}

	var skip bool
	if s.skip != nil {
		skip = s.skip(ctx, data)
	}
	s.flush(ctx)
	if skip {
		s.finishNode(decremented)
		return
	}

	var childData T
	var descend bool
	if s.visit != nil {
		childData, descend = s.visit(ctx, data)
	}
	s.flush(ctx)

	s.finishNode(decremented)

	if !descend {
		return
	}

	s.coll.addTotal(len(page.Children))

	var deferred []*childHandle
	for _, sub := range page.Children {
		lastSlot, ok := s.gate.admit()
		if !ok {
			break
		}

		childDescriptor := access.New(sub.URL, "", d.Config)
		h := s.spawn(childDescriptor, page, d, childData)

		if lastSlot {
			s.join(h, d)
		} else {
			deferred = append(deferred, h)
		}

		if s.gate.isPoisoned() {
			break
		}
	}

	for _, h := range deferred {
		s.join(h, d)
	}
}

func (s *scheduler[T]) flush(ctx *Context) {
	for _, r := range ctx.drain() {
		s.coll.add(r)
	}
}

func (s *scheduler[T]) finishNode(decremented *atomic.Bool) {
	s.gate.release()
	decremented.Store(true)
	s.coll.finishedOne()
}

// childHandle tracks one spawned child goroutine for later joining.
type childHandle struct {
	done        chan struct{}
	panicked    bool
	decremented *atomic.Bool
	descriptor  access.Descriptor
}

func (s *scheduler[T]) spawn(child access.Descriptor, parentPage model.Page, parentAccess access.Descriptor, data T) *childHandle {
	h := &childHandle{done: make(chan struct{}), decremented: &atomic.Bool{}, descriptor: child}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				h.panicked = true
				log.WithComponent("crawl").Error().
					Interface("panic", r).
					Str("run_id", s.runID).
					Str("path", child.Path).
					Msg("recovered panic in worker")
			}
			close(h.done)
		}()
		s.visitNode(child, &parentPage, &parentAccess, data, h.decremented, false)
	}()
	return h
}

// join waits for h to complete and, if it panicked, synthesizes a
// WorkerPanic report and recovers the active-counter slot if the
// panicked worker never reached its own decrement step.
func (s *scheduler[T]) join(h *childHandle, parentAccess access.Descriptor) {
	<-h.done
	if h.panicked {
		if !h.decremented.Load() {
			s.gate.release()
		}
		parent := parentAccess
		s.coll.add(report.NewWorkerPanic(h.descriptor, &parent))
	}
}
