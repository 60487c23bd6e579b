package crawl

import (
	"github.com/cuemby/addoncrawl/pkg/access"
	"github.com/cuemby/addoncrawl/pkg/model"
	"github.com/cuemby/addoncrawl/pkg/report"
)

// Context is the visit context handed to the skip predicate and the
// visitor for one node: the resolved page, the sub-entry (if any) the
// parent page used to reference this node, this node's descriptor and
// its parent's (if known), and an append-only report buffer.
type Context struct {
	Page                 model.Page
	SubContentFromParent *model.SubContent
	Access               access.Descriptor
	ParentAccess         *access.Descriptor

	reports []report.Report
}

// AddReport appends a fully-built report.
func (c *Context) AddReport(r report.Report) {
	c.reports = append(c.reports, r)
}

// Report appends the report built from b for this node.
func (c *Context) Report(b *report.Builder) {
	c.reports = append(c.reports, b.Build(c.Access, c.ParentAccess))
}

func (c *Context) drain() []report.Report {
	out := c.reports
	c.reports = nil
	return out
}
