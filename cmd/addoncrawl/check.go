package main

import (
	"github.com/spf13/cobra"

	"github.com/cuemby/addoncrawl/pkg/crawl"
	"github.com/cuemby/addoncrawl/pkg/report"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Crawl a plugin tree checking for inconsistencies, without writing anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCrawl(cmd, struct{}{}, checkVisit, nil)
	},
}

// checkVisit flags the two ways a node's playable flag can disagree
// with what it actually resolved to, plus a page carrying both a leaf
// and children at once. It never skips and always descends.
func checkVisit(ctx *crawl.Context, _ struct{}) (struct{}, bool, error) {
	page := ctx.Page

	if page.IsLeaf() && len(page.Children) > 0 {
		ctx.Report(report.NewErrorBuilder("page has both a resolved listitem and sub-content").Internal(false))
	}

	parentMarkedPlayable := ctx.SubContentFromParent != nil && ctx.SubContentFromParent.ListItem.IsPlayable()

	switch {
	case page.IsLeaf() && !parentMarkedPlayable && ctx.SubContentFromParent != nil:
		ctx.Report(report.NewErrorBuilder(
			"resolved to a listitem, but the parent sub-entry isn't marked playable"))
	case !page.IsLeaf() && parentMarkedPlayable:
		ctx.Report(report.NewErrorBuilder(
			"marked playable by the parent sub-entry, but resolved no listitem"))
	}

	return struct{}{}, true, nil
}
