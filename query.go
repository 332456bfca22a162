package reqtree

import (
	"fmt"
	"strings"

	"github.com/n2code/reqtree/internal/document"
	"github.com/n2code/reqtree/internal/item"
	out "github.com/n2code/reqtree/internal/output"
	"github.com/n2code/reqtree/internal/tree"
)

const maxTitleLength = 72

func (r *reqtree) documentLabel(doc *document.Document) string {
	count := doc.Len()
	details := fmt.Sprintf("(%d %s, %s)", count, out.Plural(count, "item", "items"), r.displayablePath(doc.Dir()))
	return r.printer.Bold(doc.Prefix()) + " " + r.printer.Dim(details)
}

func (r *reqtree) itemLabel(it *item.Item) string {
	var label strings.Builder
	fmt.Fprintf(&label, "%s %s", it.Level(), r.printer.Bold(it.UID()))
	if title := it.Title(); title != "" {
		fmt.Fprintf(&label, " %s", out.Shorten(title, maxTitleLength))
	}
	if it.Deactivated() {
		fmt.Fprintf(&label, " %s", r.printer.Dim("[inactive]"))
	}
	return label.String()
}

func (r *reqtree) PrintTree() {
	visual := out.NewVisualTree(r.documentLabel(r.tree.Root().Document()))
	branches := []out.Branch{visual.Root()}
	r.tree.Walk(func(n tree.Node, depth int) bool {
		if depth == 0 {
			return true
		}
		branches = append(branches[:depth], branches[depth-1].Add(r.documentLabel(n.Document())))
		return true
	})
	r.Print(out.Required, "%s", visual.Render())
}

func (r *reqtree) PrintOutline(prefix string) error {
	n, found := r.tree.Lookup(prefix)
	if !found {
		return newCommandError(fmt.Sprintf("cannot print outline of %s", prefix), ErrUnknownPrefix)
	}
	doc := n.Document()
	outline := out.NewVisualOutline(r.documentLabel(doc))
	doc.Ascend(func(it *item.Item) bool {
		outline.Insert(it.Key(), r.itemLabel(it))
		return true
	})
	r.Print(out.Required, "%s", outline.Render())
	if parent, hasParent := n.Parent(); hasParent {
		r.Print(out.Normal, "\nparent document: %s\n", parent.Prefix())
	}
	return nil
}

func (r *reqtree) PrintItem(uid string) error {
	it, owner, found := r.tree.Item(uid)
	if !found {
		return newCommandError(fmt.Sprintf("cannot print %s", uid), ErrUnknownItem)
	}
	yesNo := func(flag bool) string {
		if flag {
			return "yes"
		}
		return "no"
	}
	r.Print(out.Required, "%s %s\n", r.printer.Bold(it.UID()), r.printer.Dim("(level "+it.Level()+")"))
	r.Print(out.Normal, "  document:  %s\n", owner.Prefix())
	r.Print(out.Normal, "  file:      %s\n", r.displayablePath(it.Path()))
	r.Print(out.Normal, "  active:    %s\n", yesNo(it.Active()))
	r.Print(out.Normal, "  normative: %s\n", yesNo(it.Normative()))
	r.Print(out.Normal, "  derived:   %s\n", yesNo(it.Derived()))
	if it.Reviewed() != "" {
		r.Print(out.Verbose, "  reviewed:  %s\n", it.Reviewed())
	}
	if it.Header() != "" {
		r.Print(out.Required, "\n%s\n", out.Indent(2, it.Header()))
	}
	if text := strings.TrimRight(it.Text(), "\n"); text != "" {
		r.Print(out.Required, "\n%s\n", out.Indent(2, text))
	}
	return nil
}

func (r *reqtree) summary() string {
	documents, items := r.tree.Len(), r.tree.ItemCount()
	return fmt.Sprintf("%d %s with %d %s in total", documents, out.Plural(documents, "document", "documents"), items, out.Plural(items, "item", "items"))
}

func (r *reqtree) PrintSummary() {
	r.Print(out.Normal, "%s\n", r.summary())
	r.Print(out.Verbose, "root document: %s\n", r.tree.Root().Prefix())
}

func (r *reqtree) Find(query string, max int) ([]SearchResult, error) {
	searcher, err := r.search()
	if err != nil {
		return nil, newCommandError("search index error", err)
	}
	hits, total, err := searcher.Search(query, max)
	if err != nil {
		return nil, newCommandError("search error", err)
	}
	r.metrics.RecordSearch(len(hits))
	r.log.Debug().Str("query", query).Int("total", total).Int("returned", len(hits)).Msg("search completed")

	results := make([]SearchResult, 0, len(hits))
	for _, hit := range hits {
		result := SearchResult{UID: hit.UID, Prefix: hit.Prefix, Level: hit.Level, Title: hit.Title, Score: hit.Score}
		if it, _, found := r.tree.Item(hit.UID); found {
			result.Path = pleasantPath(it.Path(), r.root, mustGetwd(), false, true)
		}
		results = append(results, result)
	}
	return results, nil
}
