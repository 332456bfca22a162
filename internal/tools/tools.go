// Package tools exposes read access to a loaded requirements tree as MCP tools.
package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/n2code/reqtree/internal/document"
	"github.com/n2code/reqtree/internal/item"
	"github.com/n2code/reqtree/internal/search"
	"github.com/n2code/reqtree/internal/tree"
	"github.com/rs/zerolog"
)

// Searcher is the full-text search the search_items tool delegates to
type Searcher interface {
	Search(query string, max int) ([]search.Hit, int, error)
}

type Handlers struct {
	tree     *tree.Tree
	searcher Searcher
	log      zerolog.Logger
}

// New creates the tool handlers. The searcher may be nil, search_items then fails on every call.
func New(t *tree.Tree, searcher Searcher, log zerolog.Logger) *Handlers {
	return &Handlers{tree: t, searcher: searcher, log: log}
}

// Register adds all tools to the server
func (h *Handlers) Register(server *mcp.Server) {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "list_documents",
			Description: "Lists all requirement documents of the tree, parents before children, with their parent prefix and item count.",
		},
		h.ListDocuments,
	)
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "get_document",
			Description: "Returns one requirement document by prefix together with its items in outline order.",
		},
		h.GetDocument,
	)
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "get_item",
			Description: "Returns a single requirement item by UID including its full text.",
		},
		h.GetItem,
	)
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "search_items",
			Description: "Full-text search over headers and texts of all items in the tree.",
		},
		h.SearchItems,
	)
}

// DocumentSummary describes one document without its items
type DocumentSummary struct {
	Prefix   string   `json:"prefix" jsonschema:"Document prefix"`
	Parent   string   `json:"parent,omitempty" jsonschema:"Prefix of the parent document, absent for the root"`
	Depth    int      `json:"depth" jsonschema:"Distance from the root document"`
	Items    int      `json:"items" jsonschema:"Number of items"`
	Path     string   `json:"path" jsonschema:"Descriptor file of the document"`
	Children []string `json:"children,omitempty" jsonschema:"Prefixes of the child documents"`
}

// ItemSummary describes one item of a document listing
type ItemSummary struct {
	UID       string `json:"uid" jsonschema:"Item identifier"`
	Level     string `json:"level" jsonschema:"Outline level"`
	Title     string `json:"title" jsonschema:"Header or first paragraph of the item"`
	Heading   bool   `json:"heading" jsonschema:"Whether the item is a heading"`
	Active    bool   `json:"active" jsonschema:"Whether the item is active"`
	Normative bool   `json:"normative" jsonschema:"Whether the item is normative"`
}

// ItemDetail is the full content of one item
type ItemDetail struct {
	UID       string `json:"uid" jsonschema:"Item identifier"`
	Prefix    string `json:"prefix" jsonschema:"Prefix of the owning document"`
	Level     string `json:"level" jsonschema:"Outline level"`
	Depth     int    `json:"depth" jsonschema:"Nesting depth derived from the level"`
	Header    string `json:"header" jsonschema:"Header text"`
	Text      string `json:"text" jsonschema:"Item text (markdown)"`
	Title     string `json:"title" jsonschema:"Header or first paragraph of the item"`
	Active    bool   `json:"active" jsonschema:"Whether the item is active"`
	Derived   bool   `json:"derived" jsonschema:"Whether the item is derived"`
	Normative bool   `json:"normative" jsonschema:"Whether the item is normative"`
	Reviewed  string `json:"reviewed" jsonschema:"Review marker"`
	Path      string `json:"path" jsonschema:"Item file"`
}

type ListDocumentsInput struct{}

type ListDocumentsOutput struct {
	Root      string            `json:"root" jsonschema:"Prefix of the root document"`
	Documents []DocumentSummary `json:"documents" jsonschema:"All documents, parents before children"`
}

// ListDocuments lists all documents in tree order
func (h *Handlers) ListDocuments(ctx context.Context, req *mcp.CallToolRequest, input ListDocumentsInput) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	output := ListDocumentsOutput{
		Root:      h.tree.Root().Prefix(),
		Documents: make([]DocumentSummary, 0, h.tree.Len()),
	}
	h.tree.Walk(func(n tree.Node, depth int) bool {
		output.Documents = append(output.Documents, summarize(n, depth))
		return true
	})
	h.log.Debug().Str("tool", "list_documents").Int("documents", len(output.Documents)).Msg("tool called")
	return nil, output, nil
}

type GetDocumentInput struct {
	Prefix string `json:"prefix" jsonschema:"Document prefix, e.g. REQ"`
}

type GetDocumentOutput struct {
	Document DocumentSummary `json:"document" jsonschema:"The document"`
	Publish  []string        `json:"publish,omitempty" jsonschema:"Attributes configured for publishing"`
	Items    []ItemSummary   `json:"items" jsonschema:"Items in outline order"`
}

// GetDocument returns one document with its items in outline order
func (h *Handlers) GetDocument(ctx context.Context, req *mcp.CallToolRequest, input GetDocumentInput) (*mcp.CallToolResult, GetDocumentOutput, error) {
	n, found := h.tree.Lookup(input.Prefix)
	if !found {
		return nil, GetDocumentOutput{}, fmt.Errorf("no document with prefix %q", input.Prefix)
	}
	doc := n.Document()
	output := GetDocumentOutput{
		Document: summarize(n, nodeDepth(n)),
		Publish:  doc.Publish(),
		Items:    make([]ItemSummary, 0, doc.Len()),
	}
	doc.Ascend(func(it *item.Item) bool {
		output.Items = append(output.Items, ItemSummary{
			UID:       it.UID(),
			Level:     it.Level(),
			Title:     it.Title(),
			Heading:   it.IsHeading(),
			Active:    it.Active(),
			Normative: it.Normative(),
		})
		return true
	})
	h.log.Debug().Str("tool", "get_document").Str("prefix", input.Prefix).Msg("tool called")
	return nil, output, nil
}

type GetItemInput struct {
	UID string `json:"uid" jsonschema:"Item identifier, e.g. REQ001"`
}

type GetItemOutput struct {
	Item ItemDetail `json:"item" jsonschema:"The item"`
}

// GetItem returns one item by UID
func (h *Handlers) GetItem(ctx context.Context, req *mcp.CallToolRequest, input GetItemInput) (*mcp.CallToolResult, GetItemOutput, error) {
	it, owner, found := h.tree.Item(input.UID)
	if !found {
		return nil, GetItemOutput{}, fmt.Errorf("no item with UID %q", input.UID)
	}
	h.log.Debug().Str("tool", "get_item").Str("uid", input.UID).Msg("tool called")
	return nil, GetItemOutput{Item: detail(owner.Document(), it)}, nil
}

type SearchItemsInput struct {
	Query      string `json:"query" jsonschema:"Search query"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of results (optional, defaults to 10)"`
}

type SearchItemsOutput struct {
	Query     string       `json:"query" jsonschema:"The query searched for"`
	TotalHits int          `json:"total_hits" jsonschema:"Number of matching items"`
	Results   []search.Hit `json:"results" jsonschema:"Best matching items"`
}

// SearchItems runs a full-text query over all items
func (h *Handlers) SearchItems(ctx context.Context, req *mcp.CallToolRequest, input SearchItemsInput) (*mcp.CallToolResult, SearchItemsOutput, error) {
	if h.searcher == nil {
		return nil, SearchItemsOutput{}, fmt.Errorf("search is not available")
	}
	hits, total, err := h.searcher.Search(input.Query, input.MaxResults)
	if err != nil {
		return nil, SearchItemsOutput{}, err
	}
	if hits == nil {
		hits = []search.Hit{}
	}
	h.log.Debug().Str("tool", "search_items").Str("query", input.Query).Int("hits", total).Msg("tool called")
	return nil, SearchItemsOutput{Query: input.Query, TotalHits: total, Results: hits}, nil
}

func summarize(n tree.Node, depth int) DocumentSummary {
	doc := n.Document()
	summary := DocumentSummary{
		Prefix: doc.Prefix(),
		Parent: doc.Parent(),
		Depth:  depth,
		Items:  doc.Len(),
		Path:   doc.Path(),
	}
	for _, child := range n.Children() {
		summary.Children = append(summary.Children, child.Prefix())
	}
	return summary
}

func nodeDepth(n tree.Node) (depth int) {
	for parent, ok := n.Parent(); ok; parent, ok = parent.Parent() {
		depth++
	}
	return
}

func detail(doc *document.Document, it *item.Item) ItemDetail {
	return ItemDetail{
		UID:       it.UID(),
		Prefix:    doc.Prefix(),
		Level:     it.Level(),
		Depth:     it.Depth(),
		Header:    it.Header(),
		Text:      it.Text(),
		Title:     it.Title(),
		Active:    it.Active(),
		Derived:   it.Derived(),
		Normative: it.Normative(),
		Reviewed:  it.Reviewed(),
		Path:      it.Path(),
	}
}
