package reqtree

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/n2code/reqtree/internal/tree"
)

// Reqtree lets you interface with a requirements tree whose handle was retrieved using Open.
type Reqtree interface {

	// Tree gives direct read access to the loaded documents and items.
	Tree() *tree.Tree

	// Root is the absolute directory the tree was loaded from.
	Root() string

	// PrintTree prints the document hierarchy starting at the root document.
	PrintTree()

	// PrintOutline prints all items of the document with the given prefix, nested by their level.
	PrintOutline(prefix string) error

	// PrintItem outputs the full content of the item with the given UID.
	PrintItem(uid string) error

	// PrintSummary outputs the number of documents and items found.
	PrintSummary()

	// Find runs a full-text search over headers and texts of all items and returns at most max results, best first.
	// The search index is built on first use.
	Find(query string, max int) ([]SearchResult, error)

	// Serve exposes the tree as MCP tools on the given transport until the context is cancelled or the client disconnects.
	Serve(ctx context.Context, transport mcp.Transport) error

	// Close releases the search index if one was built.
	Close() error
}

// SearchResult represents a subset of information taken from an item matching a search.
type SearchResult struct {
	UID    string
	Prefix string
	Level  string
	Title  string
	Path   string //relative to the current working directory if inside the tree
	Score  float64
}
