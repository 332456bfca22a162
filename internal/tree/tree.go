// Package tree assembles the documents found below a directory into one rooted tree.
//
// Nodes live in an arena owned by the Tree. Parent and child references as well as
// the prefix index are arena positions, so a Node is only a lightweight handle.
package tree

import (
	"sort"
	"strings"

	"github.com/n2code/reqtree/internal/document"
	"github.com/n2code/reqtree/internal/item"
)

const noParent = -1

type node struct {
	doc      *document.Document
	parent   int
	children []int
}

// Tree is immutable once loaded and safe for concurrent readers.
type Tree struct {
	nodes []node //discovery order
	index map[string]int
	root  int
}

// Node is a handle to one document of a tree.
type Node struct {
	tree *Tree
	id   int
}

func (t *Tree) handle(id int) Node {
	return Node{tree: t, id: id}
}

func (t *Tree) Root() Node {
	return t.handle(t.root)
}

// Lookup finds the document node configured with the given prefix.
func (t *Tree) Lookup(prefix string) (Node, bool) {
	id, found := t.index[prefix]
	if !found {
		return Node{}, false
	}
	return t.handle(id), true
}

// Len is the number of documents in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Prefixes lists all document prefixes in discovery order.
func (t *Tree) Prefixes() []string {
	prefixes := make([]string, 0, len(t.nodes))
	for _, n := range t.nodes {
		prefixes = append(prefixes, n.doc.Prefix())
	}
	return prefixes
}

// Walk visits all nodes depth-first, parents before children, until fn returns false.
func (t *Tree) Walk(fn func(n Node, depth int) bool) {
	t.walk(t.root, 0, fn)
}

func (t *Tree) walk(id int, depth int, fn func(Node, int) bool) bool {
	if !fn(t.handle(id), depth) {
		return false
	}
	for _, child := range t.nodes[id].children {
		if !t.walk(child, depth+1, fn) {
			return false
		}
	}
	return true
}

// Item finds an item by UID in any document whose prefix the UID starts with.
// Documents with longer matching prefixes are searched first.
func (t *Tree) Item(uid string) (*item.Item, Node, bool) {
	var candidates []int
	for id, n := range t.nodes {
		if strings.HasPrefix(uid, n.doc.Prefix()) {
			candidates = append(candidates, id)
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return len(t.nodes[candidates[a]].doc.Prefix()) > len(t.nodes[candidates[b]].doc.Prefix())
	})
	for _, id := range candidates {
		if found, ok := t.nodes[id].doc.Item(uid); ok {
			return found, t.handle(id), true
		}
	}
	return nil, Node{}, false
}

// ItemCount is the number of items across all documents.
func (t *Tree) ItemCount() (count int) {
	for _, n := range t.nodes {
		count += n.doc.Len()
	}
	return
}

// Valid is false for the zero Node.
func (n Node) Valid() bool {
	return n.tree != nil
}

func (n Node) Document() *document.Document {
	return n.tree.nodes[n.id].doc
}

func (n Node) Prefix() string {
	return n.Document().Prefix()
}

// Children lists the child documents in discovery order.
func (n Node) Children() []Node {
	ids := n.tree.nodes[n.id].children
	children := make([]Node, 0, len(ids))
	for _, id := range ids {
		children = append(children, n.tree.handle(id))
	}
	return children
}

// Parent returns false for the root.
func (n Node) Parent() (Node, bool) {
	parent := n.tree.nodes[n.id].parent
	if parent == noParent {
		return Node{}, false
	}
	return n.tree.handle(parent), true
}

func (n Node) IsRoot() bool {
	return n.id == n.tree.root
}

// Lookup resolves any document of the same tree by prefix.
func (n Node) Lookup(prefix string) (Node, bool) {
	return n.tree.Lookup(prefix)
}
