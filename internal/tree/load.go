package tree

import (
	"time"

	"github.com/n2code/reqtree/internal/document"
	"github.com/n2code/reqtree/internal/fault"
	"github.com/n2code/reqtree/internal/metrics"
	"github.com/n2code/reqtree/internal/walk"
	"github.com/rs/zerolog"
)

// Loader assembles trees. The zero value neither logs nor records metrics.
type Loader struct {
	Log     zerolog.Logger
	Metrics *metrics.Metrics
}

// Load assembles the tree below root without logging.
func Load(root string) (*Tree, error) {
	return Loader{Log: zerolog.Nop()}.Load(root)
}

// Load discovers every document below root and resolves their parent prefixes into a single tree.
// The first error encountered fails the whole load.
func (l Loader) Load(root string) (*Tree, error) {
	start := time.Now()
	t, err := l.assemble(root)
	if err != nil {
		l.Metrics.RecordFailure(time.Since(start), fault.KindName(err))
		l.Log.Debug().Err(err).Str("root", root).Msg("tree load failed")
		return nil, err
	}
	items := t.ItemCount()
	l.Metrics.RecordLoad(time.Since(start), t.Len(), items)
	l.Log.Debug().
		Str("root", root).
		Str("top", t.Root().Prefix()).
		Int("documents", t.Len()).
		Int("items", items).
		Dur("duration", time.Since(start)).
		Msg("tree loaded")
	return t, nil
}

func (l Loader) assemble(root string) (*Tree, error) {
	descriptors, err := walk.Find(root, walk.HiddenDir, walk.NamedFile(document.DescriptorFileName))
	if err != nil {
		return nil, fault.Discovery(root, err)
	}
	if len(descriptors) == 0 {
		return nil, fault.Discovery(root, nil)
	}

	t := &Tree{
		nodes: make([]node, 0, len(descriptors)),
		index: make(map[string]int, len(descriptors)),
		root:  noParent,
	}
	for _, path := range descriptors {
		doc, err := document.Load(path)
		if err != nil {
			return nil, err
		}
		prefix := doc.Prefix()
		if first, taken := t.index[prefix]; taken {
			return nil, fault.DuplicatePrefix(prefix, t.nodes[first].doc.Path(), path)
		}
		t.index[prefix] = len(t.nodes)
		t.nodes = append(t.nodes, node{doc: doc, parent: noParent})
		l.Log.Debug().Str("prefix", prefix).Str("path", path).Int("items", doc.Len()).Msg("document loaded")
	}

	if err := t.resolve(); err != nil {
		return nil, err
	}
	return t, nil
}

// resolve links every node to its configured parent and determines the root
func (t *Tree) resolve() error {
	var roots []int
	for id := range t.nodes {
		doc := t.nodes[id].doc
		parentPrefix := doc.Parent()
		if parentPrefix == "" {
			roots = append(roots, id)
			continue
		}
		if parentPrefix == doc.Prefix() {
			return fault.CyclicParent(doc.Prefix())
		}
		parent, found := t.index[parentPrefix]
		if !found {
			return fault.DanglingParent(doc.Prefix(), parentPrefix)
		}
		t.nodes[id].parent = parent
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	}

	if len(roots) > 1 {
		return fault.AmbiguousRoot(t.prefixesOf(roots)...)
	}
	if len(roots) == 1 {
		t.root = roots[0]
	}
	if unreachable := t.unreachable(); len(unreachable) > 0 {
		return fault.CyclicParent(t.prefixesOf(unreachable)...)
	}
	return nil
}

// unreachable lists all nodes not connected to the root, which is every node if there is none
func (t *Tree) unreachable() []int {
	reached := make([]bool, len(t.nodes))
	if t.root != noParent {
		pending := []int{t.root}
		for len(pending) > 0 {
			id := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			reached[id] = true
			pending = append(pending, t.nodes[id].children...)
		}
	}
	var missing []int
	for id, ok := range reached {
		if !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func (t *Tree) prefixesOf(ids []int) []string {
	prefixes := make([]string, 0, len(ids))
	for _, id := range ids {
		prefixes = append(prefixes, t.nodes[id].doc.Prefix())
	}
	return prefixes
}
