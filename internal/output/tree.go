package output

import (
	"github.com/disiqueira/gotree/v3"
	"github.com/n2code/reqtree/internal/level"
)

type VisualTree struct {
	tree gotree.Tree
}

// Branch is a position in a VisualTree where labels can be attached.
type Branch struct {
	node gotree.Tree
}

func NewVisualTree(rootLabel string) VisualTree {
	return VisualTree{tree: gotree.New(rootLabel)}
}

func (t VisualTree) Root() Branch {
	return Branch{node: t.tree}
}

func (b Branch) Add(label string) Branch {
	return Branch{node: b.node.Add(label)}
}

func (t VisualTree) Render() string {
	return t.tree.Print()
}

type outlineEntry struct {
	key    level.Key
	branch Branch
}

// VisualOutline nests labels by outline level. Entries must be inserted in outline order.
type VisualOutline struct {
	VisualTree
	open []outlineEntry
}

func NewVisualOutline(rootLabel string) *VisualOutline {
	return &VisualOutline{VisualTree: NewVisualTree(rootLabel)}
}

// Insert attaches label below the closest preceding entry which is on a shallower level.
func (o *VisualOutline) Insert(key level.Key, label string) {
	parent := o.Root()
	for len(o.open) > 0 {
		top := o.open[len(o.open)-1]
		if level.Relate(top.key, key).Kind == level.OutLevel {
			parent = top.branch
			break
		}
		o.open = o.open[:len(o.open)-1]
	}
	o.open = append(o.open, outlineEntry{key: key, branch: parent.Add(label)})
}
