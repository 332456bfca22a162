// Package document assembles the items below one descriptor file into a document.
package document

import (
	"path/filepath"

	"github.com/google/btree"
	"github.com/n2code/reqtree/internal/fault"
	"github.com/n2code/reqtree/internal/item"
	"github.com/n2code/reqtree/internal/walk"
)

const outlineDegree = 8

// Document is created fully populated and immutable afterwards.
type Document struct {
	path    string
	config  Config
	byID    map[string]*item.Item
	byLevel *btree.BTreeG[*item.Item]
}

func outlineOrder(a, b *item.Item) bool {
	if c := a.Key().Compare(b.Key()); c != 0 {
		return c < 0
	}
	return a.UID() < b.UID()
}

// Load reads the descriptor at descriptorPath and every item file below its directory.
// A single unreadable item fails the whole document.
func Load(descriptorPath string) (*Document, error) {
	config, err := LoadConfig(descriptorPath)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(descriptorPath)
	paths, err := walk.Find(dir, nil, walk.FileWithAffixes(config.Settings.Prefix, item.FileExtension))
	if err != nil {
		return nil, fault.Read(dir, err)
	}
	doc := &Document{
		path:    descriptorPath,
		config:  *config,
		byID:    make(map[string]*item.Item, len(paths)),
		byLevel: btree.NewG(outlineDegree, outlineOrder),
	}
	for _, path := range paths {
		loaded, err := item.Load(path)
		if err != nil {
			return nil, err
		}
		doc.insert(loaded)
	}
	return doc, nil
}

// insert keeps both indexes in lockstep, a second file with the same UID replaces the first in both
func (d *Document) insert(it *item.Item) {
	if previous, exists := d.byID[it.UID()]; exists {
		d.byLevel.Delete(previous)
	}
	d.byID[it.UID()] = it
	d.byLevel.ReplaceOrInsert(it)
}

func (d *Document) Prefix() string {
	return d.config.Settings.Prefix
}

// Parent is the prefix of the parent document, empty for the root document.
func (d *Document) Parent() string {
	return d.config.Settings.Parent
}

func (d *Document) Digits() int {
	return d.config.Settings.Digits
}

func (d *Document) Sep() string {
	return d.config.Settings.Sep
}

func (d *Document) Publish() []string {
	return append([]string(nil), d.config.Attributes.Publish...)
}

// Path is the descriptor file the document was loaded from.
func (d *Document) Path() string {
	return d.path
}

func (d *Document) Dir() string {
	return filepath.Dir(d.path)
}

func (d *Document) Item(uid string) (*item.Item, bool) {
	it, found := d.byID[uid]
	return it, found
}

func (d *Document) Len() int {
	return len(d.byID)
}

// Ascend visits all items in outline order until fn returns false.
func (d *Document) Ascend(fn func(*item.Item) bool) {
	d.byLevel.Ascend(btree.ItemIteratorG[*item.Item](fn))
}

// Items lists all items in outline order.
func (d *Document) Items() []*item.Item {
	items := make([]*item.Item, 0, d.Len())
	d.Ascend(func(it *item.Item) bool {
		items = append(items, it)
		return true
	})
	return items
}

func (d *Document) String() string {
	return d.Prefix()
}
