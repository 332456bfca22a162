// Package item loads single requirement records from their YAML files.
package item

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/n2code/reqtree/internal/fault"
	"github.com/n2code/reqtree/internal/level"
	"gopkg.in/yaml.v3"
)

// FileExtension is the extension of item files.
const FileExtension = ".yml"

// record is the on-disk shape, absent fields stay at their zero value
type record struct {
	Active    *bool     `yaml:"active"`
	Derived   bool      `yaml:"derived"`
	Normative bool      `yaml:"normative"`
	Reviewed  string    `yaml:"reviewed"`
	Header    string    `yaml:"header"`
	Level     levelText `yaml:"level"`
	Text      string    `yaml:"text"`
}

// levelText keeps the literal scalar so that an unquoted 1.10 is not read as the number 1.1
type levelText string

func (l *levelText) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: level must be a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		*l = ""
		return nil
	}
	*l = levelText(node.Value)
	return nil
}

// Item is one requirement. It is immutable after loading.
type Item struct {
	uid    string
	path   string
	record record
	key    level.Key
}

// Load reads the item file at path. The UID is always taken from the file name, never from the content.
func Load(path string) (*Item, error) {
	uid, ok := uidFromPath(path)
	if !ok {
		return nil, fault.Naming(path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fault.Read(path, err)
	}
	var rec record
	if err := decode(content, &rec); err != nil {
		return nil, fault.Format(path, err)
	}
	return newItem(uid, path, rec), nil
}

func decode(content []byte, rec *record) error {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil
	}
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return err
	}
	if len(root.Content) == 0 {
		return nil
	}
	doc := root.Content[0]
	if doc.Kind == yaml.ScalarNode && doc.Tag == "!!null" {
		return nil
	}
	if doc.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: item must be a mapping", doc.Line)
	}
	return doc.Decode(rec)
}

func newItem(uid string, path string, rec record) *Item {
	text := string(rec.Level)
	if text == "" {
		text = level.Default
	}
	return &Item{uid: uid, path: path, record: rec, key: level.Parse(text)}
}

func uidFromPath(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		return "", false
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return stem, stem != ""
}

func (i *Item) UID() string {
	return i.uid
}

// Path is the file the item was loaded from.
func (i *Item) Path() string {
	return i.path
}

// Level is the declared outline position, "1" if none is declared.
func (i *Item) Level() string {
	if i.record.Level == "" {
		return level.Default
	}
	return string(i.record.Level)
}

func (i *Item) Key() level.Key {
	return i.key
}

func (i *Item) Depth() int {
	return i.key.Depth()
}

// Relation tells how deep other is nested compared to this item.
func (i *Item) Relation(other *Item) level.Relation {
	return level.Relate(i.key, other.key)
}

func (i *Item) IsHeading() bool {
	return i.key.IsHeading()
}

func (i *Item) Active() bool {
	return i.record.Active != nil && *i.record.Active
}

// Deactivated is true only for an explicit "active: false", a missing flag does not count.
func (i *Item) Deactivated() bool {
	return i.record.Active != nil && !*i.record.Active
}

func (i *Item) Derived() bool {
	return i.record.Derived
}

func (i *Item) Normative() bool {
	return i.record.Normative
}

func (i *Item) Reviewed() string {
	return i.record.Reviewed
}

func (i *Item) Header() string {
	return i.record.Header
}

func (i *Item) Text() string {
	return i.record.Text
}

// Title is the header if set, the leading block of the text otherwise.
func (i *Item) Title() string {
	if header := strings.TrimSpace(i.record.Header); header != "" {
		return header
	}
	return leadingBlockText([]byte(i.record.Text))
}

func (i *Item) String() string {
	return fmt.Sprintf("%s (%s) %s", i.uid, i.Level(), i.Title())
}
