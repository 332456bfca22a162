// Package search provides full-text search over all items of a loaded tree.
package search

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/n2code/reqtree/internal/item"
	"github.com/n2code/reqtree/internal/tree"
)

// DefaultMaxResults applies when a search asks for no specific number of results.
const DefaultMaxResults = 10

const maxResultsLimit = 100

const batchSize = 100

// Index abstracts the bleve.Index operations in use
type Index interface {
	Search(req *bleve.SearchRequest) (*bleve.SearchResult, error)
	DocCount() (uint64, error)
	Close() error
}

// entry is the indexed form of an item, field names are the JSON tags
type entry struct {
	Prefix string `json:"prefix"`
	Level  string `json:"level"`
	Header string `json:"header"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}

// Hit is one search result.
type Hit struct {
	UID    string  `json:"uid"`
	Prefix string  `json:"prefix"`
	Level  string  `json:"level"`
	Title  string  `json:"title"`
	Score  float64 `json:"score"`
}

type Searcher struct {
	index Index
}

// New wraps an existing index.
func New(index Index) *Searcher {
	return &Searcher{index: index}
}

// Build indexes every item of the tree in memory.
func Build(t *tree.Tree) (*Searcher, error) {
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}
	batch := index.NewBatch()
	var failed error
	t.Walk(func(n tree.Node, depth int) bool {
		n.Document().Ascend(func(it *item.Item) bool {
			if err := batch.Index(it.UID(), toEntry(n.Prefix(), it)); err != nil {
				failed = fmt.Errorf("failed to add item %s to batch: %w", it.UID(), err)
				return false
			}
			if batch.Size() >= batchSize {
				if err := index.Batch(batch); err != nil {
					failed = fmt.Errorf("failed to index batch: %w", err)
					return false
				}
				batch.Reset()
			}
			return true
		})
		return failed == nil
	})
	if failed == nil && batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			failed = fmt.Errorf("failed to index batch: %w", err)
		}
	}
	if failed != nil {
		index.Close()
		return nil, failed
	}
	return New(index), nil
}

func toEntry(prefix string, it *item.Item) entry {
	return entry{
		Prefix: prefix,
		Level:  it.Level(),
		Header: it.Header(),
		Title:  it.Title(),
		Text:   it.Text(),
	}
}

// Search runs a match query, max <= 0 means DefaultMaxResults.
// It returns the best hits and the total number of matching items.
func (s *Searcher) Search(query string, max int) ([]Hit, int, error) {
	if max <= 0 {
		max = DefaultMaxResults
	}
	if max > maxResultsLimit {
		max = maxResultsLimit
	}
	request := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	request.Size = max
	request.Fields = []string{"*"}

	result, err := s.index.Search(request)
	if err != nil {
		return nil, 0, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, match := range result.Hits {
		hit := Hit{UID: match.ID, Score: match.Score}
		if prefix, ok := match.Fields["prefix"].(string); ok {
			hit.Prefix = prefix
		}
		if lvl, ok := match.Fields["level"].(string); ok {
			hit.Level = lvl
		}
		if title, ok := match.Fields["title"].(string); ok {
			hit.Title = title
		}
		hits = append(hits, hit)
	}
	return hits, int(result.Total), nil
}

// Len is the number of indexed items.
func (s *Searcher) Len() (int, error) {
	count, err := s.index.DocCount()
	return int(count), err
}

func (s *Searcher) Close() error {
	return s.index.Close()
}
