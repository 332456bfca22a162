package reqtree

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/n2code/reqtree/internal/logger"
	"github.com/n2code/reqtree/internal/metrics"
	out "github.com/n2code/reqtree/internal/output"
	"github.com/n2code/reqtree/internal/search"
	"github.com/n2code/reqtree/internal/tree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Version is reported to MCP clients.
const Version = "0.4.0"

type VerbosityLevel int

const (
	DefaultVerbosity VerbosityLevel = iota
	VerboseMode
	QuietMode
)

// CreateConfig holds a set of common configuration switches that concern all calls to the reqtree API.
// The zero value is a sensible default.
type CreateConfig struct {
	Verbosity             VerbosityLevel
	FancyTerminalFeatures bool                  //colors and other escape sequences
	Logger                *zerolog.Logger       //nil disables logging
	Metrics               prometheus.Registerer //nil disables metrics
	Output                io.Writer             //nil means standard output, errors always go to standard error
}

type reqtree struct {
	root                  string //absolute, system-native path
	tree                  *tree.Tree
	printer               out.Printer
	log                   zerolog.Logger
	metrics               *metrics.Metrics
	fancyTerminalFeatures bool

	searchOnce sync.Once
	searcher   *search.Searcher
	searchErr  error
}

// Open loads the requirements tree below the given root directory once. The result is a read-only snapshot.
func Open(root string, config CreateConfig) (Reqtree, error) {
	handle := makeReqtree(config)
	handle.root = mustAbsFilepath(root)
	loader := tree.Loader{Log: logger.Component(handle.log, "tree"), Metrics: handle.metrics}
	loaded, err := loader.Load(handle.root)
	if err != nil {
		return nil, fmt.Errorf("tree load error: %w", err)
	}
	handle.tree = loaded
	handle.log.Info().Str("root", handle.root).Int("documents", loaded.Len()).Int("items", loaded.ItemCount()).Msg("requirements loaded")
	return handle, nil
}

func makeReqtree(config CreateConfig) (instance *reqtree) {
	instance = &reqtree{log: zerolog.Nop(), fancyTerminalFeatures: config.FancyTerminalFeatures}
	if config.Logger != nil {
		instance.log = *config.Logger
	}
	if config.Metrics != nil {
		instance.metrics = metrics.New(config.Metrics)
	}

	classes := []out.Class{out.Required, out.Error}
	switch config.Verbosity {
	case VerboseMode:
		classes = append(classes, out.Verbose)
		fallthrough
	case DefaultVerbosity:
		classes = append(classes, out.Normal)
	}
	terminal := config.Output
	if terminal == nil {
		terminal = os.Stdout
	}
	instance.printer = out.NewPrinter(terminal, os.Stderr, classes, config.FancyTerminalFeatures)
	return
}

func (r *reqtree) Tree() *tree.Tree {
	return r.tree
}

func (r *reqtree) Root() string {
	return r.root
}

func (r *reqtree) Close() error {
	if r.searcher != nil {
		return r.searcher.Close()
	}
	return nil
}

// search builds the full-text index on first use
func (r *reqtree) search() (*search.Searcher, error) {
	r.searchOnce.Do(func() {
		r.searcher, r.searchErr = search.Build(r.tree)
		if r.searchErr == nil {
			count, _ := r.searcher.Len()
			r.log.Debug().Int("items", count).Msg("search index built")
		}
	})
	return r.searcher, r.searchErr
}

func (r *reqtree) Print(class out.Class, format string, values ...interface{}) {
	r.printer.Out(class, format, values...)
}

func mustAbsFilepath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		panic(err)
	}
	return abs
}
