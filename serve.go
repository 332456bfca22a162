package reqtree

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/n2code/reqtree/internal/logger"
	"github.com/n2code/reqtree/internal/search"
	"github.com/n2code/reqtree/internal/tools"
)

// instrumentedSearch feeds tool searches into the same metrics as Find
type instrumentedSearch struct {
	r *reqtree
}

func (s instrumentedSearch) Search(query string, max int) ([]search.Hit, int, error) {
	searcher, err := s.r.search()
	if err != nil {
		return nil, 0, fmt.Errorf("search index unavailable: %w", err)
	}
	hits, total, err := searcher.Search(query, max)
	if err == nil {
		s.r.metrics.RecordSearch(len(hits))
	}
	return hits, total, err
}

func (r *reqtree) newServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "reqtree", Version: Version}, nil)
	tools.New(r.tree, instrumentedSearch{r: r}, logger.Component(r.log, "tools")).Register(server)
	return server
}

func (r *reqtree) Serve(ctx context.Context, transport mcp.Transport) error {
	r.log.Info().Int("documents", r.tree.Len()).Msg("serving requirements over MCP")
	if err := r.newServer().Run(ctx, transport); err != nil && ctx.Err() == nil {
		return newCommandError("MCP server error", err)
	}
	return nil
}
