package query

import (
	"context"

	"github.com/sift-ir/sift/internal/engine"
)

// Engine is the consumer interface the pipeline driver needs from a
// retrieval engine.
type Engine interface {
	RunPreProcessing(ctx context.Context, req *engine.Request) error
	RunMatching(ctx context.Context, req *engine.Request) error
	RunPostProcessing(ctx context.Context, req *engine.Request) error
	RunPostFilters(ctx context.Context, req *engine.Request) error
	CollectionSize(ctx context.Context) (int, error)
}

// MetaIndex is the external metadata lookup the formatter falls back to for
// keys the result set does not embed.
type MetaIndex interface {
	Metadata(ctx context.Context, key string, docIDs []int) ([]string, error)
}
