// Package engine defines the boundary between the query front end and a
// retrieval engine implementation: per-query requests, ranked result sets,
// the staged pipeline contract, and the driver registry.
package engine

import "context"

// Well-known control names understood by engine drivers.
const (
	// ControlTuning is the weighting model's tuning parameter.
	ControlTuning = "c"
	// ControlRetrievedSetSize caps how many ranked entries matching retains.
	ControlRetrievedSetSize = "matching.retrieved_set_size"
)

// Engine executes the retrieval pipeline. The four stage methods must be
// invoked in order: preprocessing, matching, postprocessing, post-filters.
// RunMatching returns ErrNoResults when the query has no posting data at all;
// that is a legitimate zero-match outcome, not a failure.
type Engine interface {
	RunPreProcessing(ctx context.Context, req *Request) error
	RunMatching(ctx context.Context, req *Request) error
	RunPostProcessing(ctx context.Context, req *Request) error
	RunPostFilters(ctx context.Context, req *Request) error

	// Metadata resolves one value per docID for the given metadata key.
	Metadata(ctx context.Context, key string, docIDs []int) ([]string, error)

	// CollectionSize reports the total number of documents in the index,
	// independent of any retrieval window.
	CollectionSize(ctx context.Context) (int, error)

	Close() error
}

// MetaIndex is the external metadata lookup used by the result formatter for
// keys the result set does not carry itself. Engines satisfy it; so does the
// redis-backed metadata repository.
type MetaIndex interface {
	Metadata(ctx context.Context, key string, docIDs []int) ([]string, error)
}
