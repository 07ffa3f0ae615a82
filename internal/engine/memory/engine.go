// Package memory implements the retrieval engine contract over an in-process
// inverted index loaded from a JSONL corpus.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/sift-ir/sift/internal/config"
	"github.com/sift-ir/sift/internal/engine"
)

// Driver is the registry name of this engine.
const Driver = "memory"

// Register makes the memory driver available to engine.Open.
func Register() {
	engine.Register(Driver, func(cfg config.Config, logger *zap.Logger) (engine.Engine, error) {
		return Open(cfg, logger)
	})
}

// Engine is the in-memory engine driver.
type Engine struct {
	idx           *index
	logger        *zap.Logger
	defaultRetain int
	embedKey      string
}

// pipelineState carries parsed query terms from preprocessing to matching.
type pipelineState struct {
	order []string
	freq  map[string]int
}

// New creates an empty engine. retain caps the ranked set when no
// per-request control overrides it; embedKey names the metadata key the
// post-filter stage embeds into result sets.
func New(retain int, embedKey string, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		idx:           newIndex(),
		logger:        logger,
		defaultRetain: retain,
		embedKey:      embedKey,
	}
}

// Open builds an engine from configuration, loading the corpus when one is
// configured.
func Open(cfg config.Config, logger *zap.Logger) (*Engine, error) {
	embedKey := "docno"
	if len(cfg.Output.MetaKeys) > 0 {
		embedKey = cfg.Output.MetaKeys[0]
	}
	e := New(cfg.Retrieval.RetrievedSetSize, embedKey, logger)

	if cfg.Engine.Corpus == "" {
		logger.Warn("no corpus configured, index is empty")
		return e, nil
	}

	start := time.Now()
	docs, err := loadJSONL(cfg.Engine.Corpus)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		e.idx.add(d)
	}
	logger.Info("time to initialise index",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("documents", e.idx.numDocs()),
	)
	return e, nil
}

// Add indexes a single document, assigning the next docID.
func (e *Engine) Add(d Document) int {
	return e.idx.add(d)
}

// RunPreProcessing parses the query text into a term bag.
func (e *Engine) RunPreProcessing(_ context.Context, req *engine.Request) error {
	order, freq := termBag(tokenize(req.Text))
	req.State = &pipelineState{order: order, freq: freq}
	return nil
}

// RunMatching scores the query against the index and attaches the ranked
// result set to the request. Returns engine.ErrNoResults when no query term
// has posting data.
func (e *Engine) RunMatching(_ context.Context, req *engine.Request) error {
	st, ok := req.State.(*pipelineState)
	if !ok {
		return fmt.Errorf("matching before preprocessing for query %s", req.ID)
	}

	if m := req.MatchingModel; m != "" && m != "daat" {
		return fmt.Errorf("%w: matching model %q", engine.ErrUnknownModel, m)
	}

	c := 1.0
	if v, set := req.Control(engine.ControlTuning); set {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			e.logger.Warn("unparseable c control, using default", zap.String("value", v))
		} else {
			c = parsed
		}
	}

	retain := e.defaultRetain
	if v, set := req.Control(engine.ControlRetrievedSetSize); set {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			e.logger.Warn("unparseable retrieved_set_size control, using default", zap.String("value", v))
		} else {
			retain = parsed
		}
	}

	weightingModel := req.WeightingModel
	if weightingModel == "" {
		weightingModel = "pl2"
	}

	rs, err := e.match(st, weightingModel, c, retain)
	if err != nil {
		return err
	}
	req.SetResults(rs)
	return nil
}

// RunPostProcessing is a hook point; the memory driver has no post
// processors.
func (e *Engine) RunPostProcessing(_ context.Context, _ *engine.Request) error {
	return nil
}

// RunPostFilters embeds the primary metadata key into the result set so that
// formatting does not need an external lookup for it.
func (e *Engine) RunPostFilters(_ context.Context, req *engine.Request) error {
	rs := req.Results()
	if rs == nil || e.embedKey == "" {
		return nil
	}
	values := make([]string, rs.Size())
	for i, id := range rs.DocIDs() {
		values[i] = e.idx.field(id, e.embedKey)
	}
	rs.SetMetaItems(e.embedKey, values)
	return nil
}

// Metadata resolves a stored field for each docID; unknown documents and
// missing fields resolve to the empty string.
func (e *Engine) Metadata(_ context.Context, key string, docIDs []int) ([]string, error) {
	values := make([]string, len(docIDs))
	for i, id := range docIDs {
		values[i] = e.idx.field(id, key)
	}
	return values, nil
}

// CollectionSize reports the number of indexed documents.
func (e *Engine) CollectionSize(_ context.Context) (int, error) {
	return e.idx.numDocs(), nil
}

// Close releases the index. The in-memory driver holds no external
// resources.
func (e *Engine) Close() error {
	e.idx = newIndex()
	return nil
}
