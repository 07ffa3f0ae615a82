package query

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/sift-ir/sift/internal/engine"
	"github.com/sift-ir/sift/internal/metrics"
)

// Driver runs one query at a time through the four pipeline stages and
// branches into result formatting or count-only reporting. It is not safe
// for concurrent use; query processing is strictly sequential.
type Driver struct {
	eng       Engine
	formatter *Formatter
	sink      io.Writer
	logger    *zap.Logger

	matchingModel  string
	weightingModel string

	processed int
}

// NewDriver creates a pipeline driver writing formatted output to sink.
func NewDriver(eng Engine, formatter *Formatter, sink io.Writer, matchingModel, weightingModel string, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		eng:            eng,
		formatter:      formatter,
		sink:           sink,
		logger:         logger,
		matchingModel:  matchingModel,
		weightingModel: weightingModel,
	}
}

// Processed reports how many queries this driver has run, in either mode.
func (d *Driver) Processed() int { return d.processed }

func (d *Driver) newRequest(id, text string, c float64) *engine.Request {
	req := engine.NewRequest(id, text)
	req.SetControl(engine.ControlTuning, strconv.FormatFloat(c, 'g', -1, 64))
	req.AddModelPair(d.matchingModel, d.weightingModel)
	return req
}

// runStages executes the four pipeline stages in fixed order.
func (d *Driver) runStages(ctx context.Context, req *engine.Request) error {
	stages := []struct {
		name string
		run  func(context.Context, *engine.Request) error
	}{
		{"preprocess", d.eng.RunPreProcessing},
		{"match", d.eng.RunMatching},
		{"postprocess", d.eng.RunPostProcessing},
		{"postfilter", d.eng.RunPostFilters},
	}
	for _, stage := range stages {
		start := time.Now()
		err := stage.run(ctx, req)
		metrics.StageDuration.WithLabelValues(stage.name).Observe(time.Since(start).Seconds())
		if err != nil {
			return fmt.Errorf("%s: %w", stage.name, err)
		}
	}
	return nil
}

// ProcessQuery runs a retrieval query and renders its result set. A query
// with no posting data renders the "No results" header; failures are logged
// and never abort subsequent queries.
func (d *Driver) ProcessQuery(ctx context.Context, id, text string, c float64) {
	req := d.newRequest(id, text, c)
	d.processed++

	var rs *engine.ResultSet
	if err := d.runStages(ctx, req); err != nil {
		if !errors.Is(err, engine.ErrNoResults) {
			metrics.QueriesTotal.WithLabelValues("retrieve", "error").Inc()
			d.logger.Error("pipeline failed", zap.String("qid", id), zap.Error(err))
			return
		}
	} else {
		rs = req.Results()
	}
	if rs == nil {
		rs, _ = engine.NewResultSet(nil, nil)
	}

	status := "ok"
	if rs.Size() == 0 {
		status = "empty"
	}
	metrics.QueriesTotal.WithLabelValues("retrieve", status).Inc()
	metrics.ResultsReturned.Observe(float64(rs.Size()))

	if err := d.formatter.Print(ctx, d.sink, rs); err != nil {
		d.logger.Error("problem displaying results", zap.String("qid", id), zap.Error(err))
	}
}

// CountQuery runs a query purely for its exact match count. The retrieval
// window is lifted to the collection size first so counting is not capped by
// the default retrieved set size.
func (d *Driver) CountQuery(ctx context.Context, id, text string, c float64) {
	req := d.newRequest(id, text, c)
	d.processed++

	if n, err := d.eng.CollectionSize(ctx); err != nil {
		d.logger.Error("collection size unavailable, counting with default window",
			zap.String("qid", id), zap.Error(err))
	} else {
		req.SetControl(engine.ControlRetrievedSetSize, strconv.Itoa(n))
	}

	count := 0
	if err := d.runStages(ctx, req); err != nil && !errors.Is(err, engine.ErrNoResults) {
		metrics.QueriesTotal.WithLabelValues("count", "error").Inc()
		d.logger.Error("pipeline failed", zap.String("qid", id), zap.Error(err))
		return
	} else if err == nil {
		n, countErr := req.ExactCount()
		if countErr != nil && !errors.Is(countErr, engine.ErrCountUnavailable) {
			d.logger.Error("exact count unavailable", zap.String("qid", id), zap.Error(countErr))
		}
		count = n
	}

	status := "ok"
	if count == 0 {
		status = "empty"
	}
	metrics.QueriesTotal.WithLabelValues("count", status).Inc()

	if _, err := fmt.Fprintf(d.sink, "\nOUTPUT - %d matching documents\n", count); err != nil {
		d.logger.Error("problem displaying count", zap.String("qid", id), zap.Error(err))
	}
}
