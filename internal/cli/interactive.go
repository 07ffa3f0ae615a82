package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Runner is the consumer interface for dispatching queries to the pipeline
// driver.
type Runner interface {
	ProcessQuery(ctx context.Context, id, text string, c float64)
	CountQuery(ctx context.Context, id, text string, c float64)
}

// InteractiveOptions tune the interactive session.
type InteractiveOptions struct {
	// Verbose prints a prompt before each read.
	Verbose bool
	// Lowercase normalizes each query to lowercase before dispatch.
	Lowercase bool
	// C is the tuning parameter passed to every query.
	C float64
}

const prompt = "Please enter your query: "

// RunInteractive reads one query per line from in until an empty line or a
// line equal to "quit" or "exit" (case-insensitive). Each query is dispatched
// to the runner's retrieve path with an auto-incrementing identifier. Read
// errors terminate the loop and are logged, not returned.
func RunInteractive(ctx context.Context, runner Runner, in io.Reader, out io.Writer, opts InteractiveOptions, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sc := bufio.NewScanner(in)
	qid := 1
	for {
		if opts.Verbose {
			fmt.Fprint(out, prompt)
		}
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				logger.Error("input/output exception while reading queries", zap.Error(err))
			}
			return
		}

		line := sc.Text()
		lower := strings.ToLower(line)
		if line == "" || lower == "quit" || lower == "exit" {
			return
		}

		text := line
		if opts.Lowercase {
			text = lower
		}
		runner.ProcessQuery(ctx, strconv.Itoa(qid), text, opts.C)
		qid++
	}
}

// RunBatch runs every parsed query through the driver in retrieve or count
// mode. Retrieve is checked first: when both mode flags were given, retrieve
// wins for every query.
func RunBatch(ctx context.Context, runner Runner, rc RunConfig, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, q := range rc.Queries {
		logger.Info("query", zap.String("text", q))
		if rc.Retrieving {
			runner.ProcessQuery(ctx, "CMDLINE", q, rc.C)
		} else if rc.Counting {
			runner.CountQuery(ctx, "CMDLINE", q, rc.C)
		}
	}
}
