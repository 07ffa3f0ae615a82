// Package cli interprets the command-line surface: the argument state
// machine, the interactive stdin loop, and the one-shot batch runner.
package cli

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// RunConfig is the parsed process invocation. It is built once and read-only
// afterwards.
type RunConfig struct {
	// Queries holds the comma-split, trimmed queries captured after a
	// retrieve or count flag.
	Queries []string
	// C is the weighting model tuning parameter.
	C float64
	// Props holds -D property overrides in argument order of last write.
	Props map[string]string
	// Verbose controls the interactive prompt.
	Verbose bool
	// Quiet restricts logging to error level (--nonverbose).
	Quiet bool

	// Retrieving and Counting may both be set when both mode flags appear;
	// the batch runner checks Retrieving first. The captured query text is a
	// single slot, so the later flag's capture wins.
	Retrieving bool
	Counting   bool
}

// Interactive reports whether no one-shot mode flag was given.
func (rc RunConfig) Interactive() bool {
	return !rc.Retrieving && !rc.Counting
}

// Parse interprets the argument vector. Malformed input is logged and never
// fatal: bad tuning values leave C unchanged, a mode flag without query text
// leaves Queries empty.
func Parse(args []string, logger *zap.Logger) RunConfig {
	if logger == nil {
		logger = zap.NewNop()
	}
	rc := RunConfig{
		C:       1.0,
		Props:   map[string]string{},
		Verbose: true,
	}

	if len(args) == 0 {
		return rc
	}
	if len(args) == 1 && args[0] == "--noverbose" {
		rc.Verbose = false
		return rc
	}

	rawQuery := ""
	pos := 0
	for pos < len(args) {
		arg := args[pos]
		switch {
		case strings.HasPrefix(arg, "-D"):
			key, value, _ := strings.Cut(strings.TrimPrefix(arg, "-D"), "=")
			rc.Props[key] = value
			pos++

		case arg == "-r" || arg == "--retrieve":
			pos++
			rawQuery, pos = captureQueryText(args, pos)
			if rawQuery == "" {
				logger.Error("no query text after -r")
			}
			rc.Retrieving = true

		case arg == "-C" || arg == "--count":
			pos++
			rawQuery, pos = captureQueryText(args, pos)
			if rawQuery == "" {
				logger.Error("no query text after -C")
			}
			rc.Counting = true

		case arg == "--nonverbose":
			rc.Verbose = false
			rc.Quiet = true
			pos++

		case strings.HasPrefix(arg, "-c"):
			if arg == "-c" {
				// the next argument is the value
				if pos+1 < len(args) {
					pos++
					if v, err := strconv.ParseFloat(args[pos], 64); err != nil {
						logger.Error("c value can't be parsed", zap.String("value", args[pos]))
					} else {
						rc.C = v
					}
				} else {
					logger.Error("c value is missing")
				}
			} else {
				// the value is in the same argument
				if v, err := strconv.ParseFloat(arg[2:], 64); err != nil {
					logger.Error("c value can't be parsed", zap.String("value", arg[2:]))
				} else {
					rc.C = v
				}
			}
			pos++

		default:
			// unknown token, skip
			pos++
		}
	}

	rc.Queries = SplitQueries(rawQuery)
	return rc
}

// captureQueryText space-joins tokens up to (not including) the next token
// starting with "-", returning the text and the new cursor position.
func captureQueryText(args []string, pos int) (string, int) {
	var b strings.Builder
	for pos < len(args) && !strings.HasPrefix(args[pos], "-") {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(args[pos])
		pos++
	}
	return b.String(), pos
}

// SplitQueries splits a raw query blob on commas into trimmed, non-empty
// queries preserving order.
func SplitQueries(raw string) []string {
	var queries []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			queries = append(queries, part)
		}
	}
	return queries
}
