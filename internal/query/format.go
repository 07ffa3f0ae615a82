package query

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/sift-ir/sift/internal/engine"
)

// Formatter renders ranked result sets. For each configured metadata key it
// prefers values embedded in the result set and falls back to the external
// metadata index.
type Formatter struct {
	meta     MetaIndex
	metaKeys []string
	maxRows  int
}

// NewFormatter creates a result formatter. maxRows caps the number of
// rendered rows; metaKeys name the per-row metadata columns.
func NewFormatter(meta MetaIndex, metaKeys []string, maxRows int) *Formatter {
	if maxRows <= 0 {
		maxRows = 1000
	}
	return &Formatter{meta: meta, metaKeys: metaKeys, maxRows: maxRows}
}

// Print writes the result set to w: a header line, then one row per
// position in structural result-set order. Positions with a score of zero or
// less are skipped; they are filler entries, not matches.
func (f *Formatter) Print(ctx context.Context, w io.Writer, rs *engine.ResultSet) error {
	bw := bufio.NewWriter(w)

	minimum := rs.Size()
	if f.maxRows < minimum {
		minimum = f.maxRows
	}

	if rs.Size() > 0 {
		fmt.Fprintf(bw, "\nOUTPUT - Displaying 1-%d results\n", rs.Size())
	} else {
		fmt.Fprint(bw, "\nOUTPUT - No results\n")
	}

	columns := make([][]string, len(f.metaKeys))
	if rs.Size() > 0 {
		for i, key := range f.metaKeys {
			if rs.HasMetaItems(key) {
				columns[i] = rs.MetaItems(key)
				continue
			}
			values, err := f.meta.Metadata(ctx, key, rs.DocIDs())
			if err != nil {
				return fmt.Errorf("resolve metadata %s: %w", key, err)
			}
			columns[i] = values
		}
	}

	docIDs := rs.DocIDs()
	scores := rs.Scores()
	for i := 0; i < minimum; i++ {
		if scores[i] <= 0 {
			continue
		}
		fmt.Fprintf(bw, "%d ", i)
		for _, col := range columns {
			fmt.Fprintf(bw, "%s ", col[i])
		}
		fmt.Fprintf(bw, "%d %s\n", docIDs[i], strconv.FormatFloat(scores[i], 'g', -1, 64))
	}

	fmt.Fprint(bw, "\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush results: %w", err)
	}
	return nil
}
