package engine

import "fmt"

// ResultSet is a ranked result set. DocIDs and Scores are index-aligned; the
// index is a structural result-set position, not a rank by score magnitude.
type ResultSet struct {
	docIDs []int
	scores []float64
	meta   map[string][]string
	exact  int
}

// NewResultSet creates a result set from aligned docID and score slices. The
// exact size defaults to len(docIDs) until SetExactSize overrides it.
func NewResultSet(docIDs []int, scores []float64) (*ResultSet, error) {
	if len(docIDs) != len(scores) {
		return nil, fmt.Errorf("result set misaligned: %d docids vs %d scores", len(docIDs), len(scores))
	}
	return &ResultSet{docIDs: docIDs, scores: scores, exact: len(docIDs)}, nil
}

// Size returns the number of retained result positions.
func (rs *ResultSet) Size() int { return len(rs.docIDs) }

// DocIDs returns the docID at each structural position.
func (rs *ResultSet) DocIDs() []int { return rs.docIDs }

// Scores returns the score at each structural position.
func (rs *ResultSet) Scores() []float64 { return rs.scores }

// ExactSize returns the total number of matching documents before any
// retrieval-window truncation.
func (rs *ResultSet) ExactSize() int { return rs.exact }

// SetExactSize records the pre-truncation match count.
func (rs *ResultSet) SetExactSize(n int) { rs.exact = n }

// HasMetaItems reports whether the result set already carries values for the
// given metadata key.
func (rs *ResultSet) HasMetaItems(key string) bool {
	_, ok := rs.meta[key]
	return ok
}

// MetaItems returns the embedded, position-aligned values for a metadata key.
func (rs *ResultSet) MetaItems(key string) []string {
	return rs.meta[key]
}

// SetMetaItems embeds position-aligned metadata values for a key.
func (rs *ResultSet) SetMetaItems(key string, values []string) {
	if rs.meta == nil {
		rs.meta = map[string][]string{}
	}
	rs.meta[key] = values
}
