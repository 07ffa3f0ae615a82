package memory

import (
	"fmt"
	"sort"

	"github.com/sift-ir/sift/internal/engine"
)

// match scores every document containing at least one query term
// (document-at-a-time over the union of the terms' posting lists) and returns
// a result set ranked by descending score, truncated to retain entries.
// It returns engine.ErrNoResults when no query term has a posting list.
func (e *Engine) match(st *pipelineState, weightingModel string, c float64, retain int) (*engine.ResultSet, error) {
	model, err := newWeighting(weightingModel)
	if err != nil {
		return nil, err
	}

	coll := e.idx.stats()
	acc := map[int]float64{}

	for _, t := range st.order {
		p, ts, ok := e.idx.term(t)
		if !ok {
			continue
		}
		qtf := float64(st.freq[t])
		for docID, tf := range p {
			docLen := float64(e.idx.docLens[docID])
			if docLen == 0 {
				continue
			}
			acc[docID] += qtf * model.score(float64(tf), docLen, ts, coll, c)
		}
	}

	if len(acc) == 0 {
		return nil, engine.ErrNoResults
	}

	docIDs := make([]int, 0, len(acc))
	for id := range acc {
		docIDs = append(docIDs, id)
	}
	sort.Slice(docIDs, func(i, j int) bool {
		si, sj := acc[docIDs[i]], acc[docIDs[j]]
		if si != sj {
			return si > sj
		}
		return docIDs[i] < docIDs[j]
	})

	exact := len(docIDs)
	if retain > 0 && len(docIDs) > retain {
		docIDs = docIDs[:retain]
	}

	scores := make([]float64, len(docIDs))
	for i, id := range docIDs {
		scores[i] = acc[id]
	}

	rs, err := engine.NewResultSet(docIDs, scores)
	if err != nil {
		return nil, fmt.Errorf("build result set: %w", err)
	}
	rs.SetExactSize(exact)
	return rs, nil
}
