// Package meta implements the external metadata index over redis hashes.
// Each document is a hash at <prefix><docid> whose fields are metadata keys.
package meta

import (
	"context"
	"fmt"
	"strconv"
)

// store is the consumer interface for metadata lookups (ISP).
type store interface {
	HGetMulti(ctx context.Context, keys []string, field string) ([]string, error)
}

// Repo resolves metadata keys for docID lists. It implements
// engine.MetaIndex.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a metadata repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Metadata returns one value per docID for the given metadata key. Missing
// documents and fields resolve to "".
func (r *Repo) Metadata(ctx context.Context, key string, docIDs []int) ([]string, error) {
	if len(docIDs) == 0 {
		return nil, nil
	}

	keys := make([]string, len(docIDs))
	for i, id := range docIDs {
		keys[i] = r.docKey(id)
	}

	values, err := r.store.HGetMulti(ctx, keys, key)
	if err != nil {
		return nil, fmt.Errorf("metadata lookup %s: %w", key, err)
	}
	return values, nil
}

func (r *Repo) docKey(docID int) string {
	return r.keyPrefix + strconv.Itoa(docID)
}
