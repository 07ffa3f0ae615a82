package redis

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/sift-ir/sift/internal/db"
)

// HGetMulti reads one field from many hashes in a single DoMulti round-trip.
// Missing keys and fields resolve to "" at their position.
func (s *Store) HGetMulti(ctx context.Context, keys []string, field string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make([]rueidis.Completed, len(keys))
	for i, key := range keys {
		cmds[i] = s.b().Hget().Key(key).Field(field).Build()
	}

	results := s.client.DoMulti(ctx, cmds...)
	out := make([]string, len(results))
	for i, res := range results {
		v, err := res.ToString()
		if err != nil {
			if rueidis.IsRedisNil(err) {
				continue
			}
			return nil, &db.Error{Op: db.OpHGet, Err: err}
		}
		out[i] = v
	}
	return out, nil
}

// HGetAll returns all fields of a hash.
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	cmd := s.b().Hgetall().Key(key).Build()
	m, err := s.do(ctx, cmd).AsStrMap()
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	return m, nil
}
