package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/recdex/internal/db"
)

// PutRecord replaces the set memberships of row.ID. The previous row is read
// back from its record key so stale memberships can be removed; all writes go
// out in one DoMulti round-trip.
func (s *Store) PutRecord(ctx context.Context, row *db.RecordRow) error {
	if err := row.Validate(); err != nil {
		return err
	}

	prev, err := s.previous(ctx, row.ID)
	if err != nil {
		return err
	}

	member := strconv.FormatInt(row.ID, 10)
	next := s.keys.memberships(row)
	keep := make(map[string]bool, len(next))
	for _, key := range next {
		keep[key] = true
	}

	var cmds []rueidis.Completed
	if prev != nil {
		for _, key := range s.keys.memberships(prev) {
			if !keep[key] {
				cmds = append(cmds, s.b().Srem().Key(key).Member(member).Build())
			}
		}
	}
	for _, key := range next {
		cmds = append(cmds, s.b().Sadd().Key(key).Member(member).Build())
	}

	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("marshal record %d: %w", row.ID, err)
	}
	cmds = append(cmds, s.b().Set().Key(s.keys.record(row.ID)).Value(string(data)).Build())

	for i, res := range s.doMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return &db.Error{Op: opOf(cmds[i]), Err: fmt.Errorf("record %d: %w", row.ID, err)}
		}
	}
	return nil
}

func (s *Store) previous(ctx context.Context, id int64) (*db.RecordRow, error) {
	cmd := s.b().Get().Key(s.keys.record(id)).Build()
	data, err := s.do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, nil
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	var row db.RecordRow
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, &db.Error{Op: db.OpGet, Err: fmt.Errorf("decode record %d: %w", id, err)}
	}
	return &row, nil
}

func opOf(cmd rueidis.Completed) string {
	if c := cmd.Commands(); len(c) > 0 {
		return c[0]
	}
	return db.OpSet
}
