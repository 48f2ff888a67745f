package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/recdex/internal/db"
	"github.com/kailas-cloud/recdex/internal/domain/record"
)

// group is one filter whose sets are combined before narrowing the readable set.
type group struct {
	keys []string
	all  bool // intersect the sets instead of uniting them
}

// ReadableRecords fetches every set the query touches in a single DoMulti
// round-trip and combines them client-side.
func (s *Store) ReadableRecords(ctx context.Context, q *db.AllowListQuery) ([]int64, error) {
	groups := s.groups(q)

	keys := []string{s.keys.user(q.UserID), s.keys.public()}
	for _, g := range groups {
		keys = append(keys, g.keys...)
	}

	cmds := make([]rueidis.Completed, len(keys))
	for i, key := range keys {
		cmds[i] = s.b().Smembers().Key(key).Build()
	}

	sets := make([]record.IDSet, len(keys))
	for i, res := range s.doMulti(ctx, cmds...) {
		members, err := res.AsStrSlice()
		if err != nil {
			return nil, &db.Error{Op: db.OpSMembers, Err: fmt.Errorf("key %s: %w", keys[i], err)}
		}
		set, err := parseIDs(members)
		if err != nil {
			return nil, &db.Error{Op: db.OpSMembers, Err: fmt.Errorf("key %s: %w", keys[i], err)}
		}
		sets[i] = set
	}

	own, public := sets[0], sets[1]
	readable := record.NewIDSet()
	for id := range own {
		if !q.HidePublic || !public.Has(id) {
			readable.Add(id)
		}
	}
	if !q.HidePublic {
		for id := range public {
			readable.Add(id)
		}
	}

	next := 2
	for _, g := range groups {
		readable.Intersect(combine(sets[next:next+len(g.keys)], g.all))
		next += len(g.keys)
	}
	return readable.Sorted(), nil
}

func (s *Store) groups(q *db.AllowListQuery) []group {
	var groups []group
	if len(q.Collections) > 0 {
		g := group{}
		for _, id := range q.Collections {
			g.keys = append(g.keys, s.keys.collection(id))
		}
		groups = append(groups, g)
	}
	if len(q.Tags) > 0 {
		g := group{all: q.AllTags}
		for _, t := range q.Tags {
			g.keys = append(g.keys, s.keys.tag(t))
		}
		groups = append(groups, g)
	}
	if len(q.RecordTypes) > 0 {
		g := group{}
		for _, t := range q.RecordTypes {
			g.keys = append(g.keys, s.keys.recordType(t))
		}
		groups = append(groups, g)
	}
	if len(q.Mimetypes) > 0 {
		g := group{}
		for _, m := range q.Mimetypes {
			g.keys = append(g.keys, s.keys.mimetype(m))
		}
		groups = append(groups, g)
	}
	return groups
}

func combine(sets []record.IDSet, all bool) record.IDSet {
	out := record.NewIDSet()
	if len(sets) == 0 {
		return out
	}
	if all {
		for id := range sets[0] {
			out.Add(id)
		}
		for _, set := range sets[1:] {
			out.Intersect(set)
		}
		return out
	}
	for _, set := range sets {
		for id := range set {
			out.Add(id)
		}
	}
	return out
}

func parseIDs(members []string) (record.IDSet, error) {
	set := make(record.IDSet, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid record id %q", m)
		}
		set.Add(id)
	}
	return set, nil
}
