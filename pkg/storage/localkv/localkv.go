// Package localkv implements storage.KVStore on top of an embedded
// cockroachdb/pebble database. It satisfies the same interface as the
// Redis-backed adapter, so tests and offline runs get deterministic
// persistence without a live Redis server.
package localkv

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cockroachdb/pebble"
)

// Store wraps a *pebble.DB as the engine's KVStore.
type Store struct {
	db *pebble.DB
	mu sync.Mutex // guards the in-memory sorted-set index
	// sortedSets mirrors Redis's ZADD semantics: key -> member -> score,
	// persisted alongside the plain keys so a restart restores it.
	sortedSets map[string]map[string]uint64
}

// Open opens (creating if absent) a pebble database at path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("localkv: open %s: %w", path, err)
	}
	s := &Store{db: db, sortedSets: make(map[string]map[string]uint64)}
	s.loadSortedSets()
	return s, nil
}

func sortedSetKey(key string) []byte {
	return []byte("zset:" + key)
}

func (s *Store) loadSortedSets() {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte("zset:"),
		UpperBound: []byte("zset;"),
	})
	if err != nil {
		return
	}
	defer iter.Close()
	for iter.First(); iter.Valid(); iter.Next() {
		key := strings.TrimPrefix(string(iter.Key()), "zset:")
		members := make(map[string]uint64)
		for _, entry := range strings.Split(string(iter.Value()), "\n") {
			if entry == "" {
				continue
			}
			parts := strings.SplitN(entry, "\x00", 2)
			if len(parts) != 2 {
				continue
			}
			score, err := strconv.ParseUint(parts[0], 10, 64)
			if err != nil {
				continue
			}
			members[parts[1]] = score
		}
		s.sortedSets[key] = members
	}
}

// AppendSortedSet appends member to the sorted set at key, scored by
// score, persisting the updated set.
func (s *Store) AppendSortedSet(key string, score uint64, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, ok := s.sortedSets[key]
	if !ok {
		members = make(map[string]uint64)
		s.sortedSets[key] = members
	}
	members[member] = score

	var sb strings.Builder
	for m, sc := range members {
		sb.WriteString(strconv.FormatUint(sc, 10))
		sb.WriteByte(0)
		sb.WriteString(m)
		sb.WriteByte('\n')
	}
	return s.db.Set(sortedSetKey(key), []byte(sb.String()), pebble.Sync)
}

// SortedSetMembers returns the members of key ordered by ascending
// score, for tests that need to verify the history sink.
func (s *Store) SortedSetMembers(key string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := s.sortedSets[key]
	type pair struct {
		member string
		score  uint64
	}
	pairs := make([]pair, 0, len(members))
	for m, sc := range members {
		pairs = append(pairs, pair{m, sc})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].score < pairs[j].score })
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.member
	}
	return out
}

// SaveKey stores value under key.
func (s *Store) SaveKey(key, value string) error {
	return s.db.Set([]byte("k:"+key), []byte(value), pebble.Sync)
}

// LoadKey returns the value stored under key, distinguishing a missing
// key from any other failure.
func (s *Store) LoadKey(key string) (string, bool, error) {
	val, closer, err := s.db.Get([]byte("k:" + key))
	if errors.Is(err, pebble.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("localkv: load key %q: %w", key, err)
	}
	defer closer.Close()
	return string(val), true, nil
}

// FlushData clears every key the store holds.
func (s *Store) FlushData() error {
	s.mu.Lock()
	s.sortedSets = make(map[string]map[string]uint64)
	s.mu.Unlock()

	iter, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return err
	}
	defer iter.Close()

	batch := s.db.NewBatch()
	for iter.First(); iter.Valid(); iter.Next() {
		if err := batch.Delete(iter.Key(), nil); err != nil {
			return err
		}
	}
	return batch.Commit(pebble.Sync)
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
