// Package qlearn holds the tabular Q-learning machinery: a sharded
// concurrent table of action values, the epsilon-greedy agent that
// reads and updates it, and the snapshot codec used for checkpoints.
package qlearn

import (
	"hash/fnv"
	"sync"

	"othello/game"
)

const numShards = 64

// Record is one (state, action, value) triple, the unit both of
// snapshots and of the persisted format.
type Record struct {
	Key   game.StateKey
	Move  game.Move
	Value float64
}

type shard struct {
	mu      sync.RWMutex
	actions map[game.StateKey]map[game.Move]float64
}

// Table maps (StateKey, Move) pairs to learned value estimates. It is
// sharded by state key so concurrent updates to different states do not
// serialize; updates to the same entry are read-modify-write under one
// shard lock and therefore never lose a write.
type Table struct {
	shards [numShards]*shard
}

func NewTable() *Table {
	t := &Table{}
	for i := range t.shards {
		t.shards[i] = &shard{actions: make(map[game.StateKey]map[game.Move]float64)}
	}
	return t
}

func (t *Table) shardFor(key game.StateKey) *shard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return t.shards[h.Sum32()%numShards]
}

// Get returns the value estimate for (key, move); unseen entries are 0.
func (t *Table) Get(key game.StateKey, mv game.Move) float64 {
	s := t.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actions[key][mv]
}

// Update applies fn to the current value of (key, move) and stores the
// result, all inside one critical section.
func (t *Table) Update(key game.StateKey, mv game.Move, fn func(old float64) float64) {
	s := t.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	actions := s.actions[key]
	if actions == nil {
		actions = make(map[game.Move]float64)
		s.actions[key] = actions
	}
	actions[mv] = fn(actions[mv])
}

// Max returns the highest value estimate among moves for key. Unseen
// entries count as 0, so the result of an empty move list is 0.
func (t *Table) Max(key game.StateKey, moves []game.Move) float64 {
	if len(moves) == 0 {
		return 0
	}
	s := t.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	best := s.actions[key][moves[0]]
	for _, mv := range moves[1:] {
		if v := s.actions[key][mv]; v > best {
			best = v
		}
	}
	return best
}

// ArgMax returns the move among moves with the highest value estimate
// for key, breaking ties toward the earliest move in the given order.
func (t *Table) ArgMax(key game.StateKey, moves []game.Move) (game.Move, float64) {
	s := t.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	best := moves[0]
	bestValue := s.actions[key][best]
	for _, mv := range moves[1:] {
		if v := s.actions[key][mv]; v > bestValue {
			bestValue = v
			best = mv
		}
	}
	return best, bestValue
}

// States returns the number of distinct state keys in the table.
func (t *Table) States() int {
	count := 0
	for _, s := range t.shards {
		s.mu.RLock()
		count += len(s.actions)
		s.mu.RUnlock()
	}
	return count
}

// Snapshot copies the table into a flat record list. Each shard is read
// under its lock, so no record is ever a torn read of a concurrent
// update; shards are visited in turn, which is consistent enough for
// checkpointing (Q-learning tolerates mild staleness across entries).
func (t *Table) Snapshot() []Record {
	var records []Record
	for _, s := range t.shards {
		s.mu.RLock()
		for key, actions := range s.actions {
			for mv, value := range actions {
				records = append(records, Record{Key: key, Move: mv, Value: value})
			}
		}
		s.mu.RUnlock()
	}
	return records
}

// load replaces the shard contents with the given records. Not safe for
// concurrent use; only called while building a table.
func (t *Table) load(records []Record) {
	for _, r := range records {
		s := t.shardFor(r.Key)
		actions := s.actions[r.Key]
		if actions == nil {
			actions = make(map[game.Move]float64)
			s.actions[r.Key] = actions
		}
		actions[r.Move] = r.Value
	}
}
