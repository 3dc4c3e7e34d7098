package dhash

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/multierr"
)

// Sharded spreads keys over independent Locked tables so writers to
// different shards do not contend. Shard choice uses xxhash, which is
// unrelated to the polynomial hashes that pick buckets inside a shard.
type Sharded struct {
	shards []*Locked
}

// NewSharded creates n shards, each configured with opts.
func NewSharded(n int, opts ...Option) (*Sharded, error) {
	if n < 1 {
		return nil, fmt.Errorf("shard count %d: %w", n, ErrInvalidConfig)
	}
	s := &Sharded{shards: make([]*Locked, n)}
	for i := range s.shards {
		l, err := NewLocked(opts...)
		if err != nil {
			return nil, err
		}
		s.shards[i] = l
	}
	return s, nil
}

func (s *Sharded) shard(key string) *Locked {
	if len(s.shards) == 1 {
		return s.shards[0]
	}
	return s.shards[xxhash.Sum64String(key)%uint64(len(s.shards))]
}

// NumShards returns the number of shards.
func (s *Sharded) NumShards() int { return len(s.shards) }

// Insert adds or updates a key-value pair in the key's shard.
func (s *Sharded) Insert(key, value string) error {
	return s.shard(key).Insert(key, value)
}

// Search returns the value stored under key.
func (s *Sharded) Search(key string) (string, bool) {
	return s.shard(key).Search(key)
}

// Delete removes key and reports whether a live entry was removed.
func (s *Sharded) Delete(key string) bool {
	return s.shard(key).Delete(key)
}

// Range visits each shard in turn. Entries written concurrently may or may
// not be seen.
func (s *Sharded) Range(fn func(key, value string) bool) {
	cont := true
	for _, l := range s.shards {
		l.Range(func(k, v string) bool {
			cont = fn(k, v)
			return cont
		})
		if !cont {
			return
		}
	}
}

// Len returns the number of live entries across all shards.
func (s *Sharded) Len() int {
	n := 0
	for _, l := range s.shards {
		n += l.Len()
	}
	return n
}

// Stats sums the counters of every shard.
func (s *Sharded) Stats() Stats {
	var total Stats
	for _, l := range s.shards {
		st := l.Stats()
		total.Count += st.Count
		total.Capacity += st.Capacity
		total.BaseSize += st.BaseSize
		total.Tombstones += st.Tombstones
		total.Grows += st.Grows
		total.Shrinks += st.Shrinks
		total.Rehashes += st.Rehashes
	}
	return total
}

// Close closes every shard and combines their errors.
func (s *Sharded) Close() error {
	var err error
	for _, l := range s.shards {
		err = multierr.Append(err, l.Close())
	}
	return err
}
