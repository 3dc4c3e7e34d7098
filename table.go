package dhash

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type resizeKind uint8

const (
	resizeGrow resizeKind = iota
	resizeShrink
	resizeRehash
)

func (k resizeKind) String() string {
	switch k {
	case resizeGrow:
		return "grow"
	case resizeShrink:
		return "shrink"
	default:
		return "rehash"
	}
}

// Stats is a point-in-time view of a table's occupancy and resize history.
type Stats struct {
	Count      int
	Capacity   int
	BaseSize   int
	Tombstones int
	Grows      uint64
	Shrinks    uint64
	Rehashes   uint64
}

// Table is an open addressing hash table from string keys to string values.
// It is not safe for concurrent use.
type Table struct {
	cfg        config
	logger     *zap.Logger
	slots      []slot
	baseSize   int
	count      int
	tombstones int
	grows      uint64
	shrinks    uint64
	rehashes   uint64
	atMax      bool
	closed     bool
}

// New creates an empty table at the minimum base size.
func New(opts ...Option) (*Table, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Table{
		cfg:      cfg,
		logger:   cfg.logger,
		slots:    make([]slot, nextPrime(cfg.minBaseSize)),
		baseSize: cfg.minBaseSize,
	}, nil
}

// Close releases every entry and the bucket array. The table must not be used afterwards.
func (t *Table) Close() error {
	if t.closed {
		return ErrClosed
	}
	t.slots = nil
	t.count = 0
	t.tombstones = 0
	t.closed = true
	return nil
}

// Len returns the number of live entries.
func (t *Table) Len() int { return t.count }

// Cap returns the number of buckets.
func (t *Table) Cap() int { return len(t.slots) }

// BaseSize returns the logical size the bucket count was rounded up from.
func (t *Table) BaseSize() int { return t.baseSize }

// LoadFactor returns the live load as an integer percentage of capacity.
func (t *Table) LoadFactor() int {
	if len(t.slots) == 0 {
		return 0
	}
	return t.count * 100 / len(t.slots)
}

// pressure is the load counting tombstones, which occupy probe paths too.
func (t *Table) pressure() int {
	if len(t.slots) == 0 {
		return 0
	}
	return (t.count + t.tombstones) * 100 / len(t.slots)
}

// Stats returns the table's current counters.
func (t *Table) Stats() Stats {
	return Stats{
		Count:      t.count,
		Capacity:   len(t.slots),
		BaseSize:   t.baseSize,
		Tombstones: t.tombstones,
		Grows:      t.grows,
		Shrinks:    t.shrinks,
		Rehashes:   t.rehashes,
	}
}

// Insert adds or updates a key-value pair. An existing key keeps its slot
// and only its value changes.
func (t *Table) Insert(key, value string) error {
	if t.closed {
		return ErrClosed
	}

	if err := t.makeRoom(); err != nil {
		// a full table still accepts updates
		if idx, found := t.lookup(key); found && errors.Is(err, ErrCapacityExceeded) {
			t.slots[idx].value = value
			return nil
		}
		return fmt.Errorf("insert %q: %w", key, err)
	}

	idx, found := t.findSlot(key)
	if found {
		t.slots[idx].value = value
		return nil
	}
	if idx < 0 {
		return fmt.Errorf("insert %q: no free slot: %w", key, ErrCapacityExceeded)
	}
	if t.slots[idx].state == slotTombstone {
		t.tombstones--
	}
	t.slots[idx] = slot{state: slotOccupied, key: key, value: value}
	t.count++
	return nil
}

// Search returns the value stored under key.
func (t *Table) Search(key string) (string, bool) {
	if t.closed {
		return "", false
	}
	idx, found := t.lookup(key)
	if !found {
		return "", false
	}
	return t.slots[idx].value, true
}

// Delete removes key, leaving a tombstone in its slot. It reports whether a
// live entry was removed. Deleting an absent key is not an error.
func (t *Table) Delete(key string) bool {
	if t.closed {
		return false
	}
	if t.LoadFactor() < t.cfg.shrinkThreshold {
		if err := t.resize(t.baseSize/2, resizeShrink); err != nil {
			t.logger.Warn("shrink failed", zap.Error(err))
		}
	}

	idx, found := t.lookup(key)
	if !found {
		return false
	}
	t.slots[idx] = slot{state: slotTombstone}
	t.count--
	t.tombstones++
	return true
}

// Range calls fn for every live entry until fn returns false. The visiting
// order is unspecified. fn must not modify the table.
func (t *Table) Range(fn func(key, value string) bool) {
	for i := range t.slots {
		s := &t.slots[i]
		if s.state != slotOccupied {
			continue
		}
		if !fn(s.key, s.value) {
			return
		}
	}
}

// makeRoom grows the table when the live load is above the grow threshold
// or one more entry would leave no empty bucket, and rebuilds it in place
// when tombstones push the probe load over the threshold. When growth is
// refused by the max base size the insert may still proceed as long as an
// empty bucket would remain; the refusal is logged once per size.
func (t *Table) makeRoom() error {
	capacity := len(t.slots)
	if t.LoadFactor() > t.cfg.growThreshold || t.count+1 >= capacity {
		target := t.baseSize * 2
		for nextPrime(target) <= t.count+1 {
			target *= 2
		}
		err := t.resize(target, resizeGrow)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrCapacityExceeded) {
			return fmt.Errorf("grow failed: %w", err)
		}
		if !t.atMax {
			t.logger.Warn("grow refused",
				zap.Int("base_size", t.baseSize),
				zap.Int("max_base_size", t.cfg.maxBaseSize),
				zap.Int("count", t.count),
				zap.Error(err))
			t.atMax = true
		}
		if t.count+1 >= capacity {
			return err
		}
	}
	// only tombstones can be reclaimed by a same-size rebuild
	if t.tombstones > 0 && t.pressure() > t.cfg.growThreshold {
		if err := t.resize(t.baseSize, resizeRehash); err != nil {
			return fmt.Errorf("rehash failed: %w", err)
		}
	}
	return nil
}

// lookup walks key's probe sequence until an empty slot or a match.
func (t *Table) lookup(key string) (int, bool) {
	capacity := len(t.slots)
	seq := newProbeSeq(key, capacity)
	for attempt := 0; attempt < capacity; attempt++ {
		idx := seq.at(attempt)
		switch s := &t.slots[idx]; s.state {
		case slotEmpty:
			return -1, false
		case slotOccupied:
			if s.key == key {
				return idx, true
			}
		}
	}
	return -1, false
}

// findSlot returns the index holding key and true, or the slot a new entry
// for key belongs in and false. The first tombstone on the path is preferred
// over the terminating empty slot. It returns -1 when the path has neither.
func (t *Table) findSlot(key string) (int, bool) {
	capacity := len(t.slots)
	seq := newProbeSeq(key, capacity)
	free := -1
	for attempt := 0; attempt < capacity; attempt++ {
		idx := seq.at(attempt)
		switch s := &t.slots[idx]; s.state {
		case slotEmpty:
			if free < 0 {
				free = idx
			}
			return free, false
		case slotTombstone:
			if free < 0 {
				free = idx
			}
		case slotOccupied:
			if s.key == key {
				return idx, true
			}
		}
	}
	return free, false
}

// resize rebuilds the table at nextPrime(baseSize). Live entries are
// reinserted and tombstones dropped. Nothing is modified unless the rebuild
// succeeds. A base size below the configured minimum is a no-op.
func (t *Table) resize(baseSize int, kind resizeKind) error {
	if baseSize < t.cfg.minBaseSize {
		return nil
	}
	if baseSize > t.cfg.maxBaseSize {
		return fmt.Errorf("base size %d above max %d: %w", baseSize, t.cfg.maxBaseSize, ErrCapacityExceeded)
	}

	capacity := nextPrime(baseSize)
	if t.count >= capacity {
		return fmt.Errorf("%d entries do not fit %d buckets: %w", t.count, capacity, ErrCapacityExceeded)
	}

	t.logger.Debug("resizing table",
		zap.Stringer("kind", kind),
		zap.Int("old_capacity", len(t.slots)),
		zap.Int("new_capacity", capacity),
		zap.Int("base_size", baseSize),
		zap.Int("count", t.count),
		zap.Int("tombstones_dropped", t.tombstones))

	slots := make([]slot, capacity)
	for _, s := range t.slots {
		if s.state != slotOccupied {
			continue
		}
		seq := newProbeSeq(s.key, capacity)
		placed := false
		for attempt := 0; attempt < capacity; attempt++ {
			idx := seq.at(attempt)
			if slots[idx].state == slotEmpty {
				slots[idx] = s
				placed = true
				break
			}
		}
		if !placed {
			return fmt.Errorf("failed to find slot for key %q during %s", s.key, kind)
		}
	}

	t.slots = slots
	t.baseSize = baseSize
	t.tombstones = 0
	if kind != resizeRehash {
		t.atMax = false
	}
	switch kind {
	case resizeGrow:
		t.grows++
	case resizeShrink:
		t.shrinks++
	default:
		t.rehashes++
	}
	return nil
}
