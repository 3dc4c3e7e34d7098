package dhash

import "sync"

// Locked guards a Table with a read/write mutex. Search and Range share the
// read lock; everything that may modify or rebuild the table takes the write lock.
type Locked struct {
	mu sync.RWMutex
	t  *Table
}

// NewLocked creates a table with opts and wraps it.
func NewLocked(opts ...Option) (*Locked, error) {
	t, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return &Locked{t: t}, nil
}

// Insert adds or updates a key-value pair under the write lock.
func (l *Locked) Insert(key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Insert(key, value)
}

// Search returns the value stored under key.
func (l *Locked) Search(key string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.t.Search(key)
}

// Delete removes key and reports whether a live entry was removed.
func (l *Locked) Delete(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Delete(key)
}

// Range holds the read lock for the whole walk; fn must not call back into l
// with a write.
func (l *Locked) Range(fn func(key, value string) bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.t.Range(fn)
}

// Len returns the number of live entries.
func (l *Locked) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.t.Len()
}

// Stats returns the wrapped table's counters.
func (l *Locked) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.t.Stats()
}

// Close closes the wrapped table.
func (l *Locked) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Close()
}
