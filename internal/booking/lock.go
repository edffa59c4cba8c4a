package booking

import (
	"sync"
	"time"
)

// slotLocker serialises the conflict-check-then-insert critical section per
// (field, date) pair. Two concurrent creates for the same field and day run
// one after the other, so at most one of two overlapping requests can win;
// creates for different fields or days do not contend.
type slotLocker struct {
	mu    sync.Mutex
	locks map[string]*slotLock
}

type slotLock struct {
	mu   sync.Mutex
	refs int
}

func newSlotLocker() *slotLocker {
	return &slotLocker{
		locks: make(map[string]*slotLock),
	}
}

// acquire blocks until the (field, date) lock is held and returns the release
// function. Entries are reference counted and removed once unused.
func (l *slotLocker) acquire(fieldID string, date time.Time) func() {
	key := fieldID + "|" + date.Format(DateFormat)

	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &slotLock{}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}
