package services

import (
	"sync"

	"parcels/internal/core/domain/model/kernel"
)

type keyLock struct {
	mu      sync.Mutex
	holders int
}

// RiderLocker hands out one mutex per rider ID. Entries are dropped when the
// last holder unlocks, so the table only holds riders with in-flight work.
//
// The lock is process-local. Across processes the conditional work-status
// update in the rider store is what rejects the second assignment.
type RiderLocker struct {
	mu    sync.Mutex
	locks map[kernel.UUID]*keyLock
}

func NewRiderLocker() *RiderLocker {
	return &RiderLocker{locks: make(map[kernel.UUID]*keyLock)}
}

// Lock blocks until the caller holds the lock for id and returns the
// function that releases it.
func (l *RiderLocker) Lock(id kernel.UUID) (unlock func()) {
	l.mu.Lock()
	kl, ok := l.locks[id]
	if !ok {
		kl = &keyLock{}
		l.locks[id] = kl
	}
	kl.holders++
	l.mu.Unlock()

	kl.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			kl.mu.Unlock()

			l.mu.Lock()
			kl.holders--
			if kl.holders == 0 {
				delete(l.locks, id)
			}
			l.mu.Unlock()
		})
	}
}

// InFlight reports how many riders currently have a holder or waiter.
func (l *RiderLocker) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
