package session

import (
	"sync"
	"sync/atomic"
)

// Lease admits at most one outstanding agent request. Acquisition never
// blocks.
type Lease struct {
	mu     sync.Mutex
	holder uint64 // token of the current holder, 0 when free
	next   atomic.Uint64
}

// TryAcquire takes the lease. The returned release func is safe to call
// more than once and only frees the lease it acquired.
func (l *Lease) TryAcquire() (release func(), ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.holder != 0 {
		return nil, false
	}
	token := l.next.Add(1)
	l.holder = token

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			if l.holder == token {
				l.holder = 0
			}
		})
	}, true
}

// Held reports whether the lease is currently taken.
func (l *Lease) Held() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holder != 0
}
