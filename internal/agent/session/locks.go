package session

import "sync"

// Locks serializes turns for the same thread id. Interleaved writes from
// concurrent requests on one thread would corrupt the ordering between the
// recorded eligibility decision and any pre-approval issued against it, so
// the chat handler must hold the thread lock for the whole turn.
type Locks struct {
	mu      sync.Mutex
	threads map[string]*sync.Mutex
}

// NewLocks returns an empty per-thread lock registry.
func NewLocks() *Locks {
	return &Locks{threads: make(map[string]*sync.Mutex)}
}

// Acquire locks the mutex for threadID and returns the release function.
func (l *Locks) Acquire(threadID string) func() {
	l.mu.Lock()
	m, ok := l.threads[threadID]
	if !ok {
		m = &sync.Mutex{}
		l.threads[threadID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
