package locker

import (
	"sort"
	"sync"
)

// Locker hands out exclusive locks keyed by resource name. Multi-key
// acquisition sorts and dedupes the keys so two operations competing for
// overlapping resources can never deadlock each other.
type Locker struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New new locker
func New() *Locker {
	return &Locker{
		entries: make(map[string]*entry),
	}
}

// Lock acquires every key in sorted order and returns the release func.
func (l *Locker) Lock(keys ...string) func() {
	ks := dedupe(keys)
	sort.Strings(ks)

	acquired := make([]*entry, 0, len(ks))
	for _, k := range ks {
		e := l.retain(k)
		e.mu.Lock()
		acquired = append(acquired, e)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(acquired) - 1; i >= 0; i-- {
				acquired[i].mu.Unlock()
				l.release(ks[i])
			}
		})
	}
}

func (l *Locker) retain(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *Locker) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(l.entries, key)
	}
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
