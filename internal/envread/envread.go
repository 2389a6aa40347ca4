// Package envread abstracts process environment access so that
// environment-sensitive resolution can be tested without mutating the
// real process environment.
package envread

import (
	"os"
	"sync"
)

// Env reads environment variables. Values are snapshotted on first
// access per key and never re-polled within a process run.
type Env interface {
	// LookupEnv reports the value of key and whether it is set.
	LookupEnv(key string) (string, bool)
}

// osEnv reads the real process environment, caching each key on
// first access.
type osEnv struct {
	mu    sync.Mutex
	seen  map[string]string
	isSet map[string]bool
}

// OS returns an Env backed by the process environment.
func OS() Env {
	return &osEnv{
		seen:  make(map[string]string),
		isSet: make(map[string]bool),
	}
}

func (e *osEnv) LookupEnv(key string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ok, cached := e.isSet[key]; cached {
		return e.seen[key], ok
	}
	v, ok := os.LookupEnv(key)
	e.seen[key] = v
	e.isSet[key] = ok
	return v, ok
}

// Map is a fixed in-memory Env for tests. Keys absent from the map
// are reported as unset.
type Map map[string]string

func (m Map) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
