package environ

import (
	"errors"
	"os"
	"sync"
)

// ErrEmptyKey indicates an attempt to set a variable without a name.
var ErrEmptyKey = errors.New("environment variable name must not be empty")

// Environment provides access to a key/value store of environment variables.
type Environment interface {
	Lookup(key string) (string, bool)
	Set(key, value string) error
}

// OS reads and writes the process environment.
type OS struct{}

// Lookup reports the value of key and whether it is present, even if empty.
func (OS) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Set writes key into the process environment.
func (OS) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return os.Setenv(key, value)
}

// Memory keeps variables in-memory and guards access with a RWMutex.
type Memory struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMemory initialises the store with a copy of initial.
func NewMemory(initial map[string]string) *Memory {
	return &Memory{vars: clone(initial)}
}

// Lookup reports the value of key and whether it is present.
func (m *Memory) Lookup(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.vars[key]
	return v, ok
}

// Set stores value under key.
func (m *Memory) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	m.vars[key] = value
	m.mu.Unlock()

	return nil
}

// Snapshot returns a defensive copy of the stored variables.
func (m *Memory) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return clone(m.vars)
}

func clone(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
