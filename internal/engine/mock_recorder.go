package engine

import (
	"context"
	"sync"

	"github.com/Veraticus/banknotify/internal/model"
)

// MockRecorder is a test implementation of the service.Recorder interface.
// It keeps entries in memory and can be told to fail the next N writes.
type MockRecorder struct {
	failWith error
	entries  []model.LogEntry
	failures int
	calls    int
	mu       sync.Mutex
}

// NewMockRecorder creates an empty recorder.
func NewMockRecorder() *MockRecorder {
	return &MockRecorder{}
}

// FailNext makes the next n SaveLog calls return err.
func (m *MockRecorder) FailNext(n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = n
	m.failWith = err
}

// SaveLog records a copy of entry.
func (m *MockRecorder) SaveLog(_ context.Context, entry *model.LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.failures > 0 {
		m.failures--
		return m.failWith
	}
	m.entries = append(m.entries, *entry)
	return nil
}

// Entries returns the saved entries in call order.
func (m *MockRecorder) Entries() []model.LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.LogEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Calls returns how many times SaveLog was invoked.
func (m *MockRecorder) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
