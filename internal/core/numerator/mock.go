package numerator

import (
	"fmt"
	"sync"
)

// MockGenerator is a test implementation of Generator.
// Without NextFunc it returns PREFIX-MOCK-<n> with a per-instance counter.
type MockGenerator struct {
	NextFunc func(prefix Prefix) string

	mu sync.Mutex
	n  int
}

// Next implements Generator.
func (m *MockGenerator) Next(prefix Prefix) string {
	if m.NextFunc != nil {
		return m.NextFunc(prefix)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return fmt.Sprintf("%s-MOCK-%d", prefix, m.n)
}

// Ensure compile-time interface compliance.
var _ Generator = (*MockGenerator)(nil)
