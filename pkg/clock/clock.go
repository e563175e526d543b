package clock

import (
	"sync"
	"time"
)

type Clock struct{}

func New() *Clock {
	return &Clock{}
}

func (c *Clock) Now() time.Time {
	return time.Now()
}

// Mock is a manually driven clock for tests.
type Mock struct {
	mx  sync.Mutex
	now time.Time
}

func NewMock(value time.Time) *Mock {
	return &Mock{now: value}
}

func (m *Mock) Now() time.Time {
	m.mx.Lock()
	defer m.mx.Unlock()
	return m.now
}

func (m *Mock) Set(t time.Time) {
	m.mx.Lock()
	defer m.mx.Unlock()
	m.now = t
}

// Advance moves the mock forward by d and returns the new time.
func (m *Mock) Advance(d time.Duration) time.Time {
	m.mx.Lock()
	defer m.mx.Unlock()
	m.now = m.now.Add(d)
	return m.now
}
