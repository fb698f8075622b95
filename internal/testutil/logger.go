package testutil

import (
	"sync"

	"github.com/VoidMesh/terrain/internal/logging"
)

// LogCall is one recorded logger call.
type LogCall struct {
	Level         string
	Message       string
	KeysAndValues []interface{}
}

// MockLogger records every call made through it and through loggers derived with With.
type MockLogger struct {
	mu     *sync.Mutex
	calls  *[]LogCall
	fields []interface{}
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		mu:    &sync.Mutex{},
		calls: &[]LogCall{},
	}
}

func (m *MockLogger) record(level, msg string, kv []interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := append(append([]interface{}{}, m.fields...), kv...)
	*m.calls = append(*m.calls, LogCall{Level: level, Message: msg, KeysAndValues: all})
}

func (m *MockLogger) Debug(msg string, keysAndValues ...interface{}) {
	m.record("debug", msg, keysAndValues)
}

func (m *MockLogger) Info(msg string, keysAndValues ...interface{}) {
	m.record("info", msg, keysAndValues)
}

func (m *MockLogger) Warn(msg string, keysAndValues ...interface{}) {
	m.record("warn", msg, keysAndValues)
}

func (m *MockLogger) Error(msg string, keysAndValues ...interface{}) {
	m.record("error", msg, keysAndValues)
}

func (m *MockLogger) With(keysAndValues ...interface{}) logging.LoggerInterface {
	return &MockLogger{
		mu:     m.mu,
		calls:  m.calls,
		fields: append(append([]interface{}{}, m.fields...), keysAndValues...),
	}
}

// Calls returns a copy of every recorded call.
func (m *MockLogger) Calls() []LogCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogCall, len(*m.calls))
	copy(out, *m.calls)
	return out
}

// CallsAt returns the recorded calls of one level.
func (m *MockLogger) CallsAt(level string) []LogCall {
	var out []LogCall
	for _, c := range m.Calls() {
		if c.Level == level {
			out = append(out, c)
		}
	}
	return out
}

// HasMessage reports whether msg was logged at level.
func (m *MockLogger) HasMessage(level, msg string) bool {
	for _, c := range m.CallsAt(level) {
		if c.Message == msg {
			return true
		}
	}
	return false
}

// Value returns the value logged for key in c, and whether it was present.
func (c LogCall) Value(key string) (interface{}, bool) {
	for i := 0; i+1 < len(c.KeysAndValues); i += 2 {
		if k, ok := c.KeysAndValues[i].(string); ok && k == key {
			return c.KeysAndValues[i+1], true
		}
	}
	return nil, false
}
