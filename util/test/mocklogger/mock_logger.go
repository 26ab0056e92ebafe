// Package mocklogger provides a recording ulogger.Logger for tests.
package mocklogger

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/torrejonv/movecall/ulogger"
)

type record struct {
	mu       sync.Mutex
	calls    map[string]int
	messages map[string][]string
}

// MockLogger records every call per method together with the formatted message.
// Loggers derived with New or Duplicate share the same record.
type MockLogger struct {
	service string
	rec     *record
}

func NewTestLogger() *MockLogger {
	return &MockLogger{
		service: "test",
		rec: &record{
			calls:    make(map[string]int),
			messages: make(map[string][]string),
		},
	}
}

func (l *MockLogger) LogLevel() int {
	return 0
}

func (l *MockLogger) SetLogLevel(_ string) {}

func (l *MockLogger) New(service string, _ ...ulogger.Option) ulogger.Logger {
	return &MockLogger{service: service, rec: l.rec}
}

func (l *MockLogger) Duplicate(_ ...ulogger.Option) ulogger.Logger {
	return l
}

func (l *MockLogger) Debugf(format string, args ...interface{}) {
	l.recordCall("Debugf", format, args...)
}

func (l *MockLogger) Infof(format string, args ...interface{}) {
	l.recordCall("Infof", format, args...)
}

func (l *MockLogger) Warnf(format string, args ...interface{}) {
	l.recordCall("Warnf", format, args...)
}

func (l *MockLogger) Errorf(format string, args ...interface{}) {
	l.recordCall("Errorf", format, args...)
}

func (l *MockLogger) Fatalf(format string, args ...interface{}) {
	l.recordCall("Fatalf", format, args...)
}

func (l *MockLogger) recordCall(methodName, format string, args ...interface{}) {
	l.rec.mu.Lock()
	defer l.rec.mu.Unlock()

	l.rec.calls[methodName]++
	l.rec.messages[methodName] = append(l.rec.messages[methodName], fmt.Sprintf("[%s] "+format, append([]interface{}{l.service}, args...)...))
}

// AssertNumberOfCalls is a test helper that verifies the expected number of calls to a method.
func (l *MockLogger) AssertNumberOfCalls(t *testing.T, methodName string, expectedCalls int) {
	t.Helper()

	l.rec.mu.Lock()
	defer l.rec.mu.Unlock()

	if actualCalls := l.rec.calls[methodName]; actualCalls != expectedCalls {
		t.Errorf("Expected %v calls to %s, got %v", expectedCalls, methodName, actualCalls)
	}
}

// Messages returns the formatted messages logged through methodName, prefixed with the service in brackets.
func (l *MockLogger) Messages(methodName string) []string {
	l.rec.mu.Lock()
	defer l.rec.mu.Unlock()

	return append([]string(nil), l.rec.messages[methodName]...)
}

// Contains reports whether any message logged through methodName contains substr.
func (l *MockLogger) Contains(methodName, substr string) bool {
	for _, m := range l.Messages(methodName) {
		if strings.Contains(m, substr) {
			return true
		}
	}

	return false
}

// Reset clears all recorded method calls.
func (l *MockLogger) Reset() {
	l.rec.mu.Lock()
	defer l.rec.mu.Unlock()

	l.rec.calls = make(map[string]int)
	l.rec.messages = make(map[string][]string)
}
