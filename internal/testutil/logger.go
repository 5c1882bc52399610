package testutil

import "sync"

// LogRecord is one captured logger call.
type LogRecord struct {
	Level   string
	Module  string
	Message string
	Details map[string]interface{}
}

// MockLogger implements logger.ILogger and records every call.
type MockLogger struct {
	mu      sync.Mutex
	Records []LogRecord
}

func (m *MockLogger) record(level, module, message string, details map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, LogRecord{
		Level:   level,
		Module:  module,
		Message: message,
		Details: details,
	})
}

func (m *MockLogger) Debug(module, message string, details map[string]interface{}) {
	m.record("DEBUG", module, message, details)
}

func (m *MockLogger) Info(module, message string, details map[string]interface{}) {
	m.record("INFO", module, message, details)
}

func (m *MockLogger) Warn(module, message string, details map[string]interface{}) {
	m.record("WARN", module, message, details)
}

func (m *MockLogger) Error(module, message string, details map[string]interface{}) {
	m.record("ERROR", module, message, details)
}

func (m *MockLogger) Sync() error { return nil }

// MessagesAt returns the messages logged at the given level, in order.
func (m *MockLogger) MessagesAt(level string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var messages []string
	for _, r := range m.Records {
		if r.Level == level {
			messages = append(messages, r.Message)
		}
	}
	return messages
}
