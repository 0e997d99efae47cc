package common

import "sync"

// MemoryLogger keeps log messages in memory. Useful in tests and for short-lived tools which print the log at exit.
type MemoryLogger struct {
	mutex    sync.Mutex
	messages []string
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (m *MemoryLogger) Log(message string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.messages = append(m.messages, message)
}

// Messages returns a copy of all messages logged so far.
func (m *MemoryLogger) Messages() []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	result := make([]string, len(m.messages))
	copy(result, m.messages)
	return result
}
