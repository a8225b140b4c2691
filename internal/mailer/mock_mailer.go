package mailer

import (
	"sync"
)

// SentEmail is one delivery captured by the mock instead of leaving the process.
type SentEmail struct {
	Recipient    string
	TemplateFile string
	Data         any
}

// MockMailer records deliveries in memory. Confirmation mail is sent from a
// background goroutine, so every method locks.
type MockMailer struct {
	mu   sync.Mutex
	sent []SentEmail
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, SentEmail{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})

	return nil
}

// SentEmails returns a snapshot of everything captured so far.
func (m *MockMailer) SentEmails() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make([]SentEmail, len(m.sent))
	copy(snapshot, m.sent)

	return snapshot
}

// LastEmail returns the most recent capture, if any.
func (m *MockMailer) LastEmail() (SentEmail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sent) == 0 {
		return SentEmail{}, false
	}

	return m.sent[len(m.sent)-1], true
}

// Reset discards all captured deliveries.
func (m *MockMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = nil
}
