package llm

import (
	"context"
	"sync"
)

// MockClient is a configurable provider for tests. It records every history
// it receives and returns canned replies in order, repeating the last one
// when exhausted.
type MockClient struct {
	mu      sync.Mutex
	replies []*Reply
	err     error
	index   int
	calls   [][]Message
}

func NewMockClient(replies ...*Reply) *MockClient {
	return &MockClient{replies: replies}
}

// NewFailingMockClient returns a client whose every call fails with err.
func NewFailingMockClient(err error) *MockClient {
	return &MockClient{err: err}
}

func (m *MockClient) GenerateReply(_ context.Context, history []Message) (*Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recorded := make([]Message, len(history))
	copy(recorded, history)
	m.calls = append(m.calls, recorded)

	if m.err != nil {
		return nil, m.err
	}
	reply := m.replies[m.index]
	if m.index < len(m.replies)-1 {
		m.index++
	}
	return reply, nil
}

// Calls returns the histories passed to GenerateReply, in order.
func (m *MockClient) Calls() [][]Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
