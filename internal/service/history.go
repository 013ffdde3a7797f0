package service

import (
	"sync"

	"github.com/tripline/travel-services/wagateway/pkg/assistant"
)

const maxHistoryEntries = 16

// ChatHistoryStore keeps short per-sender conversation context for the
// assistant. In-memory on purpose: history is a convenience, not state
// worth persisting, and losing it on restart only costs context.
type ChatHistoryStore struct {
	mu       sync.Mutex
	sessions map[string][]assistant.Message
}

func NewChatHistoryStore() *ChatHistoryStore {
	return &ChatHistoryStore{sessions: make(map[string][]assistant.Message)}
}

func (s *ChatHistoryStore) Get(waID string) []assistant.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.sessions[waID]
	out := make([]assistant.Message, len(history))
	copy(out, history)
	return out
}

func (s *ChatHistoryStore) Append(waID string, userText string, assistantText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.sessions[waID],
		assistant.Message{Role: "user", Content: userText},
		assistant.Message{Role: "assistant", Content: assistantText},
	)

	if len(history) > maxHistoryEntries {
		history = history[len(history)-maxHistoryEntries:]
	}

	s.sessions[waID] = history
}

func (s *ChatHistoryStore) Reset(waID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, waID)
}
