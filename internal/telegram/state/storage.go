package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/futig/scamper-backend/internal/entity"
)

// ErrNotFound is returned by Storage when a user has no conversation yet
var ErrNotFound = errors.New("chat state not found")

// Step is the position of a user in the conversation
type Step string

const (
	StepIdle        Step = "IDLE"
	StepAskProblem  Step = "ASK_PROBLEM"
	StepAskContext  Step = "ASK_CONTEXT"
	StepProcessing  Step = "PROCESSING"
	StepShowResults Step = "SHOW_RESULTS"
)

// ChatState is the per-user conversation state. It lives only in memory.
type ChatState struct {
	UserID int64
	Step   Step

	// Trimmed problem waiting for its context
	Problem string

	// Last finished run, used by the export buttons
	RunID        string
	LastResponse *entity.ScamperResponse

	// Set while the bot waits for /cancel to be confirmed
	PendingCancel bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Storage defines the interface for chat state persistence
type Storage interface {
	// Get returns a copy of the stored state or ErrNotFound
	Get(ctx context.Context, userID int64) (*ChatState, error)

	Set(ctx context.Context, s *ChatState) error

	Delete(ctx context.Context, userID int64) error

	// Expire drops idle conversations last updated before the given time
	Expire(before time.Time) int
}

// MemoryStorage keeps chat states in a map guarded by a RWMutex
type MemoryStorage struct {
	mu     sync.RWMutex
	states map[int64]ChatState
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		states: make(map[int64]ChatState),
	}
}

func (m *MemoryStorage) Get(_ context.Context, userID int64) (*ChatState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.states[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStorage) Set(_ context.Context, s *ChatState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[s.UserID] = *s
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.states, userID)
	return nil
}

// Len returns the number of stored conversations
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.states)
}

func (m *MemoryStorage) Expire(before time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.states {
		if s.UpdatedAt.Before(before) && s.Step != StepProcessing {
			delete(m.states, id)
			removed++
		}
	}
	return removed
}
