package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/futig/scamper-backend/internal/entity"
)

var (
	// ErrBusy is returned by BeginProcessing when a run is already in flight
	ErrBusy = errors.New("analysis already in progress")

	// ErrNoProblem is returned by BeginProcessing outside StepAskContext
	ErrNoProblem = errors.New("conversation has no problem waiting for analysis")
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const chatStateKey contextKey = "chat_state"

// FromContext retrieves a ChatState cached on the request context
func FromContext(ctx context.Context) (*ChatState, bool) {
	s, ok := ctx.Value(chatStateKey).(*ChatState)
	return s, ok
}

// ContextWith attaches a ChatState to context for request-scoped caching
func ContextWith(ctx context.Context, s *ChatState) context.Context {
	return context.WithValue(ctx, chatStateKey, s)
}

// Manager manages chat states
type Manager struct {
	storage Storage
	now     func() time.Time

	// serializes read-modify-write transitions
	mu sync.Mutex
}

// NewManager creates a new state manager
func NewManager(storage Storage) *Manager {
	return &Manager{
		storage: storage,
		now:     time.Now,
	}
}

// Get returns the state of userID, an idle one when nothing is stored.
// A state cached on ctx wins over storage.
func (m *Manager) Get(ctx context.Context, userID int64) (*ChatState, error) {
	if s, ok := FromContext(ctx); ok && s.UserID == userID {
		return s, nil
	}

	s, err := m.storage.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		now := m.now()
		return &ChatState{UserID: userID, Step: StepIdle, CreatedAt: now, UpdatedAt: now}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chat state from storage: %w", err)
	}
	return s, nil
}

// Save stores s as the current state of its user
func (m *Manager) Save(ctx context.Context, s *ChatState) error {
	s.UpdatedAt = m.now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = s.UpdatedAt
	}

	if err := m.storage.Set(ctx, s); err != nil {
		return fmt.Errorf("save chat state to storage: %w", err)
	}
	return nil
}

// Update loads the state of userID, applies fn and stores the result. An
// unknown user is only stored when fn changed the idle state.
func (m *Manager) Update(ctx context.Context, userID int64, fn func(s *ChatState)) (*ChatState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := true
	s, err := m.storage.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		stored = false
		s = &ChatState{UserID: userID, Step: StepIdle}
	} else if err != nil {
		return nil, fmt.Errorf("get chat state from storage: %w", err)
	}

	before := *s
	fn(s)
	// A deleted conversation stays deleted unless fn starts a new one
	if !stored && *s == before {
		return s, nil
	}
	if err := m.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// StartConversation resets userID to a fresh conversation waiting for a
// problem. It fails with ErrBusy while an analysis is running.
func (m *Manager) StartConversation(ctx context.Context, userID int64) error {
	var busy bool
	_, err := m.Update(ctx, userID, func(s *ChatState) {
		if s.Step == StepProcessing {
			busy = true
			return
		}
		*s = ChatState{UserID: userID, Step: StepAskProblem, CreatedAt: s.CreatedAt}
	})
	if err != nil {
		return err
	}
	if busy {
		return ErrBusy
	}
	return nil
}

// BeginProcessing moves userID from StepAskContext into StepProcessing and
// returns the state holding the problem to analyze
func (m *Manager) BeginProcessing(ctx context.Context, userID int64, runID string) (*ChatState, error) {
	var stepErr error
	s, err := m.Update(ctx, userID, func(s *ChatState) {
		switch {
		case s.Step == StepProcessing:
			stepErr = ErrBusy
		case s.Step != StepAskContext || s.Problem == "":
			stepErr = ErrNoProblem
		default:
			s.Step = StepProcessing
			s.RunID = runID
			s.PendingCancel = false
		}
	})
	if err != nil {
		return nil, err
	}
	if stepErr != nil {
		return nil, stepErr
	}
	return s, nil
}

// FinishProcessing stores resp as the result of runID. It reports false when
// the run is no longer current, e.g. after /cancel.
func (m *Manager) FinishProcessing(ctx context.Context, userID int64, runID string, resp *entity.ScamperResponse) (bool, error) {
	current := false
	_, err := m.Update(ctx, userID, func(s *ChatState) {
		if s.Step != StepProcessing || s.RunID != runID {
			return
		}
		current = true
		s.Step = StepShowResults
		s.Problem = ""
		s.LastResponse = resp
	})
	return current, err
}

// AbortProcessing puts a failed run back into StepAskContext, keeping the
// problem so the user can retry. Like FinishProcessing it reports whether
// runID was still current.
func (m *Manager) AbortProcessing(ctx context.Context, userID int64, runID string) (bool, error) {
	current := false
	_, err := m.Update(ctx, userID, func(s *ChatState) {
		if s.Step == StepProcessing && s.RunID == runID {
			current = true
			s.Step = StepAskContext
		}
	})
	return current, err
}

// Reset forgets everything about userID
func (m *Manager) Reset(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.storage.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete chat state from storage: %w", err)
	}
	return nil
}

// ExpireIdle drops conversations untouched for longer than ttl
func (m *Manager) ExpireIdle(ttl time.Duration) int {
	return m.storage.Expire(m.now().Add(-ttl))
}
