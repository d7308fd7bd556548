package memory

import (
	"context"
	"sync"

	"homework_status_bot/internal/domain/homework"
)

// StateRepository keeps the poll state in process memory.
type StateRepository struct {
	mu    sync.RWMutex
	state *homework.PollState
}

func NewStateRepository() *StateRepository {
	return &StateRepository{}
}

func (r *StateRepository) Load(ctx context.Context) (*homework.PollState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.state == nil {
		return nil, homework.ErrStateNotFound
	}
	cp := *r.state
	return &cp, nil
}

func (r *StateRepository) Save(ctx context.Context, state *homework.PollState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *state
	r.state = &cp
	return nil
}
