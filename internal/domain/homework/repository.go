// internal/domain/homework/repository.go
package homework

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrStateNotFound is returned by Load when nothing has been saved yet.
var ErrStateNotFound = errors.New("poll state not found")

// PollState is the watermark persisted after each successful cycle.
type PollState struct {
	Cursor      int64  // unix seconds
	LastMessage string // last status notification sent
	UpdatedAt   time.Time
}

// StateRepository stores the single PollState of the agent.
type StateRepository interface {
	Load(ctx context.Context) (*PollState, error)
	Save(ctx context.Context, state *PollState) error
}
