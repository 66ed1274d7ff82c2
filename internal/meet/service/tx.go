package service

import (
	"context"
	"sync"
	"time"

	dErrors "clubswim/pkg/domain-errors"
)

// defaultMeetTxTimeout bounds a meet transaction that arrives without a deadline.
const defaultMeetTxTimeout = 5 * time.Second

// MemoryTx serializes mutations against the in-memory stores with one lock, so
// check-then-write sequences (eligibility, then create) cannot interleave.
type MemoryTx struct {
	mu sync.Mutex
}

func NewMemoryTx() *MemoryTx {
	return &MemoryTx{}
}

func (t *MemoryTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultMeetTxTimeout)
		defer cancel()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Check again after acquiring lock
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(ctx)
}
