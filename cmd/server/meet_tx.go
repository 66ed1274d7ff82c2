package main

import (
	"context"
	"database/sql"
	"time"

	dErrors "clubswim/pkg/domain-errors"
	txcontext "clubswim/pkg/platform/tx"
)

const defaultMeetTxTimeout = 5 * time.Second

// meetPostgresTx runs a service mutation in one database transaction. Stores
// pick the transaction up from the context.
type meetPostgresTx struct {
	db *sql.DB
}

func newMeetPostgresTx(db *sql.DB) *meetPostgresTx {
	return &meetPostgresTx{db: db}
}

func (t *meetPostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultMeetTxTimeout)
		defer cancel()
	}

	var fnErr error
	err := txcontext.Run(ctx, t.db, func(ctx context.Context) error {
		fnErr = fn(ctx)
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "meet transaction failed")
	}
	return nil
}
