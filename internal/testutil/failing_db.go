package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/planify/internal/db"
)

// FailOnNthExec wraps a DBTX and injects Err on the Nth ExecContext call,
// counted from 1. A FailOn of 0 fails every write. Reads pass through so
// tests can simulate a store that loads fine but cannot be written.
type FailOnNthExec struct {
	db.DBTX
	FailOn int32
	Err    error

	count atomic.Int32
}

func (f *FailOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if f.FailOn == 0 || n == f.FailOn {
		return nil, f.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// Execs returns how many writes were attempted through the wrapper.
func (f *FailOnNthExec) Execs() int {
	return int(f.count.Load())
}
