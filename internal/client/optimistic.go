package client

import (
	"context"
	"slices"
)

// optimistic runs one snapshot → apply → write → commit-or-restore cycle
// against a single collection. The local mutation is visible immediately;
// a failed write restores the exact pre-mutation snapshot, a successful one
// replaces the collection via commit (normally a re-fetch from the
// gateway), discarding any temporary records.
//
// apply receives a clone, so the snapshot stays untouched for rollback.
func optimistic[T any](ctx context.Context, c *Core,
	collection func(*State) *[]T,
	apply func([]T) []T,
	write func(context.Context) error,
	commit func(context.Context),
) error {
	c.mu.Lock()
	slot := collection(&c.state)
	snapshot := *slot
	*slot = apply(slices.Clone(snapshot))
	c.mu.Unlock()

	if err := write(ctx); err != nil {
		c.mu.Lock()
		*collection(&c.state) = snapshot
		c.mu.Unlock()
		return err
	}

	if commit != nil {
		commit(ctx)
	}
	return nil
}
