package services

import (
	"context"
	"errors"

	"github.com/Samuel04-png/aether-api/internal/metrics"
	"github.com/Samuel04-png/aether-api/internal/retry"
)

// ErrNoScopingID is returned by every mutation invoked without a signed-in
// user. Checked synchronously before any store access.
var ErrNoScopingID = errors.New("mutation requires a signed-in user")

// writeThrough runs one store write under the shared retry policy and
// records the outcome. This is the single mutation boundary: no caller
// implements its own retry.
func writeThrough(ctx context.Context, entity string, fn func() error) error {
	err := retry.Do(ctx, retry.DefaultConfig(), func(context.Context) error {
		return fn()
	})
	metrics.RecordMutation(entity, err)
	return err
}
