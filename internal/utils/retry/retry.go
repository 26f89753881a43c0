// Package retry provides a small bounded-retry helper for operations that can
// fail on optimistic concurrency conflicts.
package retry

import (
	"context"
	"errors"
	"fmt"

	"github.com/yoddle/coins_backend/internal/apperrors"
)

// DefaultMaxAttempts is the attempt budget used by the ledger services.
const DefaultMaxAttempts = 3

// OnConflict runs fn up to maxAttempts times, retrying only when fn fails
// with apperrors.ErrConcurrencyConflict. Any other error, or a cancelled
// context, stops the loop immediately. fn receives the attempt number
// starting at 1 so callers can re-read state before retrying.
func OnConflict(ctx context.Context, maxAttempts int, fn func(ctx context.Context, attempt int) error) error {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx, attempt)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, apperrors.ErrConcurrencyConflict) {
			return lastErr
		}
	}

	return fmt.Errorf("giving up after %d attempts: %w", maxAttempts, lastErr)
}
