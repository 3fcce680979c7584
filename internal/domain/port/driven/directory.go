package driven

import (
	"context"
	"fmt"
	"time"

	"github.com/efrayne/prrelay/internal/domain/model"
)

// Directory defines the driven port for reading the workspace member list.
type Directory interface {
	// FetchUsers returns every member of the workspace in a single call.
	// When the platform rate-limits the request, the adapter returns a
	// *RateLimitError carrying the platform's requested delay.
	FetchUsers(ctx context.Context) ([]model.DirectoryUser, error)
}

// RateLimitError signals that the platform rejected a request with a
// rate-limit response. RetryAfter is the delay the platform asked for.
type RateLimitError struct {
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}
