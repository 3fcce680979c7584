package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/efrayne/prrelay/internal/domain/model"
	"github.com/efrayne/prrelay/internal/domain/port/driven"
)

// defaultMaxFetchAttempts bounds the rate-limit retry loop for the user
// list fetch.
const defaultMaxFetchAttempts = 5

// ExportService fetches the workspace member list and writes the directory
// roster to a tabular file.
type ExportService struct {
	directory   driven.Directory
	writer      driven.RosterWriter
	logger      *slog.Logger
	maxAttempts int
	sleep       func(time.Duration) // Injectable for tests.
}

// NewExportService creates an ExportService with the required dependencies.
func NewExportService(directory driven.Directory, writer driven.RosterWriter, logger *slog.Logger) *ExportService {
	return &ExportService{
		directory:   directory,
		writer:      writer,
		logger:      logger,
		maxAttempts: defaultMaxFetchAttempts,
		sleep:       time.Sleep,
	}
}

// Export fetches the member list, drops bot accounts, and writes the roster
// to path, overwriting any existing file. It returns the number of exported
// rows. A fetch failure other than rate limiting still writes the file with
// an empty roster.
func (s *ExportService) Export(ctx context.Context, path string) (int, error) {
	users, err := s.fetchUsersWithRetry(ctx)
	if err != nil {
		return 0, err
	}

	roster := make([]model.DirectoryUser, 0, len(users))
	for _, user := range users {
		if user.IsBot {
			continue
		}
		roster = append(roster, user)
	}

	if err := s.writer.WriteRoster(path, roster); err != nil {
		return 0, fmt.Errorf("writing roster: %w", err)
	}

	s.logger.Info("roster exported", "path", path, "members", len(roster), "skipped_bots", len(users)-len(roster))
	return len(roster), nil
}

// fetchUsersWithRetry calls the directory endpoint inside a bounded retry
// loop. Rate-limit responses sleep for the platform's requested delay and
// retry; any other failure degrades to an empty member list so the export
// still produces a (header-only) file.
func (s *ExportService) fetchUsersWithRetry(ctx context.Context) ([]model.DirectoryUser, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		users, err := s.directory.FetchUsers(ctx)
		if err == nil {
			return users, nil
		}

		var rle *driven.RateLimitError
		if !errors.As(err, &rle) {
			s.logger.Error("user list fetch failed, exporting empty roster", "error", err)
			return nil, nil
		}

		if attempt == s.maxAttempts {
			return nil, fmt.Errorf("rate limited on every attempt (%d): %w", s.maxAttempts, err)
		}

		s.logger.Warn("rate limited, retrying",
			"retry_after", rle.RetryAfter, "attempt", attempt, "max_attempts", s.maxAttempts)
		s.sleep(rle.RetryAfter)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	// Unreachable; the loop always returns.
	return nil, nil
}
