package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/efrayne/prrelay/internal/domain/model"
)

// RelayService runs the full pipeline for one accepted message: extract the
// PR reference, enrich it, and dispatch the result. The webhook handler has
// already filtered out bot messages and duplicates before calling it.
type RelayService struct {
	enricher   *EnrichService
	dispatcher *Dispatcher
	logger     *slog.Logger
}

// NewRelayService creates a RelayService with the required dependencies.
func NewRelayService(enricher *EnrichService, dispatcher *Dispatcher, logger *slog.Logger) *RelayService {
	return &RelayService{
		enricher:   enricher,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ProcessMessage handles one inbound message end to end. Every abort path
// (no PR link, failed required fetch) posts its fixed failure text to the
// thread and skips the audit trail; only a fully enriched event is audited.
func (s *RelayService) ProcessMessage(ctx context.Context, msg model.InboundMessage) {
	ref, ok := ExtractPRReference(msg.Text)
	if !ok {
		s.logger.Info("no pull request link in message", "channel", msg.Channel, "ts", msg.Timestamp)
		s.dispatcher.Reply(ctx, msg, ReplyPRDetailsFailure)
		return
	}

	enrichment, err := s.enricher.Enrich(ctx, ref)
	if err != nil {
		var pe *PipelineError
		if errors.As(err, &pe) {
			s.logger.Error("enrichment aborted",
				"repo", ref.FullName(), "pr", ref.Number, "error", pe.Err)
			s.dispatcher.Reply(ctx, msg, pe.Reply)
			return
		}

		s.logger.Error("enrichment failed",
			"repo", ref.FullName(), "pr", ref.Number, "error", err)
		return
	}

	s.dispatcher.Dispatch(ctx, msg, *enrichment, ref)
	s.logger.Info("event processed", "repo", ref.FullName(), "pr", ref.Number)
}
