// Package services contains the chat orchestration that sits between the
// HTTP layer and the order and completion clients.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/thundertactical/thunder-ai-backend/pkg/extract"
	"github.com/thundertactical/thunder-ai-backend/pkg/intent"
	"github.com/thundertactical/thunder-ai-backend/pkg/llm"
	"github.com/thundertactical/thunder-ai-backend/pkg/metrics"
	"github.com/thundertactical/thunder-ai-backend/pkg/order"
	"github.com/thundertactical/thunder-ai-backend/pkg/reply"
)

// Path names how a reply was composed.
type Path string

const (
	PathFast Path = "fast" // templated from the lookup outcome
	PathSlow Path = "slow" // generated by the completion model
)

// OrderLookup is the order client as seen by the chat service.
type OrderLookup interface {
	Lookup(ctx context.Context, ids extract.Identifiers) order.Outcome
}

// Reply is the result of handling one chat message.
type Reply struct {
	Text    string
	Path    Path
	Outcome order.Kind // KindNone when no lookup ran
}

// ChatService answers one customer message per call. It holds no per-request
// state, so one instance serves concurrent requests.
type ChatService struct {
	lookup           OrderLookup
	completer        llm.Completer
	detector         intent.Detector
	composer         *reply.Composer
	maxMessageLength int
	metrics          *metrics.Metrics
	logger           *slog.Logger
}

// NewChatService creates a ChatService. maxMessageLength is measured in runes.
func NewChatService(
	lookup OrderLookup,
	completer llm.Completer,
	detector intent.Detector,
	composer *reply.Composer,
	maxMessageLength int,
	m *metrics.Metrics,
) *ChatService {
	return &ChatService{
		lookup:           lookup,
		completer:        completer,
		detector:         detector,
		composer:         composer,
		maxMessageLength: maxMessageLength,
		metrics:          m,
		logger:           slog.Default().With("component", "chat-service"),
	}
}

// Reply handles a chat message.
//
// A message carrying an order number that the detector accepts as an order
// inquiry is answered from a template after one lookup. Anything else goes to
// the completion model, with lookup facts in the system prompt whenever the
// message carries an order number or email.
func (s *ChatService) Reply(ctx context.Context, message string) (*Reply, error) {
	text := strings.TrimSpace(message)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if s.maxMessageLength > 0 && utf8.RuneCountInString(text) > s.maxMessageLength {
		return nil, NewValidationError("message", "Message is too long.")
	}

	ids := extract.Extract(text)

	if ids.OrderNumber != "" && s.detector.IsOrderInquiry(text, ids) {
		outcome := s.lookupOrder(ctx, ids)
		s.metrics.ObserveReply(string(PathFast))
		return &Reply{
			Text:    s.composer.Render(outcome, ids.OrderNumber),
			Path:    PathFast,
			Outcome: order.KindOf(outcome),
		}, nil
	}

	var outcome order.Outcome
	if !ids.Empty() {
		outcome = s.lookupOrder(ctx, ids)
	}

	prompt := s.composer.SystemPrompt(outcome, ids)
	completion, err := s.completer.Complete(ctx, reply.Messages(prompt, text))
	if err != nil && !errors.Is(err, llm.ErrEmptyCompletion) {
		s.logger.Error("Completion failed", "outcome", order.KindOf(outcome), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrCompletionFailed, err)
	}

	s.metrics.ObserveReply(string(PathSlow))
	return &Reply{
		Text:    reply.OrFallback(completion),
		Path:    PathSlow,
		Outcome: order.KindOf(outcome),
	}, nil
}

func (s *ChatService) lookupOrder(ctx context.Context, ids extract.Identifiers) order.Outcome {
	outcome := s.lookup.Lookup(ctx, ids)
	kind := order.KindOf(outcome)
	s.metrics.ObserveLookup(string(kind))
	s.logger.Debug("Order lookup finished", "outcome", kind, "has_order_number", ids.OrderNumber != "")
	return outcome
}
