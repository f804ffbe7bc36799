package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thundertactical/thunder-ai-backend/pkg/config"
	"github.com/thundertactical/thunder-ai-backend/pkg/extract"
	"github.com/thundertactical/thunder-ai-backend/pkg/intent"
	"github.com/thundertactical/thunder-ai-backend/pkg/llm"
	"github.com/thundertactical/thunder-ai-backend/pkg/masking"
	"github.com/thundertactical/thunder-ai-backend/pkg/order"
	"github.com/thundertactical/thunder-ai-backend/pkg/reply"
)

type fakeLookup struct {
	mu      sync.Mutex
	outcome order.Outcome
	calls   []extract.Identifiers
}

func (f *fakeLookup) Lookup(_ context.Context, ids extract.Identifiers) order.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, ids)
	return f.outcome
}

type fakeCompleter struct {
	mu       sync.Mutex
	text     string
	err      error
	received [][]llm.Message
}

func (f *fakeCompleter) Complete(_ context.Context, messages []llm.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.received = append(f.received, messages)
	return f.text, f.err
}

func (f *fakeCompleter) systemPrompt(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.received)
	return f.received[len(f.received)-1][0].Content
}

var shippedOrder = &order.Found{Record: order.Record{
	ID:          "1234567",
	Status:      "Shipped",
	DateCreated: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
}}

func newTestChatService(t *testing.T, lookup OrderLookup, completer llm.Completer, strategy string) *ChatService {
	t.Helper()
	detector, err := intent.New(strategy, nil)
	require.NoError(t, err)
	return NewChatService(lookup, completer, detector, reply.NewComposer(config.DefaultAssistantConfig()), 4000, nil)
}

func TestChatService_Reply_Rejects(t *testing.T) {
	lookup := &fakeLookup{}
	completer := &fakeCompleter{text: "unused"}
	svc := newTestChatService(t, lookup, completer, intent.StrategyKeyword)

	t.Run("empty message", func(t *testing.T) {
		for _, msg := range []string{"", "   ", "\n\t"} {
			_, err := svc.Reply(context.Background(), msg)
			assert.ErrorIs(t, err, ErrEmptyMessage)
		}
	})

	t.Run("message too long", func(t *testing.T) {
		short := NewChatService(lookup, completer, intent.DigitRunDetector{}, reply.NewComposer(config.DefaultAssistantConfig()), 5, nil)

		_, err := short.Reply(context.Background(), "héllo!")
		require.Error(t, err)
		assert.True(t, IsValidationError(err))

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "Message is too long.", ve.Message)
	})

	t.Run("length counted in runes", func(t *testing.T) {
		short := NewChatService(lookup, completer, intent.DigitRunDetector{}, reply.NewComposer(config.DefaultAssistantConfig()), 5, nil)

		_, err := short.Reply(context.Background(), "  héllo  ")
		assert.NoError(t, err)
	})

	assert.Empty(t, lookup.calls)
}

func TestChatService_Reply_FastPath(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		outcome  order.Outcome
		contains []string
		kind     order.Kind
	}{
		{
			name:     "found",
			message:  "Where is order 1234567?",
			outcome:  shippedOrder,
			contains: []string{"I found order #1234567", "Current status: Shipped", "1/1/2025"},
			kind:     order.KindFound,
		},
		{
			name:     "not found",
			message:  "what's the status of 99999",
			outcome:  &order.NotFound{OrderNumber: "99999"},
			contains: []string{"couldn't find an order with the number 99999"},
			kind:     order.KindNotFound,
		},
		{
			name:     "not configured",
			message:  "Tracking for 1234567 please",
			outcome:  &order.NotConfigured{},
			contains: []string{"Order lookup is not configured correctly."},
			kind:     order.KindNotConfigured,
		},
		{
			name:     "transport error",
			message:  "SHIPPING update on 1234567",
			outcome:  &order.TransportError{StatusCode: 502},
			contains: []string{"trouble reaching the order system"},
			kind:     order.KindTransportError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := &fakeLookup{outcome: tt.outcome}
			completer := &fakeCompleter{text: "should not be used"}
			svc := newTestChatService(t, lookup, completer, intent.StrategyKeyword)

			r, err := svc.Reply(context.Background(), tt.message)
			require.NoError(t, err)

			assert.Equal(t, PathFast, r.Path)
			assert.Equal(t, tt.kind, r.Outcome)
			for _, s := range tt.contains {
				assert.Contains(t, r.Text, s)
			}
			require.Len(t, lookup.calls, 1)
			assert.Empty(t, completer.received, "fast path never calls the model")
		})
	}
}

func TestChatService_Reply_SlowPath(t *testing.T) {
	t.Run("general question skips lookup", func(t *testing.T) {
		lookup := &fakeLookup{outcome: shippedOrder}
		completer := &fakeCompleter{text: "We're open 9am to 6pm, Monday through Saturday."}
		svc := newTestChatService(t, lookup, completer, intent.StrategyKeyword)

		r, err := svc.Reply(context.Background(), "What are your store hours?")
		require.NoError(t, err)

		assert.Equal(t, "We're open 9am to 6pm, Monday through Saturday.", r.Text)
		assert.Equal(t, PathSlow, r.Path)
		assert.Equal(t, order.KindNone, r.Outcome)
		assert.Empty(t, lookup.calls)

		require.Len(t, completer.received, 1)
		msgs := completer.received[0]
		require.Len(t, msgs, 2)
		assert.Equal(t, llm.RoleSystem, msgs[0].Role)
		assert.Contains(t, msgs[0].Content, "ask them to provide the order number")
		assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "What are your store hours?"}, msgs[1])
	})

	t.Run("digit run without keyword looks up then completes", func(t *testing.T) {
		lookup := &fakeLookup{outcome: shippedOrder}
		completer := &fakeCompleter{text: "Your order 1234567 has shipped."}
		svc := newTestChatService(t, lookup, completer, intent.StrategyKeyword)

		r, err := svc.Reply(context.Background(), "Can you check 1234567 for me?")
		require.NoError(t, err)

		assert.Equal(t, PathSlow, r.Path)
		assert.Equal(t, order.KindFound, r.Outcome)
		require.Len(t, lookup.calls, 1)
		assert.Equal(t, "1234567", lookup.calls[0].OrderNumber)
		assert.Contains(t, completer.systemPrompt(t), "- Status: Shipped")
	})

	t.Run("email only looks up then completes", func(t *testing.T) {
		lookup := &fakeLookup{outcome: &order.NotFound{Email: "jane@example.com"}}
		completer := &fakeCompleter{text: "I couldn't find that. Could you share your order number?"}
		svc := newTestChatService(t, lookup, completer, intent.StrategyKeyword)

		r, err := svc.Reply(context.Background(), "Where is my order? I used jane@example.com")
		require.NoError(t, err)

		assert.Equal(t, PathSlow, r.Path)
		assert.Equal(t, order.KindNotFound, r.Outcome)
		require.Len(t, lookup.calls, 1)
		assert.Equal(t, extract.Identifiers{Email: "jane@example.com"}, lookup.calls[0])
		assert.Contains(t, completer.systemPrompt(t), "email jane@example.com")
	})

	t.Run("unavailable lookup tells model not to guess", func(t *testing.T) {
		lookup := &fakeLookup{outcome: &order.TransportError{StatusCode: 503}}
		completer := &fakeCompleter{text: "I can't check orders right now."}
		svc := newTestChatService(t, lookup, completer, intent.StrategyKeyword)

		_, err := svc.Reply(context.Background(), "jane@example.com here")
		require.NoError(t, err)
		assert.Contains(t, completer.systemPrompt(t), "Do not guess")
	})

	t.Run("blank completion falls back", func(t *testing.T) {
		svc := newTestChatService(t, &fakeLookup{}, &fakeCompleter{text: ""}, intent.StrategyKeyword)

		r, err := svc.Reply(context.Background(), "Do you sell holsters?")
		require.NoError(t, err)
		assert.Equal(t, reply.FallbackReply, r.Text)
	})

	t.Run("no choices falls back", func(t *testing.T) {
		svc := newTestChatService(t, &fakeLookup{}, &fakeCompleter{err: llm.ErrEmptyCompletion}, intent.StrategyKeyword)

		r, err := svc.Reply(context.Background(), "Do you sell holsters?")
		require.NoError(t, err)
		assert.Equal(t, reply.FallbackReply, r.Text)
	})

	t.Run("provider failure", func(t *testing.T) {
		providerErr := errors.New("401 invalid api key")
		svc := newTestChatService(t, &fakeLookup{}, &fakeCompleter{err: providerErr}, intent.StrategyKeyword)

		_, err := svc.Reply(context.Background(), "Do you sell holsters?")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCompletionFailed)
		assert.ErrorIs(t, err, providerErr)
	})
}

func TestChatService_Reply_DigitsStrategy(t *testing.T) {
	lookup := &fakeLookup{outcome: shippedOrder}
	completer := &fakeCompleter{text: "unused"}
	svc := newTestChatService(t, lookup, completer, intent.StrategyDigits)

	r, err := svc.Reply(context.Background(), "1234567")
	require.NoError(t, err)

	assert.Equal(t, PathFast, r.Path)
	assert.Contains(t, r.Text, "Current status: Shipped")
	assert.Empty(t, completer.received)
}

func TestChatService_Reply_Idempotent(t *testing.T) {
	lookup := &fakeLookup{outcome: shippedOrder}
	svc := newTestChatService(t, lookup, &fakeCompleter{}, intent.StrategyKeyword)

	first, err := svc.Reply(context.Background(), "Where is order 1234567?")
	require.NoError(t, err)
	second, err := svc.Reply(context.Background(), "Where is order 1234567?")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, lookup.calls, 2, "no caching between requests")
}

// End to end through the real order client against a fake platform.
func TestChatService_Reply_OrderPlatformScenario(t *testing.T) {
	var calls int
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		if !strings.HasSuffix(r.URL.Path, "/orders/1234567") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":1234567,"status":"Shipped","date_created":"2025-01-01"}]}`))
	}))
	defer server.Close()

	client := order.NewClient(&config.OrderPlatformConfig{
		StoreHash:   "abc123",
		AccessToken: "token",
		BaseURL:     server.URL,
		Timeout:     2 * time.Second,
	}, masking.NewService("token"))
	svc := newTestChatService(t, client, &fakeCompleter{}, intent.StrategyKeyword)

	r, err := svc.Reply(context.Background(), "Where is order 1234567?")
	require.NoError(t, err)

	assert.Equal(t,
		"I found order #1234567. Current status: Shipped. It was created on 1/1/2025."+
			" If you need more details (items, totals, or tracking), please let me know.",
		r.Text)

	r, err = svc.Reply(context.Background(), "Where is order 7654321?")
	require.NoError(t, err)
	assert.Equal(t, "I couldn't find an order with the number 7654321. Please double-check the number.", r.Text)

	assert.Equal(t, 2, calls)
}
