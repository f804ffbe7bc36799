package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sashabaranov/go-openai"
)

// LLMScriptEntry defines a single scripted completion response.
type LLMScriptEntry struct {
	Text      string // assistant content
	Status    int    // non-zero: respond with this HTTP error status
	NoChoices bool   // respond 200 with an empty choices list
}

// ScriptedLLM is an OpenAI-compatible /v1/chat/completions server that
// replays scripted entries in order and captures every request.
type ScriptedLLM struct {
	server *httptest.Server

	mu       sync.Mutex
	script   []LLMScriptEntry
	index    int
	captured []openai.ChatCompletionRequest
}

// NewScriptedLLM starts the fake provider; it is closed via t.Cleanup.
func NewScriptedLLM(t *testing.T) *ScriptedLLM {
	t.Helper()
	s := &ScriptedLLM{}
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.server.Close)
	return s
}

// URL returns the server root (without /v1).
func (s *ScriptedLLM) URL() string {
	return s.server.URL
}

// AddSequential appends an entry consumed in order.
func (s *ScriptedLLM) AddSequential(entry LLMScriptEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script = append(s.script, entry)
}

// CallCount returns the number of completion requests received.
func (s *ScriptedLLM) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.captured)
}

// CapturedRequests returns a copy of every request received.
func (s *ScriptedLLM) CapturedRequests() []openai.ChatCompletionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]openai.ChatCompletionRequest, len(s.captured))
	copy(out, s.captured)
	return out
}

func (s *ScriptedLLM) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/v1/chat/completions" {
		http.NotFound(w, r)
		return
	}

	var req openai.ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.captured = append(s.captured, req)
	entry := LLMScriptEntry{Text: "scripted reply"}
	if s.index < len(s.script) {
		entry = s.script[s.index]
		s.index++
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if entry.Status != 0 {
		w.WriteHeader(entry.Status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "scripted failure", "type": "server_error"},
		})
		return
	}

	resp := openai.ChatCompletionResponse{
		ID:      "chatcmpl-e2e",
		Object:  "chat.completion",
		Model:   req.Model,
		Choices: []openai.ChatCompletionChoice{},
	}
	if !entry.NoChoices {
		resp.Choices = append(resp.Choices, openai.ChatCompletionChoice{
			Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: entry.Text},
			FinishReason: openai.FinishReasonStop,
		})
	}
	_ = json.NewEncoder(w).Encode(resp)
}
