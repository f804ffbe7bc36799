// Package e2e provides end-to-end test infrastructure: the full chat backend
// booted from configuration against fake order-platform and completion servers.
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thundertactical/thunder-ai-backend/pkg/api"
	"github.com/thundertactical/thunder-ai-backend/pkg/config"
	"github.com/thundertactical/thunder-ai-backend/pkg/intent"
	"github.com/thundertactical/thunder-ai-backend/pkg/llm"
	"github.com/thundertactical/thunder-ai-backend/pkg/masking"
	"github.com/thundertactical/thunder-ai-backend/pkg/metrics"
	"github.com/thundertactical/thunder-ai-backend/pkg/order"
	"github.com/thundertactical/thunder-ai-backend/pkg/reply"
	"github.com/thundertactical/thunder-ai-backend/pkg/services"
)

const (
	testStoreHash   = "e2estore"
	testAccessToken = "e2e-access-token"
	testClientID    = "e2e-client-id"
	testAPIKey      = "sk-e2e-test-key-000000000000"
)

// TestApp boots a complete backend instance for e2e testing.
type TestApp struct {
	Config   *config.Config
	Platform *FakeOrderPlatform
	LLM      *ScriptedLLM
	Metrics  *metrics.Metrics
	Server   *api.Server

	// Runtime
	BaseURL string // e.g. "http://127.0.0.1:54321"

	t *testing.T
}

// testAppConfig holds options accumulated before creating the TestApp.
type testAppConfig struct {
	yaml               string
	withoutCredentials bool
}

// TestAppOption configures the test app.
type TestAppOption func(*testAppConfig)

// WithYAML appends extra thunder.yaml content (top-level sections).
func WithYAML(content string) TestAppOption {
	return func(c *testAppConfig) { c.yaml += content }
}

// WithoutOrderCredentials leaves the order platform unconfigured.
func WithoutOrderCredentials() TestAppOption {
	return func(c *testAppConfig) { c.withoutCredentials = true }
}

// NewTestApp creates and starts a full test instance. Configuration goes
// through the real loader: a thunder.yaml in a temp dir plus environment
// variables pointing at the fakes. Shutdown is registered via t.Cleanup.
func NewTestApp(t *testing.T, opts ...TestAppOption) *TestApp {
	t.Helper()

	tc := &testAppConfig{}
	for _, opt := range opts {
		opt(tc)
	}

	// 1. Fake upstreams.
	platform := NewFakeOrderPlatform(t)
	scripted := NewScriptedLLM(t)

	// 2. Configuration from env + YAML, the same path main uses.
	t.Setenv("PORT", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("BC_API_URL", platform.URL())
	t.Setenv("OPENAI_BASE_URL", scripted.URL()+"/v1")
	t.Setenv("OPENAI_API_KEY", testAPIKey)
	if tc.withoutCredentials {
		t.Setenv("BC_STORE_HASH", "")
		t.Setenv("BC_ACCESS_TOKEN", "")
		t.Setenv("BC_CLIENT_ID", "")
	} else {
		t.Setenv("BC_STORE_HASH", testStoreHash)
		t.Setenv("BC_ACCESS_TOKEN", testAccessToken)
		t.Setenv("BC_CLIENT_ID", testClientID)
	}

	configDir := t.TempDir()
	yaml := "order_platform:\n  timeout: 2s\nllm:\n  timeout: 5s\n" + tc.yaml
	require.NoError(t, os.WriteFile(filepath.Join(configDir, config.ConfigFileName), []byte(yaml), 0o644))

	cfg, err := config.Initialize(context.Background(), configDir)
	require.NoError(t, err)

	// 3. Components, wired as in cmd/thunder-ai.
	m := metrics.New()
	masker := masking.NewService(cfg.OrderPlatform.AccessToken, cfg.OrderPlatform.ClientID, cfg.LLM.APIKey)
	detector, err := intent.New(cfg.Intent.Strategy, cfg.Intent.Keywords)
	require.NoError(t, err)

	chatService := services.NewChatService(
		order.NewClient(cfg.OrderPlatform, masker),
		llm.NewOpenAIClient(cfg.LLM, m),
		detector,
		reply.NewComposer(cfg.Assistant),
		cfg.Server.MaxMessageLength,
		m,
	)
	server := api.NewServer(cfg, chatService, m)

	// 4. HTTP server on random port.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = server.StartWithListener(ln)
	}()

	app := &TestApp{
		Config:   cfg,
		Platform: platform,
		LLM:      scripted,
		Metrics:  m,
		Server:   server,
		BaseURL:  fmt.Sprintf("http://%s", ln.Addr().String()),
		t:        t,
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	})

	return app
}

// Chat posts a message to /ai/chat and returns the status code and reply text.
func (a *TestApp) Chat(message string) (int, string) {
	a.t.Helper()
	body, err := json.Marshal(map[string]string{"message": message})
	require.NoError(a.t, err)
	return a.PostRaw("/ai/chat", body)
}

// PostRaw posts an arbitrary JSON body and decodes the {reply} response.
func (a *TestApp) PostRaw(path string, body []byte) (int, string) {
	a.t.Helper()
	resp, err := http.Post(a.BaseURL+path, "application/json", bytes.NewReader(body))
	require.NoError(a.t, err)
	defer resp.Body.Close()

	var out api.ChatResponse
	require.NoError(a.t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out.Reply
}

// Get performs a GET and returns the status code and raw body.
func (a *TestApp) Get(path string) (int, string) {
	a.t.Helper()
	resp, err := http.Get(a.BaseURL + path)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, string(raw)
}
