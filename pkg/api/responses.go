package api

// ChatResponse is returned by POST /ai/chat on every path, errors included.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status                string `json:"status"`
	Version               string `json:"version"`
	OrderLookupConfigured bool   `json:"order_lookup_configured"`
	LLMConfigured         bool   `json:"llm_configured"`
}
