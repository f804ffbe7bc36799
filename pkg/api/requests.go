package api

// ChatRequest is the body of POST /ai/chat.
type ChatRequest struct {
	Message string `json:"message"`
}
