package llm

import (
	"context"
	"encoding/json"

	genai "google.golang.org/genai"
)

// Turn is one prior conversational exchange replayed to the model.
type Turn struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// Request carries everything one model call needs: a fixed system
// instruction, the task prompt, binary attachments, optional prior turns,
// and, for structured calls, the response schema the reply must conform to.
type Request struct {
	System      string
	Prompt      string
	Attachments []Attachment
	History     []Turn
	Schema      *genai.Schema
}

// Client is the AI-service boundary. GenerateJSON requests a
// schema-constrained reply and returns its raw JSON body; GenerateText
// returns unconstrained text. Both are single-attempt calls.
type Client interface {
	Name() string
	GenerateJSON(ctx context.Context, req Request) (json.RawMessage, error)
	GenerateText(ctx context.Context, req Request) (string, error)
	Close() error
}
