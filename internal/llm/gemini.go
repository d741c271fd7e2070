package llm

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	genai "google.golang.org/genai"
)

var (
	ErrInvalidJSON = errors.New("llm: invalid JSON from model")
	ErrEmptyReply  = errors.New("llm: empty reply from model")
)

// GeminiClient is a thin wrapper around the official genai client.
// Policy (fail-open vs fail-closed, fallbacks) lives at the call sites;
// this type only performs the call.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }
func (g *GeminiClient) Close() error { return nil }

// GenerateJSON sends one schema-constrained request and returns the raw
// JSON body of the reply.
func (g *GeminiClient) GenerateJSON(ctx context.Context, req Request) (json.RawMessage, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}

	txt, err := g.generate(ctx, req, cfg)
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(txt)) {
		return nil, ErrInvalidJSON
	}
	return json.RawMessage(txt), nil
}

// GenerateText sends one request without a response schema and returns
// the reply text verbatim.
func (g *GeminiClient) GenerateText(ctx context.Context, req Request) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	return g.generate(ctx, req, cfg)
}

func (g *GeminiClient) generate(ctx context.Context, req Request, cfg *genai.GenerateContentConfig) (string, error) {
	contents, err := buildContents(req)
	if err != nil {
		return "", err
	}

	log.Printf("LLM request (%s): %d attachment(s), %d prior turn(s)", g.model, len(req.Attachments), len(req.History))

	resp, err := g.cli.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyReply
	}
	txt := resp.Candidates[0].Content.Parts[0].Text
	if txt == "" {
		return "", ErrEmptyReply
	}
	return txt, nil
}

// buildContents replays prior turns, then assembles the triggering user
// content from the attachments followed by the prompt text.
func buildContents(req Request) ([]*genai.Content, error) {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, t := range req.History {
		contents = append(contents, &genai.Content{
			Role:  t.Role,
			Parts: []*genai.Part{{Text: t.Text}},
		})
	}

	parts := make([]*genai.Part, 0, len(req.Attachments)+1)
	for _, a := range req.Attachments {
		data, err := a.Bytes()
		if err != nil {
			return nil, err
		}
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{
			MIMEType: a.MIMEType,
			Data:     data,
		}})
	}
	if req.Prompt != "" {
		parts = append(parts, &genai.Part{Text: req.Prompt})
	}
	contents = append(contents, &genai.Content{Role: "user", Parts: parts})
	return contents, nil
}
