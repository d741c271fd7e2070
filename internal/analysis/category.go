package analysis

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Prince-Tagadiya/MediClarify/internal/llm"
	"github.com/Prince-Tagadiya/MediClarify/internal/types"
)

// CategoryDetector classifies one document before submission so the UI
// knows which comparison affordances to offer.
type CategoryDetector struct {
	LLM llm.Client
}

// Detect asks the model which category the document belongs to. The call
// fails open: on any failure it returns CategoryLab rather than an error,
// since a wrong default only costs a wasted comparison slot. Single
// attempt, no retries.
func (d *CategoryDetector) Detect(ctx context.Context, doc types.Document) types.DocumentCategory {
	raw, err := d.LLM.GenerateJSON(ctx, llm.Request{
		System:      systemInstruction,
		Prompt:      detectPrompt,
		Attachments: []llm.Attachment{llm.NewAttachment(doc.Name, doc.MIMEType, doc.Data)},
		Schema:      categorySchema,
	})
	if err != nil {
		log.Printf("category detection failed, defaulting to lab: %v", err)
		return types.CategoryLab
	}

	var out struct {
		Category string `json:"category"`
	}
	if err := json.Unmarshal(raw, &out); err != nil || out.Category == "" {
		log.Printf("category detection reply unusable, defaulting to lab")
		return types.CategoryLab
	}
	return types.ParseCategory(out.Category)
}
