package analysis

import (
	"context"
	"fmt"
	"log"

	"github.com/Prince-Tagadiya/MediClarify/internal/llm"
	"github.com/Prince-Tagadiya/MediClarify/internal/types"
)

// Phase tracks one analysis invocation through its state machine.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseExtracting
	PhaseExtractionFailed
	PhaseExtracted
	PhaseGeneratingInsights
	PhaseEndedAfterExtraction
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NotStarted"
	case PhaseExtracting:
		return "Extracting"
	case PhaseExtractionFailed:
		return "ExtractionFailed"
	case PhaseExtracted:
		return "Extracted"
	case PhaseGeneratingInsights:
		return "GeneratingInsights"
	case PhaseEndedAfterExtraction:
		return "EndedAfterExtraction"
	case PhaseComplete:
		return "Complete"
	}
	return "Unknown"
}

// Terminal reports whether the invocation can make no further progress.
func (p Phase) Terminal() bool {
	return p == PhaseExtractionFailed || p == PhaseEndedAfterExtraction || p == PhaseComplete
}

// Request is one analysis invocation: one or two documents (current
// first, previous second), the user's free-text notes, and the category
// hint chosen before submission.
type Request struct {
	Documents []types.Document
	Notes     string
	Category  types.DocumentCategory
}

// Pipeline runs the two-phase analysis against the AI service.
type Pipeline struct {
	LLM llm.Client
}

// Analyze returns a pull-based stream of at most two snapshots. No
// network call happens until the consumer pulls; in particular the
// insight request is only issued when the consumer asks for the second
// element, so abandoning the stream after extraction cancels phase two
// for free.
func (p *Pipeline) Analyze(req Request) *Stream {
	return &Stream{pipe: p, req: req}
}

// Stream yields extraction first, then the merged extraction+insight
// snapshot. Next returns (nil, nil) once the sequence is over; an
// insight-phase failure ends the sequence early without an error, while
// an extraction failure is returned as one.
type Stream struct {
	pipe    *Pipeline
	req     Request
	phase   Phase
	current types.AnalysisSnapshot
}

// Phase reports where the invocation currently stands.
func (s *Stream) Phase() Phase { return s.phase }

func (s *Stream) Next(ctx context.Context) (*types.AnalysisSnapshot, error) {
	switch s.phase {
	case PhaseNotStarted:
		return s.extract(ctx)
	case PhaseExtracted:
		return s.insights(ctx)
	default:
		return nil, nil
	}
}

func (s *Stream) extract(ctx context.Context) (*types.AnalysisSnapshot, error) {
	s.phase = PhaseExtracting

	raw, err := s.pipe.LLM.GenerateJSON(ctx, llm.Request{
		System:      systemInstruction,
		Prompt:      extractionPrompt(s.req.Category, s.req.Notes, len(s.req.Documents) > 1),
		Attachments: attachments(s.req.Documents),
		Schema:      extractionSchema,
	})
	if err != nil {
		s.phase = PhaseExtractionFailed
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	snap, err := parseExtraction(raw)
	if err != nil {
		s.phase = PhaseExtractionFailed
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	s.phase = PhaseExtracted
	s.current = snap
	out := snap
	return &out, nil
}

func (s *Stream) insights(ctx context.Context) (*types.AnalysisSnapshot, error) {
	s.phase = PhaseGeneratingInsights

	// The documents are resent for visual grounding; the extraction
	// snapshot rides along in the prompt so the model builds on its own
	// prior read instead of re-deriving it.
	raw, err := s.pipe.LLM.GenerateJSON(ctx, llm.Request{
		System:      systemInstruction,
		Prompt:      insightPrompt(s.current, s.req.Notes, len(s.req.Documents) > 1),
		Attachments: attachments(s.req.Documents),
		Schema:      insightSchema,
	})
	if err != nil {
		log.Printf("insight phase failed, ending after extraction: %v", err)
		s.phase = PhaseEndedAfterExtraction
		return nil, nil
	}

	overlay, err := parseInsights(raw)
	if err != nil {
		log.Printf("insight reply unusable, ending after extraction: %v", err)
		s.phase = PhaseEndedAfterExtraction
		return nil, nil
	}

	s.phase = PhaseComplete
	s.current = types.Merge(s.current, overlay)
	out := s.current
	return &out, nil
}

func attachments(docs []types.Document) []llm.Attachment {
	out := make([]llm.Attachment, 0, len(docs))
	for _, d := range docs {
		out = append(out, llm.NewAttachment(d.Name, d.MIMEType, d.Data))
	}
	return out
}
