package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/Prince-Tagadiya/MediClarify/internal/llm"
	"github.com/Prince-Tagadiya/MediClarify/internal/types"
)

// SuggestionDelimiter separates the model's natural-language answer from
// its machine-parseable follow-up suggestions block.
const SuggestionDelimiter = "|||SUGGESTIONS|||"

// FallbackReply is appended as the model turn when a chat call fails
// outright, so the conversation degrades instead of breaking.
const FallbackReply = "I'm sorry, I couldn't process that question right now. Please try asking again in a moment."

const maxSuggestions = 3

// Reply is one successful chat exchange. Suggestions is nil when the
// reply carried no parseable suggestions block; callers keep their
// previous set in that case.
type Reply struct {
	Text        string
	Suggestions types.SuggestionSet
}

// Client sends grounded follow-up turns about a finished analysis.
type Client struct {
	LLM llm.Client
}

// SendTurn sends one user message with the accumulated history, grounded
// in the full analysis snapshot. Empty turns are dropped from the history
// before sending. A malformed suggestions tail is swallowed; only a total
// request failure is returned as an error. Single attempt, no retries.
func (c *Client) SendTurn(ctx context.Context, history []types.ChatTurn, message string, snapshot types.AnalysisSnapshot) (Reply, error) {
	text, err := c.LLM.GenerateText(ctx, llm.Request{
		System:  chatSystemInstruction(snapshot),
		Prompt:  message,
		History: priorTurns(history),
	})
	if err != nil {
		return Reply{}, fmt.Errorf("chat: send turn: %w", err)
	}
	return parseReply(text), nil
}

// chatSystemInstruction grounds the conversation in the analysis the
// user is looking at, serialized wholesale.
func chatSystemInstruction(snapshot types.AnalysisSnapshot) string {
	ctxJSON, _ := json.MarshalIndent(snapshot, "", "  ")
	return fmt.Sprintf(`You are a helpful, non-diagnostic AI assistant answering follow-up questions
about a medical document analysis the user is viewing.

STRICT RULES:
1. DO NOT provide medical advice, diagnoses, or treatment plans.
2. DO NOT recommend specific medicines.
3. Use safe, educational language.
4. Answer ONLY from the analysis context below; say so when the answer is not in it.

[ANALYSIS CONTEXT]
%s

After your answer, append the literal delimiter %s followed by a JSON array
of 2-3 short follow-up questions the user might ask next. Example:
Your answer here.%s["What does this value mean?","Should I track this over time?"]`,
		ctxJSON, SuggestionDelimiter, SuggestionDelimiter)
}

func priorTurns(history []types.ChatTurn) []llm.Turn {
	out := make([]llm.Turn, 0, len(history))
	for _, t := range history {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		out = append(out, llm.Turn{Role: string(t.Role), Text: t.Text})
	}
	return out
}

// parseReply splits once on the delimiter. The part before is the display
// text; the part after, when present, is attempted as a JSON array. A
// malformed tail leaves Suggestions nil and still succeeds.
func parseReply(raw string) Reply {
	text, tail, found := strings.Cut(raw, SuggestionDelimiter)
	reply := Reply{Text: strings.TrimSpace(text)}
	if !found {
		return reply
	}

	var suggestions []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(tail)), &suggestions); err != nil {
		log.Printf("chat: unparseable suggestions block dropped: %v", err)
		return reply
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	reply.Suggestions = suggestions
	return reply
}
