package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Prince-Tagadiya/MediClarify/internal/analysis"
	"github.com/Prince-Tagadiya/MediClarify/internal/chat"
	"github.com/Prince-Tagadiya/MediClarify/internal/types"
)

// Status is the screen-level state of one session.
type Status string

const (
	StatusIdle      Status = "IDLE"
	StatusAnalyzing Status = "ANALYZING"
	StatusSuccess   Status = "SUCCESS"
	StatusError     Status = "ERROR"
)

var (
	ErrNotIdle    = errors.New("session: an analysis is already running")
	ErrNoAnalysis = errors.New("session: no completed analysis to chat about")
)

const maxSeedSuggestions = 3

// Event is one progressive update pushed to watchers. Snapshot is set on
// every yield of the pipeline, so a watcher can render extraction results
// before insights arrive.
type Event struct {
	Status   Status                  `json:"status"`
	Phase    string                  `json:"phase"`
	Snapshot *types.AnalysisSnapshot `json:"snapshot,omitempty"`
	Error    string                  `json:"error,omitempty"`
}

// Session owns one user's analysis state: the current snapshot, the chat
// history, and the follow-up suggestions. All state is in memory and
// lives only as long as the session.
type Session struct {
	ID string

	pipeline    *analysis.Pipeline
	chat        *chat.Client
	callTimeout time.Duration

	mu          sync.Mutex
	status      Status
	category    types.DocumentCategory
	snapshot    *types.AnalysisSnapshot
	index       *types.ParameterIndex
	history     []types.ChatTurn
	suggestions types.SuggestionSet
	errMsg      string
	phase       analysis.Phase
	events      chan Event

	// chatMu serializes follow-up turns: a second send waits for the
	// first to complete, so a reply is always appended right after its
	// own user turn.
	chatMu sync.Mutex
}

func New(pipeline *analysis.Pipeline, chatClient *chat.Client, callTimeout time.Duration) *Session {
	return &Session{
		ID:          uuid.NewString(),
		pipeline:    pipeline,
		chat:        chatClient,
		callTimeout: callTimeout,
		status:      StatusIdle,
	}
}

// View is the renderer-facing projection of the session.
type View struct {
	ID          string                  `json:"id"`
	Status      Status                  `json:"status"`
	Phase       string                  `json:"phase"`
	Category    types.DocumentCategory  `json:"category,omitempty"`
	Snapshot    *types.AnalysisSnapshot `json:"snapshot,omitempty"`
	Section     types.Section           `json:"section,omitempty"`
	History     []types.ChatTurn        `json:"history"`
	Suggestions types.SuggestionSet     `json:"suggestions,omitempty"`
	Error       string                  `json:"error,omitempty"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		ID:          s.ID,
		Status:      s.status,
		Phase:       s.phase.String(),
		Category:    s.category,
		Snapshot:    s.snapshot,
		History:     append([]types.ChatTurn(nil), s.history...),
		Suggestions: s.suggestions,
		Error:       s.errMsg,
	}
	if s.snapshot != nil {
		v.Section = types.SectionFor(s.category, *s.snapshot)
	}
	return v
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) Snapshot() *types.AnalysisSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func (s *Session) History() []types.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.ChatTurn(nil), s.history...)
}

func (s *Session) Suggestions() types.SuggestionSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suggestions
}

// Index returns the parameter join for the current snapshot.
func (s *Session) Index() *types.ParameterIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// StartAnalysis clears any previous result and begins consuming the
// pipeline in the background. Progressive snapshots are pushed to the
// channel returned by Watch.
func (s *Session) StartAnalysis(req analysis.Request) error {
	s.mu.Lock()
	if s.status == StatusAnalyzing {
		s.mu.Unlock()
		return ErrNotIdle
	}
	s.status = StatusAnalyzing
	s.category = req.Category
	s.snapshot = nil
	s.index = nil
	s.history = nil
	s.suggestions = nil
	s.errMsg = ""
	s.phase = analysis.PhaseNotStarted
	events := make(chan Event, 8)
	s.events = events
	s.mu.Unlock()

	go s.consume(req, events)
	return nil
}

// Watch returns the event channel of the current analysis. The channel
// is closed once the analysis reaches a terminal state.
func (s *Session) Watch() (<-chan Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.events == nil {
		return nil, false
	}
	return s.events, true
}

func (s *Session) consume(req analysis.Request, events chan Event) {
	defer close(events)

	stream := s.pipeline.Analyze(req)

	// First pull: extraction. A failure here is the only fatal outcome.
	snap, err := s.next(stream)
	if err != nil {
		log.Printf("session %s: analysis failed: %v", s.ID, err)
		s.finish(stream, nil, StatusError, err.Error(), events)
		return
	}
	if snap == nil {
		s.finish(stream, nil, StatusError, "analysis produced no result", events)
		return
	}
	s.update(stream, snap, events)

	// Second pull: insights. The stream ending here without a snapshot
	// is a degraded success, not an error.
	snap, err = s.next(stream)
	if err != nil {
		// The pipeline never errors past extraction; treat defensively
		// as truncation.
		log.Printf("session %s: unexpected insight error: %v", s.ID, err)
		snap = nil
	}
	final := s.currentSnapshot()
	if snap != nil {
		final = snap
	}
	s.finish(stream, final, StatusSuccess, "", events)
}

func (s *Session) next(stream *analysis.Stream) (*types.AnalysisSnapshot, error) {
	ctx := context.Background()
	if s.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
	}
	return stream.Next(ctx)
}

func (s *Session) update(stream *analysis.Stream, snap *types.AnalysisSnapshot, events chan Event) {
	s.mu.Lock()
	s.snapshot = snap
	s.index = types.BuildIndex(*snap)
	s.phase = stream.Phase()
	s.mu.Unlock()
	events <- Event{Status: StatusAnalyzing, Phase: stream.Phase().String(), Snapshot: snap}
}

func (s *Session) finish(stream *analysis.Stream, snap *types.AnalysisSnapshot, status Status, errMsg string, events chan Event) {
	s.mu.Lock()
	if snap != nil {
		s.snapshot = snap
		s.index = types.BuildIndex(*snap)
	}
	s.status = status
	s.errMsg = errMsg
	s.phase = stream.Phase()
	if status == StatusSuccess && s.snapshot != nil && len(s.suggestions) == 0 {
		s.suggestions = seedSuggestions(s.snapshot.DoctorQuestions)
	}
	snapshot := s.snapshot
	s.mu.Unlock()
	events <- Event{Status: status, Phase: stream.Phase().String(), Snapshot: snapshot, Error: errMsg}
}

func (s *Session) currentSnapshot() *types.AnalysisSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// seedSuggestions defaults the suggestion set to the analysis's doctor
// questions until the first chat turn replaces it.
func seedSuggestions(questions []string) types.SuggestionSet {
	if len(questions) > maxSeedSuggestions {
		questions = questions[:maxSeedSuggestions]
	}
	return append(types.SuggestionSet(nil), questions...)
}

// SendChat appends one user turn, sends it with the accumulated history,
// and appends the model's reply. Turns are strictly serialized: a send
// that arrives while another is outstanding waits its turn. A failed call
// appends the fixed fallback as the model turn instead of surfacing an
// error.
func (s *Session) SendChat(ctx context.Context, message string) (types.ChatTurn, types.SuggestionSet, error) {
	s.chatMu.Lock()
	defer s.chatMu.Unlock()

	s.mu.Lock()
	if s.snapshot == nil {
		s.mu.Unlock()
		return types.ChatTurn{}, nil, ErrNoAnalysis
	}
	snapshot := *s.snapshot
	history := append([]types.ChatTurn(nil), s.history...)
	s.history = append(s.history, types.ChatTurn{Role: types.RoleUser, Text: message})
	s.mu.Unlock()

	if s.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
	}

	reply, err := s.chat.SendTurn(ctx, history, message, snapshot)
	modelTurn := types.ChatTurn{Role: types.RoleModel, Text: reply.Text}
	if err != nil {
		log.Printf("session %s: chat turn failed: %v", s.ID, err)
		modelTurn.Text = chat.FallbackReply
	}

	s.mu.Lock()
	s.history = append(s.history, modelTurn)
	if err == nil && reply.Suggestions != nil {
		s.suggestions = reply.Suggestions
	}
	suggestions := s.suggestions
	s.mu.Unlock()

	return modelTurn, suggestions, nil
}

// Reset returns the session to Idle and discards all analysis and chat
// state. Valid from Success and Error.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusAnalyzing {
		return
	}
	s.status = StatusIdle
	s.category = ""
	s.snapshot = nil
	s.index = nil
	s.history = nil
	s.suggestions = nil
	s.errMsg = ""
	s.phase = analysis.PhaseNotStarted
	s.events = nil
}
