package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/ragmesh/core"
	"github.com/hupe1980/ragmesh/interaction"
	"github.com/hupe1980/ragmesh/logging"
)

// CandidateRetriever retrieves and scores context candidates for a question.
// Implemented by retrieval.Filter; declared here so the engine can be tested
// against a stub without a vector backend.
type CandidateRetriever interface {
	Retrieve(ctx context.Context, tenant core.TenantKey, question string, topK int, threshold float64) (core.RetrievalOutcome, error)
}

// Request carries one question through the pipeline.
type Request struct {
	// Tenant scopes retrieval and must be fully populated.
	Tenant core.TenantKey

	// SessionID selects the conversation memory.
	SessionID string

	// Question is the user's message.
	Question string

	// Threshold overrides the engine's default filter threshold when set.
	Threshold *float64

	// TopK overrides the engine's default candidate count when positive.
	TopK int

	// Persona overrides the default system prompt opening when non-empty.
	Persona string

	// Debug attaches the full score breakdown to the response.
	Debug bool
}

// Trace is the per-request decision trail returned on debug requests. It is
// assembled from state the pipeline computed anyway; requesting it never
// changes scores or the answer.
type Trace struct {
	Outcome      core.RetrievalOutcome
	Grounded     bool
	SystemPrompt string
	HistoryLen   int
}

// Response is the answer plus the optional trace.
type Response struct {
	Text  string
	Trace *Trace
}

// Options configures the engine.
type Options struct {
	// DefaultThreshold is the inclusive combined-score cutoff.
	DefaultThreshold float64

	// DefaultTopK is the number of raw candidates requested per query.
	DefaultTopK int

	// HistoryTokenLimit bounds the prompt history by estimated tokens.
	// Zero disables the bound.
	HistoryTokenLimit int

	// HistoryMessageLimit bounds the prompt history by message count.
	// Zero disables the bound.
	HistoryMessageLimit int

	// CallTimeout bounds each collaborator call (memory, retrieval,
	// completion). Zero leaves only the request context's deadline.
	CallTimeout time.Duration

	// Logger receives structured pipeline logs.
	Logger logging.Logger

	// Recorder receives interaction events.
	Recorder interaction.Recorder
}

// Engine wires the retriever, the completer and conversation memory into
// the answering pipeline. Safe for concurrent use; per-request state lives
// on the stack.
type Engine struct {
	retriever CandidateRetriever
	completer core.Completer
	memory    core.MemoryStore
	opts      Options
}

// New constructs an Engine with the given collaborators.
func New(retriever CandidateRetriever, completer core.Completer, memory core.MemoryStore, optFns ...func(o *Options)) *Engine {
	opts := Options{
		DefaultThreshold:  0.5,
		DefaultTopK:       5,
		HistoryTokenLimit: 3000,
		Logger:            logging.NoOpLogger{},
		Recorder:          interaction.NoOpRecorder{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Engine{
		retriever: retriever,
		completer: completer,
		memory:    memory,
		opts:      opts,
	}
}

// Answer runs one question through the pipeline and returns the assistant's
// reply. Validation failures surface before any side effect; collaborator
// failures after the user turn was appended leave it in memory so retries
// replay against the full conversation.
func (e *Engine) Answer(ctx context.Context, req Request) (Response, error) {
	if err := e.validate(req); err != nil {
		return Response{}, err
	}
	question := strings.TrimSpace(req.Question)
	logger := logging.WithScope(e.opts.Logger, req.Tenant.UserID, req.Tenant.ProjectFolder, req.SessionID)

	e.opts.Recorder.Record(interaction.EventQueryReceived, map[string]any{
		"session_id": req.SessionID,
		"question":   question,
	})

	if err := e.appendMessage(ctx, req.SessionID, core.NewMessage(core.RoleUser, question)); err != nil {
		logger.Error("failed to append user turn", "error", err)
		return Response{}, &core.Error{
			Kind:   core.KindUnavailable,
			Tenant: req.Tenant,
			Op:     "engine.memory.append",
			Err:    err,
		}
	}

	history, err := e.promptHistory(ctx, req.SessionID)
	if err != nil {
		logger.Error("failed to read history", "error", err)
		return Response{}, &core.Error{
			Kind:   core.KindUnavailable,
			Tenant: req.Tenant,
			Op:     "engine.memory.history",
			Err:    err,
		}
	}

	retrieveCtx, cancel := e.callCtx(ctx)
	outcome, err := e.retriever.Retrieve(retrieveCtx, req.Tenant, question, e.topK(req), e.threshold(req))
	cancel()
	if err != nil {
		logger.Error("retrieval failed", "error", err)
		return Response{}, err
	}
	e.recordRetrieval(req.SessionID, outcome)
	logger.Info("retrieval complete",
		"total_candidates", len(outcome.All),
		"kept_candidates", len(outcome.Kept),
		"grounded", outcome.Grounded(),
	)

	systemPrompt := buildSystemPrompt(e.persona(req), outcome.Kept)
	completeCtx, cancel := e.callCtx(ctx)
	completion, err := e.completer.Complete(completeCtx, core.CompletionRequest{
		SystemPrompt: systemPrompt,
		History:      history,
		UserMessage:  question,
	})
	cancel()
	if err != nil {
		logger.Error("completion failed", "error", err)
		return Response{}, &core.Error{
			Kind:   core.KindUnavailable,
			Tenant: req.Tenant,
			Op:     "engine.complete",
			Err:    err,
		}
	}

	text := strings.TrimSpace(completion.Text)
	if text == "" {
		logger.Warn("degenerate completion, substituting fallback text")
		text = insufficientContextText(req.Tenant)
	}

	if err := e.appendMessage(ctx, req.SessionID, core.NewMessage(core.RoleAssistant, text)); err != nil {
		logger.Error("failed to append assistant turn", "error", err)
		return Response{}, &core.Error{
			Kind:   core.KindUnavailable,
			Tenant: req.Tenant,
			Op:     "engine.memory.append",
			Err:    err,
		}
	}

	e.opts.Recorder.Record(interaction.EventResponseGenerated, map[string]any{
		"session_id": req.SessionID,
		"grounded":   outcome.Grounded(),
	})

	resp := Response{Text: text}
	if req.Debug {
		resp.Trace = &Trace{
			Outcome:      outcome,
			Grounded:     outcome.Grounded(),
			SystemPrompt: systemPrompt,
			HistoryLen:   len(history),
		}
	}
	return resp, nil
}

func (e *Engine) validate(req Request) error {
	wrap := func(err error) error {
		return &core.Error{
			Kind:   core.KindValidation,
			Tenant: req.Tenant,
			Op:     "engine.validate",
			Err:    err,
		}
	}
	if err := req.Tenant.Validate(); err != nil {
		return wrap(err)
	}
	if req.SessionID == "" {
		return wrap(core.ErrMissingSessionID)
	}
	if strings.TrimSpace(req.Question) == "" {
		return wrap(core.ErrEmptyQuestion)
	}
	if req.Threshold != nil && (*req.Threshold < 0 || *req.Threshold > 1) {
		return wrap(fmt.Errorf("threshold %v outside [0,1]", *req.Threshold))
	}
	return nil
}

// promptHistory reads the conversation including the just-appended user turn
// and strips that turn: the completer receives it separately as the user
// message. The rest is truncated oldest-first to the configured budgets.
func (e *Engine) promptHistory(ctx context.Context, sessionID string) ([]core.Message, error) {
	ctx, cancel := e.callCtx(ctx)
	defer cancel()
	history, err := e.memory.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(history) > 0 {
		history = history[:len(history)-1]
	}
	return core.TruncateHistory(history, e.opts.HistoryTokenLimit, e.opts.HistoryMessageLimit), nil
}

func (e *Engine) recordRetrieval(sessionID string, outcome core.RetrievalOutcome) {
	for _, c := range outcome.All {
		e.opts.Recorder.Record(interaction.EventCandidateRetrieved, map[string]any{
			"session_id":     sessionID,
			"vector_score":   c.VectorScore,
			"metadata_bonus": c.MetadataScore,
			"combined_score": c.CombinedScore,
		})
	}
	e.opts.Recorder.Record(interaction.EventCandidateFiltering, map[string]any{
		"session_id":          sessionID,
		"total_candidates":    len(outcome.All),
		"filtered_candidates": len(outcome.Kept),
	})
}

func (e *Engine) appendMessage(ctx context.Context, sessionID string, msg core.Message) error {
	ctx, cancel := e.callCtx(ctx)
	defer cancel()
	return e.memory.Append(ctx, sessionID, msg)
}

// callCtx narrows the request context to the per-call timeout when one is
// configured.
func (e *Engine) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.opts.CallTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.opts.CallTimeout)
}

func (e *Engine) threshold(req Request) float64 {
	if req.Threshold != nil {
		return *req.Threshold
	}
	return e.opts.DefaultThreshold
}

func (e *Engine) topK(req Request) int {
	if req.TopK > 0 {
		return req.TopK
	}
	return e.opts.DefaultTopK
}

func (e *Engine) persona(req Request) string {
	if req.Persona != "" {
		return req.Persona
	}
	return DefaultPersona
}
