// Package engine is the per-turn decision core of the trivia dialogue. It
// dispatches pre-classified actions against an immutable handler table,
// mutates the session, and emits ordered response fragments, suggestions, and
// speech-bias entries. It never inspects raw user text.
package engine

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"trivia-dialogue-service/internal/domain"
)

// ContentProvider supplies validated per-locale settings and questions.
type ContentProvider interface {
	Settings(ctx context.Context, locale string) (domain.QuizSettings, error)
	Questions(ctx context.Context, locale string) ([]domain.Question, error)
}

// Diagnostic labels and statuses for the per-turn debug record.
const (
	statusOK    = 200
	statusError = 500

	labelSuccess = "Turn Successfully Executed"
	labelFailure = "Turn Execution Error"
)

type handlerFunc func(t *turn) error

// Engine executes turns. One Engine is shared by all sessions; per-session
// state lives entirely in the Session passed with each request.
type Engine struct {
	content  ContentProvider
	handlers map[domain.Action]handlerFunc
	version  string
	debug    bool

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithDebug attaches a diagnostic record to the session after every turn.
func WithDebug(enabled bool) Option {
	return func(e *Engine) { e.debug = enabled }
}

// WithVersion sets the version reported in diagnostics.
func WithVersion(version string) Option {
	return func(e *Engine) { e.version = version }
}

// WithRandSeed makes shuffles and audio picks deterministic, for tests.
func WithRandSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// New builds an Engine over the given content provider.
func New(content ContentProvider, opts ...Option) *Engine {
	e := &Engine{
		content: content,
		version: "v1",
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.handlers = map[domain.Action]handlerFunc{
		domain.ActionSetupQuiz:     e.setupQuiz,
		domain.ActionWelcome:       e.welcome,
		domain.ActionPromptCategory: func(t *turn) error {
			return e.promptAxis(t, t.sess.Settings.CategoryPrompt, categoryChips(t.sess.Settings))
		},
		domain.ActionPromptDifficulty: func(t *turn) error {
			return e.promptAxis(t, t.sess.Settings.DifficultyPrompt, difficultyChips(t.sess.Settings))
		},
		domain.ActionSetCategory:   e.setCategory,
		domain.ActionSetDifficulty: e.setDifficulty,
		domain.ActionFinalizeSetup: e.finalizeSetup,
		domain.ActionAskQuestion: func(t *turn) error {
			return e.askQuestion(t, "")
		},
		domain.ActionQuestionRepeat: e.questionRepeat,
		domain.ActionAnswer: func(t *turn) error {
			return e.answer(t, "")
		},
		domain.ActionAnswerOrdinal: e.answerOrdinal,
		domain.ActionAnswerHelp:    e.answerHelp,
		domain.ActionAnswerSkip:    e.answerSkip,
		domain.ActionRoundEnd:      e.roundEnd,
		domain.ActionGiveScore:     e.giveScore,

		domain.ActionRestartConfirmation: e.restartConfirmation,
		domain.ActionRestartYes:          e.restartYes,
		domain.ActionRestartNo:           e.restartNo,
		domain.ActionRestartRepeat:       e.restartConfirmation,

		domain.ActionAskPlayAgain:    e.askPlayAgain,
		domain.ActionPlayAgainYes:    e.playAgainYes,
		domain.ActionPlayAgainNo:     e.quitYes,
		domain.ActionPlayAgainRepeat: e.askPlayAgain,

		domain.ActionQuitConfirmation: e.quitConfirmation,
		domain.ActionQuitYes:          e.quitYes,
		domain.ActionQuitNo:           e.quitNo,
		domain.ActionQuitRepeat:       e.quitConfirmation,

		domain.ActionGenericNoMatch1:   e.genericNoMatch1,
		domain.ActionGenericNoMatch2:   e.genericNoMatch2,
		domain.ActionGenericNoMatchMax: e.genericNoMatchMax,
		domain.ActionGenericNoInput1:   e.genericNoInput1,
		domain.ActionGenericNoInput2:   e.genericNoInput2,
		domain.ActionGenericNoInputMax: e.genericNoInputMax,
	}
	return e
}

// HandleTurn executes one action against one session. Handler failures never
// escape: they degrade to an end-of-conversation response with a generic
// fallback fragment, and a diagnostic is attached to the session when debug
// mode is on.
func (e *Engine) HandleTurn(ctx context.Context, req Request) Response {
	t := &turn{
		ctx:  ctx,
		req:  &req,
		sess: req.Session,
		resp: &Response{},
		eng:  e,
	}

	err := e.dispatch(t)
	if err != nil {
		e.failTurn(t, err)
	} else if e.debug {
		t.sess.Debug = &domain.Diagnostic{
			Status:      statusOK,
			Label:       labelSuccess,
			Version:     e.version,
			ExecutionID: e.executionID(t.req),
		}
	}
	return *t.resp
}

func (e *Engine) dispatch(t *turn) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic handling %s: %v", t.req.Action, r)
		}
	}()
	handler, ok := e.handlers[t.req.Action]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownAction, t.req.Action)
	}
	return handler(t)
}

func (e *Engine) failTurn(t *turn, err error) {
	executionID := e.executionID(t.req)
	log.Printf("turn %s failed [execution %s]: %v", t.req.Action, executionID, err)

	t.add(PromptFallback2)
	t.resp.EndConversation = true
	if e.debug {
		t.sess.Debug = &domain.Diagnostic{
			Status:      statusError,
			Label:       labelFailure,
			Version:     e.version,
			ExecutionID: executionID,
			Message:     err.Error(),
			Stack:       string(debug.Stack()),
		}
	}
}

func (e *Engine) executionID(req *Request) string {
	if req.ExecutionID != "" {
		return req.ExecutionID
	}
	return uuid.NewString()
}

// intn draws from the engine's rng; the lock keeps concurrent sessions from
// racing on the shared source.
func (e *Engine) intn(n int) int {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Intn(n)
}

func (e *Engine) withRNG(f func(*rand.Rand)) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	f(e.rng)
}
