package client

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lshigami/sketchquiz/internal/dto"
)

const DefaultAdvanceDelay = 2 * time.Second

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notifier shows a transient message to the player.
type Notifier interface {
	Notify(kind NoticeKind, message string)
}

type NotifierFunc func(kind NoticeKind, message string)

func (f NotifierFunc) Notify(kind NoticeKind, message string) { f(kind, message) }

// Resettable drawings can be cleared after a graded submission.
type Resettable interface {
	Drawing
	Reset()
}

// Game is the player loop: pick a question, submit the drawing, show the
// verdict and move on to a fresh question after a short delay.
type Game struct {
	client       *Client
	drawing      Resettable
	username     string
	notifier     Notifier
	advanceDelay time.Duration
	rnd          *rand.Rand

	mu      sync.Mutex
	current *dto.QuestionSummaryDTO

	// busy spans the whole round, from the request until the next question is loaded.
	busy atomic.Bool
}

type Option func(*Game)

func WithAdvanceDelay(d time.Duration) Option {
	return func(g *Game) { g.advanceDelay = d }
}

func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rnd = r }
}

func NewGame(c *Client, drawing Resettable, username string, notifier Notifier, opts ...Option) *Game {
	if username == "" {
		username = "Guest"
	}
	if notifier == nil {
		notifier = NotifierFunc(func(NoticeKind, string) {})
	}
	g := &Game{
		client:       c,
		drawing:      drawing,
		username:     username,
		notifier:     notifier,
		advanceDelay: DefaultAdvanceDelay,
		rnd:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Game) Current() *dto.QuestionSummaryDTO {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// NextQuestion fetches the question list and picks one at random.
func (g *Game) NextQuestion(ctx context.Context) (*dto.QuestionSummaryDTO, error) {
	questions, err := g.client.FetchQuestions(ctx)
	if err != nil {
		g.notifier.Notify(NoticeError, "Error loading question.")
		return nil, err
	}
	if len(questions) == 0 {
		g.notifier.Notify(NoticeError, "No questions available.")
		return nil, ErrNoQuestions
	}

	g.mu.Lock()
	q := questions[g.rnd.Intn(len(questions))]
	g.current = &q
	g.mu.Unlock()
	return &q, nil
}

// Submit grades the current drawing. On success it waits the advance delay,
// clears the drawing and loads the next question before returning. A second
// Submit during any of that is rejected with ErrSubmissionInFlight.
func (g *Game) Submit(ctx context.Context) (*dto.PredictResponse, error) {
	if !g.busy.CompareAndSwap(false, true) {
		g.notifier.Notify(NoticeError, failureMessage(ErrSubmissionInFlight))
		return nil, ErrSubmissionInFlight
	}
	defer g.busy.Store(false)

	q := g.Current()
	if q == nil {
		return nil, ErrNoQuestions
	}

	resp, err := g.client.Submit(ctx, g.drawing, q.ID, g.username)
	if err != nil {
		g.notifier.Notify(NoticeError, failureMessage(err))
		return nil, err
	}

	verdict := "Incorrect"
	if resp.Correct != nil && *resp.Correct {
		verdict = "Correct"
	}
	g.notifier.Notify(NoticeSuccess, fmt.Sprintf("You drew: %s (%s)", resp.Caption, verdict))

	select {
	case <-ctx.Done():
		return resp, ctx.Err()
	case <-time.After(g.advanceDelay):
	}
	g.drawing.Reset()
	if _, err := g.NextQuestion(ctx); err != nil {
		return resp, err
	}
	return resp, nil
}

func failureMessage(err error) string {
	var apiErr *APIError
	switch {
	case errors.Is(err, ErrBlankCanvas):
		return "Please draw something before submitting!"
	case errors.Is(err, ErrSubmissionInFlight):
		return "Still grading your last drawing."
	case errors.As(err, &apiErr):
		return "Prediction failed. Try again!"
	default:
		return "Error connecting to prediction service"
	}
}
