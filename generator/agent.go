package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyLocation = errors.New("location is required")
	ErrNoTopics      = errors.New("at least one known topic is required")
	ErrEmptyStory    = errors.New("narrator returned an empty story")
)

// DefaultDelay stands in for the latency of a real generation call.
const DefaultDelay = 3 * time.Second

// Agent validates requests and runs a Narrator after the generation delay.
type Agent struct {
	narrator Narrator
	delay    time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// Option customizes an Agent.
type Option func(*Agent)

// WithDelay overrides DefaultDelay. Zero disables the wait.
func WithDelay(d time.Duration) Option {
	return func(a *Agent) { a.delay = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(a *Agent) {
		if l != nil {
			a.logger = l
		}
	}
}

func NewAgent(narrator Narrator, opts ...Option) (*Agent, error) {
	if narrator == nil {
		return nil, errors.New("narrator is required")
	}
	a := &Agent{
		narrator: narrator,
		delay:    DefaultDelay,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.delay < 0 {
		a.delay = 0
	}
	return a, nil
}

// Narrator returns the configured narrator.
func (a *Agent) Narrator() Narrator { return a.narrator }

// Validate normalizes req and rejects requests the UI would not submit.
func Validate(req Request) (Request, error) {
	req.Location = strings.TrimSpace(req.Location)
	if req.Location == "" {
		return Request{}, ErrEmptyLocation
	}
	req.Topics = Normalize(req.Topics)
	if len(req.Topics) == 0 {
		return Request{}, ErrNoTopics
	}
	return req, nil
}

// Generate produces a new story for req.
func (a *Agent) Generate(ctx context.Context, req Request) (Story, error) {
	req, err := Validate(req)
	if err != nil {
		return Story{}, err
	}

	if err := a.wait(ctx); err != nil {
		return Story{}, err
	}

	start := a.now()
	raw, err := a.narrator.Narrate(ctx, req)
	if err != nil {
		return Story{}, fmt.Errorf("narrate with %s: %w", a.narrator.Name(), err)
	}
	story, err := PostProcess(raw, req)
	if err != nil {
		return Story{}, err
	}
	story.ID = uuid.NewString()
	story.Narrator = a.narrator.Name()
	story.CreatedAt = a.now()

	a.logger.Debug("story generated",
		zap.String("story_id", story.ID),
		zap.String("narrator", story.Narrator),
		zap.Strings("topics", req.Topics),
		zap.Int("blocks", len(story.Blocks)),
		zap.Duration("narrate", a.now().Sub(start)),
	)
	return story, nil
}

func (a *Agent) wait(ctx context.Context) error {
	if a.delay == 0 {
		return ctx.Err()
	}
	t := time.NewTimer(a.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
