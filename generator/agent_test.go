package generator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubNarrator struct {
	out string
	err error
}

func (s stubNarrator) Name() string { return "stub" }

func (s stubNarrator) Narrate(context.Context, Request) (string, error) {
	return s.out, s.err
}

func TestAgentGenerate(t *testing.T) {
	agent, err := NewAgent(TemplateNarrator{}, WithDelay(0))
	require.NoError(t, err)

	story, err := agent.Generate(context.Background(), Request{Location: "  Hanoi ", Topics: []string{"weather", "weather", "nope"}})
	require.NoError(t, err)

	assert.NotEmpty(t, story.ID)
	assert.Equal(t, "template", story.Narrator)
	assert.Equal(t, "Your Climate Story: Hanoi", story.Title)
	assert.Equal(t, []string{"weather"}, story.Request.Topics)
	assert.Contains(t, story.Digest, "As you walk through the streets of Hanoi")
	assert.NotEmpty(t, story.Blocks)
	assert.False(t, story.CreatedAt.IsZero())
}

func TestAgentValidation(t *testing.T) {
	agent, err := NewAgent(TemplateNarrator{}, WithDelay(0))
	require.NoError(t, err)

	_, err = agent.Generate(context.Background(), Request{Location: "   ", Topics: []string{"water"}})
	assert.ErrorIs(t, err, ErrEmptyLocation)

	_, err = agent.Generate(context.Background(), Request{Location: "Rome"})
	assert.ErrorIs(t, err, ErrNoTopics)

	_, err = agent.Generate(context.Background(), Request{Location: "Rome", Topics: []string{"unknown"}})
	assert.ErrorIs(t, err, ErrNoTopics)
}

func TestAgentDelayHonoursCancel(t *testing.T) {
	agent, err := NewAgent(TemplateNarrator{}, WithDelay(time.Hour))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = agent.Generate(ctx, Request{Location: "Cairo", Topics: []string{"water"}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Minute)
}

func TestAgentWaitsForDelay(t *testing.T) {
	agent, err := NewAgent(TemplateNarrator{}, WithDelay(20*time.Millisecond))
	require.NoError(t, err)

	start := time.Now()
	_, err = agent.Generate(context.Background(), Request{Location: "Cairo", Topics: []string{"water"}})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestAgentNarratorErrors(t *testing.T) {
	boom := errors.New("boom")
	agent, err := NewAgent(stubNarrator{err: boom}, WithDelay(0))
	require.NoError(t, err)
	_, err = agent.Generate(context.Background(), Request{Location: "Lagos", Topics: []string{"water"}})
	assert.ErrorIs(t, err, boom)

	agent, err = NewAgent(stubNarrator{out: "  \n"}, WithDelay(0))
	require.NoError(t, err)
	_, err = agent.Generate(context.Background(), Request{Location: "Lagos", Topics: []string{"water"}})
	assert.ErrorIs(t, err, ErrEmptyStory)
}

func TestNewAgentRequiresNarrator(t *testing.T) {
	_, err := NewAgent(nil)
	assert.Error(t, err)
}

func TestPostProcessExtractsFields(t *testing.T) {
	story, err := PostProcess("\n# Title Here\n\n## Sub\n\nFirst **bold** line.\nSecond.\n", Request{})
	require.NoError(t, err)
	assert.Equal(t, "Title Here", story.Title)
	assert.Equal(t, "First bold line.", story.Digest)
	assert.Len(t, story.Blocks, 4)
}

func TestBuildRewritePrompt(t *testing.T) {
	p := BuildRewritePrompt(Request{Location: "Accra", Topics: []string{"coffee"}})
	assert.Contains(t, p.System, "Coffee Production")
	assert.Contains(t, p.User, "Location: Accra")
	assert.Contains(t, p.User, "# Your Climate Story: Accra")
}

func TestNewOpenAINarratorFromConfig(t *testing.T) {
	_, err := NewOpenAINarratorFromConfig(nil)
	assert.Error(t, err)
	_, err = NewOpenAINarratorFromConfig(&LLMSettings{Model: "gpt-4o-mini"})
	assert.Error(t, err)
	n, err := NewOpenAINarratorFromConfig(&LLMSettings{APIKey: "k", Model: "gpt-4o-mini", BaseURL: "http://localhost:1"})
	require.NoError(t, err)
	assert.Equal(t, "openai:gpt-4o-mini", n.Name())
}
