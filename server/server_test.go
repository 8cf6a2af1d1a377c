package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"empathybridge/generator"
	"empathybridge/publisher"
	"empathybridge/render"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
}

func newTestServer(t *testing.T, opts Options) http.Handler {
	t.Helper()
	agent, err := generator.NewAgent(generator.TemplateNarrator{}, generator.WithDelay(0))
	require.NoError(t, err)
	pub, err := publisher.New(t.TempDir(), SharePrefix, nil)
	require.NoError(t, err)
	srv, err := New(agent, pub, opts)
	require.NoError(t, err)
	return srv.Routes()
}

func do(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func createStory(t *testing.T, h http.Handler, topics ...string) generator.Story {
	t.Helper()
	rec, env := do(t, h, http.MethodPost, "/api/stories", storyCreateReq{Location: "Lisbon", Topics: topics})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var story generator.Story
	require.NoError(t, json.Unmarshal(env.Data, &story))
	return story
}

func TestTopics(t *testing.T) {
	h := newTestServer(t, Options{})
	rec, env := do(t, h, http.MethodGet, "/api/topics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var topics []generator.Topic
	require.NoError(t, json.Unmarshal(env.Data, &topics))
	assert.Len(t, topics, 7)
}

func TestStoryLifecycle(t *testing.T) {
	h := newTestServer(t, Options{})
	story := createStory(t, h, "wildlife")

	assert.Equal(t, "Your Climate Story: Lisbon", story.Title)
	assert.Contains(t, story.Markdown, "Many bird species")
	require.NotEmpty(t, story.Blocks)
	assert.Equal(t, render.Heading1, story.Blocks[0].Kind)

	rec, env := do(t, h, http.MethodGet, "/api/stories/"+story.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got generator.Story
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, story.Markdown, got.Markdown)

	rec, _ = do(t, h, http.MethodGet, "/api/stories/"+story.ID+"/html", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Your Climate Story: Lisbon</h1>")

	rec, env = do(t, h, http.MethodPost, "/api/stories/"+story.ID+"/share", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page publisher.Page
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, SharePrefix+"/"+story.ID+".html", page.URL)
	_, err := os.Stat(page.Path)
	require.NoError(t, err)

	rec, _ = do(t, h, http.MethodGet, page.URL, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, h, http.MethodDelete, "/api/stories/"+story.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = do(t, h, http.MethodGet, "/api/stories/"+story.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrorStoryNotFound, env.Error.Code)
}

func TestStoryCreateValidation(t *testing.T) {
	h := newTestServer(t, Options{})

	rec, env := do(t, h, http.MethodPost, "/api/stories", storyCreateReq{Location: "", Topics: []string{"water"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrorInvalidRequest, env.Error.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/stories", storyCreateReq{Location: "Porto"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/stories", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStoryCreateRateLimited(t *testing.T) {
	h := newTestServer(t, Options{RateLimit: 0.001, RateBurst: 1})
	createStory(t, h, "water")

	rec, env := do(t, h, http.MethodPost, "/api/stories", storyCreateReq{Location: "Lisbon", Topics: []string{"water"}})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, ErrorRateLimited, env.Error.Code)
}

func TestStoreEvictsOldest(t *testing.T) {
	h := newTestServer(t, Options{StoreSize: 1})
	first := createStory(t, h, "water")
	createStory(t, h, "coffee")

	rec, _ := do(t, h, http.MethodGet, "/api/stories/"+first.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDatasets(t *testing.T) {
	h := newTestServer(t, Options{})

	rec, _ := do(t, h, http.MethodGet, "/api/datasets", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := do(t, h, http.MethodGet, "/api/datasets/co2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"unit":"ppm"`)

	rec, env = do(t, h, http.MethodGet, "/api/datasets/ozone", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrorDatasetNotFound, env.Error.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/metrics/headline", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, h, http.MethodGet, "/api/impact", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTestimonialCarousel(t *testing.T) {
	h := newTestServer(t, Options{})

	rec, env := do(t, h, http.MethodGet, "/api/testimonials?index=-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got testimonialResp
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 2, got.Index)
	assert.Equal(t, 1, got.Prev)
	assert.Equal(t, 0, got.Next)
	assert.Equal(t, "Sarah Johnson", got.Quote.Author)

	rec, _ = do(t, h, http.MethodGet, "/api/testimonials?index=x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(t, Options{})
	createStory(t, h, "forests")

	rec, _ := do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "empathybridge_stories_generated_total")
}

func TestNewRequiresDeps(t *testing.T) {
	_, err := New(nil, nil, Options{})
	assert.Error(t, err)
}
