package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"empathybridge/climate"
	"empathybridge/generator"
)

type storyCreateReq struct {
	Location string   `json:"location"`
	Topics   []string `json:"topics"`
}

type testimonialResp struct {
	Index int           `json:"index"`
	Prev  int           `json:"prev"`
	Next  int           `json:"next"`
	Total int           `json:"total"`
	Quote climate.Quote `json:"quote"`
}

func (s *Server) handleTopics(c *gin.Context) {
	respond(c, http.StatusOK, generator.Topics())
}

func (s *Server) handleStoryCreate(c *gin.Context) {
	var req storyCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrorInvalidRequest, err.Error())
		return
	}

	narrator := s.genAgent.Narrator().Name()
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
	defer cancel()

	start := time.Now()
	story, err := s.genAgent.Generate(ctx, generator.Request{Location: req.Location, Topics: req.Topics})
	generationDuration.WithLabelValues(narrator).Observe(time.Since(start).Seconds())
	if err != nil {
		storiesGenerated.WithLabelValues(narrator, "error").Inc()
		switch {
		case errors.Is(err, generator.ErrEmptyLocation), errors.Is(err, generator.ErrNoTopics):
			fail(c, http.StatusBadRequest, ErrorInvalidRequest, err.Error())
		case errors.Is(err, context.DeadlineExceeded):
			fail(c, http.StatusGatewayTimeout, ErrorGenerationTimeout, "story generation timed out")
		default:
			s.logger.Error("story generation failed", zap.Error(err))
			fail(c, http.StatusBadGateway, ErrorGenerationFailed, "story generation failed")
		}
		return
	}

	storiesGenerated.WithLabelValues(narrator, "ok").Inc()
	for _, t := range story.Request.Topics {
		topicSelections.WithLabelValues(t).Inc()
	}
	s.store.set(story)
	storiesInMemory.Set(float64(s.store.len()))
	respond(c, http.StatusCreated, story)
}

func (s *Server) handleStoryGet(c *gin.Context) {
	story, ok := s.store.get(c.Param("id"))
	if !ok {
		notFound(c)
		return
	}
	respond(c, http.StatusOK, story)
}

// handleStoryDelete discards a story, the "generate new story" action.
func (s *Server) handleStoryDelete(c *gin.Context) {
	if !s.store.remove(c.Param("id")) {
		notFound(c)
		return
	}
	storiesInMemory.Set(float64(s.store.len()))
	c.Status(http.StatusNoContent)
}

func (s *Server) handleStoryHTML(c *gin.Context) {
	story, ok := s.store.get(c.Param("id"))
	if !ok {
		notFound(c)
		return
	}
	body, err := s.publisher.HTML(story.Markdown)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrorPublishFailed, "could not render story")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
}

func (s *Server) handleStoryShare(c *gin.Context) {
	story, ok := s.store.get(c.Param("id"))
	if !ok {
		notFound(c)
		return
	}
	page, err := s.publisher.Publish(c.Request.Context(), story)
	if err != nil {
		s.logger.Error("publish failed", zap.String("story_id", story.ID), zap.Error(err))
		fail(c, http.StatusInternalServerError, ErrorPublishFailed, "could not publish story")
		return
	}
	storiesShared.Inc()
	respond(c, http.StatusOK, page)
}

func (s *Server) handleDatasets(c *gin.Context) {
	names := climate.SeriesNames()
	out := make([]climate.Series, 0, len(names))
	for _, n := range names {
		ser, _ := climate.Lookup(n)
		out = append(out, ser)
	}
	respond(c, http.StatusOK, out)
}

func (s *Server) handleDataset(c *gin.Context) {
	ser, ok := climate.Lookup(c.Param("name"))
	if !ok {
		fail(c, http.StatusNotFound, ErrorDatasetNotFound, "dataset not found")
		return
	}
	respond(c, http.StatusOK, ser)
}

func (s *Server) handleHeadline(c *gin.Context) {
	respond(c, http.StatusOK, climate.Headline())
}

func (s *Server) handleImpact(c *gin.Context) {
	respond(c, http.StatusOK, climate.ImpactPoints())
}

func (s *Server) handleTestimonial(c *gin.Context) {
	idx := 0
	if v := c.Query("index"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fail(c, http.StatusBadRequest, ErrorInvalidRequest, "index must be an integer")
			return
		}
		idx = n
	}
	i := climate.Wrap(idx)
	respond(c, http.StatusOK, testimonialResp{
		Index: i,
		Prev:  climate.Prev(i),
		Next:  climate.Next(i),
		Total: climate.TestimonialCount(),
		Quote: climate.Testimonial(i),
	})
}
