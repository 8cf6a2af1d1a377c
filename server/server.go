package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"empathybridge/generator"
	"empathybridge/publisher"
)

// SharePrefix is the URL path published pages are served under.
const SharePrefix = "/shared"

// generationBudget bounds narrator work after the artificial delay.
const generationBudget = 60 * time.Second

// Options tunes a Server. Zero values pick defaults.
type Options struct {
	StoreSize int
	RateLimit float64
	RateBurst int
	Delay     time.Duration
	Logger    *zap.Logger
}

type Server struct {
	genAgent  *generator.Agent
	publisher *publisher.Publisher
	store     *storyStore
	limiter   *limiters
	timeout   time.Duration
	logger    *zap.Logger
}

func New(genAgent *generator.Agent, pub *publisher.Publisher, opts Options) (*Server, error) {
	if genAgent == nil {
		return nil, errors.New("generator agent required")
	}
	if pub == nil {
		return nil, errors.New("publisher required")
	}
	if opts.StoreSize <= 0 {
		opts.StoreSize = 256
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	store, err := newStore(opts.StoreSize)
	if err != nil {
		return nil, err
	}
	lim, err := newLimiters(opts.RateLimit, opts.RateBurst)
	if err != nil {
		return nil, err
	}

	return &Server{
		genAgent:  genAgent,
		publisher: pub,
		store:     store,
		limiter:   lim,
		timeout:   opts.Delay + generationBudget,
		logger:    opts.Logger,
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), logMiddleware(s.logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static(SharePrefix, s.publisher.Dir())

	api := r.Group("/api")
	{
		api.GET("/topics", s.handleTopics)

		stories := api.Group("/stories")
		{
			stories.POST("", s.limiter.middleware(), s.handleStoryCreate)
			stories.GET("/:id", s.handleStoryGet)
			stories.DELETE("/:id", s.handleStoryDelete)
			stories.GET("/:id/html", s.handleStoryHTML)
			stories.POST("/:id/share", s.handleStoryShare)
		}

		api.GET("/datasets", s.handleDatasets)
		api.GET("/datasets/:name", s.handleDataset)
		api.GET("/metrics/headline", s.handleHeadline)
		api.GET("/impact", s.handleImpact)
		api.GET("/testimonials", s.handleTestimonial)
	}
	return r
}
