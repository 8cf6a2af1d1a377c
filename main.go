package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"empathybridge/config"
	"empathybridge/generator"
	"empathybridge/publisher"
	"empathybridge/render"
	"empathybridge/server"
)

var (
	verbose    bool
	configPath string
	logger     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "empathybridge",
	Short:         "Personal climate stories from a location and a few topics",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := zc.Build()
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logs")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.json", "path to config.json")
	rootCmd.AddCommand(newServeCmd(), newComposeCmd(), newTopicsCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ServerAddr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config server_addr)")
	return cmd
}

func serve(parent context.Context, cfg config.Config) error {
	delay := time.Duration(cfg.GenerationDelay)
	agent, err := buildAgent(cfg, delay)
	if err != nil {
		return err
	}
	pub, err := publisher.New(cfg.ShareDir, server.SharePrefix, logger)
	if err != nil {
		return err
	}
	srv, err := server.New(agent, pub, server.Options{
		StoreSize: cfg.StoreSize,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
		Delay:     delay,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting web server",
			zap.String("addr", cfg.ServerAddr),
			zap.String("narrator", agent.Narrator().Name()),
			zap.Duration("generation_delay", delay),
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down web server")
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newComposeCmd() *cobra.Command {
	var (
		location string
		topics   []string
		markdown bool
		delay    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Generate one story and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			agent, err := buildAgent(cfg, delay)
			if err != nil {
				return err
			}
			story, err := agent.Generate(cmd.Context(), generator.Request{Location: location, Topics: topics})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if markdown {
				fmt.Fprintln(out, story.Markdown)
				return nil
			}
			fmt.Fprint(out, render.Terminal(story.Blocks))
			return nil
		},
	}
	cmd.Flags().StringVarP(&location, "location", "l", "", "city, town or region")
	cmd.Flags().StringSliceVarP(&topics, "topic", "t", nil, "topic id, repeatable (run the topics command for the list)")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "print raw Markdown instead of styled blocks")
	cmd.Flags().DurationVar(&delay, "delay", 0, "artificial generation delay")
	_ = cmd.MarkFlagRequired("location")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List the topic catalog",
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range generator.Topics() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", t.ID, t.Label)
			}
		},
	}
}

func buildAgent(cfg config.Config, delay time.Duration) (*generator.Agent, error) {
	narrator, err := buildNarrator(cfg)
	if err != nil {
		return nil, err
	}
	return generator.NewAgent(narrator, generator.WithDelay(delay), generator.WithLogger(logger))
}

func buildNarrator(cfg config.Config) (generator.Narrator, error) {
	if cfg.LLM == nil {
		return generator.TemplateNarrator{}, nil
	}
	switch cfg.LLM.Provider {
	case "", "template":
		return generator.TemplateNarrator{}, nil
	case "openai":
		return generator.NewOpenAINarratorFromConfig(&generator.LLMSettings{
			Provider: cfg.LLM.Provider,
			Model:    cfg.LLM.Model,
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
		})
	case "deepseek":
		// OpenAI-compatible endpoint; base_url is mandatory.
		if cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return generator.NewOpenAINarratorFromConfig(&generator.LLMSettings{
			Provider: cfg.LLM.Provider,
			Model:    cfg.LLM.Model,
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
		})
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}
