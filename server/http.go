package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"autopublish-worker/config"
	"autopublish-worker/constant"
	jobHandler "autopublish-worker/handler"
	"autopublish-worker/pkg/provider"
	"autopublish-worker/repository"
	"autopublish-worker/service"
)

func RunHttp(cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(setupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Bool("isProduction", cfg.App.Environment == constant.EnvironmentProduction.String()).Send()
	if cfg.App.Environment == constant.EnvironmentProduction.String() {
		gin.SetMode(gin.ReleaseMode)
	}

	repo := repository.NewRepo(ctx, cfg.Store.Path)
	deps := service.Dependencies{
		Trends:    provider.NewHTTPTrendSource(cfg.Trends),
		Scripts:   provider.NewScriptBuilder(),
		Videos:    provider.NewVideoRegistry(cfg.Video),
		Narration: provider.NewNarrationGenerator(cfg.Narrator),
		Publisher: provider.NewTikTokPublisher(cfg.TikTok),
	}
	jobService := service.NewService(repo, deps, cfg.Pipeline.StageTimeout)

	r := gin.Default()
	r.Use(contextLogger(ctx))
	addHealth(r, cfg)
	jobHandler.NewJobHandler(jobService).Register(r.Group("/api"))

	handler := http.Server{
		Handler:           r,
		Addr:              fmt.Sprintf(":%s", cfg.Server.HttpPort),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("start http server")
		if err := handler.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
		}
	}()

	<-ctx.Done()
	zerolog.Ctx(ctx).Info().Msg("shutting down server")
	if err := handler.Shutdown(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
	}

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("server shutdown")
}

// contextLogger carries the root logger into each request context so
// handlers and services can use zerolog.Ctx.
func contextLogger(root context.Context) gin.HandlerFunc {
	logger := zerolog.Ctx(root)
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
		c.Next()
	}
}

func addHealth(r *gin.Engine, cfg *config.Config) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.App.Environment,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
}

func setupLogger(cfg *config.Config) context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.App.Environment == constant.EnvironmentDevelop.String() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Log to standard output
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	return ctx
}
