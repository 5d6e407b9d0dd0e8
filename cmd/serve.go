package cmd

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ledgerworks/ms-go-pipelines/app/controller"
	"github.com/ledgerworks/ms-go-pipelines/app/ledger"
	"github.com/ledgerworks/ms-go-pipelines/app/record"
	"github.com/ledgerworks/ms-go-pipelines/app/repository"
	"github.com/ledgerworks/ms-go-pipelines/app/service"
	"github.com/ledgerworks/ms-go-pipelines/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the HTTP (Echo) server for the pipelines service.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	store := record.NewAirtableStore(cfg.Airtable.APIKey, cfg.Airtable.BaseID, cfg.Airtable.Timeout)

	subscriptionRepo := repository.NewSubscriptionRepository(store, cfg.Airtable.Tables)
	catalogRepo := repository.NewCatalogRepository(store, cfg.Airtable.Tables)
	teamRepo := repository.NewTeamRepository(store, cfg.Airtable.Tables)
	ledgerSink := ledger.NewAirtableSink(store, cfg.Airtable.Tables.ServicesRendered)

	pipelineService := service.NewPipelineService(
		subscriptionRepo,
		catalogRepo,
		teamRepo,
		ledgerSink,
		cfg.Pipeline,
		logrus.WithField("module", "pipeline-service"),
	)
	pipelineController := controller.NewPipelineController(pipelineService, cfg.Pipeline)

	e := setupHTTPServer(pipelineController, cfg)

	go func() {
		httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
		logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown error")
	}

	logrus.Info("Server stopped")
}

func setupHTTPServer(pipelineController *controller.PipelineController, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string {
			return fmt.Sprintf("rest-%s", uuid.New().String())
		},
	}))
	if cfg.App.APIKey != "" {
		e.Use(echomiddleware.KeyAuthWithConfig(echomiddleware.KeyAuthConfig{
			KeyLookup: "header:X-API-Key",
			Skipper: func(ctx echo.Context) bool {
				return ctx.Path() == "/health"
			},
			Validator: func(key string, _ echo.Context) (bool, error) {
				return key == cfg.App.APIKey, nil
			},
		}))
	}

	e.GET("/health", pipelineController.Health)
	e.GET("/processors", pipelineController.ListProcessors)

	pipeline := e.Group("/pipeline")
	pipeline.GET("", pipelineController.ListPipeline)
	pipeline.PATCH("/:id/status", pipelineController.SetStatus)
	pipeline.PATCH("/:id/processor", pipelineController.AssignProcessor)
	pipeline.PATCH("/:id/notes", pipelineController.SetNotes)
	pipeline.POST("/:id/complete", pipelineController.CompleteService)

	return e
}
