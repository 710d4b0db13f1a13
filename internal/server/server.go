package server

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/banking-tools/transaction-aggregator/internal/config"
	"github.com/banking-tools/transaction-aggregator/internal/handler"
	"github.com/banking-tools/transaction-aggregator/internal/middleware"
	"github.com/banking-tools/transaction-aggregator/pkg/logger"
)

type Server struct {
	echo               *echo.Echo
	cfg                *config.Config
	logger             *logger.Logger
	transactionHandler *handler.TransactionHandler
	statisticsHandler  *handler.StatisticsHandler
	healthHandler      *handler.HealthHandler
}

func New(
	cfg *config.Config,
	log *logger.Logger,
	transactionHandler *handler.TransactionHandler,
	statisticsHandler *handler.StatisticsHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	return &Server{
		echo:               e,
		cfg:                cfg,
		logger:             log,
		transactionHandler: transactionHandler,
		statisticsHandler:  statisticsHandler,
		healthHandler:      healthHandler,
	}
}

func (s *Server) Start() error {
	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%s", s.cfg.Server.Host, s.cfg.Server.Port)
	s.logger.Info(context.Background(), "Starting HTTP server",
		"address", addr,
	)

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupMiddleware() {
	s.echo.Use(echoMiddleware.Recover())
	s.echo.Use(echoMiddleware.CORS())
	s.echo.Use(middleware.RequestID())
	s.echo.Use(middleware.Logging(s.logger))
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthHandler.Check)

	api := s.echo.Group("/api/v1")

	api.POST("/transactions/import", s.transactionHandler.Import)
	api.GET("/transactions/import/:importId/status", s.transactionHandler.Status)
	api.GET("/transactions", s.transactionHandler.List)

	api.GET("/statistics/by-category", s.statisticsHandler.ByCategory)
	api.GET("/statistics/by-iban", s.statisticsHandler.ByIban)
	api.GET("/statistics/by-month", s.statisticsHandler.ByMonth)
}

func (s *Server) Handler() *echo.Echo {
	s.setupMiddleware()
	s.setupRoutes()
	return s.echo
}
