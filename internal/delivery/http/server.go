package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/nextbus-service/internal/config"
	"github.com/nextbus-service/internal/delivery/http/handler"
	"github.com/nextbus-service/internal/delivery/http/middleware"
	"github.com/nextbus-service/internal/pkg/errors"
	"github.com/nextbus-service/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	scheduleHandler *handler.ScheduleHandler
	composerHandler *handler.ComposerHandler
	locationHandler *handler.LocationHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	scheduleHandler *handler.ScheduleHandler,
	composerHandler *handler.ComposerHandler,
	locationHandler *handler.LocationHandler,
) *Server {
	// WriteTimeout покрывает ожидание координаты в /location/address/refresh
	writeTimeout := cfg.Location.WaitTimeout + 10*time.Second

	app := fiber.New(fiber.Config{
		AppName:      "NextBus",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		scheduleHandler: scheduleHandler,
		composerHandler: composerHandler,
		locationHandler: locationHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"store":  s.config.Store.Driver,
			"time":   time.Now(),
		})
	})

	// Schedules
	api.Get("/schedules", s.scheduleHandler.List)
	api.Post("/schedules", s.scheduleHandler.Create)
	api.Get("/schedules/:id", s.scheduleHandler.Get)
	api.Delete("/schedules/:id", s.scheduleHandler.Delete)

	// Composer drafts
	drafts := api.Group("/composer/drafts")
	drafts.Post("", s.composerHandler.Open)
	drafts.Get("/:id", s.composerHandler.Get)
	drafts.Patch("/:id", s.composerHandler.Update)
	drafts.Delete("/:id", s.composerHandler.Cancel)
	drafts.Post("/:id/confirm", s.composerHandler.Confirm)

	// Location provider
	location := api.Group("/location")
	location.Get("", s.locationHandler.Get)
	location.Post("/fixes", s.locationHandler.ReportFix)
	location.Post("/authorization/request", s.locationHandler.RequestAuthorization)
	location.Put("/authorization", s.locationHandler.SetAuthorization)
	location.Post("/updating/start", s.locationHandler.StartUpdating)
	location.Post("/updating/stop", s.locationHandler.StopUpdating)
	location.Post("/address", s.locationHandler.FetchAddress)
	location.Post("/address/refresh", s.locationHandler.RefreshAddress)
}

// App - для app.Test в тестах
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки роутинга Fiber (404, 405) в общем формате ответа
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		appCode := errors.ErrInternalServer.Code

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			if code < fiber.StatusInternalServerError {
				appCode = strings.ToUpper(strings.ReplaceAll(fiberutils.StatusMessage(code), " ", "_"))
			}
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(utils.ErrorResponse{
			Error: errors.New(appCode, err.Error(), code),
		})
	}
}
