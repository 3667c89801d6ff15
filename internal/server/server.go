// Package server exposes the timetable queries over HTTP.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/logging"
	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/timetable"
)

// Config holds the HTTP-facing settings.
type Config struct {
	CORSOrigins  string
	RateLimitMax int // requests per IP per minute; 0 disables the limiter
}

// Server wires a timetable.Service to a fiber app.
type Server struct {
	app      *fiber.App
	svc      *timetable.Service
	log      *zap.Logger
	validate *validator.Validate
}

func New(svc *timetable.Service, cfg Config, logger *zap.Logger) *Server {
	logger = logging.OrNop(logger).Named("http")

	s := &Server{
		svc:      svc,
		log:      logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "ultimatett",
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
		ErrorHandler:          s.handleError,
	})

	setupMiddlewares(s.app, cfg, logger)
	s.routes()
	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) routes() {
	s.app.Get("/health", s.health)
	s.app.Get("/api/options", s.options)

	s.app.Get("/get_by_classroom", s.byClassroom)
	s.app.Get("/get_by_day", s.byDay)
	s.app.Get("/get_by_subject", s.bySubject)
	s.app.Get("/get_by_teacher", s.byTeacher)
	s.app.Get("/get_by_labs", s.byLabs)
	s.app.Get("/get_live_schedule", s.liveSchedule)
	s.app.Get("/get_live_now", s.liveNow)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("server stopped")
	return nil
}

// handleError turns any error that escaped a handler into an ErrorResponse.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	if errors.Is(err, timetable.ErrInvalidSelection) {
		return JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JSONError(c, fe.Code, fe.Message)
	}

	s.log.Error("request failed",
		zap.Any("request_id", c.Locals(localsRequestID)),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return JSONError(c, fiber.StatusInternalServerError, "Internal server error")
}
