// Package server exposes the record service over HTTP. The routes mirror the
// service operations one to one; all caching behavior lives behind the
// service boundary.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/goliatone/go-todo-service/todo"
	"github.com/goliatone/go-todo-service/todoservice"
)

// Pinger checks store connectivity for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server wraps an echo instance serving the todo routes.
type Server struct {
	echo   *echo.Echo
	svc    *todoservice.Service
	db     Pinger
	logger *slog.Logger
}

// New builds the HTTP server around the record service.
func New(svc *todoservice.Service, db Pinger, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	s := &Server{
		echo:   e,
		svc:    svc,
		db:     db,
		logger: logger,
	}

	e.POST("/todos", s.createTodo)
	e.GET("/todos", s.listTodos)
	e.GET("/todos/:id", s.getTodo)
	e.PUT("/todos/:id", s.updateTodo)
	e.DELETE("/todos/:id", s.deleteTodo)
	e.GET("/healthz", s.health)
	e.GET("/stats", s.stats)

	return s
}

// Start begins serving on addr and blocks until shutdown.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// ServeHTTP lets tests drive the router without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) createTodo(c echo.Context) error {
	var in todo.CreateTodo
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed request body"})
	}
	record, err := s.svc.Create(c.Request().Context(), in)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, record)
}

func (s *Server) listTodos(c echo.Context) error {
	records, err := s.svc.List(c.Request().Context())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, records)
}

func (s *Server) getTodo(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	record, err := s.svc.Get(c.Request().Context(), id)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

func (s *Server) updateTodo(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var in todo.UpdateTodo
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed request body"})
	}
	record, err := s.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

func (s *Server) deleteTodo(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := s.svc.Delete(c.Request().Context(), id); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

func (s *Server) health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "store unreachable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (s *Server) stats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.svc.Stats())
}

// writeError maps service failures onto HTTP statuses. Anything that is
// neither a client error nor a missing record is a store-side failure.
func (s *Server) writeError(c echo.Context, err error) error {
	switch {
	case todo.IsValidation(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case todo.IsNotFound(err):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "todo not found"})
	default:
		s.logger.Error("request failed", "path", c.Path(), "error", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store unavailable"})
	}
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			logger.Info("http request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration", time.Since(start),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
			return nil
		}
	}
}
