package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"helpdesk_assistant/src/logger"
	"helpdesk_assistant/src/model"

	"github.com/gin-gonic/gin"
)

const (
	headerUserRole = "X-User-Role"
	headerUserID   = "X-User-Id"
	anonymousUser  = "anonymous"
)

// Chat is the part of the assistant the HTTP layer consumes
type Chat interface {
	SendMessage(ctx context.Context, turn model.ChatTurn) model.ChatReply
	History(ctx context.Context, userID string) ([]model.Exchange, error)
}

// Server exposes the chat API over HTTP
type Server struct {
	engine *gin.Engine
	http   *http.Server
	chat   Chat
	now    func() time.Time
}

func New(addr string, chat Chat) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	s := &Server{
		engine: engine,
		chat:   chat,
		now:    time.Now,
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.routes(engine.Group("/api/chat"))
	return s
}

func (s *Server) routes(r *gin.RouterGroup) {
	r.POST("/send", s.handleSend)
	r.GET("/status", s.handleStatus)
	r.GET("/history", s.handleHistory)
}

// Handler returns the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("HTTP request")
	}
}
