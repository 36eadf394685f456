// Package httpapi exposes the analyzers and the history over HTTP using gin.
package httpapi

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/core/ports"
	"fraudtect/internal/platform/errors"
	"fraudtect/internal/platform/logx"
)

const (
	// DefaultAddr si la configuración no indica otra.
	DefaultAddr = ":8080"

	// ShutdownTimeout para drenar peticiones en curso.
	ShutdownTimeout = 10 * time.Second

	// MaxBodyBytes limita el cuerpo de cualquier petición.
	MaxBodyBytes = 1 << 20
)

// TextAnalyzer es lo que el servidor necesita del pipeline de texto.
type TextAnalyzer interface {
	Analyze(ctx context.Context, text string) (*domain.TextAnalysis, error)
	ModelAvailable() bool
}

// URLAnalyzer es lo que el servidor necesita del pipeline de URLs.
type URLAnalyzer interface {
	Analyze(ctx context.Context, rawURL string, deepScan bool) *domain.URLAnalysis
	DeepScanServices() []string
}

// Options agrupa las dependencias del servidor. History y Feedback son opcionales.
type Options struct {
	Text     TextAnalyzer
	URL      URLAnalyzer
	History  ports.HistoryReader
	Feedback ports.FeedbackRecorder
	Metrics  http.Handler
	Logger   logx.Logger
}

// Server envuelve el router gin y el http.Server.
type Server struct {
	router *gin.Engine
	addr   string
	logger logx.Logger
}

// New crea el servidor sin empezar a escuchar.
func New(addr string, opts Options) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	if opts.Logger == nil {
		opts.Logger = logx.Nop()
	}
	return &Server{
		router: NewRouter(opts),
		addr:   addr,
		logger: opts.Logger.With("component", "httpapi"),
	}
}

// Handler retorna el router (tests, composición).
func (s *Server) Handler() http.Handler { return s.router }

// Run escucha hasta que ctx se cancela y luego apaga ordenadamente.
// Los contextos de las peticiones derivan de ctx, así que el apagado
// también cancela las esperas en curso.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "http server failed")
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "http server shutdown")
		}
		return nil
	}
}

// NewRouter registra las rutas sobre un gin.Engine nuevo.
func NewRouter(opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = logx.Nop()
	}
	h := &handlers{
		text:     opts.Text,
		url:      opts.URL,
		history:  opts.History,
		feedback: opts.Feedback,
		logger:   opts.Logger.With("component", "httpapi"),
	}

	router := gin.New()
	router.Use(gin.Recovery(), limitBody(MaxBodyBytes), requestLogger(h.logger))

	router.GET("/healthz", h.health)
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	v1 := router.Group("/api/v1")
	{
		v1.POST("/analyze/text", h.analyzeText)
		v1.POST("/analyze/url", h.analyzeURL)
		v1.GET("/history", h.listHistory)
		v1.POST("/history/:id/feedback", h.recordFeedback)
	}

	return router
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

func requestLogger(logger logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request served",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
