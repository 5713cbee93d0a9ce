package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/Francis-Komizu/Tacotron2/internal/config"
	"github.com/Francis-Komizu/Tacotron2/internal/text"
)

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// TextCleaner runs text through named cleaner pipelines.
type TextCleaner interface {
	CleanSequence(text string, names ...string) (string, error)
	Supports(p text.Pipeline) bool
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxTextBytes    int
	defaultCleaners []string
	logger          *slog.Logger
}

func defaultOptions() options {
	return options{
		maxTextBytes:    4096,
		defaultCleaners: []string{text.PipelineEnglish.String()},
		logger:          slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxTextBytes sets the maximum allowed text length in bytes for POST /clean.
func WithMaxTextBytes(n int) Option {
	return func(o *options) { o.maxTextBytes = n }
}

// WithDefaultCleaners sets the pipelines used when a request names none.
func WithDefaultCleaners(names []string) Option {
	return func(o *options) { o.defaultCleaners = append([]string(nil), names...) }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

type handler struct {
	cleaner TextCleaner
	opts    options
	log     *slog.Logger
}

// NewHandler returns an http.Handler that serves /health, /cleaners, and POST /clean.
func NewHandler(cleaner TextCleaner, optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{
		cleaner: cleaner,
		opts:    opts,
		log:     opts.logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/cleaners", h.handleCleaners)
	mux.HandleFunc("/clean", h.handleClean)
	return mux
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildVersion(),
	})
}

// CleanerInfo describes one pipeline in the GET /cleaners response.
type CleanerInfo struct {
	Name      string `json:"name"`
	Alias     string `json:"alias"`
	Available bool   `json:"available"`
}

func (h *handler) handleCleaners(w http.ResponseWriter, _ *http.Request) {
	pipelines := text.Pipelines()
	out := make([]CleanerInfo, 0, len(pipelines))
	for _, p := range pipelines {
		out = append(out, CleanerInfo{
			Name:      p.String(),
			Alias:     p.Alias(),
			Available: h.cleaner.Supports(p),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type cleanRequest struct {
	Text     string   `json:"text"`
	Cleaners []string `json:"cleaners"`
}

type cleanResponse struct {
	Text     string   `json:"text"`
	Cleaners []string `json:"cleaners"`
}

// maxBodyBytes bounds the request body. JSON escaping can expand each text
// byte to six, plus room for the cleaner list.
func (h *handler) maxBodyBytes() int64 {
	return int64(h.opts.maxTextBytes)*6 + 1024
}

func (h *handler) handleClean(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if r.Body == nil {
		writeError(w, http.StatusBadRequest, "request body is required")
		return
	}

	var req cleanRequest
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes())
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text field is required")
		return
	}

	if len(req.Text) > h.opts.maxTextBytes {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("text exceeds maximum size of %d bytes", h.opts.maxTextBytes))
		return
	}

	names := req.Cleaners
	if len(names) == 0 {
		names = h.opts.defaultCleaners
	}

	start := time.Now()
	cleaned, err := h.cleaner.CleanSequence(req.Text, names...)
	durationUS := time.Since(start).Microseconds()

	if err != nil {
		status := statusFor(err)
		level := slog.LevelWarn
		if status == http.StatusInternalServerError {
			level = slog.LevelError
		}
		h.log.Log(r.Context(), level, "clean failed",
			slog.String("cleaners", strings.Join(names, ",")),
			slog.Int("text_len", len(req.Text)),
			slog.Int64("duration_us", durationUS),
			slog.String("error", err.Error()),
		)
		writeError(w, status, err.Error())
		return
	}

	h.log.InfoContext(r.Context(), "clean complete",
		slog.String("cleaners", strings.Join(names, ",")),
		slog.Int("text_len", len(req.Text)),
		slog.Int64("duration_us", durationUS),
	)

	writeJSON(w, http.StatusOK, cleanResponse{Text: cleaned, Cleaners: canonicalNames(names)})
}

// statusFor maps cleaner errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, text.ErrUnknownPipeline),
		errors.Is(err, text.ErrNoCleaners),
		errors.Is(err, text.ErrRomanizerUnavailable):
		return http.StatusBadRequest
	case errors.Is(err, text.ErrLookupFailure):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// canonicalNames rewrites aliases to pipeline names. Callers pass names that
// already resolved.
func canonicalNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if p, err := text.ParsePipeline(n); err == nil {
			n = p.String()
		}
		out = append(out, n)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server
// ---------------------------------------------------------------------------

// Server wires the HTTP handler into a net/http.Server with graceful shutdown.
type Server struct {
	cfg             config.Config
	cleaner         TextCleaner
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

func New(cfg config.Config, cleaner TextCleaner) *Server {
	timeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Server{
		cfg:             cfg,
		cleaner:         cleaner,
		logger:          slog.Default(),
		shutdownTimeout: timeout,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

// WithLogger overrides the request logger.
func (s *Server) WithLogger(l *slog.Logger) *Server {
	s.logger = l
	return s
}

func (s *Server) Start(ctx context.Context) error {
	if s.cleaner == nil {
		return errors.New("server: cleaner is nil")
	}

	defaults, err := config.NormalizeCleaners(s.cfg.Text.Cleaners)
	if err != nil {
		return err
	}

	h := NewHandler(s.cleaner,
		WithMaxTextBytes(s.cfg.Server.MaxTextBytes),
		WithDefaultCleaners(defaults),
		WithLogger(s.logger),
	)

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.logger.InfoContext(ctx, "listening",
		slog.String("addr", s.cfg.Server.ListenAddr),
		slog.String("cleaners", strings.Join(defaults, ",")),
	)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http listen: %w", err)
	}
}

func ProbeHTTP(addr string) error {
	resp, err := http.Get("http://" + addr + "/health") //nolint:noctx
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %s", resp.Status)
	}
	return nil
}
