// Package server is the HTTP boundary in front of the leadbot façade. It
// validates requests, routes them to the bot and exposes the admin read
// models. All dialogue behavior lives below it; handlers here only translate
// between JSON and the façade.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/agencyos/leadbot"
	"github.com/agencyos/leadbot/leads"
	"github.com/agencyos/leadbot/logging"
)

// AdminKeyHeader carries the shared secret for the admin subtree.
const AdminKeyHeader = "x-admin-key"

// Options configure the Server.
type Options struct {
	// Leads backs GET /admin/leads. Nil disables the endpoint.
	Leads *leads.Store
	// AdminKey guards /admin/*. An empty key keeps the subtree locked.
	AdminKey string
	// ReportsDir, when non-empty, is served read-only under /reports/.
	ReportsDir string
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Server routes HTTP traffic to a Bot.
type Server struct {
	bot    *leadbot.Bot
	leads  *leads.Store
	key    string
	dir    string
	logger logging.Logger
}

// New creates a Server around bot with optional overrides.
func New(bot *leadbot.Bot, optFns ...func(o *Options)) *Server {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Server{
		bot:    bot,
		leads:  opts.Leads,
		key:    opts.AdminKey,
		dir:    opts.ReportsDir,
		logger: opts.Logger,
	}
}

// Handler builds the full route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /admin/metrics", s.requireAdmin(s.handleMetrics))
	mux.Handle("GET /admin/leads", s.requireAdmin(s.handleLeads))
	if s.dir != "" {
		mux.Handle("GET /reports/", http.StripPrefix("/reports/", http.FileServer(http.Dir(s.dir))))
	}
	return s.logRequests(mux)
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// Boundary validation: the engine never sees an empty message.
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message must not be empty")
		return
	}

	turn := s.bot.Chat(r.Context(), req.SessionID, req.Message)
	writeJSON(w, http.StatusOK, chatResponse{SessionID: turn.SessionID, Reply: turn.Reply})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.bot.Metrics().Snapshot())
}

func (s *Server) handleLeads(w http.ResponseWriter, _ *http.Request) {
	if s.leads == nil {
		writeError(w, http.StatusNotFound, "lead storage not configured")
		return
	}
	all, err := s.leads.All()
	if err != nil {
		s.logger.Error("read leads", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "could not read leads")
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// requireAdmin rejects requests whose admin key header does not match the
// configured key. With no key configured the subtree stays closed.
func (s *Server) requireAdmin(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.key == "" || r.Header.Get(AdminKeyHeader) != s.key {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
