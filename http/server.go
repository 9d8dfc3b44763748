package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/faleproxy"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ShutdownTimeout is the time given for outstanding requests to finish before shutdown.
const ShutdownTimeout = 5 * time.Second

// DefaultMaxRequestBytes caps the size of a /fetch request body.
const DefaultMaxRequestBytes = 1 << 20

//go:embed assets/index.html
var indexHTML []byte

// Server exposes a faleproxy.ProxyService over HTTP.
//
//	POST /fetch   {"url": "..."} or url=... form data
//	GET  /        minimal browser front end
//	GET  /healthz liveness probe
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Bind address for the server's listener.
	Addr string

	// Maximum accepted request body size.
	MaxRequestBytes int64

	// Services used by the HTTP handlers.
	ProxyService faleproxy.ProxyService

	Logger *slog.Logger
}

// NewServer returns a new instance of Server.
func NewServer() *Server {
	s := &Server{
		server:          &http.Server{ReadHeaderTimeout: 10 * time.Second},
		router:          chi.NewRouter(),
		MaxRequestBytes: DefaultMaxRequestBytes,
		Logger:          slog.Default(),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/fetch", s.handleFetch)

	s.server.Handler = s.router
	return s
}

// Open begins listening on the bind address.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}

	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("http server", "err", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// fetchRequest is the body accepted by POST /fetch.
type fetchRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxRequestBytes)

	req, err := decodeFetchRequest(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	result, err := s.ProxyService.Fetch(r.Context(), req.URL)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	if result.Hash != "" {
		w.Header().Set("ETag", `"`+result.Hash+`"`)
	}
	writeJSON(w, http.StatusOK, result)
}

// decodeFetchRequest reads the URL from a JSON or form-encoded body.
func decodeFetchRequest(r *http.Request) (*fetchRequest, error) {
	var req fetchRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, bodyError(err, "invalid JSON body")
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, bodyError(err, "invalid form body")
		}
		req.URL = r.PostForm.Get("url")
	}

	req.URL = strings.TrimSpace(req.URL)
	return &req, nil
}

// bodyError reports an oversized body as ETOOLARGE and any other read or
// decode failure as EINVALID with the given message.
func bodyError(err error, message string) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return faleproxy.Errorf(faleproxy.ETOOLARGE, "request body exceeds %d bytes", tooLarge.Limit)
	}
	return faleproxy.Errorf(faleproxy.EINVALID, "%s", message)
}

// errorResponse is the JSON body returned for failed requests.
type errorResponse struct {
	Error string `json:"error"`
}

// Error writes an error response, mapping application error codes to HTTP
// status codes. Validation failures are 400, oversized requests are 413 and
// everything else is 500.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := faleproxy.ErrorCode(err), faleproxy.ErrorMessage(err)

	switch code {
	case faleproxy.EINVALID:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
	case faleproxy.ETOOLARGE:
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: message})
	case faleproxy.EFETCH:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch content: " + message})
	default:
		s.Logger.Error("http error",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: message})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// logRequests logs one line per request with its status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		begin := time.Now()
		defer func() {
			s.Logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(begin),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
