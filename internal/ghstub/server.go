// Package ghstub serves canned GitHub REST API responses for the four endpoints gh-explorer
// uses. It answers like the real API: JSON bodies, 404 for unknown resources, 401 for a
// wrong token and 422 for a search without a query.
package ghstub

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"

	"github.com/KOFI-GYIMAH/gh-explorer/pkg/logger"
	"github.com/gorilla/mux"
)

// Request is what the stub recorded about one incoming call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	fixtures Fixtures
	requests []Request
}

func NewServer(fixtures Fixtures) *Server {
	s := &Server{fixtures: fixtures}

	router := mux.NewRouter()
	router.Use(s.recordingMiddleware)
	NewHandler(s).RegisterRoutes(router)
	router.NotFoundHandler = s.recordingMiddleware(http.HandlerFunc(notFound))

	s.Server = httptest.NewServer(router)
	return s
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) snapshot() Fixtures {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fixtures
}

// Update mutates the fixtures under lock.
func (s *Server) Update(fn func(f *Fixtures)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.fixtures)
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.statusCode = code
	rr.ResponseWriter.WriteHeader(code)
}

func (s *Server) recordingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
		})
		s.mu.Unlock()

		rr := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rr, r)

		logger.Debug("[ghstub] %s %s %d %s", r.Method, r.RequestURI, rr.statusCode, time.Since(start))
	})
}
