// Package kyctest provides an in-process fake of the remote KYC service for
// tests: admin login, the pending queue, approve and reject.
package kyctest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/kycreview/internal/client/models"
	"github.com/go-chi/chi/v5"
)

// Route names an endpoint whose status can be forced.
type Route string

const (
	RouteLogin   Route = "login"
	RoutePending Route = "pending"
	RouteApprove Route = "approve"
	RouteReject  Route = "reject"
)

// Call is one request observed by the fake.
type Call struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	ContentType   string
	Body          string
	Form          url.Values
}

// Server is a fake KYC service. The zero configuration accepts admin/secret
// and issues Token on login.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	username  string
	password  string
	token     string
	omitToken bool
	message   string
	records   []models.Record
	forced    map[Route]int
	gate      chan struct{}
	calls     []Call
}

const (
	DefaultUsername = "admin"
	DefaultPassword = "secret"
	DefaultToken    = "token-123"
)

// NewServer starts a fake service seeded with records. Call Close when done.
func NewServer(records ...models.Record) *Server {
	s := &Server{
		username: DefaultUsername,
		password: DefaultPassword,
		token:    DefaultToken,
		forced:   make(map[Route]int),
	}
	for _, r := range records {
		s.records = append(s.records, r.Clone())
	}

	r := chi.NewRouter()
	r.Use(s.capture)
	r.Post("/admin/login", s.login)
	r.Route("/admin/kyc", func(r chi.Router) {
		r.Use(s.basicAuth)
		r.Get("/pending", s.pending)
		r.Post("/{id}/approve", s.resolve(RouteApprove, models.StatusApproved))
		r.Post("/{id}/reject", s.resolve(RouteReject, models.StatusRejected))
	})

	s.Server = httptest.NewServer(r)
	return s
}

// SetToken changes the token issued by login.
func (s *Server) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// OmitToken makes a successful login answer without access_token.
func (s *Server) OmitToken(omit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.omitToken = omit
}

// SetApproveMessage sets the message returned by a successful approval; an
// empty message omits the field.
func (s *Server) SetApproveMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
}

// Force makes every call to route answer with code. Zero clears it.
func (s *Server) Force(route Route, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code == 0 {
		delete(s.forced, route)
		return
	}
	s.forced[route] = code
}

// Hold makes approve and reject block until Release is called.
func (s *Server) Hold() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate = make(chan struct{})
}

// Release unblocks held approve and reject calls.
func (s *Server) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gate != nil {
		close(s.gate)
		s.gate = nil
	}
}

// Resolve changes a record's status as if another reviewer acted on it.
func (s *Server) Resolve(id int64, status models.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Status = status
		}
	}
}

// Add appends a new record to the service.
func (s *Server) Add(r models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r.Clone())
}

// Status returns the current status of a record on the service side.
func (s *Server) Status(id int64) (models.Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return r.Status, true
		}
	}
	return "", false
}

// Calls returns the requests observed so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallsTo returns the observed requests whose path equals path.
func (s *Server) CallsTo(path string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) capture(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()

		c := Call{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          string(body),
		}
		if c.ContentType == "application/x-www-form-urlencoded" {
			c.Form, _ = url.ParseQuery(c.Body)
		}

		s.mu.Lock()
		s.calls = append(s.calls, c)
		s.mu.Unlock()

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()

		s.mu.Lock()
		valid := ok && u == s.username && p == s.password
		s.mu.Unlock()

		if !valid {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) forcedStatus(route Route) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.forced[route]
	return code, ok
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if code, ok := s.forcedStatus(RouteLogin); ok {
		writeJSON(w, code, map[string]string{"detail": http.StatusText(code)})
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "malformed body"})
		return
	}

	s.mu.Lock()
	valid := req.Username == s.username && req.Password == s.password
	resp := map[string]string{"token_type": "bearer", "username": s.username, "role": "admin"}
	if !s.omitToken {
		resp["access_token"] = s.token
	}
	s.mu.Unlock()

	if !valid {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid admin credentials"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) pending(w http.ResponseWriter, r *http.Request) {
	if code, ok := s.forcedStatus(RoutePending); ok {
		writeJSON(w, code, map[string]string{"detail": http.StatusText(code)})
		return
	}

	s.mu.Lock()
	out := make([]models.Record, 0, len(s.records))
	for _, rec := range s.records {
		if rec.Status == models.StatusPending {
			out = append(out, rec.Clone())
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) resolve(route Route, status models.Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		gate := s.gate
		s.mu.Unlock()
		if gate != nil {
			<-gate
		}

		if code, ok := s.forcedStatus(route); ok {
			writeJSON(w, code, map[string]string{"detail": http.StatusText(code)})
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "KYC not found"})
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		for i := range s.records {
			if s.records[i].ID != id {
				continue
			}
			if s.records[i].Status != models.StatusPending {
				writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "KYC already processed"})
				return
			}
			s.records[i].Status = status
			if route == RouteApprove && s.message != "" {
				writeJSON(w, http.StatusOK, map[string]string{"message": s.message})
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{})
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "KYC not found"})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
