package fixture

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/marineaxis/marine-axis-admin/infra/marineaxis"
)

// User is a credential the fixture server accepts.
type User struct {
	ID       string
	Email    string
	Password string
	Name     string
	Role     string
	Provider bool
}

// Server exposes a fixture Transport over HTTP with the same envelope
// contract as the real admin API. Transport integration tests and local
// development run against it.
type Server struct {
	transport *Transport
	secret    []byte
	router    *mux.Router

	mu       sync.Mutex
	users    map[string]User
	refresh  map[string]string // refresh token -> user email
	sessions map[string]string // access token -> user email
}

// NewServer creates a fixture server around the given transport.
func NewServer(transport *Transport, users ...User) *Server {
	s := &Server{
		transport: transport,
		secret:    []byte("fixture-secret"),
		users:     make(map[string]User),
		refresh:   make(map[string]string),
		sessions:  make(map[string]string),
	}
	for _, u := range users {
		if u.ID == "" {
			u.ID = uuid.New().String()
		}
		s.users[u.Email] = u
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/admin/login", s.handleLogin(false)).Methods(http.MethodPost)
	api.HandleFunc("/auth/provider/login", s.handleLogin(true)).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", s.handleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)
	api.HandleFunc("/auth/profile", s.handleProfile).Methods(http.MethodPut)
	api.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)

	// Resource routes need a live session, like the real API.
	api.HandleFunc("/{resource}", s.requireAuth(s.handleList)).Methods(http.MethodGet)
	api.HandleFunc("/{resource}", s.requireAuth(s.handleCreate)).Methods(http.MethodPost)
	api.HandleFunc("/{resource}/{id}", s.requireAuth(s.handleGet)).Methods(http.MethodGet)
	api.HandleFunc("/{resource}/{id}", s.requireAuth(s.handleUpdate)).Methods(http.MethodPut)
	api.HandleFunc("/{resource}/{id}", s.requireAuth(s.handleDelete)).Methods(http.MethodDelete)

	s.router = r
	return s
}

// Handler returns the HTTP handler, ready for httptest.NewServer.
func (s *Server) Handler() http.Handler { return s.router }

// =============================================================================
// Resource handlers
// =============================================================================

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	resource := mux.Vars(r)["resource"]

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	filters := make(map[string]string)
	for key, values := range q {
		if key == "page" || key == "page_size" || len(values) == 0 {
			continue
		}
		filters[key] = values[0]
	}

	result, err := s.transport.List(r.Context(), resource, page, pageSize, filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeEnvelope(w, http.StatusOK, result.Items, &result.Total)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	data, err := s.transport.Get(r.Context(), vars["resource"], vars["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeEnvelope(w, http.StatusOK, data, nil)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	resource := mux.Vars(r)["resource"]

	var payload json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	data, err := s.transport.Create(r.Context(), resource, payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeEnvelope(w, http.StatusCreated, data, nil)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var patch json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	data, err := s.transport.Update(r.Context(), vars["resource"], vars["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeEnvelope(w, http.StatusOK, data, nil)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := s.transport.Delete(r.Context(), vars["resource"], vars["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeEnvelope(w, http.StatusOK, nil, nil)
}

// =============================================================================
// Auth handlers
// =============================================================================

func (s *Server) handleLogin(provider bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		s.mu.Lock()
		user, ok := s.users[req.Email]
		s.mu.Unlock()
		if !ok || user.Password != req.Password || user.Provider != provider {
			writeMessage(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		session, err := s.issueSession(user)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "failed to issue session")
			return
		}
		data, _ := json.Marshal(session)
		writeEnvelope(w, http.StatusOK, data, nil)
	}
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	email, ok := s.refresh[req.RefreshToken]
	user := s.users[email]
	s.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	session, err := s.issueSession(user)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to issue session")
		return
	}
	data, _ := json.Marshal(session)
	writeEnvelope(w, http.StatusOK, data, nil)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := s.authenticate(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}
	data, _ := json.Marshal(apiUser(user))
	writeEnvelope(w, http.StatusOK, data, nil)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := s.authenticate(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	var update marineaxis.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Email != "" && update.Email != user.Email {
		delete(s.users, user.Email)
		user.Email = update.Email
	}
	s.users[user.Email] = user
	s.mu.Unlock()

	data, _ := json.Marshal(apiUser(user))
	writeEnvelope(w, http.StatusOK, data, nil)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
	}
	writeEnvelope(w, http.StatusOK, nil, nil)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) issueSession(user User) (*marineaxis.Session, error) {
	expiresAt := time.Now().Add(time.Hour)
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   jwt.NewNumericDate(expiresAt),
		"iat":   jwt.NewNumericDate(time.Now()),
		"iss":   "marine-axis-fixture",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	refreshToken := uuid.New().String()
	s.mu.Lock()
	s.refresh[refreshToken] = user.Email
	s.sessions[token] = user.Email
	s.mu.Unlock()

	u := apiUser(user)
	return &marineaxis.Session{
		AccessToken:  token,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    3600,
		ExpiresAt:    expiresAt.Unix(),
		User:         &u,
	}, nil
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.authenticate(r); !ok {
			writeMessage(w, http.StatusUnauthorized, "missing or invalid token")
			return
		}
		next(w, r)
	}
}

func (s *Server) authenticate(r *http.Request) (User, bool) {
	token := bearerToken(r)
	if token == "" {
		return User{}, false
	}
	s.mu.Lock()
	email, ok := s.sessions[token]
	user := s.users[email]
	s.mu.Unlock()
	return user, ok
}

func apiUser(u User) marineaxis.User {
	return marineaxis.User{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return header[len("Bearer "):]
	}
	return ""
}

func writeEnvelope(w http.ResponseWriter, status int, data json.RawMessage, total *int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]interface{}{"success": true}
	if data != nil {
		resp["data"] = data
	}
	if total != nil {
		resp["total"] = *total
	}
	json.NewEncoder(w).Encode(resp)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}

func writeError(w http.ResponseWriter, err error) {
	if apiErr, ok := err.(*marineaxis.Error); ok && apiErr.StatusCode > 0 {
		writeMessage(w, apiErr.StatusCode, apiErr.Message)
		return
	}
	writeMessage(w, http.StatusInternalServerError, err.Error())
}
