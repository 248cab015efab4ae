package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// campusServer is an in-memory stand-in for the campus borrowing backend.
// It issues bearer tokens, keeps request collections unfiltered (clients
// must reconcile), and answers the same endpoints the real API exposes.
type campusServer struct {
	mux *http.ServeMux

	mu           sync.Mutex
	nextID       int64
	tokens       map[string]bool
	requests     []map[string]any
	roomRequests []map[string]any
}

func newCampusServer() *campusServer {
	s := &campusServer{
		nextID: 1,
		tokens: map[string]bool{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", s.login)
	mux.HandleFunc("GET /items", s.items)
	mux.HandleFunc("GET /rooms", s.rooms)
	mux.HandleFunc("POST /requests", s.createRequest)
	mux.HandleFunc("POST /room-requests", s.createRoomRequest)
	mux.HandleFunc("GET /requests", s.listRequests)
	mux.HandleFunc("GET /room-requests", s.listRoomRequests)
	mux.HandleFunc("DELETE /requests/{id}", s.cancelRequest)
	mux.HandleFunc("DELETE /room-requests/{id}", s.cancelRoomRequest)
	s.mux = mux
	return s
}

func (s *campusServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *campusServer) authorized(r *http.Request) bool {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[token]
}

func (s *campusServer) login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Password != "secret123" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "These credentials do not match our records.",
		})
		return
	}

	s.mu.Lock()
	token := fmt.Sprintf("e2e-token-%d", s.nextID)
	s.nextID++
	s.tokens[token] = true
	s.mu.Unlock()

	// Token under access_token exercises the fallback extraction path.
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"message":      "Logged in",
		"user": map[string]any{
			"id":    7,
			"email": creds.Email,
			"name":  "Alice Reyes",
		},
	})
}

func (s *campusServer) items(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthenticated."})
		return
	}
	writeJSON(w, http.StatusOK, []map[string]any{
		{"id": 1, "name": "Projector", "qty": 3, "description": "Epson EB-X06", "image_url": nil},
		{"id": 2, "name": "HDMI Cable", "qty": 10, "description": nil, "image_url": nil},
	})
}

func (s *campusServer) rooms(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthenticated."})
		return
	}
	writeJSON(w, http.StatusOK, []map[string]any{
		{"id": 1, "name": "AVR Room", "quantity": 1},
		{"id": 2, "name": "Science Lab", "quantity": 2},
	})
}

func (s *campusServer) createRequest(w http.ResponseWriter, r *http.Request) {
	s.create(w, r, &s.requests)
}

func (s *campusServer) createRoomRequest(w http.ResponseWriter, r *http.Request) {
	s.create(w, r, &s.roomRequests)
}

func (s *campusServer) create(w http.ResponseWriter, r *http.Request, into *[]map[string]any) {
	if !s.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthenticated."})
		return
	}
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed request"})
		return
	}

	s.mu.Lock()
	body["id"] = s.nextID
	s.nextID++
	*into = append(*into, body)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, body)
}

func (s *campusServer) listRequests(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, s.requests)
}

func (s *campusServer) listRoomRequests(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, s.roomRequests)
}

func (s *campusServer) list(w http.ResponseWriter, r *http.Request, from []map[string]any) {
	if !s.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthenticated."})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if from == nil {
		from = []map[string]any{}
	}
	writeJSON(w, http.StatusOK, from)
}

func (s *campusServer) cancelRequest(w http.ResponseWriter, r *http.Request) {
	s.cancel(w, r, &s.requests)
}

func (s *campusServer) cancelRoomRequest(w http.ResponseWriter, r *http.Request) {
	s.cancel(w, r, &s.roomRequests)
}

func (s *campusServer) cancel(w http.ResponseWriter, r *http.Request, from *[]map[string]any) {
	if !s.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthenticated."})
		return
	}
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, req := range *from {
		if fmt.Sprint(req["id"]) == id {
			*from = append((*from)[:i], (*from)[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]any{"message": "cancelled"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "request not found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
