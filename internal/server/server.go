// Package server exposes a snapshot store over the todos HTTP contract:
// POST /api/store-todos replaces the stored list and GET /api/retrieve-todos
// reads it back.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// Route paths.
const (
	PathStore    = "/api/store-todos"
	PathRetrieve = "/api/retrieve-todos"
)

// Reply messages. Clients show these to the user verbatim.
const (
	msgStored         = "Todos stored successfully"
	msgClearFailed    = "Failed to clear existing todos"
	msgStoreFailed    = "Failed to store todos"
	msgRetrieveFailed = "Failed to retrieve todos"
	msgNotFound       = "No todos found"
	msgInternal       = "Something broke!"
)

// maxBodyBytes caps the store request body.
const maxBodyBytes = 8 << 20

// Server routes HTTP requests to a SnapshotStore.
type Server struct {
	store   types.SnapshotStore
	logger  *slog.Logger
	router  *mux.Router
	handler http.Handler
}

// New builds a Server over store. A nil logger discards output.
func New(store types.SnapshotStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{store: store, logger: logger, router: mux.NewRouter()}

	// Path before method: mux reports 405 only when the path matcher runs first.
	s.router.Path(PathStore).Methods(http.MethodPost).HandlerFunc(s.handleStore)
	s.router.Path(PathRetrieve).Methods(http.MethodGet).HandlerFunc(s.handleRetrieve)

	// Wrapped outside the router so 404 and 405 replies are tagged and logged too.
	s.handler = s.requestID(s.accessLog(s.recoverPanic(s.router)))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// storeRequest is the POST body. Todos is a pointer so a missing field is
// distinguishable from an empty list.
type storeRequest struct {
	Todos *[]types.Task `json:"todos"`
}

type messageReply struct {
	Message string `json:"message"`
}

type errorReply struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (s *Server) handleStore(w http.ResponseWriter, r *http.Request) {
	var req storeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.logFor(r).Error("decoding store request", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorReply{Error: msgInternal, Details: err.Error()})
		return
	}
	if req.Todos == nil {
		writeJSON(w, http.StatusInternalServerError, errorReply{Error: msgInternal, Details: "todos must be an array"})
		return
	}

	if err := s.store.ReplaceAll(r.Context(), *req.Todos); err != nil {
		s.logFor(r).Error("replacing snapshot", "error", err)
		msg := msgStoreFailed
		if errors.Is(err, types.ErrClearFailed) {
			msg = msgClearFailed
		}
		writeJSON(w, http.StatusInternalServerError, errorReply{Error: msg})
		return
	}

	s.logFor(r).Info("snapshot stored", "tasks", len(*req.Todos))
	writeJSON(w, http.StatusOK, messageReply{Message: msgStored})
}

func (s *Server) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.ReadAll(r.Context())
	switch {
	case errors.Is(err, types.ErrNotFound):
		s.logFor(r).Warn("snapshot table missing")
		writeJSON(w, http.StatusNotFound, errorReply{Error: msgNotFound})
		return
	case err != nil:
		s.logFor(r).Error("reading snapshot", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorReply{Error: msgRetrieveFailed, Details: err.Error()})
		return
	}

	s.logFor(r).Info("snapshot retrieved", "tasks", len(tasks))
	writeJSON(w, http.StatusOK, types.CloneTasks(tasks))
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
