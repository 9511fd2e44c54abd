package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"tasknotify/internal/config"
	"tasknotify/internal/logging"
	"tasknotify/internal/store"
)

// apiServer exposes the daemon's HTTP surface: the task change feed, device
// registration, and operator queries.
type apiServer struct {
	bind     string
	token    string
	logger   *slog.Logger
	daemon   *Daemon
	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) (*apiServer, error) {
	if cfg == nil || d == nil {
		return nil, nil
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, nil
	}

	srv := &apiServer{
		bind:   bind,
		token:  cfg.Paths.APIToken,
		logger: logging.NewComponentLogger(logger, "api"),
		daemon: d,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", srv.handleStatus)
	mux.HandleFunc("/api/tasks", srv.handleTasks)
	mux.HandleFunc("/api/users/", srv.handleUserToken)
	mux.HandleFunc("/api/due", srv.handleDue)
	mux.HandleFunc("/api/test-notify", srv.handleTestNotify)
	mux.HandleFunc("/api/scan", srv.handleScan)

	srv.server = &http.Server{
		Handler:           srv.withAuth(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

func (s *apiServer) start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s == nil || s.server == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
}

// Addr returns the bound listener address, empty before start.
func (s *apiServer) addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *apiServer) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" {
			header := r.Header.Get("Authorization")
			if header != "Bearer "+s.token {
				writeError(w, http.StatusUnauthorized, "missing or invalid bearer token")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// taskPayload is the change-feed wire form of a task snapshot.
type taskPayload struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	AssignedTo  string     `json:"assignedTo"`
	CreatedBy   string     `json:"createdBy"`
	IsCompleted bool       `json:"isCompleted"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

func (p taskPayload) toTask() store.Task {
	return store.Task{
		ID:         p.ID,
		Title:      p.Title,
		AssignedTo: p.AssignedTo,
		CreatedBy:  p.CreatedBy,
		Completed:  p.IsCompleted,
		DueDate:    p.DueDate,
	}
}

func taskView(t *store.Task) taskPayload {
	return taskPayload{
		ID:          t.ID,
		Title:       t.Title,
		AssignedTo:  t.AssignedTo,
		CreatedBy:   t.CreatedBy,
		IsCompleted: t.Completed,
		DueDate:     t.DueDate,
	}
}

func (s *apiServer) handleTasks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	var payload taskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decode task: %v", err))
		return
	}
	if strings.TrimSpace(payload.ID) == "" {
		writeError(w, http.StatusBadRequest, "task id is required")
		return
	}

	created, eventID, err := s.daemon.IngestTask(r.Context(), payload.toTask())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"id":      payload.ID,
		"created": created,
		"eventId": eventID,
	})
}

func (s *apiServer) handleUserToken(w http.ResponseWriter, r *http.Request) {
	// Expected shape: /api/users/{username}/token
	rest := strings.TrimPrefix(r.URL.Path, "/api/users/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "token" {
		writeError(w, http.StatusNotFound, "unknown resource")
		return
	}
	username := parts[0]

	switch r.Method {
	case http.MethodPut:
		var body struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("decode token: %v", err))
			return
		}
		if err := s.daemon.store.UpsertUserToken(r.Context(), username, body.Token); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"username": username, "registered": strings.TrimSpace(body.Token) != ""})
	case http.MethodDelete:
		if err := s.daemon.store.ClearUserToken(r.Context(), username); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"username": username, "registered": false})
	default:
		writeError(w, http.StatusMethodNotAllowed, "PUT or DELETE required")
	}
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	status, err := s.daemon.Status(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *apiServer) handleDue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	now := time.Now().UTC()
	tasks, err := s.daemon.DueTasks(r.Context(), now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	views := make([]taskPayload, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, taskView(task))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"now":       now,
		"windowEnd": now.Add(time.Hour),
		"tasks":     views,
	})
}

func (s *apiServer) handleTestNotify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var body struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
		return
	}
	if strings.TrimSpace(body.Username) == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	sent, detail, err := s.daemon.TestNotification(r.Context(), body.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sent": sent, "detail": detail})
}

func (s *apiServer) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	summary := s.daemon.ScanNow(r.Context())
	writeJSON(w, http.StatusOK, summary)
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
