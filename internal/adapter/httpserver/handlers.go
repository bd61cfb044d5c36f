package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fairyhunter13/skills-gap-navigator/internal/config"
	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
	"github.com/fairyhunter13/skills-gap-navigator/internal/session"
	"github.com/fairyhunter13/skills-gap-navigator/internal/usecase"
)

// CredentialService is the credential manager as seen by the handlers.
type CredentialService interface {
	Set(ctx context.Context, token string) (usecase.CredentialStatus, error)
	Clear(ctx context.Context) error
	Status() usecase.CredentialStatus
}

// Server aggregates handlers dependencies.
type Server struct {
	Cfg         config.Config
	Sessions    *session.Registry
	Credentials CredentialService
	StoreCheck  func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, sessions *session.Registry, creds CredentialService, storeCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Sessions: sessions, Credentials: creds, StoreCheck: storeCheck}
}

type sessionResponse struct {
	ID      string           `json:"id"`
	Session session.Snapshot `json:"session"`
}

type searchRequest struct {
	Community string `json:"community" validate:"required,max=200"`
	Area      string `json:"areaOfInterest" validate:"max=200"`
}

type skillRequest struct {
	SkillName      string `json:"skillName" validate:"required,max=200"`
	GapExplanation string `json:"gapExplanation" validate:"max=2000"`
}

type credentialRequest struct {
	Token string `json:"token" validate:"required,max=512"`
}

// decodeBody reads a JSON request body capped at 64KB and validates it.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
		return false
	}
	if verrs, err := validateStruct(dst); err != nil {
		writeError(w, r, err, verrs)
		return false
	}
	return true
}

// HealthzHandler reports liveness.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ReadyzHandler probes the credential store and reports whether the AI client
// holds a credential. A missing credential does not make the service unready.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, 1)
		if s.StoreCheck != nil {
			if err := s.StoreCheck(ctx); err != nil {
				checks = append(checks, check{Name: "credential_store", OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "credential_store", OK: true})
			}
		}
		ok := true
		for _, c := range checks {
			if !c.OK {
				ok = false
				break
			}
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		configured := false
		if s.Credentials != nil {
			configured = s.Credentials.Status().Configured
		}
		writeJSON(w, st, map[string]any{"checks": checks, "credentialConfigured": configured})
	}
}

// CreateSessionHandler starts a new Idle session.
func (s *Server) CreateSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, orch := s.Sessions.Create()
		LoggerFrom(r).Info("session created", slog.String("session_id", id))
		writeJSON(w, http.StatusCreated, sessionResponse{ID: id, Session: orch.Snapshot()})
	}
}

// GetSessionHandler returns the current snapshot.
func (s *Server) GetSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, orch, ok := s.lookup(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{ID: id, Session: orch.Snapshot()})
	}
}

// DeleteSessionHandler ends a session.
func (s *Server) DeleteSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := validateSessionID(id); err != nil {
			writeError(w, r, err, nil)
			return
		}
		if err := s.Sessions.Delete(id); err != nil {
			writeError(w, r, err, nil)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SearchHandler runs the job market analysis for the session.
func (s *Server) SearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, orch, ok := s.lookup(w, r)
		if !ok {
			return
		}
		var req searchRequest
		if !decodeBody(w, r, &req) {
			return
		}
		snap, err := orch.SubmitSearch(r.Context(), req.Community, req.Area)
		s.respond(w, r, id, snap, err)
	}
}

// PathwaysHandler fetches learning pathways for a skill.
func (s *Server) PathwaysHandler() http.HandlerFunc {
	return s.skillAction((*session.Orchestrator).SelectSkillForPathways)
}

// EmployersHandler fetches employer suggestions for a skill.
func (s *Server) EmployersHandler() http.HandlerFunc {
	return s.skillAction((*session.Orchestrator).SelectSkillForEmployers)
}

// RetryHandler re-runs the failed action.
func (s *Server) RetryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, orch, ok := s.lookup(w, r)
		if !ok {
			return
		}
		snap, err := orch.Retry(r.Context())
		s.respond(w, r, id, snap, err)
	}
}

// GetCredentialHandler reports the credential status without the token.
func (s *Server) GetCredentialHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, s.Credentials.Status())
	}
}

// PutCredentialHandler stores a new token and reconfigures the AI client.
func (s *Server) PutCredentialHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialRequest
		if !decodeBody(w, r, &req) {
			return
		}
		st, err := s.Credentials.Set(r.Context(), req.Token)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		LoggerFrom(r).Info("credential updated", slog.String("hint", st.Hint))
		writeJSON(w, http.StatusOK, st)
	}
}

// DeleteCredentialHandler removes the stored token.
func (s *Server) DeleteCredentialHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Credentials.Clear(r.Context()); err != nil {
			writeError(w, r, err, nil)
			return
		}
		LoggerFrom(r).Info("credential cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) skillAction(run func(*session.Orchestrator, context.Context, domain.SkillGap) (session.Snapshot, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, orch, ok := s.lookup(w, r)
		if !ok {
			return
		}
		var req skillRequest
		if !decodeBody(w, r, &req) {
			return
		}
		snap, err := run(orch, r.Context(), domain.SkillGap{Name: req.SkillName, Explanation: req.GapExplanation})
		s.respond(w, r, id, snap, err)
	}
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (string, *session.Orchestrator, bool) {
	id := chi.URLParam(r, "id")
	if err := validateSessionID(id); err != nil {
		writeError(w, r, err, nil)
		return "", nil, false
	}
	orch, err := s.Sessions.Get(id)
	if err != nil {
		writeError(w, r, err, nil)
		return "", nil, false
	}
	return id, orch, true
}

// respond writes the snapshot. Query failures are session state and still 200;
// err is only set for rejected transitions and inputs.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, id string, snap session.Snapshot, err error) {
	if err != nil {
		writeError(w, r, err, map[string]any{"stage": snap.Stage})
		return
	}
	if snap.Error != nil {
		LoggerFrom(r).Warn("session query failed",
			slog.String("session_id", id),
			slog.String("kind", string(snap.Error.Kind)),
			slog.String("message", snap.Error.Message))
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, Session: snap})
}
