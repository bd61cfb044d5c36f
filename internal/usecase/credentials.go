package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
)

// Credential sources reported by CredentialStatus.
const (
	SourceNone  = ""
	SourceStore = "store"
	SourceEnv   = "env"
	SourceUser  = "user"
)

// CredentialStatus describes the installed credential without revealing it.
type CredentialStatus struct {
	Configured bool   `json:"configured"`
	Hint       string `json:"hint,omitempty"`
	Source     string `json:"source,omitempty"`
}

// CredentialManager persists the AI service token under domain.CredentialKey and
// keeps the adapter configured with it.
type CredentialManager struct {
	store    domain.CredentialStore
	ai       domain.Configurable
	envToken string

	mu     sync.RWMutex
	status CredentialStatus
}

// NewCredentialManager wires a store and the adapter. envToken is used by
// Bootstrap when the store holds nothing.
func NewCredentialManager(store domain.CredentialStore, adapter domain.Configurable, envToken string) *CredentialManager {
	return &CredentialManager{store: store, ai: adapter, envToken: strings.TrimSpace(envToken)}
}

// Bootstrap loads a saved token and configures the adapter without user action.
// With nothing saved it falls back to the environment token and persists it.
func (m *CredentialManager) Bootstrap(ctx context.Context) (CredentialStatus, error) {
	token, ok, err := m.store.Load(ctx, domain.CredentialKey)
	if err != nil {
		return m.Status(), fmt.Errorf("op=credentials.Bootstrap: %w", err)
	}
	token = strings.TrimSpace(token)
	if ok && token != "" {
		m.install(token, SourceStore)
		slog.Info("credential loaded from store", slog.String("hint", Redact(token)))
		return m.Status(), nil
	}
	if m.envToken == "" {
		slog.Info("no saved credential; waiting for one to be set")
		return m.Status(), nil
	}
	if err := m.store.Save(ctx, domain.CredentialKey, m.envToken); err != nil {
		// The adapter still works this run even if the token could not be saved.
		slog.Warn("failed to persist environment credential", slog.Any("error", err))
	}
	m.install(m.envToken, SourceEnv)
	slog.Info("credential loaded from environment", slog.String("hint", Redact(m.envToken)))
	return m.Status(), nil
}

// Set saves token and reconfigures the adapter. Only non-emptiness is checked;
// an invalid token is discovered by the first failing query.
func (m *CredentialManager) Set(ctx context.Context, token string) (CredentialStatus, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return m.Status(), fmt.Errorf("%w: token is required", domain.ErrInvalidArgument)
	}
	if err := m.store.Save(ctx, domain.CredentialKey, token); err != nil {
		return m.Status(), fmt.Errorf("op=credentials.Set: %w", err)
	}
	m.install(token, SourceUser)
	return m.Status(), nil
}

// Get returns the saved token.
func (m *CredentialManager) Get(ctx context.Context) (string, bool, error) {
	token, ok, err := m.store.Load(ctx, domain.CredentialKey)
	if err != nil {
		return "", false, fmt.Errorf("op=credentials.Get: %w", err)
	}
	return strings.TrimSpace(token), ok && strings.TrimSpace(token) != "", nil
}

// Clear removes the saved token and unconfigures the adapter.
func (m *CredentialManager) Clear(ctx context.Context) error {
	if err := m.store.Clear(ctx, domain.CredentialKey); err != nil {
		return fmt.Errorf("op=credentials.Clear: %w", err)
	}
	m.ai.Configure("")
	m.mu.Lock()
	m.status = CredentialStatus{}
	m.mu.Unlock()
	return nil
}

// Status reports whether the adapter holds a credential.
func (m *CredentialManager) Status() CredentialStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st := m.status
	st.Configured = m.ai.Configured()
	if !st.Configured {
		return CredentialStatus{}
	}
	return st
}

func (m *CredentialManager) install(token, source string) {
	ok := m.ai.Configure(token)
	m.mu.Lock()
	defer m.mu.Unlock()
	if !ok {
		m.status = CredentialStatus{}
		return
	}
	m.status = CredentialStatus{Configured: true, Hint: Redact(token), Source: source}
}

// Redact keeps the first and last four characters of long tokens.
func Redact(token string) string {
	r := []rune(token)
	if len(r) <= 8 {
		return strings.Repeat("*", len(r))
	}
	return string(r[:4]) + "…" + string(r[len(r)-4:])
}
