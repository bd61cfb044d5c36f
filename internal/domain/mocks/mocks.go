// Package mocks provides testify mocks for the domain ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCompleter is a mock domain.ConfigurableCompleter.
type MockCompleter struct {
	mock.Mock
}

// Complete records the call and returns the configured reply.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// Configure records the call.
func (m *MockCompleter) Configure(token string) bool {
	return m.Called(token).Bool(0)
}

// Configured records the call.
func (m *MockCompleter) Configured() bool {
	return m.Called().Bool(0)
}

// MockCredentialStore is a mock domain.CredentialStore.
type MockCredentialStore struct {
	mock.Mock
}

// Load records the call.
func (m *MockCredentialStore) Load(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

// Save records the call.
func (m *MockCredentialStore) Save(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

// Clear records the call.
func (m *MockCredentialStore) Clear(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
