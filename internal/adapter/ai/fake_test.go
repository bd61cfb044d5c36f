package ai

import (
	"context"
	"strings"
	"sync"
	"time"
)

// fakeCompleter records calls and returns a fixed reply.
type fakeCompleter struct {
	mu    sync.Mutex
	calls int
	reply string
	err   error
	token string
}

func (f *fakeCompleter) Complete(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.reply, f.err
}

func (f *fakeCompleter) Configure(token string) bool {
	f.token = strings.TrimSpace(token)
	return f.token != ""
}

func (f *fakeCompleter) Configured() bool { return f.token != "" }

type fakeLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (l *fakeLimiter) Allow(_ context.Context, key string, _ int64) (bool, time.Duration, error) {
	l.keys = append(l.keys, key)
	return l.allowed, 2 * time.Second, l.err
}
