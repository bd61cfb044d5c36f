package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/fairyhunter13/skills-gap-navigator/internal/adapter/observability"
	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
)

// completionCache wraps a completer and caches successful completions by prompt hash.
// It is safe for concurrent use.
// Failures are never cached. Reconfiguring the credential drops every entry.
// Eviction is FIFO.
type completionCache struct {
	base     domain.ConfigurableCompleter
	capacity int
	mu       sync.RWMutex
	m        map[string]string
	ord      []string
}

// NewCompletionCache wraps base with a completion cache of given capacity (number of entries).
// If capacity <= 0, base is returned unmodified.
func NewCompletionCache(base domain.ConfigurableCompleter, capacity int) domain.ConfigurableCompleter {
	if capacity <= 0 || base == nil {
		return base
	}
	return &completionCache{base: base, capacity: capacity, m: make(map[string]string), ord: make([]string, 0, capacity)}
}

func (c *completionCache) Complete(ctx context.Context, prompt string) (string, error) {
	k := keyFor(prompt)
	c.mu.RLock()
	v, ok := c.m[k]
	c.mu.RUnlock()
	if ok {
		observability.AICacheHitsTotal.Inc()
		return v, nil
	}
	out, err := c.base.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	c.put(k, out)
	return out, nil
}

func (c *completionCache) Configure(token string) bool {
	c.mu.Lock()
	c.m = make(map[string]string)
	c.ord = c.ord[:0]
	c.mu.Unlock()
	return c.base.Configure(token)
}

func (c *completionCache) Configured() bool { return c.base.Configured() }

func (c *completionCache) put(k, v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.m[k]; exists {
		c.m[k] = v
		return
	}
	if len(c.ord) >= c.capacity {
		old := c.ord[0]
		c.ord = c.ord[1:]
		delete(c.m, old)
	}
	c.m[k] = v
	c.ord = append(c.ord, k)
}

func keyFor(text string) string {
	s := strings.TrimSpace(text)
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}
