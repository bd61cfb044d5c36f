package app

import (
	"context"
	"fmt"
)

// Pinger is anything that can report its own reachability.
type Pinger interface{ Ping(ctx context.Context) error }

// StoreCheck returns the readiness probe for the credential store.
func StoreCheck(p Pinger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if p == nil {
			return fmt.Errorf("credential store not configured")
		}
		return p.Ping(ctx)
	}
}
