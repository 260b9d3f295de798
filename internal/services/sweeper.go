package services

import (
	"context"
	"log"
	"time"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

// TokenSweeper periodically deletes expired single-use tokens. It runs off
// the request path and is idempotent, so overlapping runs are harmless.
type TokenSweeper struct {
	tokenStore domain.TokenStore
	interval   time.Duration
}

// NewTokenSweeper creates a sweeper with the given interval
func NewTokenSweeper(tokenStore domain.TokenStore, interval time.Duration) *TokenSweeper {
	return &TokenSweeper{
		tokenStore: tokenStore,
		interval:   interval,
	}
}

// Start launches the sweep loop; it stops when ctx is cancelled
func (s *TokenSweeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

func (s *TokenSweeper) sweep(ctx context.Context) {
	count, err := s.tokenStore.SweepExpired(ctx)
	if err != nil {
		log.Printf("sweeper: failed to delete expired tokens: %v", err)
		return
	}
	if count > 0 {
		log.Printf("sweeper: deleted %d expired tokens", count)
	}
}
