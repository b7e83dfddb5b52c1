package commission

import (
	"context"
	"sync"
	"time"
)

// CachedSource keeps the rules and rates of its inner source for ttl after each
// successful fetch. Errors are not cached; the next call fetches again.
type CachedSource struct {
	inner Source
	ttl   time.Duration
	nowFn func() time.Time

	mu      sync.Mutex
	rules   []Rule
	rulesAt time.Time
	rates   *Rates
	ratesAt time.Time
}

// NewCachedSource wraps inner. A non-positive ttl makes every call hit inner.
func NewCachedSource(inner Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		inner: inner,
		ttl:   ttl,
		nowFn: time.Now,
	}
}

func (s *CachedSource) Rules(ctx context.Context) ([]Rule, error) {
	s.mu.Lock()
	if s.rules != nil && s.fresh(s.rulesAt) {
		out := append([]Rule(nil), s.rules...)
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()

	rules, err := s.inner.Rules(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.rules = append([]Rule(nil), rules...)
	s.rulesAt = s.nowFn()
	s.mu.Unlock()
	return rules, nil
}

func (s *CachedSource) Rates(ctx context.Context) (Rates, error) {
	s.mu.Lock()
	if s.rates != nil && s.fresh(s.ratesAt) {
		out := *s.rates
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()

	rates, err := s.inner.Rates(ctx)
	if err != nil {
		return Rates{}, err
	}

	s.mu.Lock()
	s.rates = &rates
	s.ratesAt = s.nowFn()
	s.mu.Unlock()
	return rates, nil
}

// fresh must be called with mu held.
func (s *CachedSource) fresh(at time.Time) bool {
	return s.ttl > 0 && s.nowFn().Sub(at) < s.ttl
}
