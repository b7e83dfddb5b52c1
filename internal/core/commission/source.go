package commission

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Source supplies validation rules and rate tables. Implementations may hit a
// database or a remote service; the evaluator itself never does I/O.
type Source interface {
	// Rules returns every configured validation rule, active or not.
	Rules(ctx context.Context) ([]Rule, error)

	// Rates returns the CPA table and optional revenue share table.
	Rates(ctx context.Context) (Rates, error)
}

// StaticSource serves fixed configuration.
type StaticSource struct {
	RuleSet []Rule
	RateSet Rates
}

func (s StaticSource) Rules(context.Context) ([]Rule, error) {
	out := make([]Rule, len(s.RuleSet))
	copy(out, s.RuleSet)
	return out, nil
}

func (s StaticSource) Rates(context.Context) (Rates, error) {
	return s.RateSet, nil
}

// FallbackSource wraps a primary source and keeps the last configuration it returned
// successfully. When a fetch fails it serves that last-known-good copy. Rates have one
// more fallback: a caller-supplied default table, used only if nothing was ever fetched.
// Rules have no default; without a last-known-good set the error surfaces.
//
// Configuration errors are never masked: a stored rule or rate table that is invalid
// aborts the computation instead of being replaced by an older or default copy.
type FallbackSource struct {
	primary      Source
	defaultRates *Rates

	mu        sync.RWMutex
	lastRules []Rule
	lastRates *Rates
}

// NewFallbackSource wraps primary. defaultRates may be nil.
func NewFallbackSource(primary Source, defaultRates *Rates) *FallbackSource {
	return &FallbackSource{
		primary:      primary,
		defaultRates: defaultRates,
	}
}

func (s *FallbackSource) Rules(ctx context.Context) ([]Rule, error) {
	rules, err := s.primary.Rules(ctx)
	if err == nil {
		s.mu.Lock()
		s.lastRules = rules
		s.mu.Unlock()
		return rules, nil
	}
	if errors.Is(err, ErrConfiguration) {
		return nil, err
	}

	s.mu.RLock()
	last := s.lastRules
	s.mu.RUnlock()

	if last == nil {
		return nil, err
	}
	slog.Warn("[Commission] Rule fetch failed, serving last known good rules",
		"error", err,
		"rule_count", len(last))
	return last, nil
}

func (s *FallbackSource) Rates(ctx context.Context) (Rates, error) {
	rates, err := s.primary.Rates(ctx)
	if err == nil {
		s.mu.Lock()
		s.lastRates = &rates
		s.mu.Unlock()
		return rates, nil
	}
	if errors.Is(err, ErrConfiguration) {
		return Rates{}, err
	}

	s.mu.RLock()
	last := s.lastRates
	s.mu.RUnlock()

	if last != nil {
		slog.Warn("[Commission] Rate fetch failed, serving last known good rates", "error", err)
		return *last, nil
	}
	if s.defaultRates != nil {
		slog.Warn("[Commission] Rate fetch failed, serving configured default rates",
			"error", err,
			"cpa", s.defaultRates.CPA.String())
		return *s.defaultRates, nil
	}
	return Rates{}, err
}
