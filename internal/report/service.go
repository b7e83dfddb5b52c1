package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tierline-lab/tierline/internal/core/commission"
	"github.com/tierline-lab/tierline/internal/core/hierarchy"
	"github.com/tierline-lab/tierline/internal/core/storage"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500

	// DefaultComputeTimeout bounds a shared computation once it is detached from the
	// request that started it.
	DefaultComputeTimeout = 2 * time.Minute
)

var (
	// ErrInvalidQuery marks request validation errors that should return HTTP 400.
	ErrInvalidQuery = errors.New("invalid report query")

	// ErrAffiliateNotFound is returned when the affiliate has no referrals in range.
	ErrAffiliateNotFound = errors.New("affiliate not found")
)

// Options tune a Service. Zero values select the defaults.
type Options struct {
	Policy         hierarchy.TotalPolicy
	Shards         int
	MaxLimit       int
	ComputeTimeout time.Duration
}

// Service computes affiliate network reports.
// Each computation loads configuration, the referral log and player metrics, then
// runs the pure hierarchy and commission stages on a graph owned by that run alone.
type Service struct {
	source         commission.Source
	referrals      storage.ReferralStore
	metrics        storage.MetricsStore
	cache          Cache
	policy         hierarchy.TotalPolicy
	shards         int
	maxLimit       int
	computeTimeout time.Duration
	group          singleflight.Group
	nowFn          func() time.Time
}

// NewService creates a report service. cache may be nil to disable caching.
func NewService(
	source commission.Source,
	referrals storage.ReferralStore,
	metrics storage.MetricsStore,
	cache Cache,
	opts Options,
) *Service {
	if source == nil {
		panic("report: commission source must not be nil")
	}
	if referrals == nil {
		panic("report: referral store must not be nil")
	}
	if metrics == nil {
		panic("report: metrics store must not be nil")
	}
	if cache == nil {
		cache = NoopCache{}
	}
	if opts.MaxLimit <= 0 || opts.MaxLimit > MaxLimit {
		opts.MaxLimit = MaxLimit
	}
	if opts.ComputeTimeout <= 0 {
		opts.ComputeTimeout = DefaultComputeTimeout
	}

	return &Service{
		source:         source,
		referrals:      referrals,
		metrics:        metrics,
		cache:          cache,
		policy:         opts.Policy,
		shards:         opts.Shards,
		maxLimit:       opts.MaxLimit,
		computeTimeout: opts.ComputeTimeout,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Network returns one page of the ranked affiliate network report.
func (s *Service) Network(ctx context.Context, q Query) (*Response, error) {
	q, r, err := s.normalizeAndValidate(q)
	if err != nil {
		return nil, err
	}

	comp, hit, err := s.computation(ctx, r)
	if err != nil {
		return nil, err
	}

	page := Paginate(comp.Rows, q.Page, q.Limit)
	return &Response{
		Status: "success",
		Data:   page.Items,
		Pagination: Pagination{
			Page:  page.Page,
			Pages: page.Pages,
			Total: page.TotalCount,
			Limit: page.PageSize,
		},
		Debug: comp.debug(hit),
	}, nil
}

// Affiliate returns the report row of a single affiliate. Paging fields of q are ignored.
func (s *Service) Affiliate(ctx context.Context, affiliateID string, q Query) (*AffiliateResponse, error) {
	if affiliateID == "" {
		return nil, invalidQueryf("affiliate_id is required")
	}
	q.Page, q.Limit = 1, DefaultLimit
	_, r, err := s.normalizeAndValidate(q)
	if err != nil {
		return nil, err
	}

	comp, hit, err := s.computation(ctx, r)
	if err != nil {
		return nil, err
	}

	for _, row := range comp.Rows {
		if row.AffiliateID == affiliateID {
			return &AffiliateResponse{Status: "success", Data: row, Debug: comp.debug(hit)}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrAffiliateNotFound, affiliateID)
}

// Refresh recomputes the unfiltered report and overwrites its cache entry. A request
// already computing the same key is joined instead of duplicated.
func (s *Service) Refresh(ctx context.Context) error {
	rule, rates, err := s.loadConfig(ctx)
	if err != nil {
		return err
	}

	r := hierarchy.DateRange{}
	comp, err := s.computeShared(ctx, CacheKey(r, rule, rates, s.policy), r, rule, rates)
	if err != nil {
		return err
	}

	slog.Info("[Report] Refreshed network report",
		"affiliates", len(comp.Rows),
		"events", comp.EventsConsidered,
		"rule_id", comp.RuleID)
	return nil
}

func (s *Service) normalizeAndValidate(q Query) (Query, hierarchy.DateRange, error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
	if q.Page < 1 {
		return q, hierarchy.DateRange{}, invalidQueryf("page must be >= 1, got %d", q.Page)
	}
	if q.Limit < 1 || q.Limit > s.maxLimit {
		return q, hierarchy.DateRange{}, invalidQueryf("limit must be between 1 and %d, got %d", s.maxLimit, q.Limit)
	}

	r, err := hierarchy.ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return q, hierarchy.DateRange{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return q, r, nil
}

// computation serves the ranked rows for r from cache or computes them. Concurrent
// misses on the same key share one computation.
func (s *Service) computation(ctx context.Context, r hierarchy.DateRange) (*Computation, bool, error) {
	rule, rates, err := s.loadConfig(ctx)
	if err != nil {
		return nil, false, err
	}

	key := CacheKey(r, rule, rates, s.policy)
	comp, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("[Report] Cache read failed, recomputing", "key", key, "error", err)
	}
	if ok {
		return comp, true, nil
	}

	comp, err = s.computeShared(ctx, key, r, rule, rates)
	if err != nil {
		return nil, false, err
	}
	return comp, false, nil
}

// computeShared computes and caches the report for key once across concurrent callers.
// The shared run is detached from the caller that started it and bounded by
// computeTimeout; each caller stops waiting when its own ctx is done.
func (s *Service) computeShared(
	ctx context.Context,
	key string,
	r hierarchy.DateRange,
	rule commission.Rule,
	rates commission.Rates,
) (*Computation, error) {
	ch := s.group.DoChan(key, func() (interface{}, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.computeTimeout)
		defer cancel()

		comp, err := s.compute(runCtx, r, rule, rates)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(runCtx, key, comp); err != nil {
			slog.Warn("[Report] Cache write failed", "key", key, "error", err)
		}
		return comp, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			slog.Debug("[Report] Shared in-flight computation", "key", key)
		}
		return res.Val.(*Computation), nil
	}
}

func (s *Service) loadConfig(ctx context.Context) (commission.Rule, commission.Rates, error) {
	rules, err := s.source.Rules(ctx)
	if err != nil {
		return commission.Rule{}, commission.Rates{}, fmt.Errorf("load validation rules: %w", err)
	}
	rule, err := commission.SelectActive(rules)
	if err != nil {
		return commission.Rule{}, commission.Rates{}, err
	}

	rates, err := s.source.Rates(ctx)
	if err != nil {
		return commission.Rule{}, commission.Rates{}, fmt.Errorf("load level rates: %w", err)
	}
	return rule, rates, nil
}

func (s *Service) compute(ctx context.Context, r hierarchy.DateRange, rule commission.Rule, rates commission.Rates) (*Computation, error) {
	start := time.Now()

	events, err := s.referrals.ListReferrals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list referrals: %w", err)
	}

	g, err := hierarchy.Build(events, r)
	if err != nil {
		return nil, err
	}

	stats, err := hierarchy.AggregateSharded(ctx, g, s.policy, s.shards)
	if err != nil {
		return nil, fmt.Errorf("aggregate levels: %w", err)
	}

	metrics, err := s.metrics.GetPlayerMetrics(ctx, g.Users())
	if err != nil {
		return nil, fmt.Errorf("load player metrics: %w", err)
	}

	payouts, err := commission.NewCalculator(rule, rates, metrics).Payouts(g)
	if err != nil {
		return nil, fmt.Errorf("compute payouts: %w", err)
	}

	comp := &Computation{
		Rows:             Rank(stats, payouts),
		EventsConsidered: g.EventsConsidered(),
		EventsKept:       g.EventsKept(),
		TotalPolicy:      s.policy.Name(),
		RuleID:           rule.ID,
		DateRange:        r.Key(),
		ComputedAt:       s.nowFn(),
	}

	slog.Debug("[Report] Computed network report",
		"date_range", comp.DateRange,
		"events", comp.EventsConsidered,
		"events_kept", comp.EventsKept,
		"affiliates", len(comp.Rows),
		"users", len(g.Users()),
		"duration_ms", time.Since(start).Milliseconds())
	return comp, nil
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
