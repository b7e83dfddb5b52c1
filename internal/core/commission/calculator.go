package commission

import (
	"github.com/shopspring/decimal"
	"github.com/tierline-lab/tierline/internal/core/hierarchy"
)

// Result is the commission outcome for one referred user in one affiliate's network.
type Result struct {
	AffiliateID string          `json:"affiliate_id"`
	UserID      string          `json:"user_id"`
	Level       int             `json:"level"`
	Eligible    bool            `json:"eligible"`
	Amount      decimal.Decimal `json:"amount"`
	RevAmount   decimal.Decimal `json:"rev_amount"`
}

// Payout is the per-affiliate sum of its Results.
type Payout struct {
	CPAPaid   decimal.Decimal `json:"cpa_paid"`
	RevPaid   decimal.Decimal `json:"rev_paid"`
	TotalPaid decimal.Decimal `json:"total_paid"`
}

// Calculator applies one rule and one set of rates to a referral graph.
// Eligibility depends only on the user, so it is memoized for the lifetime of the
// Calculator. A Calculator belongs to one computation and is not safe for concurrent use.
type Calculator struct {
	rule     Rule
	rates    Rates
	metrics  map[string]PlayerMetrics
	eligible map[string]bool
}

// NewCalculator returns a Calculator. Users missing from metrics are never eligible
// and earn no revenue share.
func NewCalculator(rule Rule, rates Rates, metrics map[string]PlayerMetrics) *Calculator {
	return &Calculator{
		rule:     rule,
		rates:    rates,
		metrics:  metrics,
		eligible: make(map[string]bool),
	}
}

// Eligible reports whether userID qualifies for CPA under the rule.
func (c *Calculator) Eligible(userID string) bool {
	if ok, seen := c.eligible[userID]; seen {
		return ok
	}
	m, found := c.metrics[userID]
	ok := found && Evaluate(c.rule, m)
	c.eligible[userID] = ok
	return ok
}

// Score computes the Result for userID sitting at level in affiliateID's network.
func (c *Calculator) Score(affiliateID, userID string, level int) (Result, error) {
	res := Result{
		AffiliateID: affiliateID,
		UserID:      userID,
		Level:       level,
		Amount:      decimal.Zero,
		RevAmount:   decimal.Zero,
	}

	cpa, err := ComputeAmount(level, c.rates.CPA)
	if err != nil {
		return Result{}, err
	}
	if c.Eligible(userID) {
		res.Eligible = true
		res.Amount = cpa
	}

	if c.rates.RevShare != nil {
		share, err := c.rates.RevShare.Rate(level)
		if err != nil {
			return Result{}, err
		}
		if m, ok := c.metrics[userID]; ok && m.TotalGGR.IsPositive() {
			res.RevAmount = m.TotalGGR.Mul(share)
		}
	}

	return res, nil
}

// Affiliate returns the payout and per-user results for one affiliate's network.
func (c *Calculator) Affiliate(w *hierarchy.Walker, affiliateID string) (Payout, []Result, error) {
	var (
		results []Result
		walkErr error
	)
	w.Walk(affiliateID, func(userID string, level int) {
		if walkErr != nil {
			return
		}
		res, err := c.Score(affiliateID, userID, level)
		if err != nil {
			walkErr = err
			return
		}
		results = append(results, res)
	})
	if walkErr != nil {
		return Payout{}, nil, walkErr
	}
	return Sum(results), results, nil
}

// Payouts computes the payout of every affiliate in g.
func (c *Calculator) Payouts(g *hierarchy.Graph) (map[string]Payout, error) {
	w := hierarchy.NewWalker(g)
	out := make(map[string]Payout)
	for _, id := range g.Affiliates() {
		p, _, err := c.Affiliate(w, id)
		if err != nil {
			return nil, err
		}
		out[id] = p
	}
	return out, nil
}

// Sum folds results into a Payout.
func Sum(results []Result) Payout {
	p := Payout{CPAPaid: decimal.Zero, RevPaid: decimal.Zero}
	for _, r := range results {
		p.CPAPaid = p.CPAPaid.Add(r.Amount)
		p.RevPaid = p.RevPaid.Add(r.RevAmount)
	}
	p.TotalPaid = p.CPAPaid.Add(p.RevPaid)
	return p
}
