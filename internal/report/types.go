package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// Query holds the paging and date filter parameters of a network report request.
type Query struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// AffiliateRow is one ranked affiliate in the network report.
type AffiliateRow struct {
	AffiliateID string          `json:"affiliate_id"`
	N1          uint            `json:"n1"`
	N2          uint            `json:"n2"`
	N3          uint            `json:"n3"`
	N4          uint            `json:"n4"`
	N5          uint            `json:"n5"`
	Total       uint            `json:"total"`
	CPAPaid     decimal.Decimal `json:"cpa_paid"`
	RevPaid     decimal.Decimal `json:"rev_paid"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
}

// Page is one slice of the ranked rows plus its position.
type Page struct {
	Items      []AffiliateRow
	Page       int
	Pages      int
	TotalCount int
	PageSize   int
}

// Pagination is the wire form of a Page's position.
type Pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
	Limit int `json:"limit"`
}

// Debug describes how a report was computed.
type Debug struct {
	EventsConsidered  int       `json:"events_considered"`
	EventsAfterFilter int       `json:"events_after_filter"`
	TotalPolicy       string    `json:"total_policy"`
	RuleID            string    `json:"rule_id"`
	DateRange         string    `json:"date_range"`
	CacheHit          bool      `json:"cache_hit"`
	ComputedAt        time.Time `json:"computed_at"`
}

// Response is the network report returned by GET /v1/affiliates/network.
type Response struct {
	Status     string         `json:"status"`
	Data       []AffiliateRow `json:"data"`
	Pagination Pagination     `json:"pagination"`
	Debug      Debug          `json:"debug"`
}

// AffiliateResponse is the single-affiliate view.
type AffiliateResponse struct {
	Status string       `json:"status"`
	Data   AffiliateRow `json:"data"`
	Debug  Debug        `json:"debug"`
}

// Computation is the ranked result of one full report run. It is what the cache
// stores; pagination is applied on read.
type Computation struct {
	Rows             []AffiliateRow `json:"rows"`
	EventsConsidered int            `json:"events_considered"`
	EventsKept       int            `json:"events_kept"`
	TotalPolicy      string         `json:"total_policy"`
	RuleID           string         `json:"rule_id"`
	DateRange        string         `json:"date_range"`
	ComputedAt       time.Time      `json:"computed_at"`
}

func (c *Computation) debug(cacheHit bool) Debug {
	return Debug{
		EventsConsidered:  c.EventsConsidered,
		EventsAfterFilter: c.EventsKept,
		TotalPolicy:       c.TotalPolicy,
		RuleID:            c.RuleID,
		DateRange:         c.DateRange,
		CacheHit:          cacheHit,
		ComputedAt:        c.ComputedAt,
	}
}
