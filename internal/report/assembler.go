package report

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tierline-lab/tierline/internal/core/commission"
	"github.com/tierline-lab/tierline/internal/core/hierarchy"
)

// Rank joins level stats with payouts, drops affiliates whose total is zero and
// orders the rest by total descending, then affiliate ID ascending.
// Affiliates without a payout entry are paid zero.
func Rank(stats map[string]hierarchy.LevelStats, payouts map[string]commission.Payout) []AffiliateRow {
	rows := make([]AffiliateRow, 0, len(stats))
	for id, s := range stats {
		if s.Total == 0 {
			continue
		}
		p, ok := payouts[id]
		if !ok {
			p = commission.Payout{CPAPaid: decimal.Zero, RevPaid: decimal.Zero, TotalPaid: decimal.Zero}
		}
		rows = append(rows, AffiliateRow{
			AffiliateID: id,
			N1:          s.N(1),
			N2:          s.N(2),
			N3:          s.N(3),
			N4:          s.N(4),
			N5:          s.N(5),
			Total:       s.Total,
			CPAPaid:     p.CPAPaid,
			RevPaid:     p.RevPaid,
			TotalPaid:   p.TotalPaid,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].AffiliateID < rows[j].AffiliateID
	})
	return rows
}

// Paginate cuts a 1-based page out of ranked rows. A page past the end is empty, not an error.
// page and pageSize must be positive; the service validates them.
func Paginate(rows []AffiliateRow, page, pageSize int) Page {
	total := len(rows)
	p := Page{
		Items:      []AffiliateRow{},
		Page:       page,
		Pages:      (total + pageSize - 1) / pageSize,
		TotalCount: total,
		PageSize:   pageSize,
	}

	offset := (page - 1) * pageSize
	if offset >= total {
		return p
	}
	end := offset + pageSize
	if end > total {
		end = total
	}
	p.Items = rows[offset:end]
	return p
}

// Assemble ranks stats and payouts and returns the requested page.
func Assemble(stats map[string]hierarchy.LevelStats, payouts map[string]commission.Payout, page, pageSize int) Page {
	return Paginate(Rank(stats, payouts), page, pageSize)
}
