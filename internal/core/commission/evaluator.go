package commission

import "github.com/shopspring/decimal"

// Evaluate reports whether metrics satisfy rule.
//
// Each enabled criterion passes when its metric is >= its threshold. A group with no
// enabled criteria is false, never vacuously true, and so is a rule with no groups:
// disabling every check must not approve commissions.
func Evaluate(rule Rule, metrics PlayerMetrics) bool {
	if len(rule.Groups) == 0 {
		return false
	}
	return combine(rule.GroupOperator, len(rule.Groups), func(i int) (bool, bool) {
		return evaluateGroup(rule.Groups[i], metrics), true
	})
}

func evaluateGroup(g Group, metrics PlayerMetrics) bool {
	return combine(g.Operator, len(g.Criteria), func(i int) (bool, bool) {
		c := g.Criteria[i]
		if !c.Enabled {
			return false, false
		}
		return metrics.value(c.Kind).GreaterThanOrEqual(c.Threshold), true
	})
}

// combine folds n results with op. item returns (result, counted); uncounted items
// are skipped. With no counted items the result is false.
func combine(op Operator, n int, item func(i int) (bool, bool)) bool {
	counted := 0
	for i := 0; i < n; i++ {
		ok, use := item(i)
		if !use {
			continue
		}
		counted++
		switch op {
		case OpAnd:
			if !ok {
				return false
			}
		case OpOr:
			if ok {
				return true
			}
		default:
			panic("commission: unhandled operator " + op.String())
		}
	}
	if counted == 0 {
		return false
	}
	return op == OpAnd
}

// ComputeAmount returns the CPA payout for one eligible user at level.
func ComputeAmount(level int, rates LevelRateTable) (decimal.Decimal, error) {
	return rates.Rate(level)
}

// SelectActive returns the single active rule. Zero or several active rules is a
// configuration error; the engine does not guess which one was meant.
func SelectActive(rules []Rule) (Rule, error) {
	var (
		active Rule
		ids    []string
	)
	for _, r := range rules {
		if !r.Active {
			continue
		}
		active = r
		ids = append(ids, r.ID)
	}

	switch len(ids) {
	case 0:
		return Rule{}, configErrorf("no active validation rule")
	case 1:
		if err := active.Validate(); err != nil {
			return Rule{}, err
		}
		return active, nil
	default:
		return Rule{}, configErrorf("%d validation rules are active: %v", len(ids), ids)
	}
}
