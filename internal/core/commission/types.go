package commission

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind selects which player metric a criterion compares.
type Kind int

const (
	KindDeposit Kind = iota + 1
	KindBets
	KindGGR
)

// ParseKind accepts deposit, bets and ggr (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deposit":
		return KindDeposit, nil
	case "bets":
		return KindBets, nil
	case "ggr":
		return KindGGR, nil
	}
	return 0, configErrorf("unknown criterion kind %q", s)
}

func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindBets:
		return "bets"
	case KindGGR:
		return "ggr"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) valid() bool {
	return k >= KindDeposit && k <= KindGGR
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, configErrorf("unknown criterion kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Operator combines boolean results.
type Operator int

const (
	OpAnd Operator = iota + 1
	OpOr
)

// ParseOperator accepts AND and OR (case-insensitive).
func ParseOperator(s string) (Operator, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AND":
		return OpAnd, nil
	case "OR":
		return OpOr, nil
	}
	return 0, configErrorf("unknown operator %q", s)
}

func (o Operator) String() string {
	switch o {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	}
	return fmt.Sprintf("operator(%d)", int(o))
}

func (o Operator) valid() bool {
	return o == OpAnd || o == OpOr
}

func (o Operator) MarshalText() ([]byte, error) {
	if !o.valid() {
		return nil, configErrorf("unknown operator %d", int(o))
	}
	return []byte(o.String()), nil
}

func (o *Operator) UnmarshalText(text []byte) error {
	parsed, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Criterion is a single threshold check: metric >= Threshold.
type Criterion struct {
	Kind      Kind            `yaml:"kind" json:"kind"`
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Enabled   bool            `yaml:"enabled" json:"enabled"`
}

// Group combines its enabled criteria with Operator.
type Group struct {
	Criteria []Criterion `yaml:"criteria" json:"criteria"`
	Operator Operator    `yaml:"operator" json:"operator"`
}

// Rule decides CPA eligibility for a referred user.
// Fingerprint identifies the rule's exact content and is part of report cache keys.
type Rule struct {
	ID            string   `yaml:"id" json:"id"`
	Name          string   `yaml:"name" json:"name"`
	Groups        []Group  `yaml:"groups" json:"groups"`
	GroupOperator Operator `yaml:"group_operator" json:"group_operator"`
	Active        bool     `yaml:"active" json:"active"`
	Fingerprint   string   `yaml:"-" json:"-"`
}

// Validate rejects rules with unknown kinds or operators. Decoding already fails on
// unknown names; this catches rules assembled in code from zero values.
func (r Rule) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return configErrorf("rule id must not be empty")
	}
	if !r.GroupOperator.valid() {
		return configErrorf("rule %q: invalid group_operator", r.ID)
	}
	for gi, g := range r.Groups {
		if !g.Operator.valid() {
			return configErrorf("rule %q group %d: invalid operator", r.ID, gi)
		}
		for ci, c := range g.Criteria {
			if !c.Kind.valid() {
				return configErrorf("rule %q group %d criterion %d: invalid kind", r.ID, gi, ci)
			}
		}
	}
	return nil
}

// NewRule builds a validated rule from code. Groups are copied, so later changes to
// the caller's slices do not leak into the rule. Invalid input is a ConfigurationError.
func NewRule(id, name string, groupOp Operator, groups []Group, active bool) (Rule, error) {
	rule := Rule{
		ID:            strings.TrimSpace(id),
		Name:          name,
		GroupOperator: groupOp,
		Groups:        make([]Group, len(groups)),
		Active:        active,
	}
	for i, g := range groups {
		rule.Groups[i] = Group{
			Operator: g.Operator,
			Criteria: append([]Criterion(nil), g.Criteria...),
		}
	}
	if err := rule.Validate(); err != nil {
		return Rule{}, err
	}

	content, err := json.Marshal(rule)
	if err != nil {
		return Rule{}, configErrorf("rule %q: %v", rule.ID, err)
	}
	rule.Fingerprint = fmt.Sprintf("%x", sha256.Sum256(content))
	return rule, nil
}

// PlayerMetrics are the lifetime figures of a referred user.
type PlayerMetrics struct {
	TotalDeposit decimal.Decimal `json:"total_deposit"`
	TotalBets    int64           `json:"total_bets"`
	TotalGGR     decimal.Decimal `json:"total_ggr"`
}

func (m PlayerMetrics) value(k Kind) decimal.Decimal {
	switch k {
	case KindDeposit:
		return m.TotalDeposit
	case KindBets:
		return decimal.NewFromInt(m.TotalBets)
	case KindGGR:
		return m.TotalGGR
	}
	// Rules are validated on construction; reaching here is a programming error.
	panic(fmt.Sprintf("commission: unhandled criterion kind %d", int(k)))
}
