package domain

import "time"

type StrategyKind string

const (
	StrategyAvalanche StrategyKind = "avalanche" // highest rate first
	StrategySnowball  StrategyKind = "snowball"  // smallest balance first
	StrategyCustom    StrategyKind = "custom"
)

func (s StrategyKind) Valid() bool {
	switch s {
	case StrategyAvalanche, StrategySnowball, StrategyCustom:
		return true
	}
	return false
}

// DebtAccount is an enriched debt ready for simulation. Amounts are in
// minor currency units and Balance is always the positive amount owed.
type DebtAccount struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Type               AccountType `json:"type"`
	Balance            int64       `json:"balance"`
	InterestRate       float64     `json:"interestRate"`
	MinimumPayment     int64       `json:"minimumPayment"`
	PromotionalRate    *float64    `json:"promotionalRate,omitempty"`
	PromotionalEndDate *time.Time  `json:"promotionalEndDate,omitempty"`
	DeferredInterest   bool        `json:"deferredInterest,omitempty"`
}
