package service

import (
	"slices"

	"debt-planner/domain"
)

// OrderDebts returns a copy of debts in processing order for the strategy.
// The sort is stable so equal keys keep their input order. For custom,
// ids missing from customOrder go last.
func OrderDebts(debts []domain.DebtAccount, strategy domain.StrategyKind, customOrder []string) []domain.DebtAccount {
	ordered := slices.Clone(debts)

	switch strategy {
	case domain.StrategyAvalanche:
		slices.SortStableFunc(ordered, func(a, b domain.DebtAccount) int {
			switch {
			case a.InterestRate > b.InterestRate:
				return -1
			case a.InterestRate < b.InterestRate:
				return 1
			}
			return 0
		})
	case domain.StrategySnowball:
		slices.SortStableFunc(ordered, func(a, b domain.DebtAccount) int {
			switch {
			case a.Balance < b.Balance:
				return -1
			case a.Balance > b.Balance:
				return 1
			}
			return 0
		})
	case domain.StrategyCustom:
		rank := make(map[string]int, len(customOrder))
		for i, id := range customOrder {
			if _, seen := rank[id]; !seen {
				rank[id] = i
			}
		}
		position := func(id string) int {
			if r, ok := rank[id]; ok {
				return r
			}
			return len(customOrder)
		}
		slices.SortStableFunc(ordered, func(a, b domain.DebtAccount) int {
			return position(a.ID) - position(b.ID)
		})
	}
	return ordered
}
