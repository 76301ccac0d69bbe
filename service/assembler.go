package service

import (
	"time"

	"github.com/google/uuid"

	"debt-planner/domain"
)

// PlanName returns the display name for a strategy.
func PlanName(strategy domain.StrategyKind) string {
	switch strategy {
	case domain.StrategyAvalanche:
		return "Avalanche Strategy (Highest Interest First)"
	case domain.StrategySnowball:
		return "Snowball Strategy (Smallest Balance First)"
	default:
		return "Custom Payoff Plan"
	}
}

// SummarizeSchedule aggregates a finished schedule. totalDebt comes from the
// starting balances, not from the schedule.
func SummarizeSchedule(
	debts []domain.DebtAccount,
	schedule []domain.MonthlyPaymentSchedule,
	now time.Time,
) domain.PayoffPlanSummary {
	var summary domain.PayoffPlanSummary
	for _, d := range debts {
		summary.TotalDebt += d.Balance
	}
	for _, row := range schedule {
		for _, p := range row.Payments {
			summary.TotalInterest += p.Interest
		}
	}
	summary.TotalPaid = summary.TotalDebt + summary.TotalInterest
	summary.MonthsToPayoff = len(schedule)
	summary.DebtFreeDate = now
	if len(schedule) > 0 {
		summary.MonthlyPayment = schedule[0].TotalPayment
		summary.DebtFreeDate = schedule[len(schedule)-1].Date
	}
	return summary
}

// ValidateSchedule checks that every row conserves money: payment equals
// principal plus interest, and a month never spends more than its budget.
func ValidateSchedule(schedule []domain.MonthlyPaymentSchedule) error {
	for _, row := range schedule {
		var spent int64
		for _, p := range row.Payments {
			if p.Principal+p.Interest != p.Payment {
				return &domain.ValidationError{
					Field:    "payment " + p.DebtID,
					Observed: p.Principal + p.Interest,
					Expected: p.Payment,
				}
			}
			if p.Payment < 0 || p.Interest < 0 || p.Principal < 0 {
				return &domain.ValidationError{
					Field:    "payment " + p.DebtID,
					Observed: min(p.Payment, p.Interest, p.Principal),
					Expected: 0,
				}
			}
			if p.RemainingBalance < 0 {
				return &domain.ValidationError{
					Field:    "remainingBalance " + p.DebtID,
					Observed: p.RemainingBalance,
					Expected: 0,
				}
			}
			spent += p.Payment
		}
		if spent > row.TotalPayment {
			return &domain.ValidationError{Field: "totalPayment", Observed: spent, Expected: row.TotalPayment}
		}
	}
	return nil
}

// AssemblePlan packages a validated schedule into a plan.
func AssemblePlan(
	strategy domain.StrategyKind,
	debts []domain.DebtAccount,
	monthlyPayment int64,
	schedule []domain.MonthlyPaymentSchedule,
	now time.Time,
) (domain.DebtPayoffPlan, error) {
	if err := ValidateSchedule(schedule); err != nil {
		return domain.DebtPayoffPlan{}, err
	}
	return domain.DebtPayoffPlan{
		ID:             uuid.NewString(),
		Name:           PlanName(strategy),
		Strategy:       strategy,
		Debts:          debts,
		MonthlyPayment: monthlyPayment,
		ExtraPayment:   monthlyPayment - totalMinimums(debts),
		Summary:        SummarizeSchedule(debts, schedule, now),
		Schedule:       schedule,
		Scope:          domain.PlanScopeAll,
		CreatedAt:      now,
	}, nil
}
