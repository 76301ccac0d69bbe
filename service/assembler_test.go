package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"debt-planner/domain"
)

func TestPlanName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Avalanche Strategy (Highest Interest First)", PlanName(domain.StrategyAvalanche))
	require.Equal(t, "Snowball Strategy (Smallest Balance First)", PlanName(domain.StrategySnowball))
	require.Equal(t, "Custom Payoff Plan", PlanName(domain.StrategyCustom))
}

func TestSummarizeSchedule(t *testing.T) {
	t.Parallel()

	debts := twoDebts()
	schedule, err := SimulatePayoff(OrderDebts(debts, domain.StrategyAvalanche, nil), 6000, planStart)
	require.NoError(t, err)

	summary := SummarizeSchedule(debts, schedule, planStart)
	require.Equal(t, int64(150000), summary.TotalDebt)
	require.Equal(t, summary.TotalDebt+summary.TotalInterest, summary.TotalPaid)
	require.Equal(t, len(schedule), summary.MonthsToPayoff)
	require.Equal(t, int64(6000), summary.MonthlyPayment)
	require.Equal(t, schedule[len(schedule)-1].Date, summary.DebtFreeDate)

	var paid, interest int64
	for _, row := range schedule {
		for _, p := range row.Payments {
			paid += p.Payment
			interest += p.Interest
		}
	}
	require.Equal(t, interest, summary.TotalInterest)
	require.Equal(t, paid, summary.TotalPaid)
}

func TestSummarizeSchedule_Empty(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.May, 4, 10, 0, 0, 0, time.UTC)
	summary := SummarizeSchedule(nil, nil, now)
	require.Zero(t, summary.MonthlyPayment)
	require.Zero(t, summary.MonthsToPayoff)
	require.Equal(t, now, summary.DebtFreeDate)
}

func TestValidateSchedule(t *testing.T) {
	t.Parallel()

	good := []domain.MonthlyPaymentSchedule{{
		Month:        1,
		TotalPayment: 1000,
		Payments:     []domain.DebtPayment{{DebtID: "a", Payment: 1000, Principal: 900, Interest: 100}},
	}}
	require.NoError(t, ValidateSchedule(good))

	broken := []domain.MonthlyPaymentSchedule{{
		Month:        1,
		TotalPayment: 1000,
		Payments:     []domain.DebtPayment{{DebtID: "a", Payment: 1000, Principal: 899, Interest: 100}},
	}}
	var verr *domain.ValidationError
	require.ErrorAs(t, ValidateSchedule(broken), &verr)
	require.Equal(t, int64(999), verr.Observed)
	require.Equal(t, int64(1000), verr.Expected)

	overspent := []domain.MonthlyPaymentSchedule{{
		Month:        1,
		TotalPayment: 500,
		Payments:     []domain.DebtPayment{{DebtID: "a", Payment: 600, Principal: 600}},
	}}
	require.ErrorAs(t, ValidateSchedule(overspent), &verr)
	require.Equal(t, "totalPayment", verr.Field)

	negative := []domain.MonthlyPaymentSchedule{{
		Month:        1,
		TotalPayment: 0,
		Payments:     []domain.DebtPayment{{DebtID: "a", Payment: -500, Interest: -500}},
	}}
	require.ErrorAs(t, ValidateSchedule(negative), &verr)
	require.Equal(t, "payment a", verr.Field)
	require.Equal(t, int64(-500), verr.Observed)
	require.Equal(t, int64(0), verr.Expected)
}

func TestAssemblePlan(t *testing.T) {
	t.Parallel()

	debts := OrderDebts(twoDebts(), domain.StrategySnowball, nil)
	schedule, err := SimulatePayoff(debts, 8000, planStart)
	require.NoError(t, err)

	plan, err := AssemblePlan(domain.StrategySnowball, debts, 8000, schedule, planStart)
	require.NoError(t, err)
	require.NotEmpty(t, plan.ID)
	require.Equal(t, "Snowball Strategy (Smallest Balance First)", plan.Name)
	require.Equal(t, int64(3000), plan.ExtraPayment)
	require.Equal(t, planStart, plan.CreatedAt)
	require.Equal(t, domain.PlanScopeAll, plan.Scope)
	require.Equal(t, len(schedule), plan.Summary.MonthsToPayoff)
}
