package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"debt-planner/domain"
	"debt-planner/repository"
)

type failingEstimator struct{ called bool }

func (f *failingEstimator) EstimateInterestRates(context.Context, []domain.Account) (map[string]domain.RateEstimate, error) {
	f.called = true
	return nil, errors.New("model unavailable")
}

type fixedEstimator map[string]domain.RateEstimate

func (f fixedEstimator) EstimateInterestRates(context.Context, []domain.Account) (map[string]domain.RateEstimate, error) {
	return f, nil
}

type failingBudgets struct{}

func (failingBudgets) FindActiveBudgetSurplus(context.Context, string) (*int64, error) {
	return nil, errors.New("budget store down")
}

type failingAccounts struct{}

func (failingAccounts) FindDebtAccountsForOrganization(context.Context, string) ([]domain.Account, error) {
	return nil, errors.New("account store down")
}

func seededAccounts(t *testing.T) *repository.AccountRepositoryMemory {
	t.Helper()
	repo := repository.NewAccountRepositoryMemory()
	for _, a := range []domain.Account{
		{ID: "card", OrganizationID: "org", Name: "Visa", Type: domain.AccountTypeCreditCard,
			Status: domain.AccountStatusActive, Balance: -400000},
		{ID: "auto", OrganizationID: "org", Name: "Car", Type: domain.AccountTypeAutoLoan,
			Status: domain.AccountStatusActive, Balance: -1500000},
		{ID: "home", OrganizationID: "org", Name: "Mortgage", Type: domain.AccountTypeMortgage,
			Status: domain.AccountStatusActive, Balance: -25000000},
		{ID: "chk", OrganizationID: "org", Name: "Checking", Type: domain.AccountTypeChecking,
			Status: domain.AccountStatusActive, Balance: 300000},
	} {
		require.NoError(t, repo.Save(a))
	}
	return repo
}

func TestGenerateEnrichedPayoffPlans_Scenarios(t *testing.T) {
	t.Parallel()

	svc := NewPlanningService(seededAccounts(t), repository.NewBudgetRepositoryMemory(), nil, nil).WithClock(fixedClock)
	plans, err := svc.GenerateEnrichedPayoffPlans(context.Background(), "org", "user-1", nil)
	require.NoError(t, err)
	require.Len(t, plans, 6)

	// card 8000 (2% of 4000.00), auto and mortgage amortized over 120 months
	cardMin := int64(8000)
	autoMin := EstimateMinimumPayment(domain.AccountTypeAutoLoan, 1500000, 0.0699)
	homeMin := EstimateMinimumPayment(domain.AccountTypeMortgage, 25000000, 0.0699)
	consumerMin := cardMin + autoMin

	type key struct {
		scope     domain.PlanScope
		optimized bool
		strategy  domain.StrategyKind
	}
	got := map[key]domain.DebtPayoffPlan{}
	for _, p := range plans {
		require.Equal(t, "org", p.OrganizationID)
		require.Equal(t, "user-1", p.OwnerID)
		got[key{p.Scope, p.Optimized, p.Strategy}] = p
	}

	for _, strategy := range []domain.StrategyKind{domain.StrategyAvalanche, domain.StrategySnowball} {
		minPace := got[key{domain.PlanScopeConsumer, false, strategy}]
		require.Equal(t, scaleMinor(consumerMin, 1.1), minPace.MonthlyPayment)
		require.Len(t, minPace.Debts, 2)

		optimized := got[key{domain.PlanScopeConsumer, true, strategy}]
		require.Equal(t, scaleMinor(consumerMin, 2.2), optimized.MonthlyPayment)
		require.Less(t, optimized.Summary.MonthsToPayoff, minPace.Summary.MonthsToPayoff)

		all := got[key{domain.PlanScopeAll, false, strategy}]
		require.Equal(t, scaleMinor(consumerMin+homeMin, 1.1), all.MonthlyPayment)
		require.Len(t, all.Debts, 3)
	}
}

func TestGenerateEnrichedPayoffPlans_BudgetSurplus(t *testing.T) {
	t.Parallel()

	budgets := repository.NewBudgetRepositoryMemory()
	budgets.SetSurplus("org", 50000)
	svc := NewPlanningService(seededAccounts(t), budgets, nil, nil).WithClock(fixedClock)

	plans, err := svc.GenerateEnrichedPayoffPlans(context.Background(), "org", "user-1", nil)
	require.NoError(t, err)

	consumerMin := int64(8000) + EstimateMinimumPayment(domain.AccountTypeAutoLoan, 1500000, 0.0699)
	for _, p := range plans {
		if p.Optimized {
			require.Equal(t, consumerMin+50000, p.MonthlyPayment)
		}
	}
}

func TestGenerateEnrichedPayoffPlans_ExplicitPayment(t *testing.T) {
	t.Parallel()

	svc := NewPlanningService(seededAccounts(t), failingBudgets{}, nil, nil).WithClock(fixedClock)
	plans, err := svc.GenerateEnrichedPayoffPlans(context.Background(), "org", "user-1", ptr(int64(500000)))
	require.NoError(t, err)
	require.Len(t, plans, 2)
	for _, p := range plans {
		require.Equal(t, domain.PlanScopeAll, p.Scope)
		require.False(t, p.Optimized)
		require.Equal(t, int64(500000), p.MonthlyPayment)
	}
}

func TestGenerateEnrichedPayoffPlans_NoMortgageKeepsAllScope(t *testing.T) {
	t.Parallel()

	repo := repository.NewAccountRepositoryMemory()
	require.NoError(t, repo.Save(domain.Account{ID: "card", OrganizationID: "org", Type: domain.AccountTypeCreditCard,
		Status: domain.AccountStatusActive, Balance: 200000}))

	svc := NewPlanningService(repo, failingBudgets{}, nil, nil).WithClock(fixedClock)
	plans, err := svc.GenerateEnrichedPayoffPlans(context.Background(), "org", "", nil)
	require.NoError(t, err)
	require.Len(t, plans, 6)

	scopes := map[domain.PlanScope]int{}
	for _, p := range plans {
		scopes[p.Scope]++
		if p.Scope == domain.PlanScopeAll {
			require.False(t, p.Optimized)
			require.Equal(t, scaleMinor(4000, DefaultPaymentFactor), p.MonthlyPayment)
			require.Len(t, p.Debts, 1)
		}
	}
	require.Equal(t, 4, scopes[domain.PlanScopeConsumer])
	require.Equal(t, 2, scopes[domain.PlanScopeAll])
}

func TestGenerateEnrichedPayoffPlans_EstimatorFallback(t *testing.T) {
	t.Parallel()

	estimator := &failingEstimator{}
	svc := NewPlanningService(seededAccounts(t), nil, estimator, nil).WithClock(fixedClock)
	plans, err := svc.GenerateEnrichedPayoffPlans(context.Background(), "org", "user-1", nil)
	require.NoError(t, err)
	require.True(t, estimator.called)
	require.NotEmpty(t, plans)
	for _, d := range plans[0].Debts {
		require.Equal(t, FallbackInterestRate(d.Type), d.InterestRate)
	}
}

func TestGenerateEnrichedPayoffPlans_UsesEstimates(t *testing.T) {
	t.Parallel()

	estimator := fixedEstimator{
		"card": {EstimatedRate: 0.2899, HasPromotionalPeriod: true, PromotionalMonths: 6, HasDeferredInterest: true},
	}
	svc := NewPlanningService(seededAccounts(t), nil, estimator, nil).WithClock(fixedClock)
	plans, err := svc.GenerateEnrichedPayoffPlans(context.Background(), "org", "user-1", ptr(int64(600000)))
	require.NoError(t, err)

	var card domain.DebtAccount
	for _, d := range plans[0].Debts {
		if d.ID == "card" {
			card = d
		}
	}
	require.Equal(t, 0.2899, card.InterestRate)
	require.True(t, card.DeferredInterest)
	require.Equal(t, planStart.AddDate(0, 6, 0), *card.PromotionalEndDate)
	// the loans were not estimated and use the table
	require.Equal(t, 0.0699, plans[0].Debts[len(plans[0].Debts)-1].InterestRate)
}

func TestGenerateEnrichedPayoffPlans_Errors(t *testing.T) {
	t.Parallel()

	empty := NewPlanningService(repository.NewAccountRepositoryMemory(), nil, nil, nil)
	_, err := empty.GenerateEnrichedPayoffPlans(context.Background(), "org", "", nil)
	var noDebts *domain.NoDebtAccountsError
	require.ErrorAs(t, err, &noDebts)

	broken := NewPlanningService(failingAccounts{}, nil, nil, nil)
	_, err = broken.GenerateEnrichedPayoffPlans(context.Background(), "org", "", nil)
	require.ErrorContains(t, err, "account store down")

	low := NewPlanningService(seededAccounts(t), nil, nil, nil).WithClock(fixedClock)
	_, err = low.GenerateEnrichedPayoffPlans(context.Background(), "org", "", ptr(int64(100)))
	var insufficient *domain.InsufficientPaymentError
	require.ErrorAs(t, err, &insufficient)
}
