package service

import (
	"errors"
	"fmt"
	"time"

	"debt-planner/domain"
)

var ErrInvalidStrategy = errors.New("invalid strategy")

type DebtPayoffService struct {
	now func() time.Time
}

func NewDebtPayoffService() *DebtPayoffService {
	return &DebtPayoffService{now: time.Now}
}

// WithClock replaces the clock used for plan dates.
func (s *DebtPayoffService) WithClock(now func() time.Time) *DebtPayoffService {
	s.now = now
	return s
}

// GeneratePlan builds one plan from raw accounts using the static estimates.
func (s *DebtPayoffService) GeneratePlan(
	accounts []domain.Account,
	opts domain.PlanOptions,
) (domain.DebtPayoffPlan, error) {
	now := s.now()
	debts := EnrichAccounts(accounts, nil, now)
	if len(debts) == 0 {
		return domain.DebtPayoffPlan{}, &domain.NoDebtAccountsError{}
	}
	return s.PlanDebts(debts, opts, now)
}

// PlanDebts builds one plan from already enriched debts.
func (s *DebtPayoffService) PlanDebts(
	debts []domain.DebtAccount,
	opts domain.PlanOptions,
	now time.Time,
) (domain.DebtPayoffPlan, error) {
	if len(debts) == 0 {
		return domain.DebtPayoffPlan{}, &domain.NoDebtAccountsError{}
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = domain.StrategyAvalanche
	}
	if !strategy.Valid() {
		return domain.DebtPayoffPlan{}, fmt.Errorf("%w %q", ErrInvalidStrategy, opts.Strategy)
	}

	monthly := resolveMonthlyPayment(debts, opts.MonthlyPayment, opts.ExtraPayment)
	ordered := OrderDebts(debts, strategy, opts.CustomOrder)

	schedule, err := SimulatePayoff(ordered, monthly, now)
	if err != nil {
		return domain.DebtPayoffPlan{}, err
	}
	return AssemblePlan(strategy, ordered, monthly, schedule, now)
}

// GeneratePayoffPlans builds the avalanche and snowball plans side by side.
func (s *DebtPayoffService) GeneratePayoffPlans(
	accounts []domain.Account,
	opts domain.StrategyOptions,
) ([]domain.DebtPayoffPlan, error) {
	now := s.now()
	debts := EnrichAccounts(accounts, nil, now)
	if len(debts) == 0 {
		return nil, &domain.NoDebtAccountsError{}
	}

	plans := make([]domain.DebtPayoffPlan, 0, 2)
	for _, strategy := range []domain.StrategyKind{domain.StrategyAvalanche, domain.StrategySnowball} {
		plan, err := s.PlanDebts(debts, domain.PlanOptions{
			Strategy:       strategy,
			MonthlyPayment: opts.MonthlyPayment,
			ExtraPayment:   opts.ExtraPayment,
		}, now)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func resolveMonthlyPayment(debts []domain.DebtAccount, monthly, extra *int64) int64 {
	minimums := totalMinimums(debts)
	switch {
	case monthly != nil:
		return *monthly
	case extra != nil:
		return minimums + *extra
	default:
		return scaleMinor(minimums, DefaultPaymentFactor)
	}
}
