package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"debt-planner/domain"
	"debt-planner/repository"
)

// PlanningService produces the scenario set for an organization: consumer
// debt at minimum pace and optimized pace, plus all debt including mortgages.
type PlanningService struct {
	accounts  repository.AccountRepository
	budgets   repository.BudgetRepository
	estimator RateEstimator
	payoff    *DebtPayoffService
	now       func() time.Time
}

// NewPlanningService wires the orchestrator. A nil estimator means the
// static rate table.
func NewPlanningService(
	accounts repository.AccountRepository,
	budgets repository.BudgetRepository,
	estimator RateEstimator,
	payoff *DebtPayoffService,
) *PlanningService {
	if estimator == nil {
		estimator = StaticRateEstimator{}
	}
	if payoff == nil {
		payoff = NewDebtPayoffService()
	}
	return &PlanningService{
		accounts:  accounts,
		budgets:   budgets,
		estimator: estimator,
		payoff:    payoff,
		now:       time.Now,
	}
}

func (s *PlanningService) WithClock(now func() time.Time) *PlanningService {
	s.now = now
	return s
}

type scenario struct {
	scope     domain.PlanScope
	optimized bool
	strategy  domain.StrategyKind
	debts     []domain.DebtAccount
	payment   int64
}

// GenerateEnrichedPayoffPlans loads the organization's debts, enriches them
// and simulates every scenario. ownerID is recorded on each plan.
func (s *PlanningService) GenerateEnrichedPayoffPlans(
	ctx context.Context,
	organizationID string,
	ownerID string,
	monthlyPayment *int64,
) ([]domain.DebtPayoffPlan, error) {
	accounts, err := s.accounts.FindDebtAccountsForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	debts := s.enrich(ctx, accounts, now)
	if len(debts) == 0 {
		return nil, &domain.NoDebtAccountsError{}
	}

	scenarios := s.buildScenarios(ctx, organizationID, debts, monthlyPayment)

	plans := make([]domain.DebtPayoffPlan, len(scenarios))
	g, _ := errgroup.WithContext(ctx)
	for i, sc := range scenarios {
		g.Go(func() error {
			plan, err := s.payoff.PlanDebts(sc.debts, domain.PlanOptions{
				Strategy:       sc.strategy,
				MonthlyPayment: &sc.payment,
			}, now)
			if err != nil {
				return fmt.Errorf("%s %s plan: %w", sc.scope, sc.strategy, err)
			}
			plan.Scope = sc.scope
			plan.Optimized = sc.optimized
			plan.OrganizationID = organizationID
			plan.OwnerID = ownerID
			plans[i] = plan
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}

// enrich filters and enriches accounts. Estimator failures are logged and
// fall back to the static table.
func (s *PlanningService) enrich(ctx context.Context, accounts []domain.Account, now time.Time) []domain.DebtAccount {
	candidates := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		if IsPlannable(a) {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	estimates, err := s.estimator.EstimateInterestRates(ctx, candidates)
	if err != nil {
		log.Printf("Warning: interest rate estimation failed, using fallback rates: %v", err)
		estimates, _ = StaticRateEstimator{}.EstimateInterestRates(ctx, candidates)
	}
	return EnrichAccounts(candidates, estimates, now)
}

func (s *PlanningService) buildScenarios(
	ctx context.Context,
	organizationID string,
	debts []domain.DebtAccount,
	monthlyPayment *int64,
) []scenario {
	consumer := make([]domain.DebtAccount, 0, len(debts))
	for _, d := range debts {
		if d.Type != domain.AccountTypeMortgage {
			consumer = append(consumer, d)
		}
	}

	var out []scenario
	add := func(scope domain.PlanScope, optimized bool, set []domain.DebtAccount, payment int64) {
		for _, strategy := range []domain.StrategyKind{domain.StrategyAvalanche, domain.StrategySnowball} {
			out = append(out, scenario{scope: scope, optimized: optimized, strategy: strategy, debts: set, payment: payment})
		}
	}

	if monthlyPayment != nil {
		add(domain.PlanScopeAll, false, debts, *monthlyPayment)
		return out
	}

	if len(consumer) > 0 {
		consumerMinimums := totalMinimums(consumer)
		add(domain.PlanScopeConsumer, false, consumer, scaleMinor(consumerMinimums, DefaultPaymentFactor))
		add(domain.PlanScopeConsumer, true, consumer, s.optimizedPayment(ctx, organizationID, consumerMinimums))
	}
	add(domain.PlanScopeAll, false, debts, scaleMinor(totalMinimums(debts), DefaultPaymentFactor))
	return out
}

// optimizedPayment is minimums plus the budget surplus when one exists,
// otherwise 220% of minimums.
func (s *PlanningService) optimizedPayment(ctx context.Context, organizationID string, minimums int64) int64 {
	if s.budgets != nil {
		surplus, err := s.budgets.FindActiveBudgetSurplus(ctx, organizationID)
		if err != nil {
			log.Printf("Warning: budget lookup failed for %s: %v", organizationID, err)
		} else if surplus != nil && *surplus > 0 {
			return minimums + *surplus
		}
	}
	return scaleMinor(minimums, OptimizedPaymentFactor)
}
