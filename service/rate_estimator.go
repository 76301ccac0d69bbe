package service

import (
	"context"

	"debt-planner/domain"
)

// RateEstimator estimates interest terms for a batch of accounts, keyed by
// account id. Accounts missing from the result fall back to the static table.
type RateEstimator interface {
	EstimateInterestRates(ctx context.Context, accounts []domain.Account) (map[string]domain.RateEstimate, error)
}

// StaticRateEstimator answers from the fallback rate table. It never fails.
type StaticRateEstimator struct{}

func (StaticRateEstimator) EstimateInterestRates(
	_ context.Context,
	accounts []domain.Account,
) (map[string]domain.RateEstimate, error) {
	out := make(map[string]domain.RateEstimate, len(accounts))
	for _, a := range accounts {
		out[a.ID] = domain.RateEstimate{EstimatedRate: FallbackInterestRate(a.Type)}
	}
	return out, nil
}
