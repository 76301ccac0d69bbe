package repository

import (
	"context"

	"debt-planner/domain"
)

// AccountRepository finds the accounts an organization may owe on.
type AccountRepository interface {
	FindDebtAccountsForOrganization(ctx context.Context, organizationID string) ([]domain.Account, error)
}

// BudgetRepository returns the monthly surplus of the organization's active
// budget in minor units, or nil when there is none.
type BudgetRepository interface {
	FindActiveBudgetSurplus(ctx context.Context, organizationID string) (*int64, error)
}
