package repository

import (
	"context"
	"sync"

	"debt-planner/domain"
)

// AccountRepositoryMemory is an in-memory implementation of AccountRepository.
type AccountRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string][]domain.Account
}

// NewAccountRepositoryMemory creates a new in-memory account repository.
func NewAccountRepositoryMemory() *AccountRepositoryMemory {
	return &AccountRepositoryMemory{
		data: make(map[string][]domain.Account),
	}
}

// Save stores the account under its organization.
func (r *AccountRepositoryMemory) Save(account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	accounts := r.data[account.OrganizationID]
	for i := range accounts {
		if accounts[i].ID == account.ID {
			accounts[i] = account
			return nil
		}
	}
	r.data[account.OrganizationID] = append(accounts, account)
	return nil
}

func (r *AccountRepositoryMemory) FindDebtAccountsForOrganization(
	_ context.Context,
	organizationID string,
) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Account, 0, len(r.data[organizationID]))
	for _, a := range r.data[organizationID] {
		if a.Type.IsDebt() {
			out = append(out, a)
		}
	}
	return out, nil
}

// BudgetRepositoryMemory is an in-memory implementation of BudgetRepository.
type BudgetRepositoryMemory struct {
	mu        sync.RWMutex
	surpluses map[string]int64
}

func NewBudgetRepositoryMemory() *BudgetRepositoryMemory {
	return &BudgetRepositoryMemory{surpluses: make(map[string]int64)}
}

func (r *BudgetRepositoryMemory) SetSurplus(organizationID string, surplus int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surpluses[organizationID] = surplus
}

func (r *BudgetRepositoryMemory) FindActiveBudgetSurplus(
	_ context.Context,
	organizationID string,
) (*int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	surplus, ok := r.surpluses[organizationID]
	if !ok {
		return nil, nil
	}
	return &surplus, nil
}
