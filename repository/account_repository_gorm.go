package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"debt-planner/domain"
)

var debtAccountTypes = []string{
	string(domain.AccountTypeCreditCard),
	string(domain.AccountTypeLineOfCredit),
	string(domain.AccountTypeMortgage),
	string(domain.AccountTypeAutoLoan),
	string(domain.AccountTypeStudentLoan),
	string(domain.AccountTypePersonalLoan),
	string(domain.AccountTypeMedicalDebt),
	string(domain.AccountTypeLiability),
}

type AccountRepositoryGorm struct {
	db *gorm.DB
}

func NewAccountRepositoryGorm(db *gorm.DB) *AccountRepositoryGorm {
	return &AccountRepositoryGorm{db: db}
}

func (r *AccountRepositoryGorm) FindDebtAccountsForOrganization(
	ctx context.Context,
	organizationID string,
) ([]domain.Account, error) {
	var records []AccountRecord
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND type IN ?", organizationID, debtAccountTypes).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("find debt accounts for %s: %w", organizationID, err)
	}

	accounts := make([]domain.Account, len(records))
	for i, rec := range records {
		accounts[i] = rec.toDomain()
	}
	return accounts, nil
}

type BudgetRepositoryGorm struct {
	db *gorm.DB
}

func NewBudgetRepositoryGorm(db *gorm.DB) *BudgetRepositoryGorm {
	return &BudgetRepositoryGorm{db: db}
}

func (r *BudgetRepositoryGorm) FindActiveBudgetSurplus(
	ctx context.Context,
	organizationID string,
) (*int64, error) {
	var budget BudgetRecord
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND is_active = ?", organizationID, true).
		Order("updated_at DESC").
		First(&budget).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active budget for %s: %w", organizationID, err)
	}
	return &budget.Surplus, nil
}
