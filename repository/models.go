package repository

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"

	"debt-planner/domain"
)

// AccountRecord is the persisted shape of a financial account.
type AccountRecord struct {
	ID        string `gorm:"primaryKey;type:varchar(64)"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	OrganizationID     string   `gorm:"type:varchar(64);index"`
	Name               string   `gorm:"type:varchar(255)"`
	Type               string   `gorm:"type:varchar(50);index"`
	Status             string   `gorm:"type:varchar(20);default:'active'"`
	Balance            int64    // minor units, store sign convention
	InterestRate       *float64 `gorm:"type:decimal(9,6)"`
	MinimumPayment     *int64
	PromotionalRate    *float64 `gorm:"type:decimal(9,6)"`
	PromotionalEndDate *time.Time
	DeferredInterest   bool   `gorm:"default:false"`
	RawData            string `gorm:"type:text"` // provider JSON
}

func (AccountRecord) TableName() string { return "financial_accounts" }

func (r AccountRecord) toDomain() domain.Account {
	a := domain.Account{
		ID:                 r.ID,
		OrganizationID:     r.OrganizationID,
		Name:               r.Name,
		Type:               domain.AccountType(r.Type),
		Status:             domain.AccountStatus(r.Status),
		Balance:            r.Balance,
		InterestRate:       r.InterestRate,
		MinimumPayment:     r.MinimumPayment,
		PromotionalRate:    r.PromotionalRate,
		PromotionalEndDate: r.PromotionalEndDate,
		DeferredInterest:   r.DeferredInterest,
	}
	if r.RawData != "" {
		if err := json.Unmarshal([]byte(r.RawData), &a.RawData); err != nil {
			log.Printf("Warning: ignoring unreadable provider data for account %s: %v", r.ID, err)
		}
	}
	return a
}

// BudgetRecord holds an organization's budget; Surplus is the monthly amount
// left after planned spending, in minor units.
type BudgetRecord struct {
	ID             uint `gorm:"primarykey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	OrganizationID string `gorm:"type:varchar(64);index"`
	Name           string `gorm:"type:varchar(255)"`
	IsActive       bool   `gorm:"default:true"`
	Surplus        int64
}

func (BudgetRecord) TableName() string { return "budgets" }
