package domain

import "time"

type AccountType string

const (
	AccountTypeCreditCard   AccountType = "credit_card"
	AccountTypeLineOfCredit AccountType = "line_of_credit"
	AccountTypeMortgage     AccountType = "mortgage"
	AccountTypeAutoLoan     AccountType = "auto_loan"
	AccountTypeStudentLoan  AccountType = "student_loan"
	AccountTypePersonalLoan AccountType = "personal_loan"
	AccountTypeMedicalDebt  AccountType = "medical_debt"
	AccountTypeLiability    AccountType = "liability"
	AccountTypeChecking     AccountType = "checking"
	AccountTypeSavings      AccountType = "savings"
)

// IsDebt reports whether accounts of this type carry a balance owed.
func (t AccountType) IsDebt() bool {
	switch t {
	case AccountTypeCreditCard,
		AccountTypeLineOfCredit,
		AccountTypeMortgage,
		AccountTypeAutoLoan,
		AccountTypeStudentLoan,
		AccountTypePersonalLoan,
		AccountTypeMedicalDebt,
		AccountTypeLiability:
		return true
	default:
		return false
	}
}

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
	AccountStatusClosed   AccountStatus = "closed"
)

// Account is a financial account as the upstream account store reports it.
// Balance follows the store's sign convention, liabilities may arrive negative.
type Account struct {
	ID                 string         `json:"id"`
	OrganizationID     string         `json:"organizationId,omitempty"`
	Name               string         `json:"name"`
	Type               AccountType    `json:"type"`
	Status             AccountStatus  `json:"status"`
	Balance            int64          `json:"balance"`
	InterestRate       *float64       `json:"interestRate,omitempty"`
	MinimumPayment     *int64         `json:"minimumPayment,omitempty"`
	PromotionalRate    *float64       `json:"promotionalRate,omitempty"`
	PromotionalEndDate *time.Time     `json:"promotionalEndDate,omitempty"`
	DeferredInterest   bool           `json:"deferredInterest,omitempty"`
	RawData            map[string]any `json:"rawData,omitempty"`
}

// RateEstimate is what a rate estimator knows about one account.
type RateEstimate struct {
	EstimatedRate        float64  `json:"estimatedRate"`
	HasPromotionalPeriod bool     `json:"hasPromotionalPeriod,omitempty"`
	PromotionalMonths    int      `json:"promotionalMonths,omitempty"`
	PromotionalRate      *float64 `json:"promotionalRate,omitempty"`
	HasDeferredInterest  bool     `json:"hasDeferredInterest,omitempty"`
}
