package domain

import "time"

type DebtPayment struct {
	DebtID           string `json:"debtId"`
	DebtName         string `json:"debtName"`
	Payment          int64  `json:"payment"`
	Principal        int64  `json:"principal"`
	Interest         int64  `json:"interest"`
	RemainingBalance int64  `json:"remainingBalance"`
}

type MonthlyPaymentSchedule struct {
	Month          int           `json:"month"`
	Date           time.Time     `json:"date"`
	TotalPayment   int64         `json:"totalPayment"`
	Payments       []DebtPayment `json:"payments"`
	DebtsRemaining int           `json:"debtsRemaining"`
}

type PayoffPlanSummary struct {
	TotalDebt      int64     `json:"totalDebt"`
	TotalInterest  int64     `json:"totalInterest"`
	TotalPaid      int64     `json:"totalPaid"`
	MonthsToPayoff int       `json:"monthsToPayoff"`
	MonthlyPayment int64     `json:"monthlyPayment"`
	DebtFreeDate   time.Time `json:"debtFreeDate"`
}

// PlanScope tells which debts a plan covers.
type PlanScope string

const (
	PlanScopeConsumer PlanScope = "consumer" // everything but mortgages
	PlanScopeAll      PlanScope = "all"
)

type DebtPayoffPlan struct {
	ID             string                   `json:"id"`
	Name           string                   `json:"name"`
	Strategy       StrategyKind             `json:"strategy"`
	Debts          []DebtAccount            `json:"debts"`
	MonthlyPayment int64                    `json:"monthlyPayment"`
	ExtraPayment   int64                    `json:"extraPayment"`
	Summary        PayoffPlanSummary        `json:"summary"`
	Schedule       []MonthlyPaymentSchedule `json:"schedule"`
	Scope          PlanScope                `json:"scope"`
	Optimized      bool                     `json:"optimized"`
	OrganizationID string                   `json:"organizationId,omitempty"`
	OwnerID        string                   `json:"ownerId,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
}

// PlanOptions configures a single plan. MonthlyPayment wins over
// ExtraPayment; with neither the payment defaults to 110% of minimums.
type PlanOptions struct {
	Strategy       StrategyKind `json:"strategy"`
	MonthlyPayment *int64       `json:"monthlyPayment,omitempty"`
	ExtraPayment   *int64       `json:"extraPayment,omitempty"`
	CustomOrder    []string     `json:"customOrder,omitempty"`
}

type StrategyOptions struct {
	MonthlyPayment *int64 `json:"monthlyPayment,omitempty"`
	ExtraPayment   *int64 `json:"extraPayment,omitempty"`
}
