package service

const (
	MaxDebtPayoffMonths = 600 // 50 years, safety ceiling for a simulation
	EstimatedLoanTerm   = 120 // assumed term for installment loan minimums

	// Lookback used to detect a promotional window that ended last month.
	PromotionalLookbackDays = 30

	CreditCardMinimumRate  = 0.02
	CreditCardMinimumFloor = 2500 // $25
	MedicalMinimumRate     = 0.01
	MedicalMinimumFloor    = 5000 // $50
	OtherMinimumRate       = 0.02
	OtherMinimumFloor      = 2500

	DefaultPaymentFactor   = 1.1 // default budget over minimums
	OptimizedPaymentFactor = 2.2

	DefaultInterestRate = 0.1099
)
