package domain

import "fmt"

type NoDebtAccountsError struct{}

func (e *NoDebtAccountsError) Error() string {
	return "no active debt accounts to create payoff plan"
}

// InsufficientPaymentError is returned when the monthly payment cannot
// cover every minimum payment.
type InsufficientPaymentError struct {
	Required int64
	Provided int64
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("monthly payment %d is less than the sum of minimum payments %d", e.Provided, e.Required)
}

type ValidationError struct {
	Field    string
	Observed int64
	Expected int64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: observed %d, expected %d", e.Field, e.Observed, e.Expected)
}
