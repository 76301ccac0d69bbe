package service

import (
	"log"
	"math"
	"time"

	"debt-planner/domain"
)

// debtState is one debt's position at the start of a month. States are
// values; each month produces a fresh slice.
type debtState struct {
	debt            domain.DebtAccount
	balance         int64
	accruedDeferred int64
}

// SimulatePayoff runs the month-by-month payoff of debts, already in
// strategy order, under a fixed monthly budget. Month m is dated start+m
// months. The run stops when every balance is zero or after
// MaxDebtPayoffMonths, in which case the truncated schedule is returned.
func SimulatePayoff(
	debts []domain.DebtAccount,
	monthlyPayment int64,
	start time.Time,
) ([]domain.MonthlyPaymentSchedule, error) {
	required := totalMinimums(debts)
	if monthlyPayment < required {
		return nil, &domain.InsufficientPaymentError{Required: required, Provided: monthlyPayment}
	}
	if len(debts) == 0 {
		return []domain.MonthlyPaymentSchedule{}, nil
	}

	states := make([]debtState, len(debts))
	for i, d := range debts {
		states[i] = debtState{debt: d, balance: max(d.Balance, 0)}
	}

	schedule := make([]domain.MonthlyPaymentSchedule, 0, 64)
	for month := 1; month <= MaxDebtPayoffMonths; month++ {
		var row domain.MonthlyPaymentSchedule
		states, row = nextMonthState(states, month, start.AddDate(0, month, 0), monthlyPayment)
		schedule = append(schedule, row)
		if row.DebtsRemaining == 0 {
			return schedule, nil
		}
	}

	log.Printf("Warning: debt payoff simulation reached maximum months limit (%d) with %d debts remaining",
		MaxDebtPayoffMonths, schedule[len(schedule)-1].DebtsRemaining)
	return schedule, nil
}

// nextMonthState applies one month of interest and payments to states and
// returns the new states together with the month's schedule row.
func nextMonthState(
	states []debtState,
	month int,
	date time.Time,
	monthlyPayment int64,
) ([]debtState, domain.MonthlyPaymentSchedule) {
	next := make([]debtState, len(states))
	copy(next, states)

	row := domain.MonthlyPaymentSchedule{
		Month:        month,
		Date:         date,
		TotalPayment: monthlyPayment,
		Payments:     make([]domain.DebtPayment, 0, len(states)),
	}
	// index into row.Payments for each state, -1 when inactive this month
	rowIndex := make([]int, len(states))

	remaining := monthlyPayment
	for i := range next {
		rowIndex[i] = -1
		s := &next[i]
		if s.balance <= 0 {
			continue
		}

		inPromo := inPromotionalPeriod(s.debt, date)
		rate := s.debt.InterestRate
		if inPromo && s.debt.PromotionalRate != nil {
			rate = *s.debt.PromotionalRate
		}
		interestCharge := monthlyInterest(s.balance, rate)

		if inPromo && s.debt.DeferredInterest {
			s.accruedDeferred = addMinor(s.accruedDeferred, monthlyInterest(s.balance, s.debt.InterestRate))
		}
		if !inPromo && s.debt.DeferredInterest && promotionJustEnded(s.debt, date) {
			interestCharge = addMinor(interestCharge, s.accruedDeferred)
			s.accruedDeferred = 0
		}
		// A balance that outgrows int64 stops accruing at the cap.
		interestCharge = min(interestCharge, math.MaxInt64-s.balance)

		payment := min(s.debt.MinimumPayment, s.balance+interestCharge, remaining)
		interest := min(interestCharge, payment)

		s.balance = s.balance + interestCharge - payment
		remaining -= payment

		rowIndex[i] = len(row.Payments)
		row.Payments = append(row.Payments, domain.DebtPayment{
			DebtID:           s.debt.ID,
			DebtName:         s.debt.Name,
			Payment:          payment,
			Principal:        payment - interest,
			Interest:         interest,
			RemainingBalance: max(s.balance, 0),
		})
	}

	// Leftover budget goes to the first open debt in strategy order only.
	if remaining > 0 {
		for i := range next {
			s := &next[i]
			if s.balance <= 0 || rowIndex[i] < 0 {
				continue
			}
			extra := min(remaining, s.balance)
			s.balance -= extra
			p := &row.Payments[rowIndex[i]]
			p.Payment += extra
			p.Principal += extra
			p.RemainingBalance = max(s.balance, 0)
			break
		}
	}

	for _, s := range next {
		if s.balance > 0 {
			row.DebtsRemaining++
		}
	}
	return next, row
}

func inPromotionalPeriod(d domain.DebtAccount, date time.Time) bool {
	return d.PromotionalEndDate != nil && date.Before(*d.PromotionalEndDate)
}

// promotionJustEnded reports whether the promotional window closed within
// the lookback window before date. Month steps are not always 30 days, so
// a boundary can be missed.
func promotionJustEnded(d domain.DebtAccount, date time.Time) bool {
	if d.PromotionalEndDate == nil {
		return false
	}
	return date.AddDate(0, 0, -PromotionalLookbackDays).Before(*d.PromotionalEndDate)
}
