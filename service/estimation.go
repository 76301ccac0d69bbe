package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"debt-planner/domain"
)

// providerAPRKeys are raw provider fields that carry an APR as a percentage.
var providerAPRKeys = []string{"apr", "apr_percentage", "purchase_apr", "interest_rate_percentage"}

// FallbackInterestRate returns a representative annual rate for the type.
func FallbackInterestRate(t domain.AccountType) float64 {
	switch t {
	case domain.AccountTypeCreditCard:
		return 0.2099
	case domain.AccountTypeLineOfCredit:
		return 0.1249
	case domain.AccountTypeMortgage:
		return 0.0699
	case domain.AccountTypeAutoLoan:
		return 0.0699
	case domain.AccountTypeStudentLoan:
		return 0.0549
	case domain.AccountTypePersonalLoan:
		return 0.1149
	case domain.AccountTypeMedicalDebt:
		return 0
	case domain.AccountTypeLiability:
		return 0.0999
	default:
		return DefaultInterestRate
	}
}

// EstimateMinimumPayment derives a minimum payment from the balance owed
// and the annual rate.
func EstimateMinimumPayment(t domain.AccountType, balance int64, rate float64) int64 {
	switch t {
	case domain.AccountTypeCreditCard:
		return max(scaleMinor(balance, CreditCardMinimumRate), CreditCardMinimumFloor)
	case domain.AccountTypeLineOfCredit:
		return monthlyInterest(balance, rate)
	case domain.AccountTypeMortgage,
		domain.AccountTypeAutoLoan,
		domain.AccountTypeStudentLoan,
		domain.AccountTypePersonalLoan:
		return amortizedPayment(balance, rate, EstimatedLoanTerm)
	case domain.AccountTypeMedicalDebt:
		return max(scaleMinor(balance, MedicalMinimumRate), MedicalMinimumFloor)
	default:
		return max(scaleMinor(balance, OtherMinimumRate), OtherMinimumFloor)
	}
}

// amortizedPayment is the fixed payment that retires balance over n months.
func amortizedPayment(balance int64, rate float64, n int) int64 {
	m := rate / 12
	if m == 0 {
		return roundMinor(decimal.NewFromInt(balance).Div(decimal.NewFromInt(int64(n))))
	}
	factor := math.Pow(1+m, float64(n))
	cuota := float64(balance) * m * factor / (factor - 1)
	return roundMinor(decimal.NewFromFloat(cuota))
}

// providerAPR looks for an APR percentage in raw provider data and returns
// it as a decimal fraction.
func providerAPR(raw map[string]any) (float64, bool) {
	for _, key := range providerAPRKeys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		var pct float64
		switch n := v.(type) {
		case float64:
			pct = n
		case float32:
			pct = float64(n)
		case int:
			pct = float64(n)
		case int64:
			pct = float64(n)
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(n), "%"), 64)
			if err != nil {
				continue
			}
			pct = parsed
		default:
			continue
		}
		if pct < 0 || math.IsNaN(pct) || math.IsInf(pct, 0) {
			continue
		}
		return pct / 100, true
	}
	return 0, false
}

// IsPlannable reports whether the account takes part in planning.
func IsPlannable(a domain.Account) bool {
	return a.Type.IsDebt() && a.Status == domain.AccountStatusActive && a.Balance != 0
}

// EnrichAccount turns a plannable account into a DebtAccount. The estimate,
// when present, is used for the rate only if neither the account nor its
// provider data carries one.
func EnrichAccount(a domain.Account, estimate *domain.RateEstimate, now time.Time) domain.DebtAccount {
	balance := absMinor(a.Balance)

	var rate float64
	switch {
	case a.InterestRate != nil && *a.InterestRate >= 0:
		rate = *a.InterestRate
	default:
		if apr, ok := providerAPR(a.RawData); ok {
			rate = apr
		} else if estimate != nil && estimate.EstimatedRate >= 0 {
			rate = estimate.EstimatedRate
		} else {
			rate = FallbackInterestRate(a.Type)
		}
	}

	debt := domain.DebtAccount{
		ID:                 a.ID,
		Name:               a.Name,
		Type:               a.Type,
		Balance:            balance,
		InterestRate:       rate,
		PromotionalRate:    a.PromotionalRate,
		PromotionalEndDate: a.PromotionalEndDate,
		DeferredInterest:   a.DeferredInterest,
	}

	if a.MinimumPayment != nil && *a.MinimumPayment >= 0 {
		debt.MinimumPayment = *a.MinimumPayment
	} else {
		debt.MinimumPayment = EstimateMinimumPayment(a.Type, balance, rate)
	}

	if a.PromotionalEndDate == nil && estimate != nil && estimate.HasPromotionalPeriod && estimate.PromotionalMonths > 0 {
		end := now.AddDate(0, estimate.PromotionalMonths, 0)
		debt.PromotionalEndDate = &end
		promo := 0.0
		if estimate.PromotionalRate != nil {
			promo = *estimate.PromotionalRate
		}
		debt.PromotionalRate = &promo
		debt.DeferredInterest = estimate.HasDeferredInterest
	}

	return debt
}

// EnrichAccounts filters to plannable accounts and enriches each one.
// estimates may be nil.
func EnrichAccounts(accounts []domain.Account, estimates map[string]domain.RateEstimate, now time.Time) []domain.DebtAccount {
	debts := make([]domain.DebtAccount, 0, len(accounts))
	for _, a := range accounts {
		if !IsPlannable(a) {
			continue
		}
		var est *domain.RateEstimate
		if e, ok := estimates[a.ID]; ok {
			est = &e
		}
		debts = append(debts, EnrichAccount(a, est, now))
	}
	return debts
}

func totalMinimums(debts []domain.DebtAccount) int64 {
	var total int64
	for _, d := range debts {
		total += d.MinimumPayment
	}
	return total
}
