package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"debt-planner/domain"
	"debt-planner/service"
)

type PlanHandler struct {
	payoff   *service.DebtPayoffService
	planning *service.PlanningService
}

func NewPlanHandler(payoff *service.DebtPayoffService, planning *service.PlanningService) *PlanHandler {
	return &PlanHandler{payoff: payoff, planning: planning}
}

type generatePlanRequest struct {
	Accounts []domain.Account `json:"accounts"`
	domain.PlanOptions
}

type generatePlansRequest struct {
	Accounts []domain.Account `json:"accounts"`
	domain.StrategyOptions
}

type enrichedPlansRequest struct {
	OrganizationID string `json:"organizationId"`
	AccountID      string `json:"accountId"`
	MonthlyPayment *int64 `json:"monthlyPayment,omitempty"`
}

// GeneratePlan handles POST /debt/plan.
func (h *PlanHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	var input generatePlanRequest
	if !decodeRequest(w, r, &input) {
		return
	}
	plan, err := h.payoff.GeneratePlan(defaultStatus(input.Accounts), input.PlanOptions)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, plan)
}

// GeneratePlans handles POST /debt/plans.
func (h *PlanHandler) GeneratePlans(w http.ResponseWriter, r *http.Request) {
	var input generatePlansRequest
	if !decodeRequest(w, r, &input) {
		return
	}
	plans, err := h.payoff.GeneratePayoffPlans(defaultStatus(input.Accounts), input.StrategyOptions)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, plans)
}

// GenerateEnrichedPlans handles POST /debt/enriched-plans.
func (h *PlanHandler) GenerateEnrichedPlans(w http.ResponseWriter, r *http.Request) {
	var input enrichedPlansRequest
	if !decodeRequest(w, r, &input) {
		return
	}
	if input.OrganizationID == "" {
		http.Error(w, "organizationId is required", http.StatusBadRequest)
		return
	}
	plans, err := h.planning.GenerateEnrichedPayoffPlans(r.Context(), input.OrganizationID, input.AccountID, input.MonthlyPayment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, plans)
}

func decodeRequest(w http.ResponseWriter, r *http.Request, dest any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		log.Printf("Error decoding request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	var insufficient *domain.InsufficientPaymentError
	var noDebts *domain.NoDebtAccountsError
	switch {
	case errors.As(err, &insufficient):
		msg := fmt.Sprintf("this payment is too low to cover your minimum payments (need %s, got %s)",
			formatMinor(insufficient.Required), formatMinor(insufficient.Provided))
		http.Error(w, msg, http.StatusUnprocessableEntity)
	case errors.As(err, &noDebts):
		http.Error(w, "no debt accounts found to plan around", http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidStrategy):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("Error generating payoff plan: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// defaultStatus marks accounts posted without a status as active.
func defaultStatus(accounts []domain.Account) []domain.Account {
	out := make([]domain.Account, len(accounts))
	for i, a := range accounts {
		if a.Status == "" {
			a.Status = domain.AccountStatusActive
		}
		out[i] = a
	}
	return out
}

func formatMinor(v int64) string {
	return decimal.New(v, -2).StringFixed(2)
}

func writeJSON(w http.ResponseWriter, v any) {
	// encode into a buffer first so a failure does not leave a 200 header behind
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}
