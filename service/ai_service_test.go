package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debt-planner/domain"
	"debt-planner/repository"
)

func fakeOpenAI(t *testing.T, content string, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req OpenAIRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.Len(t, req.Messages, 2)

		resp := OpenAIResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message Message `json:"message"`
		}{Message: Message{Role: "assistant", Content: content}})
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func estimatorAccounts() []domain.Account {
	return []domain.Account{
		{ID: "card", Name: "Store Card", Type: domain.AccountTypeCreditCard, Status: domain.AccountStatusActive, Balance: -120000},
		{ID: "loan", Name: "Personal", Type: domain.AccountTypePersonalLoan, Status: domain.AccountStatusActive, Balance: -800000},
	}
}

func TestAIService_EstimateInterestRates(t *testing.T) {
	t.Parallel()

	var calls int32
	content := "```json\n" + `{"estimates":[
		{"accountId":"card","estimatedRate":0.2699,"hasPromotionalPeriod":true,"promotionalMonths":12,"promotionalRate":0,"hasDeferredInterest":true},
		{"accountId":"loan","estimatedRate":0.1149},
		{"accountId":"ghost","estimatedRate":0.5},
		{"accountId":"card","estimatedRate":7}
	]}` + "\n```"
	srv := fakeOpenAI(t, content, &calls)

	cache := repository.NewMemoryCache()
	svc := NewAIService(AIConfig{APIKey: "test-key", APIURL: srv.URL, CacheTTL: time.Hour}, cache)

	got, err := svc.EstimateInterestRates(context.Background(), estimatorAccounts())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 0.2699, got["card"].EstimatedRate)
	require.True(t, got["card"].HasPromotionalPeriod)
	require.Equal(t, 12, got["card"].PromotionalMonths)
	require.True(t, got["card"].HasDeferredInterest)
	require.NotNil(t, got["card"].PromotionalRate)
	require.Equal(t, 0.1149, got["loan"].EstimatedRate)
	require.Equal(t, 2, cache.Len())

	// second call is served from cache
	again, err := svc.EstimateInterestRates(context.Background(), estimatorAccounts())
	require.NoError(t, err)
	require.Equal(t, got, again)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAIService_Disabled(t *testing.T) {
	t.Parallel()

	svc := NewAIService(AIConfig{}, nil)
	_, err := svc.EstimateInterestRates(context.Background(), estimatorAccounts())
	require.ErrorIs(t, err, ErrAIDisabled)
}

func TestAIService_ErrorsFallBackInPlanning(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	svc := NewAIService(AIConfig{APIKey: "test-key", APIURL: srv.URL}, nil)
	_, err := svc.EstimateInterestRates(context.Background(), estimatorAccounts())
	require.ErrorContains(t, err, "status 503")

	repo := repository.NewAccountRepositoryMemory()
	for _, a := range estimatorAccounts() {
		a.OrganizationID = "org"
		require.NoError(t, repo.Save(a))
	}
	planning := NewPlanningService(repo, nil, svc, nil).WithClock(fixedClock)
	plans, err := planning.GenerateEnrichedPayoffPlans(context.Background(), "org", "", nil)
	require.NoError(t, err)
	require.NotEmpty(t, plans)
}

func TestAIService_MalformedResponse(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := fakeOpenAI(t, "I think around 20%", &calls)
	svc := NewAIService(AIConfig{APIKey: "test-key", APIURL: srv.URL}, nil)
	_, err := svc.EstimateInterestRates(context.Background(), estimatorAccounts())
	require.ErrorContains(t, err, "parse estimates")
}
