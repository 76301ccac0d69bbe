package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"debt-planner/domain"
	"debt-planner/repository"
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

var ErrAIDisabled = errors.New("ai estimator: api key not configured")

// AIService estimates interest terms with an LLM. Estimates are cached per
// account so repeated plans for the same balances do not call out again.
type AIService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	timeout    time.Duration
	cacheTTL   time.Duration
	httpClient *http.Client
	cache      repository.CacheRepository
}

type AIConfig struct {
	APIKey   string
	APIURL   string
	Model    string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type OpenAIRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type ResponseFormat struct {
	Type string `json:"type"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type rateEstimateInput struct {
	AccountID string         `json:"accountId"`
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	Balance   int64          `json:"balanceMinorUnits"`
	RawData   map[string]any `json:"providerData,omitempty"`
}

type rateEstimateOutput struct {
	Estimates []struct {
		AccountID string `json:"accountId"`
		domain.RateEstimate
	} `json:"estimates"`
}

func NewAIService(cfg AIConfig, cache repository.CacheRepository) *AIService {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = defaultOpenAIURL
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if cache == nil {
		cache = repository.NewMemoryCache()
	}

	return &AIService{
		apiKey:   strings.TrimSpace(cfg.APIKey),
		apiURL:   apiURL,
		model:    model,
		enabled:  strings.TrimSpace(cfg.APIKey) != "",
		timeout:  timeout,
		cacheTTL: cfg.CacheTTL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: cache,
	}
}

// EstimateInterestRates asks the model for the annual rate and promotional
// terms of every account. Cached accounts are not sent again.
func (s *AIService) EstimateInterestRates(
	ctx context.Context,
	accounts []domain.Account,
) (map[string]domain.RateEstimate, error) {
	if !s.enabled {
		return nil, ErrAIDisabled
	}

	out := make(map[string]domain.RateEstimate, len(accounts))
	pending := make([]rateEstimateInput, 0, len(accounts))
	for _, a := range accounts {
		if est, ok := s.cached(ctx, a); ok {
			out[a.ID] = est
			continue
		}
		pending = append(pending, rateEstimateInput{
			AccountID: a.ID,
			Name:      a.Name,
			Type:      string(a.Type),
			Balance:   absMinor(a.Balance),
			RawData:   a.RawData,
		})
	}
	if len(pending) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	payload, err := json.Marshal(pending)
	if err != nil {
		return nil, err
	}
	content, err := s.callLLM(ctx, rateEstimateSystemPrompt, "Accounts JSON:\n"+string(payload))
	if err != nil {
		return nil, err
	}

	var parsed rateEstimateOutput
	if err := decodeJSON(content, &parsed); err != nil {
		return nil, fmt.Errorf("ai estimator: parse estimates: %w", err)
	}

	byID := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	for _, e := range parsed.Estimates {
		a, ok := byID[e.AccountID]
		if !ok || e.EstimatedRate < 0 || e.EstimatedRate > 1 {
			continue
		}
		out[e.AccountID] = e.RateEstimate
		s.store(ctx, a, e.RateEstimate)
	}
	return out, nil
}

const rateEstimateSystemPrompt = "You estimate consumer debt terms. For each account return the most likely annual interest rate as a decimal fraction (0.2199 for 21.99% APR) and whether it is in a promotional period. Return ONLY valid JSON: {\"estimates\":[{\"accountId\":string,\"estimatedRate\":number,\"hasPromotionalPeriod\":boolean,\"promotionalMonths\":number,\"promotionalRate\":number,\"hasDeferredInterest\":boolean}]}."

func (s *AIService) cacheKey(a domain.Account) string {
	return fmt.Sprintf("rate-estimate:%s:%s:%d", a.ID, a.Type, absMinor(a.Balance))
}

func (s *AIService) cached(ctx context.Context, a domain.Account) (domain.RateEstimate, bool) {
	raw, ok := s.cache.Get(ctx, s.cacheKey(a))
	if !ok {
		return domain.RateEstimate{}, false
	}
	var est domain.RateEstimate
	if err := json.Unmarshal([]byte(raw), &est); err != nil {
		return domain.RateEstimate{}, false
	}
	return est, true
}

func (s *AIService) store(ctx context.Context, a domain.Account, est domain.RateEstimate) {
	data, err := json.Marshal(est)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(a), string(data), s.cacheTTL); err != nil {
		log.Printf("Warning: failed to cache rate estimate for %s: %v", a.ID, err)
	}
}

func (s *AIService) callLLM(ctx context.Context, system, prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		MaxTokens:      800,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}
	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}
	return openAIResp.Choices[0].Message.Content, nil
}

// decodeJSON tolerates markdown code fences around the model's JSON.
func decodeJSON(text string, dest any) error {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return json.Unmarshal([]byte(strings.TrimSpace(text)), dest)
}
