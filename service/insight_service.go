package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"lotus-engine/domain"
	"lotus-engine/engine"
)

const (
	defaultOpenAIURL      = "https://api.openai.com/v1/chat/completions"
	DefaultInsightTimeout = 10 * time.Second
)

// InsightService turns a computed tranche stack into a short plain-language
// summary. With an API key it asks a chat-completions model for the text and
// falls back to a template on any failure.
type InsightService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

type OpenAIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
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

func NewInsightService(apiKey, model string, logger *slog.Logger) *InsightService {
	if model == "" {
		model = "gpt-4o-mini"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &InsightService{
		apiKey:  apiKey,
		apiURL:  defaultOpenAIURL,
		model:   model,
		enabled: apiKey != "",
		timeout: DefaultInsightTimeout,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// WithEndpoint points the service at another chat-completions URL.
func (s *InsightService) WithEndpoint(url string, client *http.Client) *InsightService {
	s.apiURL = url
	if client != nil {
		s.httpClient = client
	}
	return s
}

// WithTimeout bounds each model call. Callers serving HTTP keep it below the
// server's write timeout so the template fallback can still be sent.
func (s *InsightService) WithTimeout(d time.Duration) *InsightService {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Summarize describes the binding constraint and the yield spread of the
// stack.
func (s *InsightService) Summarize(ctx context.Context, tranches []domain.TrancheData) string {
	fallback := s.templateSummary(tranches)
	if !s.enabled || len(tranches) == 0 {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.callLLM(ctx, s.prompt(tranches, fallback))
	if err != nil {
		s.logger.Warn("insight generation failed, using template", slog.Any("error", err))
		return fallback
	}
	return text
}

func (s *InsightService) templateSummary(tranches []domain.TrancheData) string {
	if len(tranches) == 0 {
		return "No tranches configured."
	}

	var b strings.Builder
	for _, idx := range engine.BindingIndices(tranches) {
		t := tranches[idx]
		lltv := lltvLabel(t)
		fmt.Fprintf(&b, "Binding constraint: %s LLTV. The %s tranche has the minimum jrNetSupply, limiting free supply to %s for all senior tranches. ",
			lltv, lltv, engine.FormatNumber(&t.FreeSupply, 2))
		b.WriteString("Tip: Increase supply or reduce borrows in this tranche to unlock more liquidity for senior tranches.")
	}

	lo, hi := -1, -1
	for i, t := range tranches {
		if t.SupplyRate == nil {
			continue
		}
		if lo < 0 || *t.SupplyRate < *tranches[lo].SupplyRate {
			lo = i
		}
		if hi < 0 || *t.SupplyRate > *tranches[hi].SupplyRate {
			hi = i
		}
	}
	if lo >= 0 {
		fmt.Fprintf(&b, " Supply rates range from %s (%s LLTV) to %s (%s LLTV).",
			engine.FormatPercent(tranches[lo].SupplyRate, 2), lltvLabel(tranches[lo]),
			engine.FormatPercent(tranches[hi].SupplyRate, 2), lltvLabel(tranches[hi]))
	}
	return strings.TrimSpace(b.String())
}

func lltvLabel(t domain.TrancheData) string {
	return engine.FormatNumber(&t.LLTV, 0) + "%"
}

func (s *InsightService) prompt(tranches []domain.TrancheData, summary string) string {
	var rows strings.Builder
	for i, t := range tranches {
		fmt.Fprintf(&rows, "- Tranche %d (LLTV %s): supply %s, borrow %s, borrow rate %s, supply rate %s, supply utilization %s, free supply %s\n",
			i, lltvLabel(t),
			engine.FormatNumber(&t.SupplyAssets, 2), engine.FormatNumber(&t.BorrowAssets, 2),
			engine.FormatPercent(&t.BorrowRate, 2), engine.FormatPercent(t.SupplyRate, 2),
			engine.FormatPercent(t.SupplyUtilization, 1), engine.FormatNumber(&t.FreeSupply, 2))
	}

	return fmt.Sprintf(`Explain the state of this tranched lending market to a liquidity provider.

TRANCHES (most senior first):
%s
COMPUTED SUMMARY:
%s

INSTRUCTIONS:
1. Name the tranche that constrains liquidity for the senior tranches and why.
2. Explain how interest cascades from senior to junior tranches.
3. Quote the numbers above; do not invent new ones.

Answer in 3-4 sentences.`, rows.String(), summary)
}

func (s *InsightService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: s.model,
		Messages: []Message{
			{
				Role:    "system",
				Content: "You are a DeFi risk analyst who explains tranched lending markets clearly and precisely.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
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
		return "", fmt.Errorf("no response from model")
	}
	return strings.TrimSpace(openAIResp.Choices[0].Message.Content), nil
}
