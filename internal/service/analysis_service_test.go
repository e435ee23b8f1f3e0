package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio-bridge/internal/dto"
	"portfolio-bridge/pkg/toolhouse"
)

func TestBuildAnalysisMessage(t *testing.T) {
	holdings := []dto.AnalysisHolding{
		{SecurityName: "Apple Inc", SecurityType: "equity", TickerSymbol: strPtr("AAPL")},
		{SecurityName: "Vanguard Total Market", SecurityType: "etf", TickerSymbol: strPtr("VTI")},
		{SecurityName: "Apple Inc", SecurityType: "equity", TickerSymbol: strPtr("AAPL")},
		{SecurityName: "Money Market Fund", SecurityType: "cash"},
	}

	msg := buildAnalysisMessage(holdings)

	if !strings.HasPrefix(msg, "Please analyze my investment portfolio.") {
		t.Errorf("message missing preamble: %q", msg)
	}
	if !strings.Contains(msg, "1. Apple Inc (AAPL) - equity\n") {
		t.Errorf("message missing first holding line:\n%s", msg)
	}
	if !strings.Contains(msg, "2. Vanguard Total Market (VTI) - etf\n") {
		t.Errorf("message missing second holding line:\n%s", msg)
	}
	if !strings.Contains(msg, "3. Money Market Fund - cash\n") {
		t.Errorf("tickerless holding not formatted without parens:\n%s", msg)
	}
	if strings.Count(msg, "Apple Inc") != 1 {
		t.Errorf("duplicate security was not collapsed:\n%s", msg)
	}
	if !strings.Contains(msg, "diversification, risk profile") {
		t.Errorf("message missing closing instruction:\n%s", msg)
	}
}

func TestBuildAnalysisMessageSameNameDifferentTicker(t *testing.T) {
	holdings := []dto.AnalysisHolding{
		{SecurityName: "Vanguard Fund", SecurityType: "etf", TickerSymbol: strPtr("VTI")},
		{SecurityName: "Vanguard Fund", SecurityType: "etf", TickerSymbol: strPtr("VXUS")},
	}

	msg := buildAnalysisMessage(holdings)
	if !strings.Contains(msg, "(VTI)") || !strings.Contains(msg, "(VXUS)") {
		t.Errorf("distinct tickers should both survive dedup:\n%s", msg)
	}
}

func TestStartAnalysisRequiresAPIKey(t *testing.T) {
	// nil client: the key check must fail before any upstream call.
	s := NewAnalysisService(nil, "", nil, "", "gpt-4-turbo", nopLogger{})

	_, err := s.StartAnalysis(context.Background(), &dto.StartAnalysisRequest{
		Holdings: []dto.AnalysisHolding{{SecurityName: "Apple Inc", SecurityType: "equity"}},
		ChatID:   "chat-1",
	})
	if !errors.Is(err, ErrAgentProviderNotConfigured) {
		t.Errorf("StartAnalysis error = %v, want ErrAgentProviderNotConfigured", err)
	}

	if _, err := s.CheckStatus(context.Background(), "run-1"); !errors.Is(err, ErrAgentProviderNotConfigured) {
		t.Errorf("CheckStatus error = %v, want ErrAgentProviderNotConfigured", err)
	}
}

func TestAwaitCompletionReturnsTerminalRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/agent-runs/run-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"run-1","status":"completed","results":[{"text":"done"}]}}`))
	}))
	defer srv.Close()

	s := NewAnalysisService(toolhouse.NewClientWithBaseURL("th-key", srv.URL), "th-key", nil, "", "gpt-4-turbo", nopLogger{})

	res, err := s.AwaitCompletion(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("AwaitCompletion: %v", err)
	}
	if !res.Success || res.Status != toolhouse.StatusCompleted {
		t.Errorf("response = %+v", res)
	}
	if len(res.Results) != 1 {
		t.Errorf("Results = %v", res.Results)
	}
}

func TestAwaitCompletionRequiresAPIKey(t *testing.T) {
	s := NewAnalysisService(nil, "", nil, "", "gpt-4-turbo", nopLogger{})

	if _, err := s.AwaitCompletion(context.Background(), "run-1"); !errors.Is(err, ErrAgentProviderNotConfigured) {
		t.Errorf("AwaitCompletion error = %v, want ErrAgentProviderNotConfigured", err)
	}
}

func TestChatRequiresLLMKey(t *testing.T) {
	s := NewAnalysisService(nil, "th-key", nil, "", "gpt-4-turbo", nopLogger{})

	if _, err := s.Chat(context.Background(), "what is an ETF?"); !errors.Is(err, ErrLLMNotConfigured) {
		t.Errorf("Chat error = %v, want ErrLLMNotConfigured", err)
	}
}
