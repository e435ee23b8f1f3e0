package dto

import "encoding/json"

// AI analysis DTOs

// AnalysisHolding is the simplified extract handed to the agent provider:
// just enough to describe each position in natural language.
type AnalysisHolding struct {
	SecurityName string  `json:"security_name"`
	SecurityType string  `json:"security_type"`
	TickerSymbol *string `json:"ticker_symbol"`
}

type StartAnalysisRequest struct {
	Holdings []AnalysisHolding `json:"holdings"`
	ChatID   string            `json:"chatId"`
}

type StartAnalysisResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	AgentRunID string `json:"agentRunId"`
	Status     string `json:"status"`
}

type AnalysisStatusResponse struct {
	Success    bool              `json:"success"`
	AgentRunID string            `json:"agentRunId"`
	Status     string            `json:"status"`
	Results    []json.RawMessage `json:"results"`
}

type ChatRequest struct {
	Query string `json:"query"`
}
