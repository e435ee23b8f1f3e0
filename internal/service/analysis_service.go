package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfolio-bridge/internal/dto"
	"portfolio-bridge/internal/pkg/logger"
	"portfolio-bridge/pkg/toolhouse"

	openai "github.com/sashabaranov/go-openai"
)

var (
	// ErrAgentProviderNotConfigured means the agent API key is missing;
	// mapped to 500 by the controller before any upstream call.
	ErrAgentProviderNotConfigured = errors.New("Toolhouse API key not configured")
	// ErrLLMNotConfigured means the LLM provider key is missing.
	ErrLLMNotConfigured = errors.New("OpenAI API key not configured")
)

// The tool bundle requested from the agent provider for chat passthrough.
const toolProvider = "openai/gpt-4"

// Upper bound on a synchronous status wait; past it the caller gets the
// current (non-terminal) status back and can poll again.
const maxStatusWait = 2 * time.Minute

type IAnalysisService interface {
	StartAnalysis(ctx context.Context, req *dto.StartAnalysisRequest) (*dto.StartAnalysisResponse, error)
	CheckStatus(ctx context.Context, runID string) (*dto.AnalysisStatusResponse, error)
	AwaitCompletion(ctx context.Context, runID string) (*dto.AnalysisStatusResponse, error)
	Chat(ctx context.Context, query string) (*openai.ChatCompletionResponse, error)
}

type analysisService struct {
	agents       *toolhouse.Client
	agentsAPIKey string
	llm          *openai.Client
	llmAPIKey    string
	model        string
	log          logger.ILogger
}

func NewAnalysisService(agents *toolhouse.Client, agentsAPIKey string, llm *openai.Client, llmAPIKey, model string, log logger.ILogger) IAnalysisService {
	return &analysisService{
		agents:       agents,
		agentsAPIKey: agentsAPIKey,
		llm:          llm,
		llmAPIKey:    llmAPIKey,
		model:        model,
		log:          log,
	}
}

// StartAnalysis is the two-step job protocol: create an agent run bound to
// the given chat/template, then immediately push the formatted holdings
// summary into it as the first message. The caller polls CheckStatus until
// the run terminates.
func (s *analysisService) StartAnalysis(ctx context.Context, req *dto.StartAnalysisRequest) (*dto.StartAnalysisResponse, error) {
	if s.agentsAPIKey == "" {
		return nil, ErrAgentProviderNotConfigured
	}

	run, err := s.agents.CreateRun(ctx, req.ChatID)
	if err != nil {
		s.log.Error("analysis", "Failed to create agent run", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	message := buildAnalysisMessage(req.Holdings)
	continued, err := s.agents.ContinueRun(ctx, run.ID, message)
	if err != nil {
		s.log.Error("analysis", "Failed to send investment data to agent run", map[string]interface{}{
			"run_id": run.ID,
			"error":  err.Error(),
		})
		return nil, err
	}

	s.log.Info("analysis", "Agent run started", map[string]interface{}{
		"run_id": run.ID,
		"status": continued.Status,
	})

	return &dto.StartAnalysisResponse{
		Success:    true,
		Message:    "Investment analysis in progress",
		AgentRunID: run.ID,
		Status:     continued.Status,
	}, nil
}

func (s *analysisService) CheckStatus(ctx context.Context, runID string) (*dto.AnalysisStatusResponse, error) {
	if s.agentsAPIKey == "" {
		return nil, ErrAgentProviderNotConfigured
	}

	run, err := s.agents.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	return &dto.AnalysisStatusResponse{
		Success:    true,
		AgentRunID: runID,
		Status:     run.Status,
		Results:    run.Results,
	}, nil
}

// AwaitCompletion blocks until the run reaches a terminal status, holding the
// caller for at most maxStatusWait (or less if ctx ends first). When the wait
// budget runs out on a still-running job the current status is returned
// instead of an error, so the caller can simply come back.
func (s *analysisService) AwaitCompletion(ctx context.Context, runID string) (*dto.AnalysisStatusResponse, error) {
	if s.agentsAPIKey == "" {
		return nil, ErrAgentProviderNotConfigured
	}

	waitCtx, cancel := context.WithTimeout(ctx, maxStatusWait)
	defer cancel()

	run, err := s.agents.WaitForRun(waitCtx, runID, toolhouse.DefaultPollInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return s.CheckStatus(ctx, runID)
		}
		return nil, err
	}

	return &dto.AnalysisStatusResponse{
		Success:    true,
		AgentRunID: runID,
		Status:     run.Status,
		Results:    run.Results,
	}, nil
}

// Chat is the generic passthrough: fetch the provider's tool definitions and
// run one chat completion with them attached.
func (s *analysisService) Chat(ctx context.Context, query string) (*openai.ChatCompletionResponse, error) {
	if s.llmAPIKey == "" {
		return nil, ErrLLMNotConfigured
	}

	tools, err := s.agents.GetTools(ctx, toolProvider)
	if err != nil {
		s.log.Error("analysis", "Failed to fetch provider tools", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	resp, err := s.llm.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
		Tools: tools,
	})
	if err != nil {
		s.log.Error("analysis", "Chat completion failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	return &resp, nil
}

// buildAnalysisMessage turns the extracted security list into the natural
// language summary the agent run receives as its first message. Duplicate
// securities (same name and ticker across accounts) appear once.
func buildAnalysisMessage(holdings []dto.AnalysisHolding) string {
	var b strings.Builder
	b.WriteString("Please analyze my investment portfolio. Here are my current holdings:\n\n")

	seen := make(map[string]bool)
	n := 0
	for _, h := range holdings {
		ticker := ""
		if h.TickerSymbol != nil {
			ticker = *h.TickerSymbol
		}
		key := h.SecurityName + "|" + ticker
		if seen[key] {
			continue
		}
		seen[key] = true
		n++

		if ticker != "" {
			fmt.Fprintf(&b, "%d. %s (%s) - %s\n", n, h.SecurityName, ticker, h.SecurityType)
		} else {
			fmt.Fprintf(&b, "%d. %s - %s\n", n, h.SecurityName, h.SecurityType)
		}
	}

	b.WriteString("\nPlease assess the diversification, risk profile, and any suggested improvements for this portfolio.")
	return b.String()
}
