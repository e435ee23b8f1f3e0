package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"portfolio-bridge/internal/dto"
	"portfolio-bridge/internal/session"
	"portfolio-bridge/pkg/loopmessage"
	"portfolio-bridge/pkg/plaid"

	openai "github.com/sashabaranov/go-openai"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// Mock services: each method delegates to an optional function field so a
// test can install just the behavior it needs. A nil field means the test
// expects the method not to be reached.

type mockLinkService struct {
	createLinkTokenFn     func(ctx context.Context, phoneNumber, requestHost string) (*plaid.LinkTokenResponse, error)
	exchangePublicTokenFn func(ctx context.Context, publicToken string) (*plaid.ExchangeTokenResponse, error)
}

func (m *mockLinkService) CreateLinkToken(ctx context.Context, phoneNumber, requestHost string) (*plaid.LinkTokenResponse, error) {
	return m.createLinkTokenFn(ctx, phoneNumber, requestHost)
}

func (m *mockLinkService) ExchangePublicToken(ctx context.Context, publicToken string) (*plaid.ExchangeTokenResponse, error) {
	return m.exchangePublicTokenFn(ctx, publicToken)
}

type mockInvestmentService struct {
	getBalancesFn     func(ctx context.Context, accessToken string) (*plaid.AccountsResponse, error)
	getDashboardFn    func(ctx context.Context, accessToken string) (*dto.DashboardResponse, error)
	getHoldingsFn     func(ctx context.Context, accessToken string) (*dto.HoldingsResponse, error)
	getTransactionsFn func(ctx context.Context, accessToken, startDate, endDate string) (*dto.TransactionsResponse, error)
}

func (m *mockInvestmentService) GetBalances(ctx context.Context, accessToken string) (*plaid.AccountsResponse, error) {
	return m.getBalancesFn(ctx, accessToken)
}

func (m *mockInvestmentService) GetDashboard(ctx context.Context, accessToken string) (*dto.DashboardResponse, error) {
	return m.getDashboardFn(ctx, accessToken)
}

func (m *mockInvestmentService) GetHoldings(ctx context.Context, accessToken string) (*dto.HoldingsResponse, error) {
	return m.getHoldingsFn(ctx, accessToken)
}

func (m *mockInvestmentService) GetTransactions(ctx context.Context, accessToken, startDate, endDate string) (*dto.TransactionsResponse, error) {
	return m.getTransactionsFn(ctx, accessToken, startDate, endDate)
}

type mockAnalysisService struct {
	startAnalysisFn   func(ctx context.Context, req *dto.StartAnalysisRequest) (*dto.StartAnalysisResponse, error)
	checkStatusFn     func(ctx context.Context, runID string) (*dto.AnalysisStatusResponse, error)
	awaitCompletionFn func(ctx context.Context, runID string) (*dto.AnalysisStatusResponse, error)
	chatFn            func(ctx context.Context, query string) (*openai.ChatCompletionResponse, error)
}

func (m *mockAnalysisService) StartAnalysis(ctx context.Context, req *dto.StartAnalysisRequest) (*dto.StartAnalysisResponse, error) {
	return m.startAnalysisFn(ctx, req)
}

func (m *mockAnalysisService) CheckStatus(ctx context.Context, runID string) (*dto.AnalysisStatusResponse, error) {
	return m.checkStatusFn(ctx, runID)
}

func (m *mockAnalysisService) AwaitCompletion(ctx context.Context, runID string) (*dto.AnalysisStatusResponse, error) {
	return m.awaitCompletionFn(ctx, runID)
}

func (m *mockAnalysisService) Chat(ctx context.Context, query string) (*openai.ChatCompletionResponse, error) {
	return m.chatFn(ctx, query)
}

type mockMessageService struct {
	sendFn           func(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	getStatusFn      func(ctx context.Context, messageID string) (*loopmessage.MessageResponse, error)
	testConnectionFn func(ctx context.Context) *dto.MessageTestResponse
}

func (m *mockMessageService) Send(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	return m.sendFn(ctx, req)
}

func (m *mockMessageService) GetStatus(ctx context.Context, messageID string) (*loopmessage.MessageResponse, error) {
	return m.getStatusFn(ctx, messageID)
}

func (m *mockMessageService) TestConnection(ctx context.Context) *dto.MessageTestResponse {
	return m.testConnectionFn(ctx)
}

// sessionCookie builds the Cookie header value for a plaintext session
// cookie. The header is set directly because net/http strips the JSON quote
// characters when going through Request.AddCookie; cookie encryption itself
// is exercised in the session package.
func sessionCookie(accessToken, itemID string) string {
	raw, _ := json.Marshal(session.Session{AccessToken: accessToken, ItemID: itemID})
	return "portfolioapp_session=" + string(raw)
}

func decodeBody(res *http.Response) map[string]interface{} {
	defer res.Body.Close()
	raw, _ := io.ReadAll(res.Body)
	var body map[string]interface{}
	json.Unmarshal(raw, &body)
	return body
}
