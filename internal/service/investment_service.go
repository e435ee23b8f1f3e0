package service

import (
	"context"
	"strings"
	"time"

	"portfolio-bridge/internal/dto"
	"portfolio-bridge/internal/pkg/logger"
	"portfolio-bridge/pkg/plaid"

	"github.com/shopspring/decimal"
)

const investmentAccountType = "investment"

type IInvestmentService interface {
	GetBalances(ctx context.Context, accessToken string) (*plaid.AccountsResponse, error)
	GetDashboard(ctx context.Context, accessToken string) (*dto.DashboardResponse, error)
	GetHoldings(ctx context.Context, accessToken string) (*dto.HoldingsResponse, error)
	GetTransactions(ctx context.Context, accessToken, startDate, endDate string) (*dto.TransactionsResponse, error)
}

type investmentService struct {
	client *plaid.Client
	log    logger.ILogger
}

func NewInvestmentService(client *plaid.Client, log logger.ILogger) IInvestmentService {
	return &investmentService{
		client: client,
		log:    log,
	}
}

func (s *investmentService) GetBalances(ctx context.Context, accessToken string) (*plaid.AccountsResponse, error) {
	return s.client.GetBalances(ctx, accessToken)
}

// GetDashboard fetches accounts first (a failure here fails the whole view),
// then holdings best-effort: an investment-data failure is logged and the
// dashboard simply reports no investment section rather than erroring.
func (s *investmentService) GetDashboard(ctx context.Context, accessToken string) (*dto.DashboardResponse, error) {
	accountsRes, err := s.client.GetAccounts(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	hasInvestments := false
	for _, acc := range accountsRes.Accounts {
		if acc.Type == investmentAccountType {
			hasInvestments = true
			break
		}
	}
	if !hasInvestments {
		return &dto.DashboardResponse{HasInvestments: false}, nil
	}

	holdingsRes, err := s.client.GetHoldings(ctx, accessToken)
	if err != nil {
		s.log.Error("investments", "Failed to fetch holdings for dashboard, omitting investment section", map[string]interface{}{
			"error": err.Error(),
		})
		return &dto.DashboardResponse{HasInvestments: false}, nil
	}

	enriched := enrichHoldings(holdingsRes.Holdings, holdingsRes.Securities, accountsRes.Accounts)
	grouped := groupHoldingsByAccount(accountsRes.Accounts, enriched)

	return &dto.DashboardResponse{
		HasInvestments: true,
		AllAccounts:    grouped,
		Plaid401k:      findRetirementAccount(grouped),
		Securities:     holdingsRes.Securities,
	}, nil
}

func (s *investmentService) GetHoldings(ctx context.Context, accessToken string) (*dto.HoldingsResponse, error) {
	holdingsRes, err := s.client.GetHoldings(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	accountsRes, err := s.client.GetAccounts(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	enriched := enrichHoldings(holdingsRes.Holdings, holdingsRes.Securities, accountsRes.Accounts)

	return &dto.HoldingsResponse{
		Accounts:   groupHoldingsByAccount(accountsRes.Accounts, enriched),
		Holdings:   enriched,
		Securities: holdingsRes.Securities,
	}, nil
}

func (s *investmentService) GetTransactions(ctx context.Context, accessToken, startDate, endDate string) (*dto.TransactionsResponse, error) {
	defaultStart, defaultEnd := DefaultDateRange(time.Now())
	if startDate == "" {
		startDate = defaultStart
	}
	if endDate == "" {
		endDate = defaultEnd
	}

	s.log.Info("investments", "Fetching investment transactions", map[string]interface{}{
		"start_date": startDate,
		"end_date":   endDate,
	})

	txRes, err := s.client.GetInvestmentTransactions(ctx, accessToken, startDate, endDate)
	if err != nil {
		return nil, err
	}

	enriched := enrichTransactions(txRes.InvestmentTransactions, txRes.Securities, txRes.Accounts)

	return &dto.TransactionsResponse{
		Accounts:          groupTransactionsByAccount(txRes.Accounts, enriched),
		Transactions:      enriched,
		Securities:        txRes.Securities,
		TotalTransactions: len(txRes.InvestmentTransactions),
		DateRange: dto.DateRange{
			StartDate: startDate,
			EndDate:   endDate,
		},
	}, nil
}

// DefaultDateRange is the window used when the caller supplies no dates:
// [today - 30 days, today], both YYYY-MM-DD.
func DefaultDateRange(now time.Time) (startDate, endDate string) {
	endDate = now.Format("2006-01-02")
	startDate = now.AddDate(0, 0, -30).Format("2006-01-02")
	return startDate, endDate
}

// enrichHoldings joins every holding to its security and account by id. The
// join is total: a missing match falls back to "Unknown" placeholders, never
// drops the row. Linear scan per holding is fine at sandbox scale.
func enrichHoldings(holdings []plaid.Holding, securities []plaid.Security, accounts []plaid.Account) []dto.EnrichedHolding {
	enriched := make([]dto.EnrichedHolding, 0, len(holdings))
	for _, h := range holdings {
		row := dto.EnrichedHolding{
			Holding:        h,
			SecurityName:   "Unknown",
			SecurityType:   "Unknown",
			AccountName:    "Unknown Account",
			AccountType:    "Unknown",
			AccountSubtype: "Unknown",
		}

		if sec := findSecurity(securities, h.SecurityID); sec != nil {
			row.SecurityName = strOr(sec.Name, "Unknown")
			row.SecurityType = strOr(sec.Type, "Unknown")
			row.TickerSymbol = sec.TickerSymbol
		}
		if acc := findAccount(accounts, h.AccountID); acc != nil {
			row.AccountName = acc.Name
			row.AccountType = acc.Type
			row.AccountSubtype = strOr(acc.Subtype, "Unknown")
		}

		enriched = append(enriched, row)
	}
	return enriched
}

// groupHoldingsByAccount buckets enriched holdings under each investment
// account and totals institution_value per bucket. An account with zero
// holdings keeps an explicit 0 total.
func groupHoldingsByAccount(accounts []plaid.Account, enriched []dto.EnrichedHolding) []dto.AccountHoldings {
	grouped := make([]dto.AccountHoldings, 0)
	for _, acc := range accounts {
		if acc.Type != investmentAccountType {
			continue
		}

		bucket := dto.AccountHoldings{
			AccountID:   acc.AccountID,
			AccountName: acc.Name,
			AccountType: strOr(acc.Subtype, "Unknown"),
			Holdings:    make([]dto.EnrichedHolding, 0),
		}

		total := decimal.Zero
		for _, h := range enriched {
			if h.AccountID != acc.AccountID {
				continue
			}
			bucket.Holdings = append(bucket.Holdings, h)
			total = total.Add(decimal.NewFromFloat(h.InstitutionValue))
		}
		bucket.AccountValue = total.InexactFloat64()

		grouped = append(grouped, bucket)
	}
	return grouped
}

// findRetirementAccount picks the distinguished 401k view: first account
// whose name mentions "401k" or whose subtype is exactly "401k". Display
// convenience only; zero or multiple matches are both fine.
func findRetirementAccount(grouped []dto.AccountHoldings) *dto.AccountHoldings {
	for i := range grouped {
		if strings.Contains(grouped[i].AccountName, "401k") || grouped[i].AccountType == "401k" {
			return &grouped[i]
		}
	}
	return nil
}

func enrichTransactions(txs []plaid.InvestmentTransaction, securities []plaid.Security, accounts []plaid.Account) []dto.EnrichedTransaction {
	enriched := make([]dto.EnrichedTransaction, 0, len(txs))
	for _, tx := range txs {
		row := dto.EnrichedTransaction{
			InvestmentTransaction: tx,
			SecurityName:          "Unknown",
			AccountName:           "Unknown Account",
			AccountType:           "Unknown",
		}

		if tx.SecurityID != nil {
			if sec := findSecurity(securities, *tx.SecurityID); sec != nil {
				row.SecurityName = strOr(sec.Name, "Unknown")
				row.TickerSymbol = sec.TickerSymbol
			}
		}
		if acc := findAccount(accounts, tx.AccountID); acc != nil {
			row.AccountName = acc.Name
			row.AccountType = strOr(acc.Subtype, "Unknown")
		}

		enriched = append(enriched, row)
	}
	return enriched
}

func groupTransactionsByAccount(accounts []plaid.Account, enriched []dto.EnrichedTransaction) []dto.AccountTransactions {
	grouped := make([]dto.AccountTransactions, 0)
	for _, acc := range accounts {
		if acc.Type != investmentAccountType {
			continue
		}

		bucket := dto.AccountTransactions{
			AccountID:    acc.AccountID,
			AccountName:  acc.Name,
			AccountType:  strOr(acc.Subtype, "Unknown"),
			Transactions: make([]dto.EnrichedTransaction, 0),
		}
		for _, tx := range enriched {
			if tx.AccountID == acc.AccountID {
				bucket.Transactions = append(bucket.Transactions, tx)
			}
		}

		grouped = append(grouped, bucket)
	}
	return grouped
}

func findSecurity(securities []plaid.Security, id string) *plaid.Security {
	for i := range securities {
		if securities[i].SecurityID == id {
			return &securities[i]
		}
	}
	return nil
}

func findAccount(accounts []plaid.Account, id string) *plaid.Account {
	for i := range accounts {
		if accounts[i].AccountID == id {
			return &accounts[i]
		}
	}
	return nil
}

func strOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
