package dto

import "portfolio-bridge/pkg/plaid"

// Investment view DTOs. Enriched rows keep the raw upstream fields and add
// the joined security/account display fields; field names match the wire
// shape the dashboard expects.

type HoldingsRequest struct {
	AccessToken string `json:"access_token"`
}

type TransactionsRequest struct {
	AccessToken string `json:"access_token"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type EnrichedHolding struct {
	plaid.Holding
	SecurityName   string  `json:"security_name"`
	SecurityType   string  `json:"security_type"`
	TickerSymbol   *string `json:"ticker_symbol"`
	AccountName    string  `json:"account_name"`
	AccountType    string  `json:"account_type"`
	AccountSubtype string  `json:"account_subtype"`
}

type AccountHoldings struct {
	AccountID    string            `json:"account_id"`
	AccountName  string            `json:"account_name"`
	AccountType  string            `json:"account_type"` // the account subtype, per the dashboard contract
	AccountValue float64           `json:"account_value"`
	Holdings     []EnrichedHolding `json:"holdings"`
}

type HoldingsResponse struct {
	Accounts   []AccountHoldings `json:"accounts"`
	Holdings   []EnrichedHolding `json:"holdings"`
	Securities []plaid.Security  `json:"securities"`
}

type DashboardResponse struct {
	HasInvestments bool              `json:"has_investments"`
	AllAccounts    []AccountHoldings `json:"all_accounts"`
	Plaid401k      *AccountHoldings  `json:"plaid_401k"`
	Securities     []plaid.Security  `json:"securities"`
}

type EnrichedTransaction struct {
	plaid.InvestmentTransaction
	SecurityName string  `json:"security_name"`
	TickerSymbol *string `json:"ticker_symbol"`
	AccountName  string  `json:"account_name"`
	AccountType  string  `json:"account_type"`
}

type AccountTransactions struct {
	AccountID    string                `json:"account_id"`
	AccountName  string                `json:"account_name"`
	AccountType  string                `json:"account_type"`
	Transactions []EnrichedTransaction `json:"transactions"`
}

type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type TransactionsResponse struct {
	Accounts          []AccountTransactions `json:"accounts"`
	Transactions      []EnrichedTransaction `json:"transactions"`
	Securities        []plaid.Security      `json:"securities"`
	TotalTransactions int                   `json:"total_transactions"`
	DateRange         DateRange             `json:"date_range"`
}
