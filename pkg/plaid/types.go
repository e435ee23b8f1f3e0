package plaid

// Wire types mirror the aggregation API's JSON (2020-09-14 version). Nothing
// here is persisted; every value is a request-scoped mirror of upstream data.

type Balances struct {
	Available              *float64 `json:"available"`
	Current                *float64 `json:"current"`
	Limit                  *float64 `json:"limit"`
	ISOCurrencyCode        *string  `json:"iso_currency_code"`
	UnofficialCurrencyCode *string  `json:"unofficial_currency_code"`
}

type Account struct {
	AccountID    string   `json:"account_id"`
	Name         string   `json:"name"`
	OfficialName *string  `json:"official_name"`
	Mask         *string  `json:"mask"`
	Type         string   `json:"type"`
	Subtype      *string  `json:"subtype"`
	Balances     Balances `json:"balances"`
}

type Security struct {
	SecurityID   string  `json:"security_id"`
	Name         *string `json:"name"`
	Type         *string `json:"type"`
	TickerSymbol *string `json:"ticker_symbol"`
	ClosePrice   *float64 `json:"close_price"`
}

type Holding struct {
	AccountID        string   `json:"account_id"`
	SecurityID       string   `json:"security_id"`
	Quantity         float64  `json:"quantity"`
	InstitutionPrice float64  `json:"institution_price"`
	InstitutionValue float64  `json:"institution_value"`
	CostBasis        *float64 `json:"cost_basis"`
	ISOCurrencyCode  *string  `json:"iso_currency_code"`
}

type InvestmentTransaction struct {
	InvestmentTransactionID string  `json:"investment_transaction_id"`
	AccountID               string  `json:"account_id"`
	SecurityID              *string `json:"security_id"`
	Date                    string  `json:"date"`
	Name                    string  `json:"name"`
	Type                    string  `json:"type"`
	Subtype                 string  `json:"subtype"`
	Quantity                float64 `json:"quantity"`
	Price                   float64 `json:"price"`
	Fees                    *float64 `json:"fees"`
	Amount                  float64 `json:"amount"`
	ISOCurrencyCode         *string `json:"iso_currency_code"`
}

// Requests

type LinkTokenUser struct {
	ClientUserID string `json:"client_user_id"`
	PhoneNumber  string `json:"phone_number,omitempty"`
}

type LinkTokenCreateRequest struct {
	ClientID     string        `json:"client_id"`
	Secret       string        `json:"secret"`
	User         LinkTokenUser `json:"user"`
	ClientName   string        `json:"client_name"`
	Language     string        `json:"language"`
	Products     []string      `json:"products"`
	CountryCodes []string      `json:"country_codes"`
	RedirectURI  string        `json:"redirect_uri,omitempty"`
}

type publicTokenExchangeRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	PublicToken string `json:"public_token"`
}

type accessTokenRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	AccessToken string `json:"access_token"`
}

type investmentTransactionsRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	AccessToken string `json:"access_token"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// Responses

type LinkTokenResponse struct {
	LinkToken  string `json:"link_token"`
	Expiration string `json:"expiration"`
	RequestID  string `json:"request_id"`
}

type ExchangeTokenResponse struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
	RequestID   string `json:"request_id"`
}

type AccountsResponse struct {
	Accounts  []Account `json:"accounts"`
	RequestID string    `json:"request_id"`
}

type HoldingsResponse struct {
	Accounts   []Account  `json:"accounts"`
	Holdings   []Holding  `json:"holdings"`
	Securities []Security `json:"securities"`
	RequestID  string     `json:"request_id"`
}

type InvestmentTransactionsResponse struct {
	Accounts                    []Account               `json:"accounts"`
	InvestmentTransactions      []InvestmentTransaction `json:"investment_transactions"`
	Securities                  []Security              `json:"securities"`
	TotalInvestmentTransactions int                     `json:"total_investment_transactions"`
	RequestID                   string                  `json:"request_id"`
}
