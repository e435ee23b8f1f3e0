package dto

// Linking flow DTOs

type CreateLinkTokenRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type ExchangeTokenRequest struct {
	PublicToken  string `json:"public_token"`
	OAuthStateID string `json:"oauth_state_id"`
}

type ExchangeTokenResponse struct {
	Success bool   `json:"success"`
	ItemID  string `json:"item_id"`
	// The access token itself never leaves the server; it lives only in the
	// encrypted session cookie.
}
