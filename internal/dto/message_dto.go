package dto

import "encoding/json"

// Messaging DTOs

// SendMessageRequest accepts "to" as either a single string or an array of
// strings, matching the browser form's payload. Kept raw here; the service
// normalizes it.
type SendMessageRequest struct {
	To       json.RawMessage `json:"to"`
	Message  string          `json:"message"`
	MediaURL string          `json:"mediaUrl"`
}

type SendMessageResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

type MessageTestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
