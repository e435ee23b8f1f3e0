package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"portfolio-bridge/internal/dto"
	"portfolio-bridge/internal/pkg/logger"
	"portfolio-bridge/pkg/loopmessage"
)

var (
	// ErrMessagingNotConfigured means the provider keys are missing; mapped
	// to 500 by the controller before any upstream call.
	ErrMessagingNotConfigured = errors.New("LoopMessage API is not properly configured")
	// ErrInvalidRecipients marks a client input problem, mapped to 400.
	ErrInvalidRecipients = errors.New("recipients must be a string or an array of strings")
)

type IMessageService interface {
	Send(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetStatus(ctx context.Context, messageID string) (*loopmessage.MessageResponse, error)
	TestConnection(ctx context.Context) *dto.MessageTestResponse
}

type messageService struct {
	client     *loopmessage.Client
	configured bool
	log        logger.ILogger
}

func NewMessageService(client *loopmessage.Client, configured bool, log logger.ILogger) IMessageService {
	return &messageService{
		client:     client,
		configured: configured,
		log:        log,
	}
}

func (s *messageService) Send(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	if !s.configured {
		return nil, ErrMessagingNotConfigured
	}

	recipients, err := normalizeRecipients(req.To)
	if err != nil {
		return nil, err
	}

	res, err := s.client.Send(ctx, recipients, req.Message, req.MediaURL)
	if err != nil {
		s.log.Error("message", "Failed to send message", map[string]interface{}{
			"recipients": len(recipients),
			"error":      err.Error(),
		})
		return nil, err
	}

	s.log.Info("message", "Message sent", map[string]interface{}{
		"message_id": res.ID,
		"status":     res.Status,
	})

	return &dto.SendMessageResponse{
		Success:   true,
		MessageID: res.ID,
		Status:    res.Status,
		Message:   "Message sent successfully",
	}, nil
}

func (s *messageService) GetStatus(ctx context.Context, messageID string) (*loopmessage.MessageResponse, error) {
	if !s.configured {
		return nil, ErrMessagingNotConfigured
	}
	return s.client.GetStatus(ctx, messageID)
}

func (s *messageService) TestConnection(ctx context.Context) *dto.MessageTestResponse {
	if !s.configured {
		return &dto.MessageTestResponse{
			Success: false,
			Message: ErrMessagingNotConfigured.Error(),
		}
	}

	if err := s.client.Ping(ctx); err != nil {
		return &dto.MessageTestResponse{
			Success: false,
			Message: err.Error(),
		}
	}
	return &dto.MessageTestResponse{
		Success: true,
		Message: "Successfully connected to LoopMessage API",
	}
}

// normalizeRecipients accepts the "to" field as either a JSON string or a
// JSON array of strings.
func normalizeRecipients(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("%w: missing", ErrInvalidRecipients)
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single == "" {
			return nil, fmt.Errorf("%w: empty", ErrInvalidRecipients)
		}
		return []string{single}, nil
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		if len(many) == 0 {
			return nil, fmt.Errorf("%w: empty", ErrInvalidRecipients)
		}
		return many, nil
	}

	return nil, ErrInvalidRecipients
}
