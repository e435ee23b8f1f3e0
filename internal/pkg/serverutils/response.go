package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// UpstreamError is implemented by the provider clients' error types so
// handlers can echo the raw upstream body in the "details" field.
type UpstreamError interface {
	error
	ResponseBody() string
}

// ErrorResponse is the envelope for client input and authorization errors.
func ErrorResponse(message string) fiber.Map {
	return fiber.Map{
		"error": message,
	}
}

// UpstreamErrorResponse builds the {error, message, details} envelope used
// for any failed third-party call. details carries the upstream error body
// verbatim when one exists.
func UpstreamErrorResponse(action string, err error) fiber.Map {
	details := "Unknown error"
	var ue UpstreamError
	if errors.As(err, &ue) && ue.ResponseBody() != "" {
		details = ue.ResponseBody()
	}
	return fiber.Map{
		"error":   action,
		"message": err.Error(),
		"details": details,
	}
}
