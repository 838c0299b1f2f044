// Package common holds the response envelope, error mapping, and request
// binding shared by every HTTP handler.
package common

import (
	"errors"
	"log/slog"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// IntegrationResponse is the envelope of every response, successful or not.
type IntegrationResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// ApplicationResponse is an application code with its default message and
// HTTP status.
type ApplicationResponse struct {
	Code    string
	Message string
	Status  int
}

//revive:disable
var (
	Success                 = ApplicationResponse{"200.00.000", "Ok", fiber.StatusOK}
	DefaultError            = ApplicationResponse{"500.00.000", "General error", fiber.StatusInternalServerError}
	RestClient              = ApplicationResponse{"500.01.000", "Unexpected exception when calling external service", fiber.StatusInternalServerError}
	InvalidArgs             = ApplicationResponse{"400.01.000", "Invalid arguments", fiber.StatusBadRequest}
	NotAllowed              = ApplicationResponse{"401.00.000", "Not allowed", fiber.StatusUnauthorized}
	InvalidBody             = ApplicationResponse{"400.02.000", "Invalid request body", fiber.StatusBadRequest}
	CustomerNotFound        = ApplicationResponse{"404.01.000", "Customer not found", fiber.StatusNotFound}
	CustomerValidationError = ApplicationResponse{"400.03.000", "Error at request validation", fiber.StatusBadRequest}
	AccountNotFound         = ApplicationResponse{"404.02.000", "Account not found", fiber.StatusNotFound}
	InsufficientBalance     = ApplicationResponse{"400.04.000", "Insufficient balance", fiber.StatusBadRequest}
)

//revive:enable

// ErrorToResponse maps domain errors to application codes. Anything it does
// not recognise becomes DefaultError.
func ErrorToResponse(err error) ApplicationResponse {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		return CustomerNotFound
	case errors.Is(err, domain.ErrAccountNotFound):
		return AccountNotFound
	case errors.Is(err, domain.ErrInsufficientBalance):
		return InsufficientBalance
	case errors.Is(err, domain.ErrValidation):
		return CustomerValidationError
	case errors.Is(err, domain.ErrInvalidArgs), errors.Is(err, domain.ErrAlreadyExists):
		return InvalidArgs
	case errors.Is(err, domain.ErrIntegration):
		return RestClient
	default:
		return DefaultError
	}
}

// SuccessJSON writes data in the envelope with the given status.
func SuccessJSON(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(IntegrationResponse{
		Code:    Success.Code,
		Message: Success.Message,
		Data:    data,
	})
}

// ResponseJSON writes resp with an optional detail message.
func ResponseJSON(c *fiber.Ctx, resp ApplicationResponse, detail string) error {
	body := IntegrationResponse{Code: resp.Code, Message: resp.Message}
	if detail != "" {
		body.Errors = []string{detail}
	}
	return c.Status(resp.Status).JSON(body)
}

// ErrorJSON maps err and writes it. Classified errors carry their text;
// unclassified ones are logged and answered with the generic message only.
func ErrorJSON(c *fiber.Ctx, logger *slog.Logger, err error) error {
	resp := ErrorToResponse(err)
	if resp == DefaultError {
		logger.Error("Unhandled request error", "path", c.Path(), "method", c.Method(), "error", err)
		return ResponseJSON(c, resp, "")
	}
	if resp == RestClient {
		logger.Warn("Upstream call failed", "path", c.Path(), "error", err)
		return ResponseJSON(c, resp, "")
	}
	return ResponseJSON(c, resp, err.Error())
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns a pointer to the struct (populated), or writes an error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ResponseJSON(c, InvalidBody, err.Error())
	}
	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		body := IntegrationResponse{Code: InvalidArgs.Code, Message: InvalidArgs.Message}
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				body.Errors = append(body.Errors, fe.Field()+": failed on "+fe.Tag())
			}
		} else {
			body.Errors = []string{err.Error()}
		}
		return nil, c.Status(InvalidArgs.Status).JSON(body)
	}
	return &input, nil
}
