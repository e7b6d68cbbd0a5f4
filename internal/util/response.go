package util

import (
	"errors"
	"runtime/debug"

	"github.com/devendraBainda/AI-Interview-Agent/internal/apperr"
	"github.com/devendraBainda/AI-Interview-Agent/internal/config"
	"github.com/devendraBainda/AI-Interview-Agent/internal/response"
	"github.com/gofiber/fiber/v2"
)

type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
}

type OrderedSuccessResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code    int
	Message string
	Details any
}

type OrderedErrorResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DevMessage string `json:"dev_message,omitempty"`
	Details    any    `json:"details,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

// SuccessResponse sends the standard success envelope.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	if params.Code == 0 {
		params.Code = fiber.StatusOK
	}
	return c.Status(params.Code).JSON(OrderedSuccessResponse{
		Success:    true,
		Message:    params.Message,
		Data:       params.Data,
		Pagination: params.Pagination,
	})
}

// ErrorResponse sends the standard error envelope. Outside production the
// underlying error and a stack trace are included for debugging.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	resp := OrderedErrorResponse{
		Success: false,
		Message: params.Message,
		Details: params.Details,
	}

	code := params.Code
	if code == 0 && len(errs) > 0 {
		code = StatusFromError(errs[0])
	}
	if code == 0 {
		code = fiber.StatusInternalServerError
	}

	if config.LoadAppConfig().Env != "production" && len(errs) > 0 && errs[0] != nil {
		resp.DevMessage = errs[0].Error()
		resp.Trace = string(debug.Stack())
	}

	return c.Status(code).JSON(resp)
}

// StatusFromError maps the domain error taxonomy to HTTP status codes.
func StatusFromError(err error) int {
	var validationErr *apperr.ValidationError
	var notFoundErr *apperr.NotFoundError
	var invalidStateErr *apperr.InvalidStateError
	var upstreamErr *apperr.UpstreamServiceError
	var storageErr *apperr.StorageError

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return fiber.StatusNotFound
	case errors.As(err, &invalidStateErr):
		return fiber.StatusConflict
	case errors.As(err, &upstreamErr):
		return fiber.StatusBadGateway
	case errors.As(err, &storageErr):
		return fiber.StatusInternalServerError
	}
	return fiber.StatusInternalServerError
}
