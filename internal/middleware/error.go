package middleware

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"blood-connect/internal/domain"
)

type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	TraceID string            `json:"trace_id,omitempty"`
}

// NewErrorHandler maps fiber errors, validation failures and the domain
// error categories onto HTTP responses. Anything unrecognised is a 500 and
// is logged with its trace id.
func NewErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *fiber.Ctx, err error) error {
		resp := ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Internal server error",
			TraceID: uuid.New().String()[:8],
		}
		code := fiber.StatusInternalServerError

		var fe *fiber.Error
		var ve validator.ValidationErrors
		switch {
		case errors.As(err, &fe):
			code = fe.Code
			resp.Code = codeFor(code)
			resp.Message = fe.Message
		case errors.As(err, &ve):
			code = fiber.StatusUnprocessableEntity
			resp.Code = "VALIDATION_ERROR"
			resp.Message = "Request validation failed"
			resp.Fields = make(map[string]string, len(ve))
			for _, fieldErr := range ve {
				resp.Fields[fieldErr.Field()] = fieldErr.Tag()
			}
		case errors.Is(err, domain.ErrNotFound):
			code = fiber.StatusNotFound
			resp.Code = "NOT_FOUND"
			resp.Message = err.Error()
		case errors.Is(err, domain.ErrCapacityExceeded):
			code = fiber.StatusConflict
			resp.Code = "CAPACITY_EXCEEDED"
			resp.Message = err.Error()
		case errors.Is(err, domain.ErrDuplicateState), errors.Is(err, domain.ErrConflict):
			code = fiber.StatusConflict
			resp.Code = "CONFLICT"
			resp.Message = err.Error()
		case errors.Is(err, domain.ErrValidation):
			code = fiber.StatusUnprocessableEntity
			resp.Code = "VALIDATION_ERROR"
			resp.Message = err.Error()
		case errors.Is(err, domain.ErrUnauthorized):
			code = fiber.StatusUnauthorized
			resp.Code = "UNAUTHORIZED"
			resp.Message = err.Error()
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("trace_id", resp.TraceID),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		return c.Status(code).JSON(resp)
	}
}

func codeFor(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case fiber.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}

func NewError(code int, message string) *fiber.Error {
	return fiber.NewError(code, message)
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Conflict(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, message)
}
