package middleware

import (
	"errors"

	"github.com/Knnivedh/job-rec/internal/logger"
	"github.com/Knnivedh/job-rec/internal/pkg/response"
	"github.com/Knnivedh/job-rec/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// AppError is a handler failure with the status and message to render.
// Fields are merged into the error body.
type AppError struct {
	StatusCode int
	Message    string
	Fields     response.Fields
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, fields response.Fields, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Fields: fields, Cause: cause}
}

type ErrorMiddleware struct {
	logger *zap.Logger
}

func NewErrorMiddleware(log *zap.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger.OrNop(log)}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("[HTTP] panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Path()),
					zap.String(logger.FieldRequestID, requestID(c)),
				)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		if err = c.Next(); err == nil {
			return nil
		}
		return m.render(c, err)
	}
}

// Handler is the app-level error handler. It renders errors raised before
// the middleware chain runs, such as an oversized request body.
func (m *ErrorMiddleware) Handler() fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		return m.render(c, err)
	}
}

func (m *ErrorMiddleware) render(c fiber.Ctx, err error) error {
	status, msg, fields := normalizeError(err)
	if status >= 500 {
		m.logger.Error("[HTTP] request failed",
			zap.Int("status", status),
			zap.String("path", c.Path()),
			zap.String(logger.FieldRequestID, requestID(c)),
			zap.Error(err),
		)
	}
	return response.Error(c, status, msg, fields)
}

func requestID(c fiber.Ctx) string {
	if rid, ok := c.Locals(CtxRequestIDKey).(string); ok {
		return rid
	}
	return ""
}

// normalizeError maps err to a status and message. Server errors keep their
// message only when a handler set one explicitly.
func normalizeError(err error) (int, string, response.Fields) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode <= 0 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		msg := appErr.Message
		if msg == "" {
			msg = response.DefaultMessageForStatus(appErr.StatusCode)
		}
		return appErr.StatusCode, msg, appErr.Fields
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status == fiber.StatusRequestEntityTooLarge {
			return status, usecase.ErrFileTooLarge.Error(), nil
		}
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		msg := fiberErr.Message
		if msg == "" {
			msg = response.DefaultMessageForStatus(status)
		}
		return status, msg, nil
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}
