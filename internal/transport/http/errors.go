package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomlog/internal/core"
)

const (
	errCodeTimeout          = "timeout"
	errCodeMethodNotAllowed = "method_not_allowed"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries a machine readable code and a human readable message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func abortWithError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: msg}})
}

// writeError maps a service error onto the HTTP taxonomy.
// Anything that is not a not-found or validation error is logged and reported as a 500.
func writeError(c *gin.Context, logger *zerolog.Logger, err error) {
	var ce *core.Error
	if errors.As(err, &ce) {
		switch {
		case errors.Is(ce, core.ErrNotFound):
			abortWithError(c, http.StatusNotFound, ce.Code, ce.Message)
			return
		case errors.Is(ce, core.ErrValidation):
			abortWithError(c, http.StatusUnprocessableEntity, ce.Code, ce.Message)
			return
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		logger.Warn().Err(err).Str("request_id", requestID(c)).Msg("request timed out")
		abortWithError(c, http.StatusGatewayTimeout, errCodeTimeout, "request timed out")
		return
	}

	internal := core.Internal(err)
	logger.Error().
		Err(err).
		Str("request_id", requestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("request failed")
	abortWithError(c, http.StatusInternalServerError, internal.Code, internal.Message)
}

// writeBindError reports a request body that could not be bound.
// Field validation failures are validation errors; anything else is a malformed body.
func writeBindError(c *gin.Context, logger *zerolog.Logger, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		logger.Debug().Err(err).Msg("request body failed validation")
		abortWithError(c, http.StatusUnprocessableEntity, core.ErrCodeValidation, validationMessage(verrs[0]))
		return
	}

	logger.Debug().Err(err).Msg("invalid request body")
	abortWithError(c, http.StatusBadRequest, core.ErrCodeBadRequest, "invalid request body")
}

func validationMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return field + " is too long"
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
