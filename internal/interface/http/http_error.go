package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/exchanger/internal/domain/currency"
	"github.com/yanqian/exchanger/internal/domain/unitconv"
	apperrors "github.com/yanqian/exchanger/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromDomainError maps apperrors codes onto HTTP statuses.
func fromDomainError(err error, fallbackCode string) *HTTPError {
	code, ok := apperrors.CodeOf(err)
	if !ok {
		return NewHTTPError(http.StatusInternalServerError, fallbackCode, errMessage(err), err)
	}
	var status int
	switch code {
	case string(unitconv.KindUnknownUnitType), string(unitconv.KindUnknownUnit), string(unitconv.KindInvalidValue), currency.CodeInvalidInput:
		status = http.StatusBadRequest
	case currency.CodeUpstreamError:
		status = http.StatusBadGateway
	case currency.CodeUpstreamUnavailable:
		status = http.StatusServiceUnavailable
	case currency.CodeConfigError:
		status = http.StatusInternalServerError
	default:
		return NewHTTPError(http.StatusInternalServerError, fallbackCode, errMessage(err), err)
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
