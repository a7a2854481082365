package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("resource not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Error carries an HTTP status and a client-safe message.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(status int, message string, err error) *Error {
	return &Error{Status: status, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(http.StatusBadRequest, message, ErrValidation)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message, ErrForbidden)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, ErrNotFound)
}

// InsufficientStock is a 400: the request asks for more than is available.
func InsufficientStock(message string) *Error {
	return New(http.StatusBadRequest, message, ErrInsufficientStock)
}

// Internal keeps the cause so the response can pass its message through.
func Internal(message string, err error) *Error {
	return New(http.StatusInternalServerError, message, err)
}

// Respond writes the error envelope {message, error?} and aborts the chain.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal("Internal server error.", err)
	}

	body := gin.H{"message": appErr.Message}
	if appErr.Status >= http.StatusInternalServerError && appErr.Err != nil {
		body["error"] = appErr.Err.Error()
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.Status, body)
}
