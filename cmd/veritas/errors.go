// cmd/veritas/errors.go
package main

import (
	"errors"
	"fmt"
)

// ErrorType categorizes failures surfaced by the bot
type ErrorType string

const (
	ErrorTypeQuery     ErrorType = "query"      // upstream API transport/HTTP failure
	ErrorTypeInput     ErrorType = "input"      // rejected before any network call
	ErrorTypeRateLimit ErrorType = "rate_limit" // cooldown not yet elapsed
	ErrorTypeAuth      ErrorType = "auth"       // invoker not in the allowed set
	ErrorTypeDiscord   ErrorType = "discord"    // chat transport failure
	ErrorTypeConfig    ErrorType = "config"
)

// Error codes
const (
	ErrCodeFactCheckAPI = "QUERY_001"
	ErrCodeOpenAI       = "QUERY_002"
	ErrCodeWikipedia    = "QUERY_003"
	ErrCodeNewsFeed     = "QUERY_004"
	ErrCodeArticleFetch = "QUERY_005"
	ErrCodeEmptyInput   = "INPUT_001"
	ErrCodeCooldown     = "LIMIT_001"
	ErrCodeNotAllowed   = "AUTH_001"
	ErrCodeConfigLoad   = "CONFIG_001"
)

// VeritasError is the custom error type for the application
type VeritasError struct {
	Type    ErrorType
	Code    string
	Message string
	Inner   error
}

func (e *VeritasError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("[%s-%s] %s: %v", e.Type, e.Code, e.Message, e.Inner)
	}
	return fmt.Sprintf("[%s-%s] %s", e.Type, e.Code, e.Message)
}

func (e *VeritasError) Unwrap() error {
	return e.Inner
}

// NewError creates a new VeritasError
func NewError(errType ErrorType, code string, message string, inner error) *VeritasError {
	return &VeritasError{
		Type:    errType,
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

// NewQueryError wraps an upstream API failure
func NewQueryError(code string, message string, inner error) *VeritasError {
	return NewError(ErrorTypeQuery, code, message, inner)
}

// IsQueryUnavailable reports whether err is an upstream transport/HTTP failure
func IsQueryUnavailable(err error) bool {
	var ve *VeritasError
	if errors.As(err, &ve) {
		return ve.Type == ErrorTypeQuery
	}
	return false
}
