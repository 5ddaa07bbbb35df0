package errors

import (
	"net/http"
)

func BadRequest() ErrorEnricher   { return WithCode(http.StatusBadRequest) }
func Unauthorized() ErrorEnricher { return WithCode(http.StatusUnauthorized) }
func Forbidden() ErrorEnricher    { return WithCode(http.StatusForbidden) }
func NotFound() ErrorEnricher     { return WithCode(http.StatusNotFound) }
func Conflict() ErrorEnricher     { return WithCode(http.StatusConflict) }

// Retryable marks an error as transient, typically a transaction that
// exhausted its conflict-retry budget. Callers can use IsRetryable to
// offer a retry affordance instead of a hard failure.
func Retryable() ErrorEnricher {
	return func(err error) error {
		if err == nil {
			return nil
		}

		if myErr, ok := err.(*myError); ok {
			myErr.retryable = true
			return myErr
		}

		return &myError{
			msg:       err.Error(),
			code:      DefaultCode,
			retryable: true,
		}
	}
}

func IsRetryable(err error) bool {
	myErr, ok := err.(*myError)
	return ok && myErr.retryable
}

func IsNotFound(err error) bool {
	e, ok := err.(Error)
	return ok && e.Code() == http.StatusNotFound
}
