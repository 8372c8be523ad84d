package http

import (
	"net/http"

	"github.com/ijalalfrz/seatmap-parser/internal/pkg/exception"
)

var ErrRateLimitExceeded = exception.ApplicationError{
	StatusCode: http.StatusTooManyRequests,
	Message:    "rate limit exceeded",
}
