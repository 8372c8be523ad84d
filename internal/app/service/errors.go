package service

import (
	"net/http"

	"github.com/ijalalfrz/seatmap-parser/internal/pkg/exception"
)

var ErrUnsupportedFormat = exception.ApplicationError{
	Message:    "unsupported seatmap format",
	StatusCode: http.StatusUnprocessableEntity,
}

var ErrMalformedXML = exception.ApplicationError{
	Message:    "malformed XML document",
	StatusCode: http.StatusBadRequest,
}

var ErrArchiveDisabled = exception.ApplicationError{
	Message:    "conversion archive is not configured",
	StatusCode: http.StatusNotFound,
}
