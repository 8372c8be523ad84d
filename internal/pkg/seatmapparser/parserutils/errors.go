package parserutils

import (
	"fmt"
	"net/http"

	"github.com/ijalalfrz/seatmap-parser/internal/pkg/exception"
)

var ErrInvalidAmount = exception.ApplicationError{
	StatusCode: http.StatusUnprocessableEntity,
	Message:    "invalid amount",
}

var ErrInvalidDateTime = exception.ApplicationError{
	StatusCode: http.StatusUnprocessableEntity,
	Message:    "invalid departure date time",
}

var ErrSeatOutsideRow = exception.ApplicationError{
	StatusCode: http.StatusUnprocessableEntity,
	Message:    "seat appears before any row",
}

var ErrSeatWithoutColumn = exception.ApplicationError{
	StatusCode: http.StatusUnprocessableEntity,
	Message:    "seat has no column",
}

var ErrMissingOfferPrice = exception.ApplicationError{
	StatusCode: http.StatusUnprocessableEntity,
	Message:    "offer item has no price",
}

var ErrUnknownOfferItem = exception.ApplicationError{
	StatusCode: http.StatusUnprocessableEntity,
	Message:    "unknown offer item reference",
}

var ErrUnknownSeatDefinition = exception.ApplicationError{
	StatusCode: http.StatusUnprocessableEntity,
	Message:    "unknown seat definition reference",
}

var ErrMalformedSeatDefinition = exception.ApplicationError{
	StatusCode: http.StatusUnprocessableEntity,
	Message:    "malformed seat definition",
}

// ElementError locates a conversion failure in the source document.
type ElementError struct {
	Element   string
	Attribute string
	Err       error
}

func (e *ElementError) Error() string {
	if e.Attribute == "" {
		return fmt.Sprintf("element <%s>: %v", e.Element, e.Err)
	}

	return fmt.Sprintf("element <%s> attribute %q: %v", e.Element, e.Attribute, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

// AtElement wraps err with the element and, when non-empty, the attribute it came from.
func AtElement(element, attribute string, err error) error {
	return &ElementError{Element: element, Attribute: attribute, Err: err}
}
