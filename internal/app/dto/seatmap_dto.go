package dto

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/ijalalfrz/seatmap-parser/internal/pkg/exception"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/utils"
)

// Supported source schema names.
const (
	FormatOTA  = "ota"
	FormatIATA = "iata"
)

var ErrNotXMLFile = exception.ApplicationError{
	Message:    "input file is not in XML format",
	StatusCode: http.StatusBadRequest,
}

var ErrDocumentTooLarge = exception.ApplicationError{
	Message:    "document exceeds the maximum allowed size",
	StatusCode: http.StatusRequestEntityTooLarge,
}

// AllowedSortField lists the fields a seat listing can be sorted by.
var AllowedSortField = map[string]bool{
	"":            true,
	"price":       true,
	"seat_number": true,
}

// ConvertRequest carries one XML seatmap document to normalize.
type ConvertRequest struct {
	Filename string `json:"filename" validate:"required"`
	Format   string `json:"format,omitempty" validate:"omitempty,oneof=ota iata"`
	Document []byte `json:"-" validate:"required,min=1"`
}

// Bind reads the document from the request body and the options from the query string.
func (c *ConvertRequest) Bind(r *http.Request) error {
	query := r.URL.Query()
	c.Filename = query.Get("filename")
	c.Format = query.Get("format")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return ErrDocumentTooLarge
		}

		return fmt.Errorf("read request body: %w", err)
	}

	c.Document = body

	if err := c.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (c *ConvertRequest) Validate() error {
	if err := ValidateSingleError(c); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	if !utils.HasXMLExtension(c.Filename) {
		return fmt.Errorf("%w: %s", ErrNotXMLFile, c.Filename)
	}

	return nil
}

// SeatFilterOption narrows a seat listing. Nil fields do not filter.
type SeatFilterOption struct {
	Available *bool    `json:"available,omitempty"`
	SeatType  *string  `json:"seat_type,omitempty" validate:"omitempty,oneof=Window Aisle Center"`
	ExitSeat  *bool    `json:"exit_seat,omitempty"`
	SeatClass *string  `json:"seat_class,omitempty"`
	MaxPrice  *float64 `json:"max_price,omitempty" validate:"omitempty,gte=0"`
}

type SortOption struct {
	Field string `json:"field"`
	Order string `json:"order" validate:"omitempty,oneof=asc desc"`
}

// SeatListRequest converts a document and lists its seats.
type SeatListRequest struct {
	ConvertRequest
	FilterOption *SeatFilterOption `json:"filter_option,omitempty"`
	SortOption   *SortOption       `json:"sort_option,omitempty"`
}

func (s *SeatListRequest) Bind(r *http.Request) error {
	query := r.URL.Query()

	filter := SeatFilterOption{}
	hasFilter := false

	for key, target := range map[string]**bool{
		"available": &filter.Available,
		"exit_seat": &filter.ExitSeat,
	} {
		raw := query.Get(key)
		if raw == "" {
			continue
		}

		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return exception.ApplicationError{
				StatusCode: http.StatusBadRequest,
				Message:    fmt.Sprintf("%s must be a boolean", key),
			}
		}

		*target = &parsed
		hasFilter = true
	}

	if raw := query.Get("seat_type"); raw != "" {
		filter.SeatType = utils.StringPtr(raw)
		hasFilter = true
	}

	if raw := query.Get("seat_class"); raw != "" {
		filter.SeatClass = utils.StringPtr(raw)
		hasFilter = true
	}

	if raw := query.Get("max_price"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return exception.ApplicationError{
				StatusCode: http.StatusBadRequest,
				Message:    "max_price must be a number",
			}
		}

		filter.MaxPrice = &parsed
		hasFilter = true
	}

	if hasFilter {
		s.FilterOption = &filter
	}

	if field := query.Get("sort"); field != "" {
		s.SortOption = &SortOption{Field: field, Order: query.Get("order")}
	}

	if err := s.ConvertRequest.Bind(r); err != nil {
		return err
	}

	if err := s.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (s *SeatListRequest) Validate() error {
	if err := s.ConvertRequest.Validate(); err != nil {
		return err
	}

	if err := ValidateSingleError(s); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	if s.SortOption != nil && !AllowedSortField[s.SortOption.Field] {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("Invalid sort field %s", s.SortOption.Field),
		}
	}

	return nil
}

// Metadata summarizes one conversion.
type Metadata struct {
	Format         string   `json:"format"`
	DocumentHash   string   `json:"document_hash"`
	TotalRows      int      `json:"total_rows"`
	TotalSeats     int      `json:"total_seats"`
	AvailableSeats int      `json:"available_seats"`
	ExitSeats      int      `json:"exit_seats"`
	MinPrice       *float64 `json:"min_price,omitempty"`
	MaxPrice       *float64 `json:"max_price,omitempty"`
	ParseTimeMs    int      `json:"parse_time_ms"`
	CacheHit       bool     `json:"cache_hit"`
}

// ConvertResponse is the response struct for the convert endpoint
type ConvertResponse struct {
	Metadata Metadata        `json:"metadata"`
	Result   SeatMapDocument `json:"result"`
}

// SeatListing is one seat flattened out of the seat map.
type SeatListing struct {
	Row string `json:"Row"`
	SeatRecord
}

// SeatListResponse is the response struct for the seats endpoint
type SeatListResponse struct {
	Metadata Metadata      `json:"metadata"`
	Seats    []SeatListing `json:"seats"`
}

// ConversionRecord is one archived conversion.
type ConversionRecord struct {
	ID           int64
	Filename     string
	Format       string
	DocumentHash string
	TotalRows    int
	TotalSeats   int
	ResultJSON   string
	CreatedAt    string
}
