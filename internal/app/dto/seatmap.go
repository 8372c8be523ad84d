package dto

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const rowLabelPrefix = "Row"

// Seat type labels shared by both schemas.
const (
	SeatTypeWindow = "Window"
	SeatTypeAisle  = "Aisle"
	SeatTypeCenter = "Center"
)

// Seat availability and exit flags as emitted in the output.
const (
	SeatAvailYes = "yes"
	SeatAvailNo  = "no"
	ExitSeatYes  = "true"
	ExitSeatNo   = "false"
)

// FlightInfo holds the flight metadata of one seatmap document.
// Fields are only emitted once a matching element has been seen.
type FlightInfo struct {
	DepartureDate    *string `json:"DepartureDate,omitempty"`
	DepartureTime    *string `json:"DepartureTime,omitempty"`
	FlightNumber     *string `json:"FlightNumber,omitempty"`
	DepartureAirport *string `json:"DepartureAirport,omitempty"`
	ArrivalAirport   *string `json:"ArrivalAirport,omitempty"`
	AirplaneModel    *string `json:"AirplaneModel,omitempty"`
	Carrier          *string `json:"Carrier,omitempty"`
}

// SeatRecord holds the normalized attributes of a single seat.
type SeatRecord struct {
	SeatNumber        *string  `json:"SeatNumber,omitempty"`
	SeatClass         *string  `json:"SeatClass,omitempty"`
	SeatType          *string  `json:"SeatType,omitempty"`
	ExitSeat          *string  `json:"ExitSeat,omitempty"`
	SeatPrice         *float64 `json:"SeatPrice,omitempty"`
	SeatPriceCurrency *string  `json:"SeatPriceCurrency,omitempty"`
	SeatTax           *float64 `json:"SeatTax,omitempty"`
	SeatTaxCurrency   *string  `json:"SeatTaxCurrency,omitempty"`
	SeatAvail         *string  `json:"SeatAvail,omitempty"`
}

// IsEmpty reports whether no attribute has been recorded yet.
func (s *SeatRecord) IsEmpty() bool {
	return s == nil || *s == SeatRecord{}
}

// SeatRow maps seat number to seat record in insertion order.
type SeatRow = orderedmap.OrderedMap[string, *SeatRecord]

// SeatMap maps row label to its seats, both levels in insertion order.
type SeatMap struct {
	rows *orderedmap.OrderedMap[string, *SeatRow]
}

func NewSeatMap() *SeatMap {
	return &SeatMap{rows: orderedmap.New[string, *SeatRow]()}
}

// RowLabel builds the output key of a row, e.g. "12" -> "Row12".
func RowLabel(rowNumber string) string {
	return rowLabelPrefix + rowNumber
}

// AddRow creates an empty row. An existing row keeps its position but loses its seats.
func (m *SeatMap) AddRow(label string) *SeatRow {
	m.init()

	seats := orderedmap.New[string, *SeatRecord]()
	m.rows.Set(label, seats)

	return seats
}

// Row returns the row stored under label.
func (m *SeatMap) Row(label string) (*SeatRow, bool) {
	if m == nil || m.rows == nil {
		return nil, false
	}

	return m.rows.Get(label)
}

// SetSeat stores seat under seatNumber in an existing row, replacing any previous record.
func (m *SeatMap) SetSeat(label, seatNumber string, seat *SeatRecord) error {
	row, ok := m.Row(label)
	if !ok {
		return fmt.Errorf("row %q does not exist", label)
	}

	row.Set(seatNumber, seat)

	return nil
}

// Seat returns the seat stored under (label, seatNumber).
func (m *SeatMap) Seat(label, seatNumber string) (*SeatRecord, bool) {
	row, ok := m.Row(label)
	if !ok {
		return nil, false
	}

	return row.Get(seatNumber)
}

// RowLabels returns the row labels in insertion order.
func (m *SeatMap) RowLabels() []string {
	if m == nil || m.rows == nil {
		return []string{}
	}

	labels := make([]string, 0, m.rows.Len())
	for pair := m.rows.Oldest(); pair != nil; pair = pair.Next() {
		labels = append(labels, pair.Key)
	}

	return labels
}

// Len returns the number of rows.
func (m *SeatMap) Len() int {
	if m == nil || m.rows == nil {
		return 0
	}

	return m.rows.Len()
}

// Listings flattens the map into document order.
func (m *SeatMap) Listings() []SeatListing {
	listings := []SeatListing{}
	if m == nil || m.rows == nil {
		return listings
	}

	for rowPair := m.rows.Oldest(); rowPair != nil; rowPair = rowPair.Next() {
		for seatPair := rowPair.Value.Oldest(); seatPair != nil; seatPair = seatPair.Next() {
			listing := SeatListing{Row: rowPair.Key}
			if seatPair.Value != nil {
				listing.SeatRecord = *seatPair.Value
			}

			listings = append(listings, listing)
		}
	}

	return listings
}

func (m SeatMap) MarshalJSON() ([]byte, error) {
	if m.rows == nil {
		return []byte("{}"), nil
	}

	return m.rows.MarshalJSON()
}

func (m *SeatMap) UnmarshalJSON(data []byte) error {
	m.init()

	return json.Unmarshal(data, m.rows)
}

func (m *SeatMap) init() {
	if m.rows == nil {
		m.rows = orderedmap.New[string, *SeatRow]()
	}
}

// SeatMapDocument is the normalized output: exactly FlightInfo and SeatMap.
type SeatMapDocument struct {
	FlightInfo FlightInfo `json:"FlightInfo"`
	SeatMap    *SeatMap   `json:"SeatMap"`
}

func NewSeatMapDocument() SeatMapDocument {
	return SeatMapDocument{SeatMap: NewSeatMap()}
}
