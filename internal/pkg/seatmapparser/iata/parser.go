package iata

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"github.com/ijalalfrz/seatmap-parser/internal/app/dto"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/seatmapparser/parserutils"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/utils"
)

const FormatName = dto.FormatIATA

const (
	tagRow               = "Row"
	tagNumber            = "Number"
	tagSeat              = "Seat"
	tagColumn            = "Column"
	tagOfferItemRefs     = "OfferItemRefs"
	tagSeatDefinitionRef = "SeatDefinitionRef"
	tagDeparture         = "Departure"
	tagArrival           = "Arrival"
	tagAirportCode       = "AirportCode"
	tagDate              = "Date"
	tagTime              = "Time"
	tagAirlineID         = "AirlineID"
	tagFlightNumber      = "FlightNumber"
	tagAircraftCode      = "AircraftCode"
)

// Parser walks SeatAvailabilityRS documents.
type Parser struct {
	Name string
}

func NewParser() *Parser {
	return &Parser{Name: FormatName}
}

type walker struct {
	out        *dto.SeatMapDocument
	prices     PriceTable
	seatDefs   SeatDefinitionTable
	row        string
	hasRow     bool
	seatNumber string
}

// Parse builds the price and seat definition tables first, so references
// resolve wherever their definitions appear, then walks rows and flight data.
// When a document holds several definition containers the last one wins.
func (p *Parser) Parse(ctx context.Context, doc *etree.Document) (dto.SeatMapDocument, error) {
	root := doc.Root()

	prices := PriceTable{}
	err := parserutils.Walk(root, func(e *etree.Element) error {
		if parserutils.LocalTag(e) != tagALaCarteOffer {
			return nil
		}

		table, err := BuildPriceTable(ctx, e)
		if err != nil {
			return err
		}

		prices = table

		return nil
	})
	if err != nil {
		return dto.SeatMapDocument{}, fmt.Errorf("%s parser: price definitions: %w", p.Name, err)
	}

	seatDefs := SeatDefinitionTable{}
	err = parserutils.Walk(root, func(e *etree.Element) error {
		if parserutils.LocalTag(e) != tagSeatDefinitionList {
			return nil
		}

		table, err := BuildSeatDefinitionTable(e)
		if err != nil {
			return err
		}

		seatDefs = table

		return nil
	})
	if err != nil {
		return dto.SeatMapDocument{}, fmt.Errorf("%s parser: seat definitions: %w", p.Name, err)
	}

	out := dto.NewSeatMapDocument()
	w := &walker{out: &out, prices: prices, seatDefs: seatDefs}

	if err := parserutils.Walk(root, w.visit); err != nil {
		return dto.SeatMapDocument{}, fmt.Errorf("%s parser: %w", p.Name, err)
	}

	return out, nil
}

func (w *walker) visit(e *etree.Element) error {
	info := &w.out.FlightInfo

	switch parserutils.LocalTag(e) {
	case tagRow:
		return w.visitRow(e)
	case tagDeparture:
		for _, child := range e.ChildElements() {
			switch parserutils.LocalTag(child) {
			case tagAirportCode:
				info.DepartureAirport = utils.StringPtr(child.Text())
			case tagDate:
				info.DepartureDate = utils.StringPtr(child.Text())
			case tagTime:
				info.DepartureTime = utils.StringPtr(child.Text())
			}
		}
	case tagArrival:
		for _, child := range e.ChildElements() {
			if parserutils.LocalTag(child) == tagAirportCode {
				info.ArrivalAirport = utils.StringPtr(child.Text())
			}
		}
	case tagAirlineID:
		info.Carrier = utils.StringPtr(e.Text())
	case tagFlightNumber:
		info.FlightNumber = utils.StringPtr(e.Text())
	case tagAircraftCode:
		info.AirplaneModel = utils.StringPtr(e.Text())
	}

	return nil
}

func (w *walker) visitRow(row *etree.Element) error {
	for _, child := range row.ChildElements() {
		switch parserutils.LocalTag(child) {
		case tagNumber:
			w.row = strings.TrimSpace(child.Text())
			w.hasRow = true
			w.out.SeatMap.AddRow(dto.RowLabel(w.row))
		case tagSeat:
			if err := w.visitSeat(child); err != nil {
				return err
			}
		}
	}

	return nil
}

func (w *walker) visitSeat(seat *etree.Element) error {
	var refs []string

	for _, child := range seat.ChildElements() {
		tag := parserutils.LocalTag(child)
		text := strings.TrimSpace(child.Text())

		switch tag {
		case tagColumn:
			if !w.hasRow {
				return parserutils.AtElement(tag, "",
					fmt.Errorf("%w: column %s", parserutils.ErrSeatOutsideRow, text))
			}

			w.seatNumber = w.row + text
			record := &dto.SeatRecord{SeatNumber: utils.StringPtr(w.seatNumber)}
			if err := w.out.SeatMap.SetSeat(dto.RowLabel(w.row), w.seatNumber, record); err != nil {
				return parserutils.AtElement(tag, "", err)
			}
		case tagOfferItemRefs:
			record, err := w.currentSeat(tag)
			if err != nil {
				return err
			}

			price, ok := w.prices[text]
			if !ok {
				return parserutils.AtElement(tag, "",
					fmt.Errorf("%w: %s", parserutils.ErrUnknownOfferItem, text))
			}

			amount, err := parserutils.ParseAmount(price.Amount, nil)
			if err != nil {
				return parserutils.AtElement(tag, "", err)
			}

			record.SeatPrice = utils.FloatPtr(amount)
			record.SeatPriceCurrency = price.Currency
		case tagSeatDefinitionRef:
			refs = append(refs, text)

			if text != SeatDefinitionWindow && text != SeatDefinitionAisle {
				continue
			}

			record, err := w.currentSeat(tag)
			if err != nil {
				return err
			}

			label, ok := w.seatDefs[text]
			if !ok {
				return parserutils.AtElement(tag, "",
					fmt.Errorf("%w: %s", parserutils.ErrUnknownSeatDefinition, text))
			}

			record.SeatType = utils.StringPtr(label)
		}
	}

	record, err := w.currentSeat(tagSeat)
	if err != nil {
		return err
	}

	if !slices.Contains(refs, SeatDefinitionWindow) && !slices.Contains(refs, SeatDefinitionAisle) {
		record.SeatType = utils.StringPtr(dto.SeatTypeCenter)
	}

	record.SeatAvail = utils.StringPtr(dto.SeatAvailNo)
	if slices.Contains(refs, SeatDefinitionAvailable) {
		record.SeatAvail = utils.StringPtr(dto.SeatAvailYes)
	}

	record.ExitSeat = utils.StringPtr(dto.ExitSeatNo)
	if slices.Contains(refs, SeatDefinitionExit) {
		record.ExitSeat = utils.StringPtr(dto.ExitSeatYes)
	}

	return nil
}

// currentSeat is the seat most recently created, which must belong to the
// current row. A Seat without its own Column keeps updating it.
func (w *walker) currentSeat(tag string) (*dto.SeatRecord, error) {
	if w.seatNumber == "" {
		return nil, parserutils.AtElement(tag, "", parserutils.ErrSeatWithoutColumn)
	}

	record, ok := w.out.SeatMap.Seat(dto.RowLabel(w.row), w.seatNumber)
	if !ok || record == nil {
		return nil, parserutils.AtElement(tag, "",
			fmt.Errorf("%w: %s not in %s", parserutils.ErrSeatWithoutColumn, w.seatNumber, dto.RowLabel(w.row)))
	}

	return record, nil
}
