package ota

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/ijalalfrz/seatmap-parser/internal/app/dto"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/seatmapparser/parserutils"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/utils"
)

const FormatName = dto.FormatOTA

const departureDateTimeLayout = "2006-01-02T15:04:05"

// Attributes driving the walk.
const (
	attrDepartureDateTime = "DepartureDateTime"
	attrFlightNumber      = "FlightNumber"
	attrLocationCode      = "LocationCode"
	attrAirEquipType      = "AirEquipType"
	attrRowNumber         = "RowNumber"
	attrCabinType         = "CabinType"
	attrExitRowInd        = "ExitRowInd"
	attrSeatNumber        = "SeatNumber"
	attrAvailableInd      = "AvailableInd"
)

// Tags that disambiguate attributes shared by several elements.
const (
	tagDepartureAirport = "DepartureAirport"
	tagArrivalAirport   = "ArrivalAirport"
	tagFee              = "Fee"
	tagTaxes            = "Taxes"
)

var seatTypes = map[string]bool{
	dto.SeatTypeWindow: true,
	dto.SeatTypeAisle:  true,
	dto.SeatTypeCenter: true,
}

// Parser walks OTA_AirSeatMapRS documents.
type Parser struct {
	Name string
}

func NewParser() *Parser {
	return &Parser{Name: FormatName}
}

// walkState is the traversal context carried from element to element.
// A seat is only committed to the map when the next row or seat boundary is reached.
type walkState struct {
	out        *dto.SeatMapDocument
	row        string
	hasRow     bool
	cabinClass *string
	exitRow    *string
	seatNumber string
	seat       *dto.SeatRecord
}

// Parse visits every element in document order. The seat pending when the
// document ends is not committed: only row and seat boundaries commit seats.
func (p *Parser) Parse(ctx context.Context, doc *etree.Document) (dto.SeatMapDocument, error) {
	out := dto.NewSeatMapDocument()
	state := &walkState{out: &out, seat: &dto.SeatRecord{}}

	err := parserutils.Walk(doc.Root(), func(e *etree.Element) error {
		return state.visit(ctx, e)
	})
	if err != nil {
		return dto.SeatMapDocument{}, fmt.Errorf("%s parser: %w", p.Name, err)
	}

	if state.seatNumber != "" && !state.seat.IsEmpty() {
		slog.DebugContext(ctx, "pending seat dropped at end of document",
			slog.String("row", dto.RowLabel(state.row)),
			slog.String("seat", state.seatNumber))
	}

	return out, nil
}

func (s *walkState) visit(ctx context.Context, e *etree.Element) error {
	tag := parserutils.LocalTag(e)

	if value, ok := parserutils.Attr(e, attrDepartureDateTime); ok {
		departure, err := time.Parse(departureDateTimeLayout, value)
		if err != nil {
			return parserutils.AtElement(tag, attrDepartureDateTime,
				fmt.Errorf("%w: %q", parserutils.ErrInvalidDateTime, value))
		}

		s.out.FlightInfo.DepartureDate = utils.StringPtr(departure.Format(time.DateOnly))
		s.out.FlightInfo.DepartureTime = utils.StringPtr(departure.Format(time.TimeOnly))
	}

	if value, ok := parserutils.Attr(e, attrFlightNumber); ok {
		s.out.FlightInfo.FlightNumber = utils.StringPtr(value)
	}

	if value, ok := parserutils.Attr(e, attrLocationCode); ok {
		switch tag {
		case tagDepartureAirport:
			s.out.FlightInfo.DepartureAirport = utils.StringPtr(value)
		case tagArrivalAirport:
			s.out.FlightInfo.ArrivalAirport = utils.StringPtr(value)
		default:
			slog.DebugContext(ctx, "location code ignored", slog.String("element", tag))
		}
	}

	if value, ok := parserutils.Attr(e, attrAirEquipType); ok {
		s.out.FlightInfo.AirplaneModel = utils.StringPtr(value)
	}

	if value, ok := parserutils.Attr(e, attrRowNumber); ok {
		if err := s.startRow(tag, e, value); err != nil {
			return err
		}
	}

	if value, ok := parserutils.Attr(e, attrExitRowInd); ok {
		s.exitRow = utils.StringPtr(value)
	}

	if value, ok := parserutils.Attr(e, attrSeatNumber); ok {
		if err := s.startSeat(tag, value); err != nil {
			return err
		}
	}

	if _, ok := parserutils.Attr(e, parserutils.FieldAmount); ok {
		if err := s.applyAmount(ctx, tag, e); err != nil {
			return err
		}
	}

	if value, ok := parserutils.Attr(e, attrAvailableInd); ok {
		switch value {
		case "false":
			s.seat.SeatAvail = utils.StringPtr(dto.SeatAvailNo)
		case "true":
			s.seat.SeatAvail = utils.StringPtr(dto.SeatAvailYes)
		default:
			slog.DebugContext(ctx, "availability indicator ignored",
				slog.String("element", tag), slog.String("value", value))
		}
	}

	if text := strings.TrimSpace(e.Text()); seatTypes[text] {
		s.seat.SeatType = utils.StringPtr(text)
	}

	return nil
}

// startRow commits the pending seat, then opens an empty row.
func (s *walkState) startRow(tag string, e *etree.Element, rowNumber string) error {
	if s.seatNumber != "" && !s.seat.IsEmpty() {
		if err := s.commitSeat(tag, attrRowNumber); err != nil {
			return err
		}

		s.seat = &dto.SeatRecord{}
		s.seatNumber = ""
	}

	s.row = rowNumber
	s.hasRow = true
	s.out.SeatMap.AddRow(dto.RowLabel(rowNumber))

	if cabin, ok := parserutils.Attr(e, attrCabinType); ok {
		s.cabinClass = utils.StringPtr(cabin)
	}

	return nil
}

// startSeat commits the pending seat and seeds the next one from the row context.
func (s *walkState) startSeat(tag, seatNumber string) error {
	if s.seatNumber != "" && !s.seat.IsEmpty() {
		if err := s.commitSeat(tag, attrSeatNumber); err != nil {
			return err
		}

		s.seat = &dto.SeatRecord{}
	}

	s.seatNumber = seatNumber
	s.seat.SeatNumber = utils.StringPtr(seatNumber)
	s.seat.SeatClass = copyString(s.cabinClass)
	s.seat.ExitSeat = copyString(s.exitRow)

	return nil
}

func (s *walkState) commitSeat(tag, attribute string) error {
	if !s.hasRow {
		return parserutils.AtElement(tag, attribute,
			fmt.Errorf("%w: %s", parserutils.ErrSeatOutsideRow, s.seatNumber))
	}

	if err := s.out.SeatMap.SetSeat(dto.RowLabel(s.row), s.seatNumber, s.seat); err != nil {
		return parserutils.AtElement(tag, attribute, err)
	}

	return nil
}

func (s *walkState) applyAmount(ctx context.Context, tag string, e *etree.Element) error {
	var key parserutils.PriceKey

	switch tag {
	case tagFee:
		key = parserutils.PriceKeyPrice
	case tagTaxes:
		key = parserutils.PriceKeyTax
	default:
		slog.DebugContext(ctx, "amount ignored", slog.String("element", tag))
		return nil
	}

	if err := parserutils.ApplyPrice(key, parserutils.Attrs(e), s.seat); err != nil {
		return parserutils.AtElement(tag, parserutils.FieldAmount, err)
	}

	return nil
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}

	return utils.StringPtr(*v)
}
