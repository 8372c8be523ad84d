package parserutils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ijalalfrz/seatmap-parser/internal/app/dto"
)

// PriceKey selects which seat amount a priced element feeds.
type PriceKey string

const (
	PriceKeyPrice PriceKey = "Price"
	PriceKeyTax   PriceKey = "Tax"
)

// Attribute names read from a priced element.
const (
	FieldAmount        = "Amount"
	FieldDecimalPlaces = "DecimalPlaces"
	FieldCurrencyCode  = "CurrencyCode"
)

// ApplyPrice parses the Amount of fields and records it on seat as
// SeatPrice or SeatTax, with the matching currency when CurrencyCode is set.
func ApplyPrice(key PriceKey, fields map[string]string, seat *dto.SeatRecord) error {
	raw, ok := fields[FieldAmount]
	if !ok {
		return fmt.Errorf("%w: missing %s", ErrInvalidAmount, FieldAmount)
	}

	var decimalPlaces *string
	if places, ok := fields[FieldDecimalPlaces]; ok {
		decimalPlaces = &places
	}

	amount, err := ParseAmount(raw, decimalPlaces)
	if err != nil {
		return err
	}

	var currency *string
	if code, ok := fields[FieldCurrencyCode]; ok {
		currency = &code
	}

	switch key {
	case PriceKeyPrice:
		seat.SeatPrice = &amount
		if currency != nil {
			seat.SeatPriceCurrency = currency
		}
	case PriceKeyTax:
		seat.SeatTax = &amount
		if currency != nil {
			seat.SeatTaxCurrency = currency
		}
	default:
		return fmt.Errorf("unknown price key %q", key)
	}

	return nil
}

// ParseAmount reads a fixed-point amount. With decimalPlaces the amount is an
// integer string whose last N digits are the fraction ("1050", "2" -> 10.50);
// an amount of N digits or fewer is all fraction ("5", "2" -> 0.5). Without
// decimalPlaces, or with zero, the string is read at face value ("20" -> 20).
func ParseAmount(amount string, decimalPlaces *string) (float64, error) {
	amount = strings.TrimSpace(amount)

	if decimalPlaces != nil {
		places, err := strconv.Atoi(strings.TrimSpace(*decimalPlaces))
		if err != nil || places < 0 {
			return 0, fmt.Errorf("%w: decimal places %q", ErrInvalidAmount, *decimalPlaces)
		}

		amount = insertDecimalPoint(amount, places)
	}

	value, err := strconv.ParseFloat(amount, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}

	return value, nil
}

func insertDecimalPoint(amount string, places int) string {
	if places == 0 {
		return amount
	}

	if len(amount) <= places {
		return "." + amount
	}

	cut := len(amount) - places

	return amount[:cut] + "." + amount[cut:]
}
