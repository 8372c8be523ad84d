package seatmap

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/ijalalfrz/seatmap-parser/internal/app/dto"
)

// SortSeats orders seats in place. Without a sort field the document order is kept.
// Unpriced seats always sort after priced ones.
func SortSeats(seats []dto.SeatListing, sortOption *dto.SortOption) []dto.SeatListing {
	var (
		option = ""
		order  = "asc"
	)
	if sortOption != nil {
		option = sortOption.Field
		if sortOption.Order != "" {
			order = sortOption.Order
		}
	}

	switch option {
	case "price":
		sort.SliceStable(seats, func(i, j int) bool {
			a, b := seats[i].SeatPrice, seats[j].SeatPrice
			if a == nil || b == nil {
				return a != nil && b == nil
			}

			if order == "asc" {
				return *a < *b
			} else {
				return *a > *b
			}
		})
	case "seat_number":
		sort.SliceStable(seats, func(i, j int) bool {
			if order == "asc" {
				return seatNumberLess(seats[i], seats[j])
			} else {
				return seatNumberLess(seats[j], seats[i])
			}
		})
	}

	return seats
}

// seatNumberLess compares "12A" style numbers by row number, then column.
func seatNumberLess(a, b dto.SeatListing) bool {
	aRow, aCol := splitSeatNumber(a)
	bRow, bCol := splitSeatNumber(b)

	if aRow != bRow {
		return aRow < bRow
	}

	return aCol < bCol
}

func splitSeatNumber(seat dto.SeatListing) (int, string) {
	number := ""
	if seat.SeatNumber != nil {
		number = *seat.SeatNumber
	}

	cut := strings.IndexFunc(number, func(r rune) bool { return !unicode.IsDigit(r) })
	if cut < 0 {
		cut = len(number)
	}

	row, err := strconv.Atoi(number[:cut])
	if err != nil {
		row = -1
	}

	return row, number[cut:]
}
