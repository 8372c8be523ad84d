package seatmap

import (
	"strings"

	"github.com/ijalalfrz/seatmap-parser/internal/app/dto"
)

// FilterSeats keeps the seats matching every set option. A price filter drops unpriced seats.
func FilterSeats(seats []dto.SeatListing, filterOpts *dto.SeatFilterOption) []dto.SeatListing {
	if filterOpts == nil {
		return seats
	}

	results := make([]dto.SeatListing, 0, len(seats))

	for _, seat := range seats {
		if filterOpts.Available != nil && *filterOpts.Available != isAvailable(seat.SeatRecord) {
			continue
		}

		if filterOpts.ExitSeat != nil && *filterOpts.ExitSeat != isExitSeat(seat.SeatRecord) {
			continue
		}

		if filterOpts.SeatType != nil && (seat.SeatType == nil || *seat.SeatType != *filterOpts.SeatType) {
			continue
		}

		if filterOpts.SeatClass != nil &&
			(seat.SeatClass == nil || !strings.EqualFold(*seat.SeatClass, *filterOpts.SeatClass)) {
			continue
		}

		if filterOpts.MaxPrice != nil && (seat.SeatPrice == nil || *seat.SeatPrice > *filterOpts.MaxPrice) {
			continue
		}

		results = append(results, seat)
	}

	return results
}

func isAvailable(seat dto.SeatRecord) bool {
	return seat.SeatAvail != nil && *seat.SeatAvail == dto.SeatAvailYes
}

func isExitSeat(seat dto.SeatRecord) bool {
	return seat.ExitSeat != nil && *seat.ExitSeat == dto.ExitSeatYes
}
