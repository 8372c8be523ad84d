package seatmap

import (
	"github.com/ijalalfrz/seatmap-parser/internal/app/dto"
)

// Summarize counts rows and seats of a converted document.
func Summarize(format string, doc dto.SeatMapDocument) dto.Metadata {
	metadata := dto.Metadata{
		Format:    format,
		TotalRows: doc.SeatMap.Len(),
	}

	for _, seat := range doc.SeatMap.Listings() {
		metadata.TotalSeats++

		if isAvailable(seat.SeatRecord) {
			metadata.AvailableSeats++
		}

		if isExitSeat(seat.SeatRecord) {
			metadata.ExitSeats++
		}

		if seat.SeatPrice == nil {
			continue
		}

		price := *seat.SeatPrice
		if metadata.MinPrice == nil || price < *metadata.MinPrice {
			metadata.MinPrice = &price
		}

		if metadata.MaxPrice == nil || price > *metadata.MaxPrice {
			metadata.MaxPrice = &price
		}
	}

	return metadata
}
