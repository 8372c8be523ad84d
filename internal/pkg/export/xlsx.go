package export

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ijalalfrz/seatmap-parser/internal/app/dto"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/utils"
)

const (
	SeatMapSheet    = "SeatMap"
	FlightInfoSheet = "FlightInfo"
)

var seatHeaders = []string{
	"Row", "SeatNumber", "SeatClass", "SeatType", "ExitSeat",
	"SeatPrice", "SeatPriceCurrency", "SeatTax", "SeatTaxCurrency", "SeatAvail",
}

// SeatMapToXLSX writes one line per seat, in document order, plus a sheet of flight details.
func SeatMapToXLSX(doc dto.SeatMapDocument, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SeatMapSheet); err != nil {
		return err
	}

	for i, h := range seatHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SeatMapSheet, cell, h)
	}

	for i, seat := range doc.SeatMap.Listings() {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(SeatMapSheet, cell, value)
		}

		set(1, seat.Row)
		set(2, utils.DerefString(seat.SeatNumber))
		set(3, utils.DerefString(seat.SeatClass))
		set(4, utils.DerefString(seat.SeatType))
		set(5, utils.DerefString(seat.ExitSeat))
		set(6, utils.DerefFloat(seat.SeatPrice))
		set(7, utils.DerefString(seat.SeatPriceCurrency))
		set(8, utils.DerefFloat(seat.SeatTax))
		set(9, utils.DerefString(seat.SeatTaxCurrency))
		set(10, utils.DerefString(seat.SeatAvail))
	}

	if _, err := f.NewSheet(FlightInfoSheet); err != nil {
		return err
	}

	info := doc.FlightInfo
	for i, field := range []struct {
		name  string
		value *string
	}{
		{"DepartureDate", info.DepartureDate},
		{"DepartureTime", info.DepartureTime},
		{"FlightNumber", info.FlightNumber},
		{"DepartureAirport", info.DepartureAirport},
		{"ArrivalAirport", info.ArrivalAirport},
		{"AirplaneModel", info.AirplaneModel},
		{"Carrier", info.Carrier},
	} {
		nameCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
		_ = f.SetCellValue(FlightInfoSheet, nameCell, field.name)
		_ = f.SetCellValue(FlightInfoSheet, valueCell, utils.DerefString(field.value))
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
