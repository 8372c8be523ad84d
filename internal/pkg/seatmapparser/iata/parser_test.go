//go:build unit

package iata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ijalalfrz/seatmap-parser/internal/app/dto"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/seatmapparser"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/seatmapparser/parserutils"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const definitions = `
	<ALaCarteOffer>
		<ALaCarteOfferItem OfferItemID="OI1">
			<UnitPriceDetail><TotalAmount><SimpleCurrencyPrice Code="USD">15.00</SimpleCurrencyPrice></TotalAmount></UnitPriceDetail>
		</ALaCarteOfferItem>
	</ALaCarteOffer>
	<SeatDefinitionList>
		<SeatDefinition SeatDefinitionID="SD3"><Description><Text>WINDOW</Text></Description></SeatDefinition>
		<SeatDefinition SeatDefinitionID="SD4"><Description><Text>AVAILABLE</Text></Description></SeatDefinition>
		<SeatDefinition SeatDefinitionID="SD5"><Description><Text>AISLE</Text></Description></SeatDefinition>
		<SeatDefinition SeatDefinitionID="SD14"><Description><Text>EXIT ROW</Text></Description></SeatDefinition>
	</SeatDefinitionList>`

func parse(t *testing.T, raw []byte) (dto.SeatMapDocument, error) {
	t.Helper()

	doc, err := seatmapparser.ReadDocument(raw)
	require.NoError(t, err)

	return NewParser().Parse(context.Background(), doc)
}

func withRows(rows string) []byte {
	return []byte(`<SeatAvailabilityRS xmlns="http://www.iata.org/IATA/EDIST/2017.2">` +
		rows + `<DataLists>` + definitions + `</DataLists></SeatAvailabilityRS>`)
}

func TestParser_Parse_Fixture(t *testing.T) {
	raw, err := os.ReadFile("../testdata/seatmap2.xml")
	require.NoError(t, err)

	got, err := parse(t, raw)
	require.NoError(t, err)

	gotJSON, err := json.Marshal(got)
	require.NoError(t, err)

	var want bytes.Buffer
	require.NoError(t, json.Compact(&want, []byte(`{
		"FlightInfo": {
			"DepartureDate": "2020-11-22",
			"DepartureTime": "15:30",
			"FlightNumber": "1179",
			"DepartureAirport": "LAS",
			"ArrivalAirport": "IAH",
			"AirplaneModel": "739",
			"Carrier": "UA"
		},
		"SeatMap": {
			"Row7": {
				"7A": {"SeatNumber": "7A", "SeatType": "Window", "ExitSeat": "false",
					"SeatPrice": 25.5, "SeatPriceCurrency": "USD", "SeatAvail": "yes"},
				"7C": {"SeatNumber": "7C", "SeatType": "Aisle", "ExitSeat": "false",
					"SeatPrice": 15, "SeatPriceCurrency": "USD", "SeatAvail": "yes"}
			},
			"Row8": {
				"8B": {"SeatNumber": "8B", "SeatType": "Center", "ExitSeat": "true", "SeatAvail": "no"}
			}
		}
	}`)))

	if diff := cmp.Diff(want.String(), string(gotJSON)); diff != "" {
		t.Fatalf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_Parse_Seats(t *testing.T) {
	parseRequest := func(rows, row, seat string, want *dto.SeatRecord) func(t *testing.T) {
		return func(t *testing.T) {
			got, err := parse(t, withRows(rows))
			require.NoError(t, err)

			record, ok := got.SeatMap.Seat(row, seat)
			require.True(t, ok, "seat %s missing from %s", seat, row)

			if diff := cmp.Diff(want, record); diff != "" {
				t.Fatalf("seat mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("aisle_available_priced", parseRequest(`
		<Row><Number>7</Number>
			<Seat>
				<Column>C</Column>
				<OfferItemRefs>OI1</OfferItemRefs>
				<SeatDefinitionRef>SD5</SeatDefinitionRef>
				<SeatDefinitionRef>SD4</SeatDefinitionRef>
			</Seat>
		</Row>`,
		"Row7", "7C",
		&dto.SeatRecord{
			SeatNumber:        utils.StringPtr("7C"),
			SeatType:          utils.StringPtr("Aisle"),
			ExitSeat:          utils.StringPtr("false"),
			SeatPrice:         utils.FloatPtr(15),
			SeatPriceCurrency: utils.StringPtr("USD"),
			SeatAvail:         utils.StringPtr("yes"),
		},
	))

	t.Run("window_wins_over_other_refs", parseRequest(`
		<Row><Number>2</Number>
			<Seat>
				<Column>A</Column>
				<SeatDefinitionRef>SD14</SeatDefinitionRef>
				<SeatDefinitionRef>SD3</SeatDefinitionRef>
			</Seat>
		</Row>`,
		"Row2", "2A",
		&dto.SeatRecord{
			SeatNumber: utils.StringPtr("2A"),
			SeatType:   utils.StringPtr("Window"),
			ExitSeat:   utils.StringPtr("true"),
			SeatAvail:  utils.StringPtr("no"),
		},
	))

	t.Run("center_by_default", parseRequest(`
		<Row><Number>9</Number>
			<Seat>
				<Column>E</Column>
				<SeatDefinitionRef>SD4</SeatDefinitionRef>
			</Seat>
		</Row>`,
		"Row9", "9E",
		&dto.SeatRecord{
			SeatNumber: utils.StringPtr("9E"),
			SeatType:   utils.StringPtr("Center"),
			ExitSeat:   utils.StringPtr("false"),
			SeatAvail:  utils.StringPtr("yes"),
		},
	))

	t.Run("no_refs", parseRequest(`
		<Row><Number>10</Number><Seat><Column>F</Column></Seat></Row>`,
		"Row10", "10F",
		&dto.SeatRecord{
			SeatNumber: utils.StringPtr("10F"),
			SeatType:   utils.StringPtr("Center"),
			ExitSeat:   utils.StringPtr("false"),
			SeatAvail:  utils.StringPtr("no"),
		},
	))
}

func TestParser_Parse_DefinitionsAfterRows(t *testing.T) {
	got, err := parse(t, []byte(`
		<SeatAvailabilityRS>
			<Row><Number>4</Number>
				<Seat><Column>A</Column><SeatDefinitionRef>SD3</SeatDefinitionRef></Seat>
			</Row>
			<SeatDefinitionList>
				<SeatDefinition SeatDefinitionID="SD3"><Description><Text>WINDOW</Text></Description></SeatDefinition>
			</SeatDefinitionList>
		</SeatAvailabilityRS>`))
	require.NoError(t, err)

	record, ok := got.SeatMap.Seat("Row4", "4A")
	require.True(t, ok)
	assert.Equal(t, "Window", utils.DerefString(record.SeatType))
}

func TestParser_Parse_Errors(t *testing.T) {
	parseRequest := func(rows string, wantErr error) func(t *testing.T) {
		return func(t *testing.T) {
			_, err := parse(t, withRows(rows))
			require.Error(t, err)

			if !errors.Is(err, wantErr) {
				t.Fatalf("expected error %v, got %v", wantErr, err)
			}
		}
	}

	t.Run("unknown_offer_item", parseRequest(
		`<Row><Number>1</Number><Seat><Column>A</Column><OfferItemRefs>OI9</OfferItemRefs></Seat></Row>`,
		parserutils.ErrUnknownOfferItem,
	))

	t.Run("seat_without_column", parseRequest(
		`<Row><Number>1</Number><Seat><SeatDefinitionRef>SD4</SeatDefinitionRef></Seat></Row>`,
		parserutils.ErrSeatWithoutColumn,
	))

	t.Run("seat_without_column_in_new_row", parseRequest(
		`<Row><Number>1</Number><Seat><Column>A</Column></Seat></Row>
		<Row><Number>2</Number><Seat><SeatDefinitionRef>SD4</SeatDefinitionRef></Seat></Row>`,
		parserutils.ErrSeatWithoutColumn,
	))

	t.Run("seat_before_row_number", parseRequest(
		`<Row><Seat><Column>A</Column></Seat></Row>`,
		parserutils.ErrSeatOutsideRow,
	))
}

func TestParser_Parse_UnknownSeatDefinition(t *testing.T) {
	_, err := parse(t, []byte(`
		<SeatAvailabilityRS>
			<Row><Number>1</Number><Seat><Column>A</Column><SeatDefinitionRef>SD5</SeatDefinitionRef></Seat></Row>
		</SeatAvailabilityRS>`))
	require.Error(t, err)
	assert.ErrorIs(t, err, parserutils.ErrUnknownSeatDefinition)
}

func TestParser_Parse_LastDefinitionContainerWins(t *testing.T) {
	const offers = `
		<ALaCarteOffer>
			<ALaCarteOfferItem OfferItemID="OI1"><SimpleCurrencyPrice Code="USD">15.00</SimpleCurrencyPrice></ALaCarteOfferItem>
		</ALaCarteOffer>
		<ALaCarteOffer>
			<ALaCarteOfferItem OfferItemID="OI1"><SimpleCurrencyPrice Code="EUR">30.00</SimpleCurrencyPrice></ALaCarteOfferItem>
		</ALaCarteOffer>`

	const windowAndAisle = `
		<SeatDefinitionList>
			<SeatDefinition SeatDefinitionID="SD3"><Description><Text>WINDOW</Text></Description></SeatDefinition>
			<SeatDefinition SeatDefinitionID="SD5"><Description><Text>AISLE</Text></Description></SeatDefinition>
		</SeatDefinitionList>`

	const aisleOnly = `
		<SeatDefinitionList>
			<SeatDefinition SeatDefinitionID="SD5"><Description><Text>AISLE</Text></Description></SeatDefinition>
		</SeatDefinitionList>`

	document := func(seatDefinitions, ref string) []byte {
		return []byte(`<SeatAvailabilityRS>
			<Row><Number>3</Number>
				<Seat><Column>A</Column><OfferItemRefs>OI1</OfferItemRefs><SeatDefinitionRef>` + ref + `</SeatDefinitionRef></Seat>
			</Row>
			<DataLists>` + offers + seatDefinitions + `</DataLists>
		</SeatAvailabilityRS>`)
	}

	t.Run("second_price_table", func(t *testing.T) {
		got, err := parse(t, document(windowAndAisle, SeatDefinitionAisle))
		require.NoError(t, err)

		record, ok := got.SeatMap.Seat("Row3", "3A")
		require.True(t, ok)

		assert.Equal(t, 30.0, *record.SeatPrice)
		assert.Equal(t, "EUR", utils.DerefString(record.SeatPriceCurrency))
	})

	t.Run("second_seat_definition_list_resolves", func(t *testing.T) {
		got, err := parse(t, document(aisleOnly+windowAndAisle, SeatDefinitionWindow))
		require.NoError(t, err)

		record, ok := got.SeatMap.Seat("Row3", "3A")
		require.True(t, ok)
		assert.Equal(t, "Window", utils.DerefString(record.SeatType))
	})

	t.Run("first_seat_definition_list_ignored", func(t *testing.T) {
		_, err := parse(t, document(windowAndAisle+aisleOnly, SeatDefinitionWindow))
		assert.ErrorIs(t, err, parserutils.ErrUnknownSeatDefinition)
	})
}

func TestParser_Parse_SeatWithoutColumnUpdatesPreviousSeat(t *testing.T) {
	got, err := parse(t, withRows(`
		<Row><Number>7</Number>
			<Seat>
				<Column>A</Column>
				<OfferItemRefs>OI1</OfferItemRefs>
				<SeatDefinitionRef>SD4</SeatDefinitionRef>
			</Seat>
			<Seat>
				<SeatDefinitionRef>SD3</SeatDefinitionRef>
				<SeatDefinitionRef>SD14</SeatDefinitionRef>
			</Seat>
		</Row>`))
	require.NoError(t, err)

	row, ok := got.SeatMap.Row("Row7")
	require.True(t, ok)
	assert.Equal(t, 1, row.Len())

	record, ok := got.SeatMap.Seat("Row7", "7A")
	require.True(t, ok)

	want := &dto.SeatRecord{
		SeatNumber:        utils.StringPtr("7A"),
		SeatType:          utils.StringPtr("Window"),
		ExitSeat:          utils.StringPtr("true"),
		SeatPrice:         utils.FloatPtr(15),
		SeatPriceCurrency: utils.StringPtr("USD"),
		SeatAvail:         utils.StringPtr("no"),
	}

	if diff := cmp.Diff(want, record); diff != "" {
		t.Fatalf("seat mismatch (-want +got):\n%s", diff)
	}
}
