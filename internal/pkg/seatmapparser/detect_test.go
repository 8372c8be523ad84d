//go:build unit

package seatmapparser

import (
	"context"
	"os"
	"testing"

	"github.com/beevik/etree"
	"github.com/ijalalfrz/seatmap-parser/internal/app/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	detectRequest := func(raw string, want string, wantOK bool) func(t *testing.T) {
		return func(t *testing.T) {
			doc, err := ReadDocument([]byte(raw))
			require.NoError(t, err)

			got, ok := DetectFormat(doc)
			assert.Equal(t, wantOK, ok)
			assert.Equal(t, want, got)
		}
	}

	t.Run("ota_root", detectRequest(`<OTA_AirSeatMapRS/>`, dto.FormatOTA, true))
	t.Run("ota_in_soap_envelope", detectRequest(`
		<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
			<soap:Body><OTA_AirSeatMapRS xmlns="http://www.opentravel.org/OTA/2003/05/common/"/></soap:Body>
		</soap:Envelope>`, dto.FormatOTA, true))
	t.Run("ota_namespace_only", detectRequest(
		`<x:Response xmlns:x="http://www.opentravel.org/OTA/2003/05/common/"/>`, dto.FormatOTA, true))
	t.Run("iata_root", detectRequest(`<SeatAvailabilityRS/>`, dto.FormatIATA, true))
	t.Run("iata_namespace_only", detectRequest(
		`<Response xmlns="http://www.iata.org/IATA/EDIST/2017.2"/>`, dto.FormatIATA, true))
	t.Run("unknown", detectRequest(`<Seatmap><Row/></Seatmap>`, "", false))
}

func TestDetectFormat_Fixtures(t *testing.T) {
	for file, want := range map[string]string{
		"testdata/seatmap1.xml": dto.FormatOTA,
		"testdata/seatmap2.xml": dto.FormatIATA,
	} {
		raw, err := os.ReadFile(file)
		require.NoError(t, err)

		doc, err := ReadDocument(raw)
		require.NoError(t, err)

		got, ok := DetectFormat(doc)
		assert.True(t, ok, file)
		assert.Equal(t, want, got, file)
	}
}

func TestReadDocument_Invalid(t *testing.T) {
	_, err := ReadDocument([]byte(`<a attr="unterminated></a>`))
	assert.Error(t, err)

	_, err = ReadDocument([]byte(`   `))
	assert.Error(t, err)
}

func TestFormatFromFilename(t *testing.T) {
	got, ok := FormatFromFilename("data/SeatMap1.XML")
	assert.True(t, ok)
	assert.Equal(t, dto.FormatOTA, got)

	got, ok = FormatFromFilename("seatmap2.xml")
	assert.True(t, ok)
	assert.Equal(t, dto.FormatIATA, got)

	_, ok = FormatFromFilename("seatmap3.xml")
	assert.False(t, ok)
}

type stubParser struct{}

func (stubParser) Parse(context.Context, *etree.Document) (dto.SeatMapDocument, error) {
	return dto.NewSeatMapDocument(), nil
}

func TestParserFactory(t *testing.T) {
	factory := NewParserFactory()
	factory.AddParser(dto.FormatOTA, stubParser{})
	factory.AddParser(dto.FormatIATA, stubParser{})

	_, ok := factory.GetParser(dto.FormatOTA)
	assert.True(t, ok)

	_, ok = factory.GetParser("edifact")
	assert.False(t, ok)

	assert.Equal(t, []string{dto.FormatIATA, dto.FormatOTA}, factory.Formats())
}
