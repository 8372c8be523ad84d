//go:build unit

package parserutils

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTag(t *testing.T) {
	normalizeRequest := func(raw, want string) func(t *testing.T) {
		return func(t *testing.T) {
			got := NormalizeTag(raw)
			assert.Equal(t, want, got)
			assert.Equal(t, got, NormalizeTag(got), "normalizing twice must not change the tag")
		}
	}

	t.Run("soap_envelope", normalizeRequest("{http://schemas.xmlsoap.org/soap/envelope/}Body", "Body"))
	t.Run("ota", normalizeRequest("{http://www.opentravel.org/OTA/2003/05/common/}RowInfo", "RowInfo"))
	t.Run("iata", normalizeRequest("{http://www.iata.org/IATA/EDIST/2017.2}Row", "Row"))
	t.Run("already_normalized", normalizeRequest("Seat", "Seat"))
	t.Run("unknown_namespace", normalizeRequest("{urn:other}Seat", "{urn:other}Seat"))
	t.Run("empty", normalizeRequest("", ""))
}

func TestLocalTag(t *testing.T) {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(`
		<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/">
			<s:Body>
				<OTA_AirSeatMapRS xmlns="http://www.opentravel.org/OTA/2003/05/common/">
					<ota:RowInfo xmlns:ota="http://www.opentravel.org/OTA/2003/05/common/"/>
					<x:Seat xmlns:x="urn:other"/>
				</OTA_AirSeatMapRS>
			</s:Body>
		</s:Envelope>`))

	var got []string
	require.NoError(t, Walk(doc.Root(), func(e *etree.Element) error {
		got = append(got, LocalTag(e))
		return nil
	}))

	assert.Equal(t, []string{"Envelope", "Body", "OTA_AirSeatMapRS", "RowInfo", "{urn:other}Seat"}, got)
}
