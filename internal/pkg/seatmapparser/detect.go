package seatmapparser

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/ijalalfrz/seatmap-parser/internal/app/dto"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/seatmapparser/parserutils"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/utils"
)

// Root elements of the two schemas.
const (
	OTARootElement  = "OTA_AirSeatMapRS"
	IATARootElement = "SeatAvailabilityRS"
)

// legacyFilenames are the sample file names the schemas were historically
// selected by; kept as a last resort hint for documents without any marker.
var legacyFilenames = map[string]string{
	"seatmap1.xml": dto.FormatOTA,
	"seatmap2.xml": dto.FormatIATA,
}

// ReadDocument parses raw XML into a DOM. A document without a root element is rejected.
func ReadDocument(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}

	if doc.Root() == nil {
		return nil, fmt.Errorf("document has no root element")
	}

	return doc, nil
}

// DetectFormat sniffs the schema from the first element, in document order,
// that is either a schema root element or lives in a schema namespace.
func DetectFormat(doc *etree.Document) (string, bool) {
	marker := parserutils.Find(doc.Root(), func(e *etree.Element) bool {
		return schemaFormat(e) != ""
	})
	if marker == nil {
		return "", false
	}

	return schemaFormat(marker), true
}

func schemaFormat(e *etree.Element) string {
	switch {
	case e.Tag == OTARootElement || e.NamespaceURI() == parserutils.OTANamespace:
		return dto.FormatOTA
	case e.Tag == IATARootElement || e.NamespaceURI() == parserutils.IATANamespace:
		return dto.FormatIATA
	default:
		return ""
	}
}

// FormatFromFilename maps the historical sample file names to their schema.
func FormatFromFilename(path string) (string, bool) {
	format, ok := legacyFilenames[utils.BaseNameLower(path)]
	return format, ok
}
