package parserutils

import (
	"strings"

	"github.com/beevik/etree"
)

// Namespaces the seatmap schemas are published under.
const (
	SOAPEnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
	OTANamespace          = "http://www.opentravel.org/OTA/2003/05/common/"
	IATANamespace         = "http://www.iata.org/IATA/EDIST/2017.2"
)

var knownTagPrefixes = []string{
	"{" + SOAPEnvelopeNamespace + "}",
	"{" + OTANamespace + "}",
	"{" + IATANamespace + "}",
}

// NormalizeTag strips a known namespace from a Clark-notation tag.
// Example: "{http://www.iata.org/IATA/EDIST/2017.2}Row" -> "Row"
// Tags in any other namespace are returned unchanged.
func NormalizeTag(raw string) string {
	for _, prefix := range knownTagPrefixes {
		if strings.HasPrefix(raw, prefix) {
			return raw[len(prefix):]
		}
	}

	return raw
}

// ClarkTag renders e as "{namespace-uri}local", or "local" outside any namespace,
// whatever prefix the document used to declare it.
func ClarkTag(e *etree.Element) string {
	if uri := e.NamespaceURI(); uri != "" {
		return "{" + uri + "}" + e.Tag
	}

	return e.Tag
}

// LocalTag is the normalized tag used for matching.
func LocalTag(e *etree.Element) string {
	return NormalizeTag(ClarkTag(e))
}
