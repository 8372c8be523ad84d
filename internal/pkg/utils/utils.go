package utils

import (
	"path/filepath"
	"strings"
)

const (
	xmlExtension       = ".xml"
	parsedOutputSuffix = "_parsed.json"
)

// StringPtr returns a pointer to a copy of v.
func StringPtr(v string) *string {
	return &v
}

// FloatPtr returns a pointer to a copy of v.
func FloatPtr(v float64) *float64 {
	return &v
}

// DerefString returns the pointed string or "" for nil.
func DerefString(v *string) string {
	if v == nil {
		return ""
	}

	return *v
}

// DerefFloat returns the pointed value, or "" for nil so spreadsheet cells stay blank.
func DerefFloat(v *float64) any {
	if v == nil {
		return ""
	}

	return *v
}

// HasXMLExtension reports whether name ends in ".xml", ignoring case.
func HasXMLExtension(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), xmlExtension)
}

// ParsedOutputPath derives the JSON output path for an input document.
// Example: "data/seatmap1.xml" -> "data/seatmap1_parsed.json"
func ParsedOutputPath(inputPath string) string {
	if len(inputPath) < len(xmlExtension) {
		return inputPath + parsedOutputSuffix
	}

	return inputPath[:len(inputPath)-len(xmlExtension)] + parsedOutputSuffix
}

// BaseNameLower returns the lower-cased final path element.
func BaseNameLower(path string) string {
	return strings.ToLower(filepath.Base(path))
}
