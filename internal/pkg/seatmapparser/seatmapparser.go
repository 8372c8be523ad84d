package seatmapparser

import (
	"context"
	"sort"

	"github.com/beevik/etree"
	"github.com/ijalalfrz/seatmap-parser/internal/app/dto"
)

// SeatMapParser normalizes one parsed seatmap document of a single schema.
type SeatMapParser interface {
	Parse(ctx context.Context, doc *etree.Document) (dto.SeatMapDocument, error)
}

// ParserFactory holds the parsers keyed by schema format name.
type ParserFactory struct {
	Parser map[string]SeatMapParser
}

func NewParserFactory() *ParserFactory {
	return &ParserFactory{
		Parser: make(map[string]SeatMapParser),
	}
}

func (f *ParserFactory) AddParser(format string, parser SeatMapParser) {
	f.Parser[format] = parser
}

func (f *ParserFactory) GetParser(format string) (SeatMapParser, bool) {
	parser, ok := f.Parser[format]
	return parser, ok
}

// Formats returns the registered format names, sorted.
func (f *ParserFactory) Formats() []string {
	formats := make([]string, 0, len(f.Parser))
	for format := range f.Parser {
		formats = append(formats, format)
	}

	sort.Strings(formats)

	return formats
}
