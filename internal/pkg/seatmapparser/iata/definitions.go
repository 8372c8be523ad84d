package iata

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/beevik/etree"
	"github.com/ijalalfrz/seatmap-parser/internal/app/dto"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/seatmapparser/parserutils"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/utils"
)

// Seat definition identifiers with a fixed meaning.
const (
	SeatDefinitionWindow    = "SD3"
	SeatDefinitionAvailable = "SD4"
	SeatDefinitionAisle     = "SD5"
	SeatDefinitionExit      = "SD14"
)

const (
	tagALaCarteOffer       = "ALaCarteOffer"
	tagALaCarteOfferItem   = "ALaCarteOfferItem"
	tagSimpleCurrencyPrice = "SimpleCurrencyPrice"
	tagSeatDefinitionList  = "SeatDefinitionList"

	attrOfferItemID      = "OfferItemID"
	attrCurrencyCode     = "Code"
	attrSeatDefinitionID = "SeatDefinitionID"
)

// OfferPrice is the unparsed price of one offer item.
type OfferPrice struct {
	Amount   string
	Currency *string
}

// PriceTable maps offer item ID to its price.
type PriceTable map[string]OfferPrice

// SeatDefinitionTable maps seat definition ID to its label.
type SeatDefinitionTable map[string]string

// BuildPriceTable reads the ALaCarteOfferItem children of an ALaCarteOffer.
// An item without a SimpleCurrencyPrice inherits the price of the item read
// before it; only a leading item without any price is rejected.
func BuildPriceTable(ctx context.Context, offer *etree.Element) (PriceTable, error) {
	table := PriceTable{}

	var (
		current   OfferPrice
		havePrice bool
	)

	for _, item := range offer.ChildElements() {
		if parserutils.LocalTag(item) != tagALaCarteOfferItem {
			continue
		}

		id, _ := parserutils.Attr(item, attrOfferItemID)
		price := parserutils.FindLast(item, parserutils.HasLocalTag(tagSimpleCurrencyPrice))

		switch {
		case price != nil:
			current = OfferPrice{Amount: price.Text()}
			if code, ok := parserutils.Attr(price, attrCurrencyCode); ok {
				current.Currency = utils.StringPtr(code)
			}

			havePrice = true
		case !havePrice:
			return nil, parserutils.AtElement(tagALaCarteOfferItem, attrOfferItemID,
				fmt.Errorf("%w: %s", parserutils.ErrMissingOfferPrice, id))
		default:
			slog.WarnContext(ctx, "offer item has no price, reusing the previous offer item price",
				slog.String("offer_item_id", id))
		}

		table[id] = current
	}

	return table, nil
}

// BuildSeatDefinitionTable reads the entries of a SeatDefinitionList. Window
// and aisle definitions have fixed labels; any other entry is labelled by the
// text found two levels down (Description/Text).
func BuildSeatDefinitionTable(list *etree.Element) (SeatDefinitionTable, error) {
	table := SeatDefinitionTable{}

	for _, def := range list.ChildElements() {
		id, _ := parserutils.Attr(def, attrSeatDefinitionID)

		switch id {
		case SeatDefinitionWindow:
			table[id] = dto.SeatTypeWindow
		case SeatDefinitionAisle:
			table[id] = dto.SeatTypeAisle
		default:
			label, ok := nestedText(def)
			if !ok {
				return nil, parserutils.AtElement(parserutils.LocalTag(def), attrSeatDefinitionID,
					fmt.Errorf("%w: %s", parserutils.ErrMalformedSeatDefinition, id))
			}

			table[id] = label
		}
	}

	return table, nil
}

func nestedText(e *etree.Element) (string, bool) {
	children := e.ChildElements()
	if len(children) == 0 {
		return "", false
	}

	grandChildren := children[0].ChildElements()
	if len(grandChildren) == 0 {
		return "", false
	}

	return grandChildren[0].Text(), true
}
