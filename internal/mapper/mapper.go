// Package mapper turns gathered contract records into the flat attribute set
// for one customer event. Mapping is pure: no I/O, no clock, no randomness.
package mapper

import (
	"github.com/hirelink/contract-sync-service/internal/models"
)

// Recognized business event names. Anything else is rejected with
// ErrInvalidEvent before any dispatch happens.
const (
	EventQuoteCreated = "Quote_Event_Created"
	EventOrder        = "Order"
	EventLostQuote    = "LOST QUOTE"
	EventOffHire      = "Off Hire"
	EventInvoice      = "Invoice"
)

// Map builds the attribute set for the given event name.
//
// The multi-item events write the same scalar keys on every loop pass, so
// with several items only the last item's values survive. Downstream
// consumers rely on that "last item wins" output, so it is kept exactly.
// b.Details must be non-nil; the caller rejects headerless contracts first.
func Map(event string, b *models.ContractBundle) (models.EventAttributes, error) {
	d := b.Details
	attrs := models.EventAttributes{}

	switch event {
	case EventQuoteCreated:
		for _, it := range b.Items {
			attrs["contract_number"] = it.ContNo
			attrs["email"] = d.OrderEmail
			attrs["item"] = it.ItemNo
			attrs["item_desc"] = it.ItemDesc
			attrs["analysis_code"] = it.AnlCode
			attrs["rate_code"] = it.RateCode
			attrs["rate"] = it.Rate
			attrs["total_value"] = d.Total
			attrs["transport"] = b.Delivery.Method
			attrs["quote_date"] = d.ContractDate
			attrs["hire_start_date"] = it.HireDate
			attrs["est_hire_end"] = it.EstReturn
			attrs["depot"] = it.Depot
			attrs["postcode"] = d.DelPostcode
			attrs["damage_waiver"] = it.Insurance
		}

	case EventOrder:
		for _, it := range b.Items {
			attrs["contract_number"] = d.ContNo
			attrs["email"] = d.OrderEmail
			attrs["item"] = it.ItemNo
			attrs["item_desc"] = it.ItemDesc
			attrs["analysis_code"] = it.AnlCode
			attrs["rate_code"] = it.RateCode
			attrs["rate"] = it.Rate
			attrs["total_value"] = d.Total
			attrs["transport"] = b.Delivery.Method
			attrs["quote_date"] = d.ContractDate
			attrs["hire_start_date"] = it.HireDate
			// The header projection never requests ESTRETD, so this is
			// empty; kept for parity with existing consumers.
			attrs["est_hire_end"] = d.EstReturn
			attrs["depot"] = it.Depot
			attrs["postcode"] = d.DelPostcode
		}

	case EventLostQuote:
		for _, it := range b.Items {
			attrs["contract_number"] = d.ContNo
			attrs["email"] = d.OrderEmail
			attrs["item"] = it.ItemNo
			attrs["item_desc"] = it.ItemDesc
			attrs["analysis_code"] = it.AnlCode
			attrs["rate_code"] = it.RateCode
			attrs["rate"] = it.Rate
			attrs["total_value"] = d.Total
			attrs["transport"] = b.Delivery.Method
			attrs["quote_date"] = d.ContractDate
			attrs["hire_start_date"] = it.HireDate
			attrs["est_hire_end"] = it.EstReturn
			attrs["depot"] = it.Depot
			attrs["postcode"] = d.DelPostcode
			attrs["reason"] = b.Notes.Memo
		}

	case EventOffHire:
		item, code := "", ""
		if len(b.Items) > 0 {
			item = b.Items[0].ItemNo
			code = b.Items[0].AnlCode
		}
		attrs["contract_number"] = d.ContNo
		attrs["email"] = d.OrderEmail
		attrs["item"] = item
		attrs["analysis_code"] = code
		attrs["date_of_off_hire"] = d.DelPostcode

	case EventInvoice:
		for _, it := range b.Items {
			attrs["contract_number"] = it.ContNo
			attrs["item"] = it.ItemNo
			attrs["email"] = d.OrderEmail
			attrs["amount"] = b.Invoice.Goods
			attrs["analysis_code"] = it.AnlCode
			attrs["transport"] = b.Delivery.Method
		}

	default:
		return nil, models.ErrInvalidEvent
	}

	return attrs, nil
}
