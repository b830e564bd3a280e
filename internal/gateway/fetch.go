package gateway

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hirelink/contract-sync-service/internal/models"
)

// FetchAll gathers the five record sets for one contract concurrently and
// joins the results. The first hard failure is returned, but in-flight
// sibling fetches are never cancelled: each branch runs to completion and
// unused results are dropped. Empty results degrade to zero values; only the
// handler decides whether a missing header is fatal.
func (c *Client) FetchAll(ctx context.Context, contno, session string) (*models.ContractBundle, error) {
	var b models.ContractBundle

	// A plain errgroup (no WithContext) keeps the no-cancellation join
	// semantics.
	var g errgroup.Group
	g.Go(func() error {
		items, err := c.ContractItems(ctx, contno, session)
		b.Items = items
		return err
	})
	g.Go(func() error {
		details, err := c.ContractDetails(ctx, contno, session)
		b.Details = details
		return err
	})
	g.Go(func() error {
		inv, err := c.InvoiceDetails(ctx, contno, session)
		b.Invoice = inv
		return err
	})
	g.Go(func() error {
		del, err := c.DeliveryCharges(ctx, contno, session)
		b.Delivery = del
		return err
	})
	g.Go(func() error {
		notes, err := c.ContractNotes(ctx, contno, session)
		b.Notes = notes
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &b, nil
}

// ContractItems returns the contract's line items with their analysis codes.
// The per-item code lookups fan out concurrently; a failed lookup defaults
// that item's code to "" instead of failing the fetch.
func (c *Client) ContractItems(ctx context.Context, contno, session string) ([]models.ContractItem, error) {
	var items []models.ContractItem
	q := query(session, contno, "ITEMNO,RATECODE,RATE1,HIREDATE,ESTRETD,DEPOT,INSURANCE,CONTNO,ITEMDESC3")
	if err := c.get(ctx, "fetch_contract_items", "/contractitems", contno, q, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var wg sync.WaitGroup
	for i := range items {
		if items[i].ItemNo == "" {
			continue
		}
		wg.Add(1)
		go func(it *models.ContractItem) {
			defer wg.Done()
			it.AnlCode = c.analysisCode(ctx, it.ItemNo, session)
		}(&items[i])
	}
	wg.Wait()

	return items, nil
}

// analysisCode looks up one item's analysis code. Partial data beats total
// failure here: any error is audit-logged and the code defaults to "".
func (c *Client) analysisCode(ctx context.Context, itemNo, session string) string {
	var out struct {
		AnlCode string `json:"ANLCODE"`
	}
	q := url.Values{"api_key": {session}, "fields": {"ANLCODE"}}
	if err := c.get(ctx, "fetch_analysis_code", "/stock/"+itemNo, itemNo, q, &out); err != nil {
		return ""
	}
	return strings.TrimSpace(out.AnlCode)
}

// ContractDetails returns the contract header, or nil when the upstream has
// no record for the contract number.
func (c *Client) ContractDetails(ctx context.Context, contno, session string) (*models.ContractDetails, error) {
	var rows []models.ContractDetails
	q := query(session, contno, "ORDBYEMAIL,TOTAL,DELPCODE,CONTNO,CONTDATE")
	if err := c.get(ctx, "fetch_contract_details", "/contracts", contno, q, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// InvoiceDetails returns the contract's invoice record, zero-valued when
// absent.
func (c *Client) InvoiceDetails(ctx context.Context, contno, session string) (models.InvoiceDetails, error) {
	var rows []models.InvoiceDetails
	q := query(session, contno, "GOODS")
	if err := c.get(ctx, "fetch_invoice_details", "/invoices", contno, q, &rows); err != nil {
		return models.InvoiceDetails{}, err
	}
	if len(rows) == 0 {
		return models.InvoiceDetails{}, nil
	}
	return rows[0], nil
}

// DeliveryCharges returns the contract's delivery record, zero-valued when
// absent.
func (c *Client) DeliveryCharges(ctx context.Context, contno, session string) (models.DeliveryCharge, error) {
	var rows []models.DeliveryCharge
	q := query(session, contno, "METHOD")
	if err := c.get(ctx, "fetch_delivery_charges", "/deliverycharges", contno, q, &rows); err != nil {
		return models.DeliveryCharge{}, err
	}
	if len(rows) == 0 {
		return models.DeliveryCharge{}, nil
	}
	return rows[0], nil
}

// ContractNotes returns the contract's note record, zero-valued when absent.
func (c *Client) ContractNotes(ctx context.Context, contno, session string) (models.ContractNote, error) {
	var rows []models.ContractNote
	q := query(session, contno, "MEMO")
	if err := c.get(ctx, "fetch_contract_notes", "/contractnotes", contno, q, &rows); err != nil {
		return models.ContractNote{}, err
	}
	if len(rows) == 0 {
		return models.ContractNote{}, nil
	}
	return rows[0], nil
}
