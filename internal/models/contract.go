package models

// Field names mirror the contract system's projection lists, so these types
// decode its responses directly.

// ContractItem is one line of a hire contract. AnlCode is filled in by a
// separate per-item lookup and defaults to "" when that lookup fails.
type ContractItem struct {
	ItemNo    string  `json:"ITEMNO"`
	RateCode  string  `json:"RATECODE"`
	Rate      float64 `json:"RATE1"`
	HireDate  string  `json:"HIREDATE"`
	EstReturn string  `json:"ESTRETD"`
	Depot     string  `json:"DEPOT"`
	Insurance float64 `json:"INSURANCE"`
	ContNo    string  `json:"CONTNO"`
	ItemDesc  string  `json:"ITEMDESC3"`
	AnlCode   string  `json:"ANLCODE"`
}

// ContractDetails is the contract header. EstReturn is not part of the header
// projection, so it stays empty; the Order mapping still reads it from here.
type ContractDetails struct {
	ContNo       string  `json:"CONTNO"`
	OrderEmail   string  `json:"ORDBYEMAIL"`
	Total        float64 `json:"TOTAL"`
	DelPostcode  string  `json:"DELPCODE"`
	ContractDate string  `json:"CONTDATE"`
	EstReturn    string  `json:"ESTRETD"`
}

// InvoiceDetails carries the goods amount for a contract.
type InvoiceDetails struct {
	Goods float64 `json:"GOODS"`
}

// DeliveryCharge carries the transport method for a contract.
type DeliveryCharge struct {
	Method string `json:"METHOD"`
}

// ContractNote carries the free-text memo for a contract.
type ContractNote struct {
	Memo string `json:"MEMO"`
}

// ContractBundle is the joined result of the five contract-system fetches.
// Details is nil when the header query returned no rows.
type ContractBundle struct {
	Items    []ContractItem
	Details  *ContractDetails
	Invoice  InvoiceDetails
	Delivery DeliveryCharge
	Notes    ContractNote
}
