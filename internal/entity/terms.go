package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SizeBreakup is one size grade line of an offer, e.g. size "20/30",
// 250 cartons at 1.5 per kg.
type SizeBreakup struct {
	Size      string          `json:"size"`
	Breakup   int             `json:"breakup"`
	Condition string          `json:"condition,omitempty"`
	Price     decimal.Decimal `json:"price"`
}

// Terms is the full commercial snapshot carried by an offer and by every
// proposal version exchanged within a thread.
type Terms struct {
	Origin              string          `json:"origin"`
	Processor           string          `json:"processor,omitempty"`
	PlantApprovalNumber string          `json:"plantApprovalNumber"`
	Brand               string          `json:"brand"`
	ProductName         string          `json:"productName"`
	SpeciesName         string          `json:"speciesName"`
	Packing             string          `json:"packing,omitempty"`
	Quantity            string          `json:"quantity,omitempty"`
	Tolerance           string          `json:"tolerance,omitempty"`
	PaymentTerms        string          `json:"paymentTerms,omitempty"`
	Remark              string          `json:"remark,omitempty"`
	ShipmentDate        *time.Time      `json:"shipmentDate,omitempty"`
	OfferValidityDate   *time.Time      `json:"offerValidityDate,omitempty"`
	SizeBreakups        []SizeBreakup   `json:"sizeBreakups"`
	Total               decimal.Decimal `json:"total"`
	GrandTotal          decimal.Decimal `json:"grandTotal"`
}

// TermOverrides is a partial set of term amendments for one negotiation
// round. Nil fields inherit from the previous proposal (or the offer seed
// when the thread has no proposals yet).
type TermOverrides struct {
	ProductName         *string          `json:"productName" validate:"omitempty,max=100"`
	SpeciesName         *string          `json:"speciesName" validate:"omitempty,max=100"`
	Brand               *string          `json:"brand" validate:"omitempty,max=50"`
	PlantApprovalNumber *string          `json:"plantApprovalNumber" validate:"omitempty,max=50"`
	Quantity            *string          `json:"quantity"`
	Tolerance           *string          `json:"tolerance"`
	PaymentTerms        *string          `json:"paymentTerms"`
	Remark              *string          `json:"remark" validate:"omitempty,max=100"`
	ShipmentDate        *time.Time       `json:"shipmentDate"`
	SizeBreakups        []SizeBreakup    `json:"sizeBreakups"`
	GrandTotal          *decimal.Decimal `json:"grandTotal"`
}

// Apply merges o over t field-wise and returns the resulting snapshot.
// t itself is never modified; proposals are immutable once written.
func (t Terms) Apply(o *TermOverrides) Terms {
	if o == nil {
		return t
	}
	if o.ProductName != nil {
		t.ProductName = *o.ProductName
	}
	if o.SpeciesName != nil {
		t.SpeciesName = *o.SpeciesName
	}
	if o.Brand != nil {
		t.Brand = *o.Brand
	}
	if o.PlantApprovalNumber != nil {
		t.PlantApprovalNumber = *o.PlantApprovalNumber
	}
	if o.Quantity != nil {
		t.Quantity = *o.Quantity
	}
	if o.Tolerance != nil {
		t.Tolerance = *o.Tolerance
	}
	if o.PaymentTerms != nil {
		t.PaymentTerms = *o.PaymentTerms
	}
	if o.Remark != nil {
		t.Remark = *o.Remark
	}
	if o.ShipmentDate != nil {
		d := *o.ShipmentDate
		t.ShipmentDate = &d
	}
	if o.SizeBreakups != nil {
		t.SizeBreakups = o.SizeBreakups
	}
	if o.GrandTotal != nil {
		t.GrandTotal = *o.GrandTotal
	}

	return t
}

// IsEmpty reports whether the override set amends nothing.
func (o *TermOverrides) IsEmpty() bool {
	if o == nil {
		return true
	}

	return o.ProductName == nil && o.SpeciesName == nil && o.Brand == nil &&
		o.PlantApprovalNumber == nil && o.Quantity == nil && o.Tolerance == nil &&
		o.PaymentTerms == nil && o.Remark == nil && o.ShipmentDate == nil &&
		o.SizeBreakups == nil && o.GrandTotal == nil
}
