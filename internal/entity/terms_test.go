package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sigasystems/digital-negotiation-book-api/internal/entity"
)

func baseTerms() entity.Terms {
	return entity.Terms{
		Origin:              "India",
		PlantApprovalNumber: "IN-1234",
		Brand:               "Coastline",
		ProductName:         "Vannamei Shrimp",
		SpeciesName:         "Litopenaeus vannamei",
		Quantity:            "2 FCL",
		PaymentTerms:        "30% advance",
		SizeBreakups: []entity.SizeBreakup{
			{Size: "16/20", Breakup: 500, Price: decimal.NewFromFloat(8.4)},
		},
		Total:      decimal.NewFromInt(42000),
		GrandTotal: decimal.NewFromInt(42000),
	}
}

func TestApplyNilOverridesKeepsSnapshot(t *testing.T) {
	base := baseTerms()
	got := base.Apply(nil)

	if got.ProductName != base.ProductName || !got.GrandTotal.Equal(base.GrandTotal) {
		t.Fatalf("nil overrides changed the snapshot: %+v", got)
	}
}

func TestApplyMergesOnlySetFields(t *testing.T) {
	base := baseTerms()

	quantity := "3 FCL"
	grandTotal := decimal.NewFromInt(61000)
	got := base.Apply(&entity.TermOverrides{
		Quantity:   &quantity,
		GrandTotal: &grandTotal,
	})

	if got.Quantity != "3 FCL" {
		t.Fatalf("quantity not overridden: %q", got.Quantity)
	}
	if !got.GrandTotal.Equal(grandTotal) {
		t.Fatalf("grand total not overridden: %s", got.GrandTotal)
	}
	if got.ProductName != base.ProductName || got.Origin != base.Origin {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if base.Quantity != "2 FCL" {
		t.Fatalf("Apply mutated the receiver: %q", base.Quantity)
	}
}

func TestApplyReplacesSizeBreakupsWholesale(t *testing.T) {
	base := baseTerms()

	got := base.Apply(&entity.TermOverrides{
		SizeBreakups: []entity.SizeBreakup{
			{Size: "21/25", Breakup: 300, Price: decimal.NewFromFloat(7.1)},
			{Size: "26/30", Breakup: 200, Price: decimal.NewFromFloat(6.6)},
		},
	})

	if len(got.SizeBreakups) != 2 || got.SizeBreakups[0].Size != "21/25" {
		t.Fatalf("size breakups not replaced: %+v", got.SizeBreakups)
	}
	if len(base.SizeBreakups) != 1 {
		t.Fatalf("Apply mutated the receiver's breakups")
	}
}

func TestApplyCopiesShipmentDate(t *testing.T) {
	base := baseTerms()
	date := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)

	got := base.Apply(&entity.TermOverrides{ShipmentDate: &date})
	if got.ShipmentDate == nil || !got.ShipmentDate.Equal(date) {
		t.Fatalf("shipment date not applied: %v", got.ShipmentDate)
	}
	if got.ShipmentDate == &date {
		t.Fatalf("shipment date pointer aliased into the snapshot")
	}
}

func TestIsEmpty(t *testing.T) {
	var none *entity.TermOverrides
	if !none.IsEmpty() {
		t.Fatalf("nil overrides should be empty")
	}
	if !(&entity.TermOverrides{}).IsEmpty() {
		t.Fatalf("zero overrides should be empty")
	}

	remark := "updated remark"
	if (&entity.TermOverrides{Remark: &remark}).IsEmpty() {
		t.Fatalf("overrides with a set field should not be empty")
	}
}
