package pgdb

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/sigasystems/digital-negotiation-book-api/internal/entity"
)

// The term snapshot columns shared by the offers and offer_versions tables,
// in scan/insert order.
const termColumns = "origin, processor, plant_approval_number, brand, product_name, species_name, " +
	"packing, quantity, tolerance, payment_terms, remark, shipment_date, offer_validity_date, " +
	"size_breakups, total, grand_total"

// termsRow buffers nullable and jsonb columns between sql scanning and the
// entity form.
type termsRow struct {
	terms        entity.Terms
	shipmentDate sql.NullTime
	validityDate sql.NullTime
	sizeBreakups []byte
}

func (tr *termsRow) dests() []interface{} {
	t := &tr.terms

	return []interface{}{
		&t.Origin, &t.Processor, &t.PlantApprovalNumber, &t.Brand, &t.ProductName, &t.SpeciesName,
		&t.Packing, &t.Quantity, &t.Tolerance, &t.PaymentTerms, &t.Remark, &tr.shipmentDate, &tr.validityDate,
		&tr.sizeBreakups, &t.Total, &t.GrandTotal,
	}
}

func (tr *termsRow) resolve() (entity.Terms, error) {
	if tr.shipmentDate.Valid {
		d := tr.shipmentDate.Time
		tr.terms.ShipmentDate = &d
	}
	if tr.validityDate.Valid {
		d := tr.validityDate.Time
		tr.terms.OfferValidityDate = &d
	}
	if len(tr.sizeBreakups) > 0 {
		if err := json.Unmarshal(tr.sizeBreakups, &tr.terms.SizeBreakups); err != nil {
			return entity.Terms{}, err
		}
	}

	return tr.terms, nil
}

func termValues(t entity.Terms) ([]interface{}, error) {
	breakups, err := json.Marshal(t.SizeBreakups)
	if err != nil {
		return nil, err
	}

	var shipment, validity interface{}
	if t.ShipmentDate != nil {
		shipment = t.ShipmentDate.UTC()
	}
	if t.OfferValidityDate != nil {
		validity = t.OfferValidityDate.UTC()
	}

	return []interface{}{
		t.Origin, t.Processor, t.PlantApprovalNumber, t.Brand, t.ProductName, t.SpeciesName,
		t.Packing, t.Quantity, t.Tolerance, t.PaymentTerms, t.Remark, shipment, validity,
		breakups, t.Total, t.GrandTotal,
	}, nil
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// prefixColumns qualifies a comma-separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}

	return strings.Join(parts, ", ")
}
