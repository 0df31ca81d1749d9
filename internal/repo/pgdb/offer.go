package pgdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sigasystems/digital-negotiation-book-api/internal/common"
	"github.com/sigasystems/digital-negotiation-book-api/internal/entity"
	"github.com/sigasystems/digital-negotiation-book-api/internal/repo/repo_errors"
	"github.com/sigasystems/digital-negotiation-book-api/pkg/postgres"
)

type OfferRepo struct {
	*postgres.Postgres
}

func NewOfferRepo(pgdb *postgres.Postgres) *OfferRepo {
	return &OfferRepo{pgdb}
}

const offerColumns = "id, business_owner_id, offer_name, " + termColumns + ", status, is_deleted, created_at"

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOffer(row rowScanner) (*entity.Offer, error) {
	var offer entity.Offer
	var tr termsRow
	var createdAt time.Time

	dests := []interface{}{&offer.Id, &offer.BusinessOwnerId, &offer.OfferName}
	dests = append(dests, tr.dests()...)
	dests = append(dests, &offer.Status, &offer.IsDeleted, &createdAt)

	if err := row.Scan(dests...); err != nil {
		return nil, err
	}

	terms, err := tr.resolve()
	if err != nil {
		return nil, err
	}
	offer.Terms = terms
	offer.CreatedAt = formatTime(createdAt)

	return &offer, nil
}

func (r *OfferRepo) CreateOffer(ctx context.Context, input *entity.CreateOfferInput) (uuid.UUID, error) {
	values, err := termValues(input.Terms)
	if err != nil {
		return uuid.Nil, err
	}
	values = append([]interface{}{input.BusinessOwnerId, input.OfferName}, values...)
	values = append(values, input.Status)

	createOfferSql, args, _ := r.SqlBuilder.
		Insert("offers").
		Columns("business_owner_id, offer_name, " + termColumns + ", status").
		Values(values...).
		Suffix("RETURNING id").
		ToSql()

	var offerId uuid.UUID
	err = r.Database.QueryRowContext(ctx, createOfferSql, args...).Scan(&offerId)
	if err != nil {
		return uuid.Nil, err
	}

	return offerId, nil
}

func (r *OfferRepo) GetOfferById(ctx context.Context, id string) (*entity.Offer, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	getOfferSql, args, _ := r.SqlBuilder.
		Select(offerColumns).
		From("offers").
		Where("id = ?", uuidForm).
		ToSql()

	offer, err := scanOffer(r.Database.QueryRowContext(ctx, getOfferSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return offer, nil
}

// UpdateOfferTerms amends only the fields the override set carries. The
// offers table is the mutable seed of future threads; proposals already
// appended are never touched by this.
func (r *OfferRepo) UpdateOfferTerms(ctx context.Context, id string, offerName string, overrides *entity.TermOverrides) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	update := r.SqlBuilder.
		Update("offers").
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", uuidForm)

	if offerName != "" {
		update = update.Set("offer_name", offerName)
	}
	if overrides != nil {
		if overrides.ProductName != nil {
			update = update.Set("product_name", *overrides.ProductName)
		}
		if overrides.SpeciesName != nil {
			update = update.Set("species_name", *overrides.SpeciesName)
		}
		if overrides.Brand != nil {
			update = update.Set("brand", *overrides.Brand)
		}
		if overrides.PlantApprovalNumber != nil {
			update = update.Set("plant_approval_number", *overrides.PlantApprovalNumber)
		}
		if overrides.Quantity != nil {
			update = update.Set("quantity", *overrides.Quantity)
		}
		if overrides.Tolerance != nil {
			update = update.Set("tolerance", *overrides.Tolerance)
		}
		if overrides.PaymentTerms != nil {
			update = update.Set("payment_terms", *overrides.PaymentTerms)
		}
		if overrides.Remark != nil {
			update = update.Set("remark", *overrides.Remark)
		}
		if overrides.ShipmentDate != nil {
			update = update.Set("shipment_date", overrides.ShipmentDate.UTC())
		}
		if overrides.SizeBreakups != nil {
			breakups, err := json.Marshal(overrides.SizeBreakups)
			if err != nil {
				return err
			}
			update = update.Set("size_breakups", breakups)
		}
		if overrides.GrandTotal != nil {
			update = update.Set("grand_total", *overrides.GrandTotal)
		}
	}

	updateSql, args, _ := update.ToSql()
	_, err = r.Database.ExecContext(ctx, updateSql, args...)
	if err != nil {
		return err
	}

	return nil
}

func (r *OfferRepo) UpdateOfferStatus(ctx context.Context, id string, newStatus string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	updateStatusSql, args, _ := r.SqlBuilder.
		Update("offers").
		Set("status", newStatus).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", uuidForm).
		ToSql()

	_, err = r.Database.ExecContext(ctx, updateStatusSql, args...)
	if err != nil {
		return err
	}

	return nil
}

// MarkOfferDeleted soft-deletes: the row stays for the audit trail, but the
// offer also closes so no thread activity survives it.
func (r *OfferRepo) MarkOfferDeleted(ctx context.Context, id string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	deleteSql, args, _ := r.SqlBuilder.
		Update("offers").
		Set("is_deleted", true).
		Set("status", common.OfferClose).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", uuidForm).
		ToSql()

	_, err = r.Database.ExecContext(ctx, deleteSql, args...)
	if err != nil {
		return err
	}

	return nil
}

func (r *OfferRepo) GetOffersByOwnerId(ctx context.Context, ownerId uuid.UUID, status string, pg *entity.PaginationInput) ([]entity.Offer, error) {
	query := r.SqlBuilder.
		Select(offerColumns).
		From("offers").
		Where("business_owner_id = ?", ownerId).
		OrderBy("created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit))

	if status != "" {
		query = query.Where("status = ?", status)
	}

	getOffersSql, args, _ := query.ToSql()

	return r.queryOffers(ctx, getOffersSql, args)
}

func (r *OfferRepo) SearchOffers(ctx context.Context, filter *entity.OfferSearchInput, pg *entity.PaginationInput) ([]entity.Offer, error) {
	query := r.SqlBuilder.
		Select(offerColumns).
		From("offers").
		OrderBy("created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit))

	if filter.BusinessOwner != uuid.Nil {
		query = query.Where("business_owner_id = ?", filter.BusinessOwner)
	}
	if filter.OfferName != "" {
		query = query.Where("offer_name ILIKE ?", "%"+filter.OfferName+"%")
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.IsDeleted != nil {
		query = query.Where("is_deleted = ?", *filter.IsDeleted)
	}

	searchSql, args, _ := query.ToSql()

	return r.queryOffers(ctx, searchSql, args)
}

func (r *OfferRepo) queryOffers(ctx context.Context, sqlReq string, args []interface{}) ([]entity.Offer, error) {
	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := make([]entity.Offer, 0)
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return offers, err
		}
		offers = append(offers, *offer)
	}
	if err = rows.Err(); err != nil {
		return offers, err
	}

	return offers, nil
}
