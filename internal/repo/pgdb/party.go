package pgdb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/sigasystems/digital-negotiation-book-api/internal/entity"
	"github.com/sigasystems/digital-negotiation-book-api/internal/repo/repo_errors"
	"github.com/sigasystems/digital-negotiation-book-api/pkg/postgres"
)

// PartyRepo reads both negotiation parties: buyers and business owners.
type PartyRepo struct {
	*postgres.Postgres
}

func NewPartyRepo(pgdb *postgres.Postgres) *PartyRepo {
	return &PartyRepo{pgdb}
}

const buyerColumns = "id, owner_id, buyers_company_name, contact_name, contact_email, status, is_deleted"

func (r *PartyRepo) GetBuyerById(ctx context.Context, id string) (*entity.Buyer, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	sqlReq, args, _ := r.SqlBuilder.
		Select(buyerColumns).
		From("buyers").
		Where("id = ?", uuidForm).
		Where("is_deleted = false").
		ToSql()

	var buyer entity.Buyer
	row := r.Database.QueryRowContext(ctx, sqlReq, args...)
	err = row.Scan(&buyer.Id, &buyer.OwnerId, &buyer.BuyersCompanyName,
		&buyer.ContactName, &buyer.ContactEmail, &buyer.Status, &buyer.IsDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &buyer, nil
}

func (r *PartyRepo) GetBuyersByIds(ctx context.Context, ids []uuid.UUID) ([]entity.Buyer, error) {
	sqlReq, args, _ := r.SqlBuilder.
		Select(buyerColumns).
		From("buyers").
		Where(squirrel.Eq{"id": ids}).
		Where("is_deleted = false").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buyers := make([]entity.Buyer, 0)
	for rows.Next() {
		var buyer entity.Buyer
		if err := rows.Scan(&buyer.Id, &buyer.OwnerId, &buyer.BuyersCompanyName,
			&buyer.ContactName, &buyer.ContactEmail, &buyer.Status, &buyer.IsDeleted); err != nil {
			return buyers, err
		}
		buyers = append(buyers, buyer)
	}
	if err = rows.Err(); err != nil {
		return buyers, err
	}

	return buyers, nil
}

func (r *PartyRepo) GetOwnerById(ctx context.Context, id string) (*entity.BusinessOwner, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	sqlReq, args, _ := r.SqlBuilder.
		Select("id, email, first_name, last_name, business_name, status").
		From("business_owners").
		Where("id = ?", uuidForm).
		ToSql()

	var owner entity.BusinessOwner
	row := r.Database.QueryRowContext(ctx, sqlReq, args...)
	err = row.Scan(&owner.Id, &owner.Email, &owner.FirstName, &owner.LastName,
		&owner.BusinessName, &owner.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &owner, nil
}
