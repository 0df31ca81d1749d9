package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/sigasystems/digital-negotiation-book-api/internal/common"
	"github.com/sigasystems/digital-negotiation-book-api/internal/entity"
	"github.com/sigasystems/digital-negotiation-book-api/internal/repo/repo_errors"
	"github.com/sigasystems/digital-negotiation-book-api/pkg/postgres"
)

// NegotiationRepo owns the offer_buyers (thread), offer_versions (proposal
// ledger) and offer_results (decision) tables.
type NegotiationRepo struct {
	*postgres.Postgres
	log zerolog.Logger
}

func NewNegotiationRepo(pgdb *postgres.Postgres, log zerolog.Logger) *NegotiationRepo {
	return &NegotiationRepo{pgdb, log.With().Str("repo", "negotiation").Logger()}
}

const (
	threadColumns   = "id, offer_id, buyer_id, owner_id, status, created_at"
	proposalColumns = "id, offer_buyer_id, version_no, from_party, to_party, offer_name, " + termColumns + ", created_at"
	decisionColumns = "id, offer_version_id, offer_id, owner_id, buyer_id, is_accepted, is_rejected, " +
		"accepted_by, rejected_by, owner_name, buyer_name, owner_company_name, buyer_company_name, offer_name, created_at"
)

// uniqueViolation is the Postgres error class for duplicate-key writes:
// either a race-created duplicate thread or a version-number collision.
func uniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func scanThread(row rowScanner) (*entity.Thread, error) {
	var thread entity.Thread
	var createdAt time.Time
	err := row.Scan(&thread.Id, &thread.OfferId, &thread.BuyerId, &thread.OwnerId,
		&thread.Status, &createdAt)
	if err != nil {
		return nil, err
	}
	thread.CreatedAt = formatTime(createdAt)

	return &thread, nil
}

func scanProposal(row rowScanner) (*entity.Proposal, error) {
	var proposal entity.Proposal
	var tr termsRow
	var createdAt time.Time

	dests := []interface{}{&proposal.Id, &proposal.ThreadId, &proposal.VersionNo,
		&proposal.FromParty, &proposal.ToParty, &proposal.OfferName}
	dests = append(dests, tr.dests()...)
	dests = append(dests, &createdAt)

	if err := row.Scan(dests...); err != nil {
		return nil, err
	}

	terms, err := tr.resolve()
	if err != nil {
		return nil, err
	}
	proposal.Terms = terms
	proposal.CreatedAt = formatTime(createdAt)

	return &proposal, nil
}

func scanDecision(row rowScanner) (*entity.Decision, error) {
	var decision entity.Decision
	var acceptedBy, rejectedBy sql.NullString
	var createdAt time.Time
	err := row.Scan(&decision.Id, &decision.ProposalId, &decision.OfferId, &decision.OwnerId,
		&decision.BuyerId, &decision.IsAccepted, &decision.IsRejected, &acceptedBy, &rejectedBy,
		&decision.OwnerName, &decision.BuyerName, &decision.OwnerCompanyName,
		&decision.BuyerCompanyName, &decision.OfferName, &createdAt)
	if err != nil {
		return nil, err
	}
	decision.AcceptedBy = acceptedBy.String
	decision.RejectedBy = rejectedBy.String
	decision.CreatedAt = formatTime(createdAt)

	return &decision, nil
}

// SendProposals runs one send batch: for every targeted buyer it
// finds-or-creates the thread, appends the next proposal version and updates
// the thread status. The whole batch commits atomically; any failure rolls
// every row back. Threads already in a terminal close status are skipped.
func (r *NegotiationRepo) SendProposals(ctx context.Context, input *entity.SendProposalsInput) (result []entity.SentProposal, err error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			if uniqueViolation(err) {
				err = repo_errors.ErrConflict
			}
		}
	}()

	result = make([]entity.SentProposal, 0, len(input.Items))
	for _, item := range input.Items {
		thread, fresh, lockErr := r.lockOrCreateThread(ctx, tx, input, item.BuyerId)
		if lockErr != nil {
			err = lockErr
			return nil, err
		}

		if thread.Status == common.ThreadClose {
			continue
		}

		last, lastErr := r.lastProposalTx(ctx, tx, thread.Id)
		if lastErr != nil {
			err = lastErr
			return nil, err
		}

		nextVersionNo := 1
		base := input.SeedTerms
		if last != nil {
			nextVersionNo = last.VersionNo + 1
			base = last.Terms
		}
		terms := base.Apply(input.Overrides)

		if err = r.insertProposalTx(ctx, tx, thread.Id, nextVersionNo, input, item, terms); err != nil {
			return nil, err
		}

		// A round sent by the other side than the previous one turns the
		// thread into a counter; a fresh thread stays open.
		if !fresh && last != nil && last.FromParty != input.FromParty {
			if err = r.setThreadStatusTx(ctx, tx, thread.Id, common.ThreadCountered); err != nil {
				return nil, err
			}
			thread.Status = common.ThreadCountered
		}

		result = append(result, entity.SentProposal{
			Thread:    *thread,
			VersionNo: nextVersionNo,
			ToParty:   item.ToParty,
		})
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	r.log.Info().
		Str("offer_id", input.OfferId.String()).
		Int("threads", len(result)).
		Msg("proposal batch committed")

	return result, nil
}

// lockOrCreateThread takes the thread row lock that serializes the
// read-last-version/write-next-version sequence for one (offer, buyer) pair.
func (r *NegotiationRepo) lockOrCreateThread(ctx context.Context, tx *sql.Tx, input *entity.SendProposalsInput, buyerId uuid.UUID) (*entity.Thread, bool, error) {
	lockSql, args, _ := r.SqlBuilder.
		Select(threadColumns).
		From("offer_buyers").
		Where("offer_id = ?", input.OfferId).
		Where("buyer_id = ?", buyerId).
		Suffix("FOR UPDATE").
		ToSql()

	thread, err := scanThread(tx.QueryRowContext(ctx, lockSql, args...))
	if err == nil {
		return thread, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}

	createSql, args, _ := r.SqlBuilder.
		Insert("offer_buyers").
		Columns("offer_id", "buyer_id", "owner_id", "status").
		Values(input.OfferId, buyerId, input.OwnerId, common.ThreadOpen).
		Suffix("RETURNING " + threadColumns).
		ToSql()

	thread, err = scanThread(tx.QueryRowContext(ctx, createSql, args...))
	if err != nil {
		return nil, false, err
	}

	return thread, true, nil
}

func (r *NegotiationRepo) lastProposalTx(ctx context.Context, tx *sql.Tx, threadId uuid.UUID) (*entity.Proposal, error) {
	lastSql, args, _ := r.SqlBuilder.
		Select(proposalColumns).
		From("offer_versions").
		Where("offer_buyer_id = ?", threadId).
		OrderBy("version_no DESC").
		Limit(1).
		ToSql()

	proposal, err := scanProposal(tx.QueryRowContext(ctx, lastSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return proposal, nil
}

func (r *NegotiationRepo) insertProposalTx(ctx context.Context, tx *sql.Tx, threadId uuid.UUID, versionNo int, input *entity.SendProposalsInput, item entity.SendProposalsItem, terms entity.Terms) error {
	values, err := termValues(terms)
	if err != nil {
		return err
	}
	values = append([]interface{}{threadId, versionNo, input.FromParty, item.ToParty, input.OfferName}, values...)

	insertSql, args, _ := r.SqlBuilder.
		Insert("offer_versions").
		Columns("offer_buyer_id, version_no, from_party, to_party, offer_name, " + termColumns).
		Values(values...).
		ToSql()

	_, err = tx.ExecContext(ctx, insertSql, args...)
	if err != nil {
		return err
	}

	return nil
}

func (r *NegotiationRepo) setThreadStatusTx(ctx context.Context, tx *sql.Tx, threadId uuid.UUID, status string) error {
	updateSql, args, _ := r.SqlBuilder.
		Update("offer_buyers").
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", threadId).
		ToSql()

	_, err := tx.ExecContext(ctx, updateSql, args...)
	if err != nil {
		return err
	}

	return nil
}

func (r *NegotiationRepo) GetThread(ctx context.Context, offerId, buyerId uuid.UUID) (*entity.Thread, error) {
	getThreadSql, args, _ := r.SqlBuilder.
		Select(threadColumns).
		From("offer_buyers").
		Where("offer_id = ?", offerId).
		Where("buyer_id = ?", buyerId).
		ToSql()

	thread, err := scanThread(r.Database.QueryRowContext(ctx, getThreadSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return thread, nil
}

// GetProposalsUpTo returns the thread's history in ascending version order,
// up to and including maxVersion. maxVersion <= 0 means the full history.
func (r *NegotiationRepo) GetProposalsUpTo(ctx context.Context, threadId uuid.UUID, maxVersion int) ([]entity.Proposal, error) {
	query := r.SqlBuilder.
		Select(proposalColumns).
		From("offer_versions").
		Where("offer_buyer_id = ?", threadId).
		OrderBy("version_no ASC")

	if maxVersion > 0 {
		query = query.Where("version_no <= ?", maxVersion)
	}

	historySql, args, _ := query.ToSql()

	rows, err := r.Database.QueryContext(ctx, historySql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	proposals := make([]entity.Proposal, 0)
	for rows.Next() {
		proposal, err := scanProposal(rows)
		if err != nil {
			return proposals, err
		}
		proposals = append(proposals, *proposal)
	}
	if err = rows.Err(); err != nil {
		return proposals, err
	}

	return proposals, nil
}

func (r *NegotiationRepo) GetLastDecision(ctx context.Context, offerId, buyerId uuid.UUID) (*entity.Decision, error) {
	lastSql, args, _ := r.SqlBuilder.
		Select(decisionColumns).
		From("offer_results").
		Where("offer_id = ?", offerId).
		Where("buyer_id = ?", buyerId).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()

	decision, err := scanDecision(r.Database.QueryRowContext(ctx, lastSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return decision, nil
}

// CreateDecision inserts one accept/reject row referencing the proposal
// that is current at decision time. Thread and ledger rows are not touched;
// negotiation state is derived from the ledger and the decision log.
func (r *NegotiationRepo) CreateDecision(ctx context.Context, input *entity.CreateDecisionInput) (decision *entity.Decision, err error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	latestSql, args, _ := r.SqlBuilder.
		Select("id").
		From("offer_versions").
		Where("offer_buyer_id = ?", input.ThreadId).
		OrderBy("version_no DESC").
		Limit(1).
		ToSql()

	var proposalId uuid.UUID
	if err = tx.QueryRowContext(ctx, latestSql, args...).Scan(&proposalId); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = repo_errors.ErrNotFound
		}

		return nil, err
	}

	var acceptedBy, rejectedBy interface{}
	if input.Accepted {
		acceptedBy = input.ActorLabel
	} else {
		rejectedBy = input.ActorLabel
	}

	insertSql, args, _ := r.SqlBuilder.
		Insert("offer_results").
		Columns("offer_version_id, offer_id, owner_id, buyer_id, is_accepted, is_rejected, "+
			"accepted_by, rejected_by, owner_name, buyer_name, owner_company_name, buyer_company_name, offer_name").
		Values(proposalId, input.OfferId, input.OwnerId, input.BuyerId, input.Accepted, !input.Accepted,
			acceptedBy, rejectedBy, input.OwnerName, input.BuyerName, input.OwnerCompanyName,
			input.BuyerCompanyName, input.OfferName).
		Suffix("RETURNING " + decisionColumns).
		ToSql()

	decision, err = scanDecision(tx.QueryRowContext(ctx, insertSql, args...))
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return decision, nil
}

// GetNegotiationsByParty lists the caller's threads with their current
// proposal, newest activity first.
func (r *NegotiationRepo) GetNegotiationsByParty(ctx context.Context, role string, partyId uuid.UUID, pg *entity.PaginationInput) ([]entity.NegotiationView, error) {
	partyColumn := "ob.owner_id"
	if role == common.RoleBuyer {
		partyColumn = "ob.buyer_id"
	}

	listSql, args, _ := r.SqlBuilder.
		Select("ob.id, ob.offer_id, ob.buyer_id, ob.owner_id, ob.status, ob.created_at, " +
			"ov.id, ov.offer_buyer_id, ov.version_no, ov.from_party, ov.to_party, ov.offer_name, " +
			prefixColumns("ov", termColumns) + ", ov.created_at").
		From("offer_buyers ob").
		InnerJoin("offer_versions ov on ov.offer_buyer_id = ob.id and ov.version_no = " +
			"(select max(version_no) from offer_versions where offer_buyer_id = ob.id)").
		Where(partyColumn+" = ?", partyId).
		OrderBy("ov.created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, listSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]entity.NegotiationView, 0)
	for rows.Next() {
		var view entity.NegotiationView
		var tr termsRow
		var threadCreatedAt, proposalCreatedAt time.Time

		dests := []interface{}{
			&view.Thread.Id, &view.Thread.OfferId, &view.Thread.BuyerId, &view.Thread.OwnerId,
			&view.Thread.Status, &threadCreatedAt,
			&view.Proposal.Id, &view.Proposal.ThreadId, &view.Proposal.VersionNo,
			&view.Proposal.FromParty, &view.Proposal.ToParty, &view.Proposal.OfferName,
		}
		dests = append(dests, tr.dests()...)
		dests = append(dests, &proposalCreatedAt)

		if err := rows.Scan(dests...); err != nil {
			return views, err
		}

		terms, err := tr.resolve()
		if err != nil {
			return views, err
		}
		view.Proposal.Terms = terms
		view.Thread.CreatedAt = formatTime(threadCreatedAt)
		view.Proposal.CreatedAt = formatTime(proposalCreatedAt)
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return views, err
	}

	return views, nil
}
