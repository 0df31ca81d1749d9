package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sigasystems/digital-negotiation-book-api/internal/entity"
	"github.com/sigasystems/digital-negotiation-book-api/internal/repo/pgdb"
	"github.com/sigasystems/digital-negotiation-book-api/pkg/postgres"
)

type Diagnostics interface {
	Ping() error
}

type Offer interface {
	CreateOffer(ctx context.Context, input *entity.CreateOfferInput) (uuid.UUID, error)
	GetOfferById(ctx context.Context, id string) (*entity.Offer, error)
	UpdateOfferTerms(ctx context.Context, id string, offerName string, overrides *entity.TermOverrides) error
	UpdateOfferStatus(ctx context.Context, id string, newStatus string) error
	MarkOfferDeleted(ctx context.Context, id string) error
	GetOffersByOwnerId(ctx context.Context, ownerId uuid.UUID, status string, pg *entity.PaginationInput) ([]entity.Offer, error)
	SearchOffers(ctx context.Context, filter *entity.OfferSearchInput, pg *entity.PaginationInput) ([]entity.Offer, error)
}

type Party interface {
	GetBuyerById(ctx context.Context, id string) (*entity.Buyer, error)
	GetBuyersByIds(ctx context.Context, ids []uuid.UUID) ([]entity.Buyer, error)
	GetOwnerById(ctx context.Context, id string) (*entity.BusinessOwner, error)
}

// Negotiation covers the thread registry, the proposal ledger and the
// decision recorder. SendProposals and CreateDecision each run inside a
// single transaction spanning every row they write.
type Negotiation interface {
	SendProposals(ctx context.Context, input *entity.SendProposalsInput) ([]entity.SentProposal, error)
	GetThread(ctx context.Context, offerId, buyerId uuid.UUID) (*entity.Thread, error)
	GetProposalsUpTo(ctx context.Context, threadId uuid.UUID, maxVersion int) ([]entity.Proposal, error)
	GetLastDecision(ctx context.Context, offerId, buyerId uuid.UUID) (*entity.Decision, error)
	CreateDecision(ctx context.Context, input *entity.CreateDecisionInput) (*entity.Decision, error)
	GetNegotiationsByParty(ctx context.Context, role string, partyId uuid.UUID, pg *entity.PaginationInput) ([]entity.NegotiationView, error)
}

type Repositories struct {
	Diagnostics
	Offer
	Party
	Negotiation
}

func NewRepositories(p *postgres.Postgres, log zerolog.Logger) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		Offer:       pgdb.NewOfferRepo(p),
		Party:       pgdb.NewPartyRepo(p),
		Negotiation: pgdb.NewNegotiationRepo(p, log),
	}
}
