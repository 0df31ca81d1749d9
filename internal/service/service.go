package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sigasystems/digital-negotiation-book-api/internal/entity"
	"github.com/sigasystems/digital-negotiation-book-api/internal/repo"
)

type Diagnostics interface {
	Ping() error
}

type Offer interface {
	CreateOffer(ctx context.Context, p entity.Principal, input *entity.CreateOfferInput) (*entity.OfferOutputModel, error)
	GetOfferById(ctx context.Context, p entity.Principal, offerId string) (*entity.OfferOutputModel, error)
	GetOffers(ctx context.Context, p entity.Principal, status string, pg *entity.PaginationInput) ([]entity.OfferOutputModel, error)
	SearchOffers(ctx context.Context, p entity.Principal, filter *entity.OfferSearchInput, pg *entity.PaginationInput) ([]entity.OfferOutputModel, error)

	UpdateOffer(ctx context.Context, p entity.Principal, offerId string, offerName string, overrides *entity.TermOverrides) (*entity.OfferOutputModel, error)
	CloseOffer(ctx context.Context, p entity.Principal, offerId string) (*entity.OfferOutputModel, error)
	ReopenOffer(ctx context.Context, p entity.Principal, offerId string) (*entity.OfferOutputModel, error)
	DeleteOffer(ctx context.Context, p entity.Principal, offerId string) error
}

type Negotiation interface {
	SendOffer(ctx context.Context, offerId string, buyerIds []string, p entity.Principal, overrides *entity.TermOverrides) (*entity.SendOutputModel, error)
	RespondOffer(ctx context.Context, offerId string, buyerId string, p entity.Principal, action string) (*entity.DecisionOutputModel, error)

	GetLatestNegotiation(ctx context.Context, offerId string, buyerId string, p entity.Principal) (*entity.NegotiationOutputModel, error)
	GetRecentNegotiations(ctx context.Context, p entity.Principal, pg *entity.PaginationInput) ([]entity.NegotiationOutputModel, error)
}

type Services struct {
	Diagnostics Diagnostics
	Offer       Offer
	Negotiation Negotiation
}

func NewServices(repos *repo.Repositories, log zerolog.Logger) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		Offer:       NewOfferService(repos, log),
		Negotiation: NewNegotiationService(repos, log),
	}
}
