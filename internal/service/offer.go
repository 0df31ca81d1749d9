package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sigasystems/digital-negotiation-book-api/internal/common"
	"github.com/sigasystems/digital-negotiation-book-api/internal/entity"
	"github.com/sigasystems/digital-negotiation-book-api/internal/repo"
	"github.com/sigasystems/digital-negotiation-book-api/internal/repo/repo_errors"
)

type OfferService struct {
	offerRepo repo.Offer
	partyRepo repo.Party
	log       zerolog.Logger
}

func NewOfferService(repos *repo.Repositories, log zerolog.Logger) *OfferService {
	return &OfferService{
		offerRepo: repos.Offer,
		partyRepo: repos.Party,
		log:       log,
	}
}

func (s *OfferService) CreateOffer(ctx context.Context, p entity.Principal, input *entity.CreateOfferInput) (*entity.OfferOutputModel, error) {
	if p.Role != common.RoleBusinessOwner {
		return nil, ErrOwnerOnly
	}

	owner, err := s.partyRepo.GetOwnerById(ctx, p.Id.String())
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrOwnerInactive
		}

		return nil, fmt.Errorf("OfferService.CreateOffer - s.partyRepo.GetOwnerById: %w", err)
	}
	if owner.Status != common.PartyActive {
		return nil, ErrOwnerInactive
	}

	input.BusinessOwnerId = p.Id.String()
	input.Status = common.OfferOpen

	id, err := s.offerRepo.CreateOffer(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("OfferService.CreateOffer - s.offerRepo.CreateOffer: %w", err)
	}

	s.log.Info().
		Str("offerId", id.String()).
		Str("ownerId", p.Id.String()).
		Str("offerName", input.OfferName).
		Msg("offer created")

	return s.GetOfferById(ctx, p, id.String())
}

func (s *OfferService) GetOfferById(ctx context.Context, p entity.Principal, offerId string) (*entity.OfferOutputModel, error) {
	offer, err := s.ownedOffer(ctx, p, offerId)
	if err != nil {
		return nil, err
	}

	return mapOffer(offer), nil
}

func (s *OfferService) GetOffers(ctx context.Context, p entity.Principal, status string, pg *entity.PaginationInput) ([]entity.OfferOutputModel, error) {
	if p.Role != common.RoleBusinessOwner {
		return nil, ErrOwnerOnly
	}

	offers, err := s.offerRepo.GetOffersByOwnerId(ctx, p.Id, status, pg)
	if err != nil {
		return nil, fmt.Errorf("OfferService.GetOffers - s.offerRepo.GetOffersByOwnerId: %w", err)
	}

	return mapOffers(offers), nil
}

func (s *OfferService) SearchOffers(ctx context.Context, p entity.Principal, filter *entity.OfferSearchInput, pg *entity.PaginationInput) ([]entity.OfferOutputModel, error) {
	if p.Role != common.RoleBusinessOwner {
		return nil, ErrOwnerOnly
	}

	// searches never leak other owners' offers
	filter.BusinessOwner = p.Id

	offers, err := s.offerRepo.SearchOffers(ctx, filter, pg)
	if err != nil {
		return nil, fmt.Errorf("OfferService.SearchOffers - s.offerRepo.SearchOffers: %w", err)
	}

	return mapOffers(offers), nil
}

// UpdateOffer rewrites the offer's base terms. Running threads are not
// touched; the new terms only seed threads opened after the update.
func (s *OfferService) UpdateOffer(ctx context.Context, p entity.Principal, offerId string, offerName string, overrides *entity.TermOverrides) (*entity.OfferOutputModel, error) {
	offer, err := s.ownedOffer(ctx, p, offerId)
	if err != nil {
		return nil, err
	}
	if offer.Unavailable() {
		return nil, ErrOfferUnavailable
	}
	if offerName == "" && overrides.IsEmpty() {
		return nil, ErrNoNewChanges
	}

	if err := s.offerRepo.UpdateOfferTerms(ctx, offerId, offerName, overrides); err != nil {
		return nil, fmt.Errorf("OfferService.UpdateOffer - s.offerRepo.UpdateOfferTerms: %w", err)
	}

	return s.GetOfferById(ctx, p, offerId)
}

func (s *OfferService) CloseOffer(ctx context.Context, p entity.Principal, offerId string) (*entity.OfferOutputModel, error) {
	offer, err := s.ownedOffer(ctx, p, offerId)
	if err != nil {
		return nil, err
	}
	if offer.IsDeleted {
		return nil, ErrOfferAlreadyDeleted
	}
	if offer.Status == common.OfferClose {
		return nil, ErrNoNewChanges
	}

	if err := s.offerRepo.UpdateOfferStatus(ctx, offerId, common.OfferClose); err != nil {
		return nil, fmt.Errorf("OfferService.CloseOffer - s.offerRepo.UpdateOfferStatus: %w", err)
	}

	s.log.Info().Str("offerId", offerId).Msg("offer closed")

	return s.GetOfferById(ctx, p, offerId)
}

func (s *OfferService) ReopenOffer(ctx context.Context, p entity.Principal, offerId string) (*entity.OfferOutputModel, error) {
	offer, err := s.ownedOffer(ctx, p, offerId)
	if err != nil {
		return nil, err
	}
	if offer.IsDeleted {
		return nil, ErrOfferAlreadyDeleted
	}
	if offer.Status == common.OfferOpen {
		return nil, ErrOfferAlreadyOpen
	}

	if err := s.offerRepo.UpdateOfferStatus(ctx, offerId, common.OfferOpen); err != nil {
		return nil, fmt.Errorf("OfferService.ReopenOffer - s.offerRepo.UpdateOfferStatus: %w", err)
	}

	s.log.Info().Str("offerId", offerId).Msg("offer reopened")

	return s.GetOfferById(ctx, p, offerId)
}

// DeleteOffer soft-deletes: the row and its negotiation history stay in
// place for audit, but every operation on the offer starts failing.
func (s *OfferService) DeleteOffer(ctx context.Context, p entity.Principal, offerId string) error {
	offer, err := s.ownedOffer(ctx, p, offerId)
	if err != nil {
		return err
	}
	if offer.IsDeleted {
		return ErrOfferAlreadyDeleted
	}

	if err := s.offerRepo.MarkOfferDeleted(ctx, offerId); err != nil {
		return fmt.Errorf("OfferService.DeleteOffer - s.offerRepo.MarkOfferDeleted: %w", err)
	}

	s.log.Info().Str("offerId", offerId).Msg("offer deleted")

	return nil
}

func (s *OfferService) ownedOffer(ctx context.Context, p entity.Principal, offerId string) (*entity.Offer, error) {
	if p.Role != common.RoleBusinessOwner {
		return nil, ErrOwnerOnly
	}

	offer, err := s.offerRepo.GetOfferById(ctx, offerId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrOfferNotFound
		}

		return nil, fmt.Errorf("OfferService.ownedOffer - s.offerRepo.GetOfferById: %w", err)
	}
	if offer.BusinessOwnerId != p.Id {
		return nil, fmt.Errorf("%w: %s", ErrForbiddenNotOffer, offer.OfferName)
	}

	return offer, nil
}
