package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sigasystems/digital-negotiation-book-api/internal/common"
	"github.com/sigasystems/digital-negotiation-book-api/internal/entity"
	"github.com/sigasystems/digital-negotiation-book-api/internal/repo"
	"github.com/sigasystems/digital-negotiation-book-api/internal/repo/repo_errors"
)

type NegotiationService struct {
	negotiationRepo repo.Negotiation
	offerRepo       repo.Offer
	partyRepo       repo.Party
	log             zerolog.Logger
}

func NewNegotiationService(repos *repo.Repositories, log zerolog.Logger) *NegotiationService {
	return &NegotiationService{
		negotiationRepo: repos.Negotiation,
		offerRepo:       repos.Offer,
		partyRepo:       repos.Party,
		log:             log,
	}
}

// SendOffer appends one proposal version to the thread of every targeted
// buyer, creating threads that do not exist yet. An owner fans out to any
// of its buyers in one call; a buyer counters only on its own thread.
func (s *NegotiationService) SendOffer(ctx context.Context, offerId string, buyerIds []string, p entity.Principal, overrides *entity.TermOverrides) (*entity.SendOutputModel, error) {
	if len(buyerIds) == 0 {
		return nil, ErrNoBuyers
	}

	ids := make([]uuid.UUID, 0, len(buyerIds))
	seen := make(map[uuid.UUID]struct{}, len(buyerIds))
	for _, raw := range buyerIds {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBuyerNotFound, raw)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	offer, err := s.offerRepo.GetOfferById(ctx, offerId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrOfferNotFound
		}

		return nil, fmt.Errorf("NegotiationService.SendOffer - s.offerRepo.GetOfferById: %w", err)
	}
	if offer.Unavailable() {
		return nil, ErrOfferUnavailable
	}

	owner, err := s.partyRepo.GetOwnerById(ctx, offer.BusinessOwnerId.String())
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrOfferNotFound
		}

		return nil, fmt.Errorf("NegotiationService.SendOffer - s.partyRepo.GetOwnerById: %w", err)
	}
	if owner.Status != common.PartyActive {
		return nil, ErrOwnerInactive
	}

	buyers, err := s.partyRepo.GetBuyersByIds(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("NegotiationService.SendOffer - s.partyRepo.GetBuyersByIds: %w", err)
	}

	if err := authorizeSend(p, sendTarget{Offer: offer, BuyerIds: ids, Buyers: buyers}); err != nil {
		return nil, err
	}

	byId := make(map[uuid.UUID]entity.Buyer, len(buyers))
	for _, b := range buyers {
		byId[b.Id] = b
	}

	var fromParty string
	switch p.Role {
	case common.RoleBusinessOwner:
		fromParty = owner.BusinessName + " / " + common.RoleBusinessOwner
	case common.RoleBuyer:
		fromParty = byId[p.Id].BuyersCompanyName + " / " + common.RoleBuyer
	}

	items := make([]entity.SendProposalsItem, 0, len(ids))
	for _, id := range ids {
		buyer, ok := byId[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrBuyerNotFound, id)
		}

		var toParty string
		if p.Role == common.RoleBusinessOwner {
			toParty = buyer.BuyersCompanyName + " / " + common.RoleBuyer
		} else {
			toParty = owner.BusinessName + " / " + common.RoleBusinessOwner
		}
		items = append(items, entity.SendProposalsItem{BuyerId: id, ToParty: toParty})
	}

	input := &entity.SendProposalsInput{
		OfferId:   offer.Id,
		OwnerId:   offer.BusinessOwnerId,
		OfferName: offer.OfferName,
		SeedTerms: offer.Terms,
		Overrides: overrides,
		FromParty: fromParty,
		Items:     items,
	}

	sent, err := s.negotiationRepo.SendProposals(ctx, input)
	if errors.Is(err, repo_errors.ErrConflict) {
		// a concurrent sender raced us on a version slot; the thread rows
		// are committed by now, so one retry lands on fresh versions
		sent, err = s.negotiationRepo.SendProposals(ctx, input)
	}
	if err != nil {
		return nil, fmt.Errorf("NegotiationService.SendOffer - s.negotiationRepo.SendProposals: %w", err)
	}

	out := &entity.SendOutputModel{
		OfferId:   offer.Id.String(),
		FromParty: fromParty,
		Threads:   make([]entity.ThreadOutputModel, 0, len(sent)),
	}
	for i := range sent {
		out.Threads = append(out.Threads, mapSentProposal(&sent[i]))
	}

	return out, nil
}

// RespondOffer records an accept or reject verdict against the proposal
// currently on top of the (offer, buyer) thread. Verdicts never mutate the
// thread; re-deciding is allowed unless the same actor repeats the same
// outcome.
func (s *NegotiationService) RespondOffer(ctx context.Context, offerId string, buyerId string, p entity.Principal, action string) (*entity.DecisionOutputModel, error) {
	offer, buyer, owner, err := s.loadParties(ctx, offerId, buyerId)
	if err != nil {
		return nil, err
	}
	if offer.Unavailable() {
		return nil, ErrOfferUnavailable
	}
	if owner.Status != common.PartyActive {
		return nil, ErrOwnerInactive
	}

	if err := authorizeRespond(p, respondTarget{Offer: offer, Buyer: buyer}); err != nil {
		return nil, err
	}

	thread, err := s.negotiationRepo.GetThread(ctx, offer.Id, buyer.Id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrThreadNotFound
		}

		return nil, fmt.Errorf("NegotiationService.RespondOffer - s.negotiationRepo.GetThread: %w", err)
	}

	accepted := action == common.ActionAccept

	var actor string
	if p.Role == common.RoleBuyer {
		actor = buyer.ContactName + " / " + buyer.BuyersCompanyName + " / " + common.RoleBuyer
	} else {
		actor = owner.FullName() + " / " + owner.BusinessName + " / " + common.RoleBusinessOwner
	}

	last, err := s.negotiationRepo.GetLastDecision(ctx, offer.Id, buyer.Id)
	if err != nil && !errors.Is(err, repo_errors.ErrNotFound) {
		return nil, fmt.Errorf("NegotiationService.RespondOffer - s.negotiationRepo.GetLastDecision: %w", err)
	}
	if last != nil && last.IsAccepted == accepted && last.Actor() == actor {
		return nil, ErrDuplicateDecision
	}

	decision, err := s.negotiationRepo.CreateDecision(ctx, &entity.CreateDecisionInput{
		OfferId:          offer.Id,
		OwnerId:          offer.BusinessOwnerId,
		BuyerId:          buyer.Id,
		ThreadId:         thread.Id,
		Accepted:         accepted,
		ActorLabel:       actor,
		OwnerName:        owner.FullName(),
		BuyerName:        buyer.ContactName,
		OwnerCompanyName: owner.BusinessName,
		BuyerCompanyName: buyer.BuyersCompanyName,
		OfferName:        offer.OfferName,
	})
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrThreadNotFound
		}

		return nil, fmt.Errorf("NegotiationService.RespondOffer - s.negotiationRepo.CreateDecision: %w", err)
	}

	s.log.Info().
		Str("offerId", offer.Id.String()).
		Str("buyerId", buyer.Id.String()).
		Str("action", action).
		Str("actor", actor).
		Msg("decision recorded")

	return mapDecision(decision), nil
}

// GetLatestNegotiation returns the thread and its full proposal history,
// oldest first. Visible to the thread's buyer and to the owner of both the
// offer and the buyer.
func (s *NegotiationService) GetLatestNegotiation(ctx context.Context, offerId string, buyerId string, p entity.Principal) (*entity.NegotiationOutputModel, error) {
	offer, buyer, _, err := s.loadParties(ctx, offerId, buyerId)
	if err != nil {
		return nil, err
	}

	if err := authorizeRespond(p, respondTarget{Offer: offer, Buyer: buyer}); err != nil {
		return nil, err
	}

	thread, err := s.negotiationRepo.GetThread(ctx, offer.Id, buyer.Id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrThreadNotFound
		}

		return nil, fmt.Errorf("NegotiationService.GetLatestNegotiation - s.negotiationRepo.GetThread: %w", err)
	}

	proposals, err := s.negotiationRepo.GetProposalsUpTo(ctx, thread.Id, 0)
	if err != nil {
		return nil, fmt.Errorf("NegotiationService.GetLatestNegotiation - s.negotiationRepo.GetProposalsUpTo: %w", err)
	}

	latestVersion := 0
	if len(proposals) > 0 {
		latestVersion = proposals[len(proposals)-1].VersionNo
	}

	return &entity.NegotiationOutputModel{
		Thread:    mapThread(thread, latestVersion),
		Proposals: mapProposals(proposals),
	}, nil
}

// GetRecentNegotiations lists the caller's threads with the current
// proposal of each, most recently active first.
func (s *NegotiationService) GetRecentNegotiations(ctx context.Context, p entity.Principal, pg *entity.PaginationInput) ([]entity.NegotiationOutputModel, error) {
	if p.Role != common.RoleBusinessOwner && p.Role != common.RoleBuyer {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, p.Role)
	}

	views, err := s.negotiationRepo.GetNegotiationsByParty(ctx, p.Role, p.Id, pg)
	if err != nil {
		return nil, fmt.Errorf("NegotiationService.GetRecentNegotiations - s.negotiationRepo.GetNegotiationsByParty: %w", err)
	}

	out := make([]entity.NegotiationOutputModel, 0, len(views))
	for i := range views {
		v := &views[i]
		out = append(out, entity.NegotiationOutputModel{
			Thread:    mapThread(&v.Thread, v.Proposal.VersionNo),
			Proposals: []entity.ProposalOutputModel{mapProposal(&v.Proposal)},
		})
	}

	return out, nil
}

func (s *NegotiationService) loadParties(ctx context.Context, offerId, buyerId string) (*entity.Offer, *entity.Buyer, *entity.BusinessOwner, error) {
	offer, err := s.offerRepo.GetOfferById(ctx, offerId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, nil, nil, ErrOfferNotFound
		}

		return nil, nil, nil, fmt.Errorf("NegotiationService.loadParties - s.offerRepo.GetOfferById: %w", err)
	}

	buyer, err := s.partyRepo.GetBuyerById(ctx, buyerId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, nil, nil, ErrBuyerNotFound
		}

		return nil, nil, nil, fmt.Errorf("NegotiationService.loadParties - s.partyRepo.GetBuyerById: %w", err)
	}

	owner, err := s.partyRepo.GetOwnerById(ctx, offer.BusinessOwnerId.String())
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, nil, nil, ErrOfferNotFound
		}

		return nil, nil, nil, fmt.Errorf("NegotiationService.loadParties - s.partyRepo.GetOwnerById: %w", err)
	}

	return offer, buyer, owner, nil
}
