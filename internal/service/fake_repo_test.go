package service_test

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sigasystems/digital-negotiation-book-api/internal/common"
	"github.com/sigasystems/digital-negotiation-book-api/internal/entity"
	"github.com/sigasystems/digital-negotiation-book-api/internal/repo/repo_errors"
)

// fakeRepo is an in-memory stand-in for the Postgres repositories. It mirrors
// the database semantics the services rely on: find-or-create threads,
// monotonically increasing version numbers and an insert-only decision log.
type fakeRepo struct {
	offers    map[uuid.UUID]*entity.Offer
	buyers    map[uuid.UUID]*entity.Buyer
	owners    map[uuid.UUID]*entity.BusinessOwner
	threads   []*entity.Thread
	proposals map[uuid.UUID][]entity.Proposal
	decisions []entity.Decision
	seq       int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		offers:    make(map[uuid.UUID]*entity.Offer),
		buyers:    make(map[uuid.UUID]*entity.Buyer),
		owners:    make(map[uuid.UUID]*entity.BusinessOwner),
		proposals: make(map[uuid.UUID][]entity.Proposal),
	}
}

func (f *fakeRepo) stamp() string {
	f.seq++

	return time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC).
		Add(time.Duration(f.seq) * time.Second).Format(time.RFC3339)
}

func (f *fakeRepo) Ping() error { return nil }

func (f *fakeRepo) CreateOffer(_ context.Context, input *entity.CreateOfferInput) (uuid.UUID, error) {
	ownerId, err := uuid.Parse(input.BusinessOwnerId)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	f.offers[id] = &entity.Offer{
		Id:              id,
		BusinessOwnerId: ownerId,
		OfferName:       input.OfferName,
		Terms:           input.Terms,
		Status:          input.Status,
		CreatedAt:       f.stamp(),
	}

	return id, nil
}

func (f *fakeRepo) GetOfferById(_ context.Context, id string) (*entity.Offer, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	offer, ok := f.offers[uuidForm]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	copied := *offer

	return &copied, nil
}

func (f *fakeRepo) UpdateOfferTerms(_ context.Context, id string, offerName string, overrides *entity.TermOverrides) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	offer, ok := f.offers[uuidForm]
	if !ok {
		return repo_errors.ErrNotFound
	}
	if offerName != "" {
		offer.OfferName = offerName
	}
	offer.Terms = offer.Terms.Apply(overrides)

	return nil
}

func (f *fakeRepo) UpdateOfferStatus(_ context.Context, id string, newStatus string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	offer, ok := f.offers[uuidForm]
	if !ok {
		return repo_errors.ErrNotFound
	}
	offer.Status = newStatus

	return nil
}

func (f *fakeRepo) MarkOfferDeleted(_ context.Context, id string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	offer, ok := f.offers[uuidForm]
	if !ok {
		return repo_errors.ErrNotFound
	}
	offer.IsDeleted = true
	offer.Status = common.OfferClose

	return nil
}

func (f *fakeRepo) GetOffersByOwnerId(_ context.Context, ownerId uuid.UUID, status string, _ *entity.PaginationInput) ([]entity.Offer, error) {
	offers := make([]entity.Offer, 0)
	for _, offer := range f.offers {
		if offer.BusinessOwnerId != ownerId {
			continue
		}
		if status != "" && offer.Status != status {
			continue
		}
		offers = append(offers, *offer)
	}
	sort.Slice(offers, func(i, j int) bool { return offers[i].CreatedAt > offers[j].CreatedAt })

	return offers, nil
}

func (f *fakeRepo) SearchOffers(_ context.Context, filter *entity.OfferSearchInput, _ *entity.PaginationInput) ([]entity.Offer, error) {
	offers := make([]entity.Offer, 0)
	for _, offer := range f.offers {
		if filter.BusinessOwner != uuid.Nil && offer.BusinessOwnerId != filter.BusinessOwner {
			continue
		}
		if filter.Status != "" && offer.Status != filter.Status {
			continue
		}
		if filter.IsDeleted != nil && offer.IsDeleted != *filter.IsDeleted {
			continue
		}
		offers = append(offers, *offer)
	}
	sort.Slice(offers, func(i, j int) bool { return offers[i].CreatedAt > offers[j].CreatedAt })

	return offers, nil
}

func (f *fakeRepo) GetBuyerById(_ context.Context, id string) (*entity.Buyer, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	buyer, ok := f.buyers[uuidForm]
	if !ok || buyer.IsDeleted {
		return nil, repo_errors.ErrNotFound
	}
	copied := *buyer

	return &copied, nil
}

func (f *fakeRepo) GetBuyersByIds(_ context.Context, ids []uuid.UUID) ([]entity.Buyer, error) {
	buyers := make([]entity.Buyer, 0, len(ids))
	for _, id := range ids {
		if buyer, ok := f.buyers[id]; ok && !buyer.IsDeleted {
			buyers = append(buyers, *buyer)
		}
	}

	return buyers, nil
}

func (f *fakeRepo) GetOwnerById(_ context.Context, id string) (*entity.BusinessOwner, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	owner, ok := f.owners[uuidForm]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	copied := *owner

	return &copied, nil
}

func (f *fakeRepo) findThread(offerId, buyerId uuid.UUID) *entity.Thread {
	for _, thread := range f.threads {
		if thread.OfferId == offerId && thread.BuyerId == buyerId {
			return thread
		}
	}

	return nil
}

func (f *fakeRepo) SendProposals(_ context.Context, input *entity.SendProposalsInput) ([]entity.SentProposal, error) {
	result := make([]entity.SentProposal, 0, len(input.Items))
	for _, item := range input.Items {
		fresh := false
		thread := f.findThread(input.OfferId, item.BuyerId)
		if thread == nil {
			thread = &entity.Thread{
				Id:        uuid.New(),
				OfferId:   input.OfferId,
				BuyerId:   item.BuyerId,
				OwnerId:   input.OwnerId,
				Status:    common.ThreadOpen,
				CreatedAt: f.stamp(),
			}
			f.threads = append(f.threads, thread)
			fresh = true
		}

		if thread.Status == common.ThreadClose {
			continue
		}

		history := f.proposals[thread.Id]
		nextVersionNo := 1
		base := input.SeedTerms
		var last *entity.Proposal
		if len(history) > 0 {
			last = &history[len(history)-1]
			nextVersionNo = last.VersionNo + 1
			base = last.Terms
		}

		f.proposals[thread.Id] = append(history, entity.Proposal{
			Id:        uuid.New(),
			ThreadId:  thread.Id,
			VersionNo: nextVersionNo,
			FromParty: input.FromParty,
			ToParty:   item.ToParty,
			OfferName: input.OfferName,
			Terms:     base.Apply(input.Overrides),
			CreatedAt: f.stamp(),
		})

		if !fresh && last != nil && last.FromParty != input.FromParty {
			thread.Status = common.ThreadCountered
		}

		result = append(result, entity.SentProposal{
			Thread:    *thread,
			VersionNo: nextVersionNo,
			ToParty:   item.ToParty,
		})
	}

	return result, nil
}

func (f *fakeRepo) GetThread(_ context.Context, offerId, buyerId uuid.UUID) (*entity.Thread, error) {
	thread := f.findThread(offerId, buyerId)
	if thread == nil {
		return nil, repo_errors.ErrNotFound
	}
	copied := *thread

	return &copied, nil
}

func (f *fakeRepo) GetProposalsUpTo(_ context.Context, threadId uuid.UUID, maxVersion int) ([]entity.Proposal, error) {
	history := f.proposals[threadId]
	proposals := make([]entity.Proposal, 0, len(history))
	for _, p := range history {
		if maxVersion > 0 && p.VersionNo > maxVersion {
			continue
		}
		proposals = append(proposals, p)
	}

	return proposals, nil
}

func (f *fakeRepo) GetLastDecision(_ context.Context, offerId, buyerId uuid.UUID) (*entity.Decision, error) {
	for i := len(f.decisions) - 1; i >= 0; i-- {
		if f.decisions[i].OfferId == offerId && f.decisions[i].BuyerId == buyerId {
			copied := f.decisions[i]

			return &copied, nil
		}
	}

	return nil, repo_errors.ErrNotFound
}

func (f *fakeRepo) CreateDecision(_ context.Context, input *entity.CreateDecisionInput) (*entity.Decision, error) {
	history := f.proposals[input.ThreadId]
	if len(history) == 0 {
		return nil, repo_errors.ErrNotFound
	}

	decision := entity.Decision{
		Id:               uuid.New(),
		ProposalId:       history[len(history)-1].Id,
		OfferId:          input.OfferId,
		OwnerId:          input.OwnerId,
		BuyerId:          input.BuyerId,
		IsAccepted:       input.Accepted,
		IsRejected:       !input.Accepted,
		OwnerName:        input.OwnerName,
		BuyerName:        input.BuyerName,
		OwnerCompanyName: input.OwnerCompanyName,
		BuyerCompanyName: input.BuyerCompanyName,
		OfferName:        input.OfferName,
		CreatedAt:        f.stamp(),
	}
	if input.Accepted {
		decision.AcceptedBy = input.ActorLabel
	} else {
		decision.RejectedBy = input.ActorLabel
	}
	f.decisions = append(f.decisions, decision)

	return &decision, nil
}

func (f *fakeRepo) GetNegotiationsByParty(_ context.Context, role string, partyId uuid.UUID, _ *entity.PaginationInput) ([]entity.NegotiationView, error) {
	views := make([]entity.NegotiationView, 0)
	for _, thread := range f.threads {
		if role == common.RoleBuyer && thread.BuyerId != partyId {
			continue
		}
		if role == common.RoleBusinessOwner && thread.OwnerId != partyId {
			continue
		}
		history := f.proposals[thread.Id]
		if len(history) == 0 {
			continue
		}
		views = append(views, entity.NegotiationView{
			Thread:   *thread,
			Proposal: history[len(history)-1],
		})
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].Proposal.CreatedAt > views[j].Proposal.CreatedAt
	})

	return views, nil
}
