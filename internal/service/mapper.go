package service

import (
	"github.com/sigasystems/digital-negotiation-book-api/internal/entity"
)

func mapOffer(o *entity.Offer) *entity.OfferOutputModel {
	return &entity.OfferOutputModel{
		Id:              o.Id.String(),
		BusinessOwnerId: o.BusinessOwnerId.String(),
		OfferName:       o.OfferName,
		Terms:           o.Terms,
		Status:          o.Status,
		IsDeleted:       o.IsDeleted,
		CreatedAt:       o.CreatedAt,
	}
}

func mapOffers(offers []entity.Offer) []entity.OfferOutputModel {
	s := make([]entity.OfferOutputModel, 0)
	for _, offer := range offers {
		s = append(s, *mapOffer(&offer))
	}

	return s
}

func mapSentProposal(sp *entity.SentProposal) entity.ThreadOutputModel {
	return entity.ThreadOutputModel{
		Id:        sp.Thread.Id.String(),
		OfferId:   sp.Thread.OfferId.String(),
		BuyerId:   sp.Thread.BuyerId.String(),
		Status:    sp.Thread.Status,
		ToParty:   sp.ToParty,
		VersionNo: sp.VersionNo,
	}
}

func mapThread(t *entity.Thread, versionNo int) entity.ThreadOutputModel {
	return entity.ThreadOutputModel{
		Id:        t.Id.String(),
		OfferId:   t.OfferId.String(),
		BuyerId:   t.BuyerId.String(),
		Status:    t.Status,
		VersionNo: versionNo,
	}
}

func mapProposal(p *entity.Proposal) entity.ProposalOutputModel {
	return entity.ProposalOutputModel{
		Id:        p.Id.String(),
		ThreadId:  p.ThreadId.String(),
		VersionNo: p.VersionNo,
		FromParty: p.FromParty,
		ToParty:   p.ToParty,
		OfferName: p.OfferName,
		Terms:     p.Terms,
		CreatedAt: p.CreatedAt,
	}
}

func mapProposals(proposals []entity.Proposal) []entity.ProposalOutputModel {
	s := make([]entity.ProposalOutputModel, 0)
	for i := range proposals {
		s = append(s, mapProposal(&proposals[i]))
	}

	return s
}

func mapDecision(d *entity.Decision) *entity.DecisionOutputModel {
	return &entity.DecisionOutputModel{
		Id:               d.Id.String(),
		ProposalId:       d.ProposalId.String(),
		OfferId:          d.OfferId.String(),
		BuyerId:          d.BuyerId.String(),
		IsAccepted:       d.IsAccepted,
		IsRejected:       d.IsRejected,
		AcceptedBy:       d.AcceptedBy,
		RejectedBy:       d.RejectedBy,
		OwnerCompanyName: d.OwnerCompanyName,
		BuyerCompanyName: d.BuyerCompanyName,
		OfferName:        d.OfferName,
		CreatedAt:        d.CreatedAt,
	}
}
