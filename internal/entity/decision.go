package entity

import (
	"github.com/google/uuid"
)

// Decision is one offer_results row: an accept or reject verdict recorded
// against the proposal that was current at decision time. Insert-only.
type Decision struct {
	Id               uuid.UUID `json:"id" db:"id"`
	ProposalId       uuid.UUID `json:"proposalId" db:"offer_version_id"`
	OfferId          uuid.UUID `json:"offerId" db:"offer_id"`
	OwnerId          uuid.UUID `json:"ownerId" db:"owner_id"`
	BuyerId          uuid.UUID `json:"buyerId" db:"buyer_id"`
	IsAccepted       bool      `json:"isAccepted" db:"is_accepted"`
	IsRejected       bool      `json:"isRejected" db:"is_rejected"`
	AcceptedBy       string    `json:"acceptedBy,omitempty" db:"accepted_by"`
	RejectedBy       string    `json:"rejectedBy,omitempty" db:"rejected_by"`
	OwnerName        string    `json:"ownerName" db:"owner_name"`
	BuyerName        string    `json:"buyerName" db:"buyer_name"`
	OwnerCompanyName string    `json:"ownerCompanyName" db:"owner_company_name"`
	BuyerCompanyName string    `json:"buyerCompanyName" db:"buyer_company_name"`
	OfferName        string    `json:"offerName" db:"offer_name"`
	CreatedAt        string    `json:"createdAt" db:"created_at"`
}

// Actor returns the recorded identity of whoever rendered the verdict.
func (d *Decision) Actor() string {
	if d.IsAccepted {
		return d.AcceptedBy
	}

	return d.RejectedBy
}

// service + repo input model
type CreateDecisionInput struct {
	OfferId          uuid.UUID // given
	OwnerId          uuid.UUID // given
	BuyerId          uuid.UUID // given
	ThreadId         uuid.UUID // given; the decision references its latest proposal
	Accepted         bool      // given, exactly one of Accepted/Rejected
	ActorLabel       string    // given: "name / company / role"
	OwnerName        string
	BuyerName        string
	OwnerCompanyName string
	BuyerCompanyName string
	OfferName        string
	// Id UUID sets automatically
	// CreatedAt sets automatically
}

// controller model
type DecisionOutputModel struct {
	Id               string `json:"id"`
	ProposalId       string `json:"proposalId"`
	OfferId          string `json:"offerId"`
	BuyerId          string `json:"buyerId"`
	IsAccepted       bool   `json:"isAccepted"`
	IsRejected       bool   `json:"isRejected"`
	AcceptedBy       string `json:"acceptedBy,omitempty"`
	RejectedBy       string `json:"rejectedBy,omitempty"`
	OwnerCompanyName string `json:"ownerCompanyName"`
	BuyerCompanyName string `json:"buyerCompanyName"`
	OfferName        string `json:"offerName"`
	CreatedAt        string `json:"createdAt"`
}
