package entity

import (
	"github.com/google/uuid"
)

// repo input for one send batch. The service prepares the labels; the repo
// runs the whole batch in a single transaction.
type SendProposalsInput struct {
	OfferId   uuid.UUID
	OwnerId   uuid.UUID
	OfferName string
	SeedTerms Terms          // offer snapshot, seeds version 1
	Overrides *TermOverrides // merged over the last proposal each round
	FromParty string
	Items     []SendProposalsItem
}

type SendProposalsItem struct {
	BuyerId uuid.UUID
	ToParty string
}

// one affected thread of a send batch
type SentProposal struct {
	Thread    Thread
	VersionNo int
	ToParty   string
}

// NegotiationView pairs a thread with its current (latest) proposal.
// Current terms are always derived from the ledger, never stored.
type NegotiationView struct {
	Thread   Thread
	Proposal Proposal
}

// controller models
type SendOutputModel struct {
	OfferId   string              `json:"offerId"`
	FromParty string              `json:"fromParty"`
	Threads   []ThreadOutputModel `json:"threadsAffected"`
}

type NegotiationOutputModel struct {
	Thread    ThreadOutputModel     `json:"thread"`
	Proposals []ProposalOutputModel `json:"proposals"`
}
