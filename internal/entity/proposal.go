package entity

import (
	"github.com/google/uuid"
)

// Proposal is one immutable offer_versions row: a versioned snapshot of
// terms exchanged within a thread. Version numbers are thread-scoped,
// 1-based and gapless; corrections append a new version, never rewrite.
type Proposal struct {
	Id        uuid.UUID `json:"id" db:"id"`
	ThreadId  uuid.UUID `json:"threadId" db:"offer_buyer_id"`
	VersionNo int       `json:"versionNo" db:"version_no"`
	FromParty string    `json:"fromParty" db:"from_party"`
	ToParty   string    `json:"toParty" db:"to_party"`
	OfferName string    `json:"offerName" db:"offer_name"`
	Terms     Terms     `json:"terms"`
	CreatedAt string    `json:"createdAt" db:"created_at"`
}

// controller model
type ProposalOutputModel struct {
	Id        string `json:"id"`
	ThreadId  string `json:"threadId"`
	VersionNo int    `json:"versionNo"`
	FromParty string `json:"fromParty"`
	ToParty   string `json:"toParty"`
	OfferName string `json:"offerName"`
	Terms     Terms  `json:"terms"`
	CreatedAt string `json:"createdAt"`
}
