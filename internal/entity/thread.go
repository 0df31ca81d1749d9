package entity

import (
	"github.com/google/uuid"
)

// Thread is the offer_buyers junction row: the negotiation relationship
// between one offer and one buyer. At most one exists per (offer, buyer)
// pair; the (offer_id, buyer_id) unique index enforces it.
type Thread struct {
	Id        uuid.UUID `json:"id" db:"id"`
	OfferId   uuid.UUID `json:"offerId" db:"offer_id"`
	BuyerId   uuid.UUID `json:"buyerId" db:"buyer_id"`
	OwnerId   uuid.UUID `json:"ownerId" db:"owner_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt string    `json:"createdAt" db:"created_at"`
}

// controller model
type ThreadOutputModel struct {
	Id        string `json:"id"`
	OfferId   string `json:"offerId"`
	BuyerId   string `json:"buyerId"`
	Status    string `json:"status"`
	ToParty   string `json:"toParty"`
	VersionNo int    `json:"versionNo"`
}
