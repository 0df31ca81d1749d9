package entity

import (
	"github.com/google/uuid"
)

// db model
type Offer struct {
	Id              uuid.UUID `json:"id" db:"id"`
	BusinessOwnerId uuid.UUID `json:"businessOwnerId" db:"business_owner_id"`
	OfferName       string    `json:"offerName" db:"offer_name"`
	Terms           Terms     `json:"terms"`
	Status          string    `json:"status" db:"status"`
	IsDeleted       bool      `json:"isDeleted" db:"is_deleted"`
	CreatedAt       string    `json:"createdAt" db:"created_at"`
}

// Unavailable reports whether the offer no longer admits any thread
// activity. A closed or soft-deleted offer freezes every thread under it.
func (o *Offer) Unavailable() bool {
	return o.Status != "open" || o.IsDeleted
}

// service + repo input model
type CreateOfferInput struct {
	BusinessOwnerId string // given, from the principal
	OfferName       string // given
	Terms           Terms  // given, seeds version 1 of every thread
	Status          string // should be set: "open"
	// Id UUID sets automatically
	// CreatedAt sets automatically
}

// repo search filter; zero values mean "not filtered"
type OfferSearchInput struct {
	OfferName     string
	Status        string
	IsDeleted     *bool
	BusinessOwner uuid.UUID
}

// controller model
type OfferOutputModel struct {
	Id              string `json:"id"`
	BusinessOwnerId string `json:"businessOwnerId"`
	OfferName       string `json:"offerName"`
	Terms           Terms  `json:"terms"`
	Status          string `json:"status"`
	IsDeleted       bool   `json:"isDeleted"`
	CreatedAt       string `json:"createdAt"`
}
