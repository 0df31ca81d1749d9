package common

// Principal roles. Exactly two; there is no hierarchy between them.
const (
	RoleBusinessOwner = "business_owner"
	RoleBuyer         = "buyer"
)

// Offer lifecycle.
const (
	OfferOpen  = "open"
	OfferClose = "close"
)

// Thread (offer-buyer) statuses.
const (
	ThreadOpen      = "open"
	ThreadAccepted  = "accepted"
	ThreadRejected  = "rejected"
	ThreadCountered = "countered"
	ThreadClose     = "close"
)

// Party (owner/buyer) account statuses.
const (
	PartyActive    = "active"
	PartyInactive  = "inactive"
	PartySuspended = "suspended"
)

// Respond actions.
const (
	ActionAccept = "accept"
	ActionReject = "reject"
)
