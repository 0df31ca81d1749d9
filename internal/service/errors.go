package service

import "errors"

var (
	ErrOfferNotFound    = errors.New("offer not found")
	ErrOfferUnavailable = errors.New("offer is closed or deleted")
	ErrBuyerNotFound    = errors.New("buyer not found")
	ErrThreadNotFound   = errors.New("no negotiation exists yet for this offer and buyer")
	ErrOwnerInactive    = errors.New("business owner is not active")

	ErrUnauthorizedBuyer  = errors.New("buyer does not belong to your business")
	ErrUnauthorizedSelf   = errors.New("as a buyer you can only send offers for yourself")
	ErrForbiddenSelfOnly  = errors.New("you can only respond to your own offers")
	ErrForbiddenNotBuyers = errors.New("buyer does not belong to your business owner account")
	ErrForbiddenNotOffer  = errors.New("offer does not belong to your business owner account")
	ErrOwnerOnly          = errors.New("only a business owner can manage offers")
	ErrInvalidRole        = errors.New("invalid role")

	ErrDuplicateDecision = errors.New("this decision has already been recorded by the same actor")

	ErrNoBuyers            = errors.New("buyerIds must be a non-empty set")
	ErrNoNewChanges        = errors.New("no new values")
	ErrOfferAlreadyOpen    = errors.New("offer is already open")
	ErrOfferAlreadyDeleted = errors.New("offer is already deleted")
)
