package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sigasystems/digital-negotiation-book-api/internal/common"
	"github.com/sigasystems/digital-negotiation-book-api/internal/entity"
)

// The guard is a set of pure policy checks over rows the engine has already
// loaded. It is evaluated fresh on every call; ownership and active-status
// facts are never cached across requests.

type sendTarget struct {
	Offer    *entity.Offer
	BuyerIds []uuid.UUID
	Buyers   []entity.Buyer
}

// authorizeSend enforces who may open a negotiation round. A business owner
// may only fan out its own offer, and only to its own buyers; a buyer may
// only counter for itself, and only on an offer of its own business owner.
// Every thread this admits satisfies buyer.OwnerId == offer.BusinessOwnerId.
func authorizeSend(p entity.Principal, t sendTarget) error {
	switch p.Role {
	case common.RoleBusinessOwner:
		if p.Id != t.Offer.BusinessOwnerId {
			return fmt.Errorf("%w: %s", ErrForbiddenNotOffer, t.Offer.OfferName)
		}

		byId := make(map[uuid.UUID]entity.Buyer, len(t.Buyers))
		for _, b := range t.Buyers {
			byId[b.Id] = b
		}
		for _, id := range t.BuyerIds {
			buyer, ok := byId[id]
			if !ok {
				return fmt.Errorf("%w: %s", ErrBuyerNotFound, id)
			}
			if buyer.OwnerId != p.Id {
				return fmt.Errorf("%w: %s", ErrUnauthorizedBuyer, buyer.BuyersCompanyName)
			}
		}

		return nil
	case common.RoleBuyer:
		if len(t.BuyerIds) != 1 || t.BuyerIds[0] != p.Id {
			return ErrUnauthorizedSelf
		}

		var self *entity.Buyer
		for i := range t.Buyers {
			if t.Buyers[i].Id == p.Id {
				self = &t.Buyers[i]
				break
			}
		}
		if self == nil {
			return fmt.Errorf("%w: %s", ErrBuyerNotFound, p.Id)
		}
		if self.OwnerId != t.Offer.BusinessOwnerId {
			return fmt.Errorf("%w: %s", ErrForbiddenNotOffer, t.Offer.OfferName)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidRole, p.Role)
	}
}

type respondTarget struct {
	Offer *entity.Offer
	Buyer *entity.Buyer
}

// authorizeRespond enforces who may record a verdict (and who may read a
// thread): the buyer itself, or the business owner that owns both the buyer
// and the offer.
func authorizeRespond(p entity.Principal, t respondTarget) error {
	switch p.Role {
	case common.RoleBuyer:
		if p.Id != t.Buyer.Id {
			return ErrForbiddenSelfOnly
		}
		if t.Buyer.OwnerId != t.Offer.BusinessOwnerId {
			return fmt.Errorf("%w: %s", ErrForbiddenNotOffer, t.Offer.OfferName)
		}

		return nil
	case common.RoleBusinessOwner:
		if p.Id != t.Buyer.OwnerId {
			return fmt.Errorf("%w: %s", ErrForbiddenNotBuyers, t.Buyer.BuyersCompanyName)
		}
		if p.Id != t.Offer.BusinessOwnerId {
			return fmt.Errorf("%w: %s", ErrForbiddenNotOffer, t.Offer.OfferName)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidRole, p.Role)
	}
}
