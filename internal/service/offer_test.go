package service_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sigasystems/digital-negotiation-book-api/internal/common"
	"github.com/sigasystems/digital-negotiation-book-api/internal/entity"
	"github.com/sigasystems/digital-negotiation-book-api/internal/service"
)

func TestCreateOfferIsOwnerOnly(t *testing.T) {
	env := newTestEnv(t)

	input := &entity.CreateOfferInput{OfferName: "TUNA LOINS SEP", Terms: entity.Terms{Origin: "Vietnam"}}

	_, err := env.offers.CreateOffer(env.ctx, env.buyer1, input)
	if !errors.Is(err, service.ErrOwnerOnly) {
		t.Fatalf("expected ErrOwnerOnly, got %v", err)
	}

	offer, err := env.offers.CreateOffer(env.ctx, env.owner, input)
	if err != nil {
		t.Fatalf("create offer: %v", err)
	}
	if offer.Status != common.OfferOpen {
		t.Fatalf("new offers should open immediately, got %q", offer.Status)
	}
	if offer.BusinessOwnerId != env.ownerId.String() {
		t.Fatalf("offer should belong to the creating owner")
	}
}

func TestOfferOwnershipIsEnforced(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.offers.GetOfferById(env.ctx, env.other, env.offerId.String())
	if !errors.Is(err, service.ErrForbiddenNotOffer) {
		t.Fatalf("expected ErrForbiddenNotOffer, got %v", err)
	}

	_, err = env.offers.CloseOffer(env.ctx, env.other, env.offerId.String())
	if !errors.Is(err, service.ErrForbiddenNotOffer) {
		t.Fatalf("expected ErrForbiddenNotOffer on close, got %v", err)
	}
}

func TestUpdateOfferRequiresChanges(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.offers.UpdateOffer(env.ctx, env.owner, env.offerId.String(), "", &entity.TermOverrides{})
	if !errors.Is(err, service.ErrNoNewChanges) {
		t.Fatalf("expected ErrNoNewChanges, got %v", err)
	}

	total := decimal.NewFromInt(45000)
	offer, err := env.offers.UpdateOffer(env.ctx, env.owner, env.offerId.String(), "FROZEN SHRIMP AUG REV2",
		&entity.TermOverrides{GrandTotal: &total})
	if err != nil {
		t.Fatalf("update offer: %v", err)
	}
	if offer.OfferName != "FROZEN SHRIMP AUG REV2" || !offer.Terms.GrandTotal.Equal(total) {
		t.Fatalf("update did not stick: %+v", offer)
	}
	if offer.Terms.ProductName != "Vannamei Shrimp" {
		t.Fatalf("update must not clobber untouched terms, got %q", offer.Terms.ProductName)
	}
}

func TestOfferLifecycle(t *testing.T) {
	env := newTestEnv(t)
	id := env.offerId.String()

	offer, err := env.offers.CloseOffer(env.ctx, env.owner, id)
	if err != nil || offer.Status != common.OfferClose {
		t.Fatalf("close: %v, status %q", err, offer.Status)
	}

	if _, err := env.offers.CloseOffer(env.ctx, env.owner, id); !errors.Is(err, service.ErrNoNewChanges) {
		t.Fatalf("re-close: expected ErrNoNewChanges, got %v", err)
	}

	if _, err := env.offers.UpdateOffer(env.ctx, env.owner, id, "NEW NAME", nil); !errors.Is(err, service.ErrOfferUnavailable) {
		t.Fatalf("update closed: expected ErrOfferUnavailable, got %v", err)
	}

	offer, err = env.offers.ReopenOffer(env.ctx, env.owner, id)
	if err != nil || offer.Status != common.OfferOpen {
		t.Fatalf("reopen: %v, status %q", err, offer.Status)
	}

	if _, err := env.offers.ReopenOffer(env.ctx, env.owner, id); !errors.Is(err, service.ErrOfferAlreadyOpen) {
		t.Fatalf("re-open: expected ErrOfferAlreadyOpen, got %v", err)
	}

	if err := env.offers.DeleteOffer(env.ctx, env.owner, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := env.offers.DeleteOffer(env.ctx, env.owner, id); !errors.Is(err, service.ErrOfferAlreadyDeleted) {
		t.Fatalf("re-delete: expected ErrOfferAlreadyDeleted, got %v", err)
	}

	// soft delete keeps the row readable for its owner
	offer, err = env.offers.GetOfferById(env.ctx, env.owner, id)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if !offer.IsDeleted || offer.Status != common.OfferClose {
		t.Fatalf("deleted offer should be closed and flagged, got %+v", offer)
	}

	if _, err := env.offers.ReopenOffer(env.ctx, env.owner, id); !errors.Is(err, service.ErrOfferAlreadyDeleted) {
		t.Fatalf("reopen deleted: expected ErrOfferAlreadyDeleted, got %v", err)
	}
}

func TestListAndSearchAreScopedToOwner(t *testing.T) {
	env := newTestEnv(t)

	input := &entity.CreateOfferInput{OfferName: "POLAR COD OCT", Terms: entity.Terms{Origin: "Norway"}}
	if _, err := env.offers.CreateOffer(env.ctx, env.other, input); err != nil {
		t.Fatalf("create foreign offer: %v", err)
	}

	mine, err := env.offers.GetOffers(env.ctx, env.owner, "", entity.NewPaginationInput(10, 0))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 || mine[0].OfferName != "FROZEN SHRIMP AUG" {
		t.Fatalf("owner should see only its offers, got %+v", mine)
	}

	found, err := env.offers.SearchOffers(env.ctx, env.other,
		&entity.OfferSearchInput{Status: common.OfferOpen}, entity.NewPaginationInput(10, 0))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].OfferName != "POLAR COD OCT" {
		t.Fatalf("search must be scoped to the caller, got %+v", found)
	}

	if _, err := env.offers.GetOffers(env.ctx, env.buyer1, "", entity.NewPaginationInput(10, 0)); !errors.Is(err, service.ErrOwnerOnly) {
		t.Fatalf("buyer listing offers: expected ErrOwnerOnly, got %v", err)
	}
}
