package controller

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"

	"github.com/sigasystems/digital-negotiation-book-api/internal/entity"
	"github.com/sigasystems/digital-negotiation-book-api/internal/service"
)

type negotiationRoutesHandler struct {
	negotiationService service.Negotiation
	validate           *validator.Validate
}

func newNegotiationRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *negotiationRoutesHandler {
	h := &negotiationRoutesHandler{negotiationService: services.Negotiation, validate: v}
	outer.POST("/offers/:offerId/send", h.SendOffer)
	outer.POST("/offers/:offerId/respond", h.RespondOffer)
	outer.GET("/offers/:offerId/negotiations/:buyerId", h.GetLatestNegotiation)
	outer.GET("/negotiations", h.GetRecentNegotiations)

	return h
}

type sendOfferInput struct {
	OfferId  string                `param:"offerId" validate:"required,uuid"`
	BuyerIds []string              `json:"buyerIds" validate:"required,min=1,dive,required"`
	Terms    *entity.TermOverrides `json:"terms"`
}

// /offers/:offerId/send
func (h *negotiationRoutesHandler) SendOffer(c echo.Context) error {
	var input sendOfferInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	input.OfferId = c.Param("offerId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	sent, err := h.negotiationService.SendOffer(c.Request().Context(), input.OfferId, input.BuyerIds, principalFrom(c), input.Terms)
	if err == nil {
		if e := c.JSON(http.StatusOK, sent); e != nil {
			return e
		}

		return nil
	}

	return h.writeNegotiationError(c, err)
}

type respondOfferInput struct {
	OfferId string `param:"offerId" validate:"required,uuid"`
	BuyerId string `json:"buyerId" validate:"required,uuid"`
	Action  string `json:"action" validate:"required,oneof=accept reject"`
}

// /offers/:offerId/respond
func (h *negotiationRoutesHandler) RespondOffer(c echo.Context) error {
	var input respondOfferInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	input.OfferId = c.Param("offerId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	decision, err := h.negotiationService.RespondOffer(c.Request().Context(), input.OfferId, input.BuyerId, principalFrom(c), input.Action)
	if err == nil {
		if e := c.JSON(http.StatusOK, decision); e != nil {
			return e
		}

		return nil
	}

	return h.writeNegotiationError(c, err)
}

type latestNegotiationInput struct {
	OfferId string `param:"offerId" validate:"required,uuid"`
	BuyerId string `param:"buyerId" validate:"required,uuid"`
}

// /offers/:offerId/negotiations/:buyerId
func (h *negotiationRoutesHandler) GetLatestNegotiation(c echo.Context) error {
	input := latestNegotiationInput{OfferId: c.Param("offerId"), BuyerId: c.Param("buyerId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	negotiation, err := h.negotiationService.GetLatestNegotiation(c.Request().Context(), input.OfferId, input.BuyerId, principalFrom(c))
	if err == nil {
		if e := c.JSON(http.StatusOK, negotiation); e != nil {
			return e
		}

		return nil
	}

	return h.writeNegotiationError(c, err)
}

type recentNegotiationsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=50"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

func newRecentNegotiationsInput() recentNegotiationsInput {
	return recentNegotiationsInput{Limit: defaultLimit, Offset: defaultOffset}
}

// /negotiations
func (h *negotiationRoutesHandler) GetRecentNegotiations(c echo.Context) error {
	var input = newRecentNegotiationsInput()
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	negotiations, err := h.negotiationService.GetRecentNegotiations(c.Request().Context(), principalFrom(c), pg)
	if err == nil {
		if e := c.JSON(http.StatusOK, negotiations); e != nil {
			return e
		}

		return nil
	}

	return h.writeNegotiationError(c, err)
}

func (h *negotiationRoutesHandler) writeNegotiationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrOfferNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no offer with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrBuyerNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no buyer with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrThreadNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"No negotiation exists yet for this offer and buyer"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrNoBuyers):
		if e := c.JSON(http.StatusBadRequest, errorResponse{"buyerIds must be a non-empty list"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrOfferUnavailable):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Offer is closed or deleted, negotiation is frozen"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrOwnerInactive):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Business owner account is not active"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrUnauthorizedBuyer):
		if e := c.JSON(http.StatusForbidden, errorResponse{"You can only send offers to your own buyers"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrUnauthorizedSelf):
		if e := c.JSON(http.StatusForbidden, errorResponse{"As a buyer you can only counter on your own thread"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrForbiddenSelfOnly):
		if e := c.JSON(http.StatusForbidden, errorResponse{"You can only act on your own negotiations"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrForbiddenNotBuyers):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Buyer does not belong to your business owner account"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrForbiddenNotOffer):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Offer does not belong to your business owner account"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrInvalidRole):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Your role cannot perform this action"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrDuplicateDecision):
		if e := c.JSON(http.StatusBadRequest, errorResponse{"This decision has already been recorded"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
