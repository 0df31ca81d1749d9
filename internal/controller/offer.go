package controller

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"

	"github.com/sigasystems/digital-negotiation-book-api/internal/entity"
	"github.com/sigasystems/digital-negotiation-book-api/internal/service"
)

type offerRoutesHandler struct {
	offerService service.Offer
	validate     *validator.Validate
}

func newOfferRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *offerRoutesHandler {
	h := &offerRoutesHandler{offerService: services.Offer, validate: v}
	outer.POST("/offers", h.PostOffer)
	outer.GET("/offers", h.GetMyOffers)
	outer.GET("/offers/search", h.SearchOffers)
	outer.GET("/offers/:offerId", h.GetOffer)

	outer.PATCH("/offers/:offerId", h.EditOffer)
	outer.PATCH("/offers/:offerId/close", h.CloseOffer)
	outer.PATCH("/offers/:offerId/open", h.ReopenOffer)
	outer.DELETE("/offers/:offerId", h.DeleteOffer)

	return h
}

type postOfferInput struct {
	OfferName string       `json:"offerName" validate:"required,max=100"`
	Terms     entity.Terms `json:"terms" validate:"required"`
}

// /offers
func (h *offerRoutesHandler) PostOffer(c echo.Context) error {
	var input postOfferInput
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

	model := &entity.CreateOfferInput{OfferName: input.OfferName, Terms: input.Terms}

	offer, err := h.offerService.CreateOffer(c.Request().Context(), principalFrom(c), model)
	if err == nil {
		if e := c.JSON(http.StatusOK, offer); e != nil {
			return e
		}

		return nil
	}

	return h.writeOfferError(c, err)
}

type getMyOffersInput struct {
	Status string `query:"status" validate:"omitempty,oneof=open close"`
	Limit  int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset int32  `query:"offset" validate:"gte=0"`
}

func newGetMyOffersInput() getMyOffersInput {
	return getMyOffersInput{Limit: defaultLimit, Offset: defaultOffset}
}

// /offers
func (h *offerRoutesHandler) GetMyOffers(c echo.Context) error {
	var input = newGetMyOffersInput()
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
	offers, err := h.offerService.GetOffers(c.Request().Context(), principalFrom(c), input.Status, pg)
	if err == nil {
		if e := c.JSON(http.StatusOK, offers); e != nil {
			return e
		}

		return nil
	}

	return h.writeOfferError(c, err)
}

type searchOffersInput struct {
	OfferName string `query:"offerName" validate:"omitempty,max=100"`
	Status    string `query:"status" validate:"omitempty,oneof=open close"`
	IsDeleted *bool  `query:"isDeleted"`
	Limit     int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset    int32  `query:"offset" validate:"gte=0"`
}

func newSearchOffersInput() searchOffersInput {
	return searchOffersInput{Limit: defaultLimit, Offset: defaultOffset}
}

// /offers/search
func (h *offerRoutesHandler) SearchOffers(c echo.Context) error {
	var input = newSearchOffersInput()
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

	filter := &entity.OfferSearchInput{
		OfferName: input.OfferName,
		Status:    input.Status,
		IsDeleted: input.IsDeleted,
	}
	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	offers, err := h.offerService.SearchOffers(c.Request().Context(), principalFrom(c), filter, pg)
	if err == nil {
		if e := c.JSON(http.StatusOK, offers); e != nil {
			return e
		}

		return nil
	}

	return h.writeOfferError(c, err)
}

type offerIdInput struct {
	OfferId string `param:"offerId" validate:"required,uuid"`
}

// /offers/:offerId
func (h *offerRoutesHandler) GetOffer(c echo.Context) error {
	input := offerIdInput{OfferId: c.Param("offerId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	offer, err := h.offerService.GetOfferById(c.Request().Context(), principalFrom(c), input.OfferId)
	if err == nil {
		if e := c.JSON(http.StatusOK, offer); e != nil {
			return e
		}

		return nil
	}

	return h.writeOfferError(c, err)
}

type editOfferInput struct {
	OfferId   string                `param:"offerId" validate:"required,uuid"`
	OfferName string                `json:"offerName" validate:"omitempty,max=100"`
	Terms     *entity.TermOverrides `json:"terms"`
}

// /offers/:offerId
func (h *offerRoutesHandler) EditOffer(c echo.Context) error {
	var input editOfferInput
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

	offer, err := h.offerService.UpdateOffer(c.Request().Context(), principalFrom(c), input.OfferId, input.OfferName, input.Terms)
	if err == nil {
		if e := c.JSON(http.StatusOK, offer); e != nil {
			return e
		}

		return nil
	}

	if errors.Is(err, service.ErrNoNewChanges) {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Offer updates required, set offer's name and/or terms"}); e != nil {
			return e
		}

		return err
	}

	return h.writeOfferError(c, err)
}

// /offers/:offerId/close
func (h *offerRoutesHandler) CloseOffer(c echo.Context) error {
	input := offerIdInput{OfferId: c.Param("offerId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	offer, err := h.offerService.CloseOffer(c.Request().Context(), principalFrom(c), input.OfferId)
	if err == nil {
		if e := c.JSON(http.StatusOK, offer); e != nil {
			return e
		}

		return nil
	}

	if errors.Is(err, service.ErrNoNewChanges) {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Offer is already closed"}); e != nil {
			return e
		}

		return err
	}

	return h.writeOfferError(c, err)
}

// /offers/:offerId/open
func (h *offerRoutesHandler) ReopenOffer(c echo.Context) error {
	input := offerIdInput{OfferId: c.Param("offerId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	offer, err := h.offerService.ReopenOffer(c.Request().Context(), principalFrom(c), input.OfferId)
	if err == nil {
		if e := c.JSON(http.StatusOK, offer); e != nil {
			return e
		}

		return nil
	}

	return h.writeOfferError(c, err)
}

// /offers/:offerId
func (h *offerRoutesHandler) DeleteOffer(c echo.Context) error {
	input := offerIdInput{OfferId: c.Param("offerId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	err := h.offerService.DeleteOffer(c.Request().Context(), principalFrom(c), input.OfferId)
	if err == nil {
		if e := c.JSON(http.StatusOK, map[string]string{"status": "deleted"}); e != nil {
			return e
		}

		return nil
	}

	return h.writeOfferError(c, err)
}

func (h *offerRoutesHandler) writeOfferError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrOfferNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no offer with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrOwnerOnly):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only a business owner can manage offers"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrForbiddenNotOffer):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Offer does not belong to your business owner account"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrOwnerInactive):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Your business owner account is not active"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrOfferUnavailable):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Offer is closed or deleted"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrOfferAlreadyOpen):
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Offer is already open"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrOfferAlreadyDeleted):
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Offer is already deleted"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
