package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"

	"github.com/sigasystems/digital-negotiation-book-api/internal/service"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services, jwtSecret string) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	api := handler.Group("/api")
	newDiagnosticRoutesHandler(api, services)

	authed := api.Group("", jwtAuth(jwtSecret))
	newOfferRoutesHandler(authed, services, validate)
	newNegotiationRoutesHandler(authed, services, validate)
}
