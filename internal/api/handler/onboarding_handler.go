package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saintdavies/property-console/internal/core/domain"
)

type OnboardingHandler struct{}

func NewOnboardingHandler() *OnboardingHandler {
	return &OnboardingHandler{}
}

// Screens describes the pre-login screen flow.
//
// @Summary      Onboarding screen flow
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  screensResponse
// @Router       /v1/onboarding/screens [get]
func (h *OnboardingHandler) Screens(c echo.Context) error {
	return c.JSON(http.StatusOK, screensResponse{
		Initial:     domain.InitialScreen,
		Screens:     domain.Screens(),
		Transitions: domain.Transitions(),
	})
}
