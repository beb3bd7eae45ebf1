package controller

import (
	"hr-dashboard-api/core/controller"
	"hr-dashboard-api/core/middleware"
	"hr-dashboard-api/modules/profile/service"

	"github.com/labstack/echo/v4"
)

type ProfileController struct {
	controller.BaseController
	service *service.ProfileService
}

func NewProfileController(service *service.ProfileService) *ProfileController {
	return &ProfileController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// GetMe returns the caller's contact profile.
// GET /api/v1/private/profiles/me
func (c *ProfileController) GetMe(ctx echo.Context) error {
	claims, err := middleware.GetClaims(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	profile, err := c.service.GetByID(ctx.Request().Context(), claims.UserID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, profile, "Profile retrieved successfully")
}
