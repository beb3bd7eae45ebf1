package controller

import (
	"net/http"

	"hr-dashboard-api/core/controller"
	"hr-dashboard-api/core/errors"
	"hr-dashboard-api/core/middleware"
	"hr-dashboard-api/core/params"
	"hr-dashboard-api/modules/notification/dto"
	"hr-dashboard-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	service *service.NotificationService
	controller.BaseController
}

func NewNotificationController(service *service.NotificationService) *NotificationController {
	return &NotificationController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// GetMyNotifications lists the caller's notifications, newest first.
// GET /api/v1/private/notifications?page_number=&page_size=
func (c *NotificationController) GetMyNotifications(ctx echo.Context) error {
	claims, err := middleware.GetClaims(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	result, err := c.service.GetMyNotifications(ctx.Request().Context(), claims.UserID, *params.NewQueryParams(ctx))
	if err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to get notifications", err)
	}
	return c.SuccessResponse(ctx, result, "Notifications retrieved successfully")
}

// PATCH /api/v1/private/notifications/read
func (c *NotificationController) MarkAsRead(ctx echo.Context) error {
	claims, err := middleware.GetClaims(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	req := new(dto.MarkAsReadRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	if err := c.service.MarkAsRead(ctx.Request().Context(), claims.UserID, req.IDs); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, nil, "Marked as read successfully")
}

// GET /api/v1/private/notifications/unread-count
func (c *NotificationController) CountUnread(ctx echo.Context) error {
	claims, err := middleware.GetClaims(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	count, err := c.service.CountUnread(ctx.Request().Context(), claims.UserID)
	if err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to count unread", err)
	}
	return ctx.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}
