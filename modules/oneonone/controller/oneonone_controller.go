package controller

import (
	"net/http"
	"strings"
	"time"

	"hr-dashboard-api/core/controller"
	"hr-dashboard-api/core/errors"
	"hr-dashboard-api/core/middleware"
	"hr-dashboard-api/modules/oneonone/dto"
	"hr-dashboard-api/modules/oneonone/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const defaultSlotWindow = 30 * 24 * time.Hour

type OneOnOneController struct {
	controller.BaseController
	service service.OneOnOneService
	loc     *time.Location
	now     func() time.Time
}

func NewOneOnOneController(service service.OneOnOneService, loc *time.Location) *OneOnOneController {
	if loc == nil {
		loc = time.UTC
	}
	return &OneOnOneController{
		BaseController: controller.NewBaseController(),
		service:        service,
		loc:            loc,
		now:            time.Now,
	}
}

// GET /api/v1/private/one-on-one/slots?from=&to=
func (c *OneOnOneController) ListSlots(ctx echo.Context) error {
	from := c.now()
	if raw := ctx.QueryParam("from"); raw != "" {
		t, err := parseInstant(raw, c.loc)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "from must be RFC 3339 or YYYY-MM-DD")
		}
		from = t
	}
	to := from.Add(defaultSlotWindow)
	if raw := ctx.QueryParam("to"); raw != "" {
		t, err := parseInstant(raw, c.loc)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "to must be RFC 3339 or YYYY-MM-DD")
		}
		to = t
	}

	slots, err := c.service.ListSlots(ctx.Request().Context(), from, to)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, dto.SlotsResponse{Slots: slots})
}

// POST /api/v1/private/one-on-one/slots
func (c *OneOnOneController) CreateSlot(ctx echo.Context) error {
	claims, err := middleware.GetClaims(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	req := new(dto.CreateSlotRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	slot, err := c.service.CreateSlot(ctx.Request().Context(), claims, req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, slot, "Slot created successfully")
}

// POST /api/v1/private/one-on-one/book
func (c *OneOnOneController) Book(ctx echo.Context) error {
	claims, err := middleware.GetClaims(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	req := new(dto.BookRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	slotID, err := uuid.Parse(strings.TrimSpace(req.SlotID))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "slotId must be a UUID")
	}

	resp, err := c.service.Book(ctx.Request().Context(), claims, slotID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, resp)
}

// Cancel handles both admin cancellation and self release.
// POST /api/v1/private/one-on-one/cancel
func (c *OneOnOneController) Cancel(ctx echo.Context) error {
	claims, err := middleware.GetClaims(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	req := new(dto.CancelRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	slotID, err := uuid.Parse(strings.TrimSpace(req.SlotID))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "slotId must be a UUID")
	}

	reqCtx := ctx.Request().Context()
	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case dto.ActionCancel:
		err = c.service.Cancel(reqCtx, claims, slotID, req.Remove)
	case dto.ActionRelease:
		err = c.service.Release(reqCtx, claims, slotID)
	default:
		return c.BadRequest(errors.ErrInvalidInput, "action must be cancel or release")
	}
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]bool{"success": true})
}

// PATCH /api/v1/private/one-on-one/slots/:id
func (c *OneOnOneController) Reschedule(ctx echo.Context) error {
	claims, err := middleware.GetClaims(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	slotID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "slot id must be a UUID")
	}

	req := new(dto.RescheduleRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	slot, err := c.service.Reschedule(ctx.Request().Context(), claims, slotID, req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, slot, "Slot rescheduled successfully")
}

func parseInstant(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", raw, loc)
}
