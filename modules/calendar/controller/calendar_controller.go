package controller

import (
	"net/http"
	"time"

	"hr-dashboard-api/core/controller"
	"hr-dashboard-api/core/errors"
	"hr-dashboard-api/core/middleware"
	"hr-dashboard-api/modules/calendar/dto"
	"hr-dashboard-api/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

type CalendarController struct {
	controller.BaseController
	service service.CalendarService
	loc     *time.Location
}

func NewCalendarController(service service.CalendarService, loc *time.Location) *CalendarController {
	if loc == nil {
		loc = time.UTC
	}
	return &CalendarController{
		BaseController: controller.NewBaseController(),
		service:        service,
		loc:            loc,
	}
}

// GetEvents returns local and Google events in the window.
// GET /api/v1/private/calendar/events?start=&end=
func (c *CalendarController) GetEvents(ctx echo.Context) error {
	start, err := parseBound(ctx.QueryParam("start"), c.loc, false)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "start must be RFC 3339 or YYYY-MM-DD")
	}
	end, err := parseBound(ctx.QueryParam("end"), c.loc, true)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "end must be RFC 3339 or YYYY-MM-DD")
	}

	events, err := c.service.GetEvents(ctx.Request().Context(), start, end)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, dto.EventsResponse{Events: events})
}

// GetStatus reports whether the shared Google Calendar is configured.
// GET /api/v1/private/calendar/status
func (c *CalendarController) GetStatus(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.service.GetStatus(ctx.Request().Context()))
}

// POST /api/v1/private/calendar/events
func (c *CalendarController) CreateEvent(ctx echo.Context) error {
	claims, err := middleware.GetClaims(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	req := new(dto.EventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	event, err := c.service.CreateEvent(ctx.Request().Context(), claims, req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, event, "Event created successfully")
}

// PUT /api/v1/private/calendar/events/:id
func (c *CalendarController) UpdateEvent(ctx echo.Context) error {
	claims, err := middleware.GetClaims(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	req := new(dto.EventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	event, err := c.service.UpdateEvent(ctx.Request().Context(), claims, ctx.Param("id"), req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, event, "Event updated successfully")
}

// DELETE /api/v1/private/calendar/events/:id
func (c *CalendarController) DeleteEvent(ctx echo.Context) error {
	claims, err := middleware.GetClaims(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	if err := c.service.DeleteEvent(ctx.Request().Context(), claims, ctx.Param("id")); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, nil, "Event deleted successfully")
}

// parseBound accepts RFC 3339 or a plain date. A plain end date covers the whole day.
func parseBound(v string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	d, err := time.ParseInLocation("2006-01-02", v, loc)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		d = d.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return d, nil
}
