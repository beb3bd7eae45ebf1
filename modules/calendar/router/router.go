package router

import (
	"hr-dashboard-api/core/middleware"
	"hr-dashboard-api/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

type CalendarRouter struct {
	controller *controller.CalendarController
}

func NewCalendarRouter(controller *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{controller: controller}
}

func (r *CalendarRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	calendarRoutes := g.Group("/calendar", mw.AuthMiddleware())

	calendarRoutes.GET("/status", r.controller.GetStatus)
	calendarRoutes.GET("/events", r.controller.GetEvents)
	calendarRoutes.POST("/events", r.controller.CreateEvent)
	calendarRoutes.PUT("/events/:id", r.controller.UpdateEvent)
	calendarRoutes.DELETE("/events/:id", r.controller.DeleteEvent)
}
