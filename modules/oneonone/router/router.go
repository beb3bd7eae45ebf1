package router

import (
	"hr-dashboard-api/core/constants"
	"hr-dashboard-api/core/middleware"
	"hr-dashboard-api/modules/oneonone/controller"

	"github.com/labstack/echo/v4"
)

type OneOnOneRouter struct {
	controller *controller.OneOnOneController
}

func NewOneOnOneRouter(controller *controller.OneOnOneController) *OneOnOneRouter {
	return &OneOnOneRouter{controller: controller}
}

func (r *OneOnOneRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	managers := mw.RequireRoles(constants.RoleAdmin, constants.RoleManager)

	group := g.Group("/one-on-one", mw.AuthMiddleware())
	group.GET("/slots", r.controller.ListSlots)
	group.POST("/slots", r.controller.CreateSlot, managers)
	group.PATCH("/slots/:id", r.controller.Reschedule, managers)
	group.POST("/book", r.controller.Book)
	group.POST("/cancel", r.controller.Cancel)
}
