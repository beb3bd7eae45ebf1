package router

import (
	"hr-dashboard-api/core/middleware"
	"hr-dashboard-api/modules/profile/controller"

	"github.com/labstack/echo/v4"
)

type ProfileRouter struct {
	controller *controller.ProfileController
}

func NewProfileRouter(controller *controller.ProfileController) *ProfileRouter {
	return &ProfileRouter{controller: controller}
}

func (r *ProfileRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	profiles := g.Group("/profiles", mw.AuthMiddleware())
	profiles.GET("/me", r.controller.GetMe)
}
