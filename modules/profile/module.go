package profile

import (
	"hr-dashboard-api/core/database"
	"hr-dashboard-api/core/middleware"
	"hr-dashboard-api/modules/profile/controller"
	"hr-dashboard-api/modules/profile/repository"
	"hr-dashboard-api/modules/profile/router"
	"hr-dashboard-api/modules/profile/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware) *service.ProfileService {
	repo := repository.NewProfileRepository(db)
	svc := service.NewProfileService(repo)
	ctrl := controller.NewProfileController(svc)

	router.NewProfileRouter(ctrl).Register(g, mw)
	return svc
}
