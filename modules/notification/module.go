package notification

import (
	"hr-dashboard-api/core/database"
	"hr-dashboard-api/core/middleware"
	"hr-dashboard-api/modules/notification/controller"
	"hr-dashboard-api/modules/notification/repository"
	"hr-dashboard-api/modules/notification/router"
	"hr-dashboard-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Register(g, mw)
	return svc
}
