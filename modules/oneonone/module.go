package oneonone

import (
	"time"

	"hr-dashboard-api/core/database"
	"hr-dashboard-api/core/middleware"
	"hr-dashboard-api/modules/oneonone/controller"
	"hr-dashboard-api/modules/oneonone/repository"
	"hr-dashboard-api/modules/oneonone/router"
	"hr-dashboard-api/modules/oneonone/service"

	"github.com/labstack/echo/v4"
)

// Init wires the booking coordinator. gw, profiles and notifier must be non-nil values.
func Init(g *echo.Group, db database.IDatabase, gw service.CalendarGateway, profiles service.ProfileReader, notifier service.Notifier, loc *time.Location, mw *middleware.Middleware) service.OneOnOneService {
	repo := repository.NewSlotRepository(db)
	svc := service.NewOneOnOneService(repo, gw, profiles, notifier, loc)
	ctrl := controller.NewOneOnOneController(svc, loc)

	router.NewOneOnOneRouter(ctrl).Register(g, mw)
	return svc
}
