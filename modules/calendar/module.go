package calendar

import (
	"time"

	"hr-dashboard-api/core/database"
	"hr-dashboard-api/core/middleware"
	"hr-dashboard-api/modules/calendar/controller"
	"hr-dashboard-api/modules/calendar/gateway"
	"hr-dashboard-api/modules/calendar/recurrence"
	"hr-dashboard-api/modules/calendar/repository"
	"hr-dashboard-api/modules/calendar/router"
	"hr-dashboard-api/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

// Init wires the calendar view and registers its routes on g.
func Init(g *echo.Group, db database.IDatabase, gw *gateway.Client, loc *time.Location, mw *middleware.Middleware) service.CalendarService {
	repo := repository.NewCalendarRepository(db)
	expander := recurrence.NewExpander(recurrence.WithLocation(loc))
	svc := service.NewCalendarService(repo, gw, expander)
	ctrl := controller.NewCalendarController(svc, loc)

	router.NewCalendarRouter(ctrl).Register(g, mw)
	return svc
}
