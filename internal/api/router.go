package api

import (
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/pensiondata/efastdl/internal/api/controllers"
	"github.com/pensiondata/efastdl/internal/app"
)

func RegisterRoutes(e *echo.Echo, app *app.Context) {

	// Middleware: Request Logger
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c *echo.Context, v middleware.RequestLoggerValues) error {
			app.Logger.Info("%s %s | %d | %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	runsCtrl := &controllers.RunsController{App: app}

	// Read-only history endpoints; nothing here triggers a download
	e.GET("/api/datasets", runsCtrl.ListDatasets)
	e.GET("/api/runs", runsCtrl.ListRuns)
	e.GET("/api/runs/:id", runsCtrl.GetRun)
	e.GET("/api/runs/:id/attempts", runsCtrl.ListAttempts)
}
