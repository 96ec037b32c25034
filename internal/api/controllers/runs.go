package controllers

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/pensiondata/efastdl/internal/app"
	"github.com/pensiondata/efastdl/internal/dataset"
	"github.com/pensiondata/efastdl/internal/domain"
)

type RunsController struct {
	App *app.Context
}

// ListDatasets describes the four dataset groups and their task counts.
func (ctrl *RunsController) ListDatasets(c *echo.Context) error {
	groups := dataset.Groups()

	out := make([]DatasetInfo, 0, len(groups))
	for _, g := range groups {
		out = append(out, DatasetInfo{
			Name:       g.Name,
			Manifest:   g.ManifestPath(ctrl.App.Config),
			Dictionary: g.Dictionary,
			Tasks:      len(g.Tasks(ctrl.App.Config)),
		})
	}

	return c.JSON(http.StatusOK, out)
}

// ListRuns returns the run history, newest first.
func (ctrl *RunsController) ListRuns(c *echo.Context) error {
	runs, err := ctrl.App.Store.GetRuns()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	if runs == nil {
		runs = []*domain.Run{}
	}

	return c.JSON(http.StatusOK, runs)
}

func (ctrl *RunsController) GetRun(c *echo.Context) error {
	run, err := ctrl.App.Store.GetRun(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	if run == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "run not found"})
	}

	return c.JSON(http.StatusOK, run)
}

// ListAttempts returns a run's attempts in processing order, which
// matches the manifest row order of that run.
func (ctrl *RunsController) ListAttempts(c *echo.Context) error {
	attempts, err := ctrl.App.Store.GetRunAttempts(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	if attempts == nil {
		attempts = []*domain.AttemptRecord{}
	}

	return c.JSON(http.StatusOK, attempts)
}
