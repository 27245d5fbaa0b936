package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TienDung030704/datlichkhambenh/internal/model"
)

// Statistics returns the aggregated dashboard counters.  On store failure
// the frontend still gets a zeroed statistics block.
func (h *AdminHandler) Statistics(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	stats, err := h.Stats.DashboardStats(ctx)
	if err != nil {
		log.Printf("admin: dashboard statistics: %v", err)
		stats = model.DashboardStats{}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "statistics": stats})
}

// UsersGrowth returns the registration growth series for the dashboard
// chart.  period is one of week, month, year (default week).
func (h *AdminHandler) UsersGrowth(c echo.Context) error {
	period := c.QueryParam("period")

	ctx, cancel := reqCtx(c)
	defer cancel()

	points, err := h.Stats.UsersGrowth(ctx, period)
	if err != nil {
		log.Printf("admin: users growth (%s): %v", period, err)
		points = []model.GrowthPoint{}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "growth": points})
}
