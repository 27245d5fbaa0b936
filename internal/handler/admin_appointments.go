package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/TienDung030704/datlichkhambenh/internal/model"
)

// AppointmentsRecent returns the most recently created appointments for the
// dashboard widget.
func (h *AdminHandler) AppointmentsRecent(c echo.Context) error {
	limit := 5
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 && v <= 50 {
		limit = v
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	appointments, err := h.Appointments.RecentAppointments(ctx, limit)
	if err != nil {
		log.Printf("admin: recent appointments: %v", err)
		appointments = []model.AppointmentRow{}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "appointments": appointments})
}

// AppointmentsList returns a page of appointments plus the total count.
func (h *AdminHandler) AppointmentsList(c echo.Context) error {
	offset, limit := pageParams(c, 20)

	ctx, cancel := reqCtx(c)
	defer cancel()

	appointments, err := h.Appointments.ListAppointments(ctx, offset, limit)
	if err != nil {
		log.Printf("admin: list appointments: %v", err)
		appointments = []model.AppointmentRow{}
	}
	total, err := h.Appointments.CountAppointments(ctx)
	if err != nil {
		log.Printf("admin: count appointments: %v", err)
		total = 0
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"appointments": appointments,
		"total":        total,
		"offset":       offset,
		"limit":        limit,
	})
}
