package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/TienDung030704/datlichkhambenh/internal/repository"
)

// AdminHandler bundles the repositories behind the admin panel.  These
// endpoints are mechanical listing/pagination glue; when the store is
// unavailable they log the error and fall back to the defaults the frontend
// has always seen (zero counts, empty lists) instead of a raw 500.
type AdminHandler struct {
	Users        *repository.UserRepo
	Doctors      *repository.DoctorRepo
	Appointments *repository.AppointmentRepo
	Stats        *repository.StatsRepo
}

func NewAdminHandler(users *repository.UserRepo, doctors *repository.DoctorRepo,
	appointments *repository.AppointmentRepo, stats *repository.StatsRepo) *AdminHandler {
	if users == nil || doctors == nil || appointments == nil || stats == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Users: users, Doctors: doctors, Appointments: appointments, Stats: stats}
}

// pageParams reads offset/limit query parameters with defaults and caps the
// page size so a single request cannot dump the whole table.
func pageParams(c echo.Context, defLimit int) (offset, limit int) {
	offset, limit = 0, defLimit
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v >= 0 {
		offset = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > 100 {
		limit = 100
	}
	return offset, limit
}
