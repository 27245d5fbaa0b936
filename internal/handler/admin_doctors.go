package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TienDung030704/datlichkhambenh/internal/model"
)

// DoctorsList returns a page of active doctors plus the total count.
func (h *AdminHandler) DoctorsList(c echo.Context) error {
	offset, limit := pageParams(c, 10)

	ctx, cancel := reqCtx(c)
	defer cancel()

	doctors, err := h.Doctors.ListDoctors(ctx, offset, limit)
	if err != nil {
		log.Printf("admin: list doctors: %v", err)
		doctors = []model.DoctorRow{}
	}
	total, err := h.Doctors.CountDoctors(ctx)
	if err != nil {
		log.Printf("admin: count doctors: %v", err)
		total = 0
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"doctors": doctors,
		"total":   total,
		"offset":  offset,
		"limit":   limit,
	})
}

// SpecialtiesList returns all specialties.
func (h *AdminHandler) SpecialtiesList(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	specialties, err := h.Doctors.ListSpecialties(ctx)
	if err != nil {
		log.Printf("admin: list specialties: %v", err)
		specialties = []model.Specialty{}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "specialties": specialties})
}
