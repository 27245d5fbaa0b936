package handler

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/TienDung030704/datlichkhambenh/internal/model"
	"github.com/TienDung030704/datlichkhambenh/internal/repository"
)

// PatientsCount returns the number of active patients.
func (h *AdminHandler) PatientsCount(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	count, err := h.Users.CountPatients(ctx)
	if err != nil {
		log.Printf("admin: count patients: %v", err)
		count = 0
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": count})
}

// PatientsList returns a page of patients plus the total count.
func (h *AdminHandler) PatientsList(c echo.Context) error {
	offset, limit := pageParams(c, 10)

	ctx, cancel := reqCtx(c)
	defer cancel()

	patients, err := h.Users.ListPatients(ctx, offset, limit)
	if err != nil {
		log.Printf("admin: list patients: %v", err)
		patients = []model.PatientRow{}
	}
	total, err := h.Users.CountPatients(ctx)
	if err != nil {
		log.Printf("admin: count patients: %v", err)
		total = 0
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"patients": patients,
		"total":    total,
		"offset":   offset,
		"limit":    limit,
	})
}

// PatientsSearch matches patients by name, email, phone or username.
func (h *AdminHandler) PatientsSearch(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "query is required"})
	}
	offset, limit := pageParams(c, 10)

	ctx, cancel := reqCtx(c)
	defer cancel()

	patients, err := h.Users.SearchPatients(ctx, query, offset, limit)
	if err != nil {
		log.Printf("admin: search patients %q: %v", query, err)
		patients = []model.PatientRow{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"patients": patients,
		"query":    query,
	})
}

// PatientDetails returns one patient by ID.
func (h *AdminHandler) PatientDetails(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid patient id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	patient, err := h.Users.GetPatientByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "patient not found"})
		}
		log.Printf("admin: patient %d details: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "could not load patient"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "patient": patient})
}

type patientStatusReq struct {
	IsActive *bool `json:"isActive"`
}

// PatientStatus activates or deactivates a patient account.
func (h *AdminHandler) PatientStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid patient id"})
	}
	var req patientStatusReq
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "isActive is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.SetPatientActive(ctx, id, *req.IsActive); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "patient not found"})
		}
		log.Printf("admin: update patient %d status: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "failed to update patient status"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "patient status updated"})
}
