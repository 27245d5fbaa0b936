package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/TienDung030704/datlichkhambenh/internal/config"
	"github.com/TienDung030704/datlichkhambenh/internal/handler"
	"github.com/TienDung030704/datlichkhambenh/internal/middleware"
)

// RegisterAdmin registers the admin panel endpoints under /api/admin.  All
// of them require a valid access token belonging to an ADMIN account, and
// the GET endpoints sit behind the Redis response cache (rdb may be nil, in
// which case caching is a pass-through).
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, roles middleware.RoleStore,
	jwtSecret string, cacheCfg config.CacheConfig, rdb *redis.Client) {

	g := e.Group("/api/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(roles, "ADMIN"),
		middleware.ResponseCache(cacheCfg, rdb))

	g.GET("/patients/count", a.PatientsCount)
	g.GET("/patients/list", a.PatientsList)
	g.GET("/patients/search", a.PatientsSearch)
	g.GET("/patients/:id", a.PatientDetails)
	g.PUT("/patients/:id/status", a.PatientStatus)

	g.GET("/doctors/list", a.DoctorsList)
	g.GET("/specialties/list", a.SpecialtiesList)

	g.GET("/appointments/recent", a.AppointmentsRecent)
	g.GET("/appointments/list", a.AppointmentsList)

	g.GET("/statistics", a.Statistics)
	g.GET("/statistics/growth", a.UsersGrowth)
}
