package main // Entry point package

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/TienDung030704/datlichkhambenh/internal/config"
	"github.com/TienDung030704/datlichkhambenh/internal/database"
	"github.com/TienDung030704/datlichkhambenh/internal/handler"
	"github.com/TienDung030704/datlichkhambenh/internal/queue"
	"github.com/TienDung030704/datlichkhambenh/internal/repository"
	"github.com/TienDung030704/datlichkhambenh/internal/router"
	queuepublisher "github.com/TienDung030704/datlichkhambenh/internal/service"
	"github.com/TienDung030704/datlichkhambenh/internal/token"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	users := repository.NewUserRepo(db)
	doctors := repository.NewDoctorRepo(db)
	appointments := repository.NewAppointmentRepo(db)
	stats := repository.NewStatsRepo(db)

	tokens := token.NewService([]byte(cfg.JWTSecret),
		time.Duration(cfg.AccessTTLMin)*time.Minute,
		time.Duration(cfg.RefreshTTLDays)*24*time.Hour,
		users)

	auth := handler.NewAuthHandler(cfg, users, tokens)
	auth.PublishRegistered = queuepublisher.PublishPatientRegistered
	admin := handler.NewAdminHandler(users, doctors, appointments, stats)
	pages := handler.NewPageHandler(cfg.StaticDir)

	// Redis is optional: a nil client turns the admin response cache into a
	// pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; admin response cache disabled")
	}

	go queue.StartRegistrationConsumer()

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, pages)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterAdmin(e, admin, users, cfg.JWTSecret, config.LoadCacheConfig(), rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
