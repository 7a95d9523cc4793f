package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"frenoshugo-backend/config"
	"frenoshugo-backend/controllers"
	"frenoshugo-backend/models"
	"frenoshugo-backend/routes"
	"frenoshugo-backend/services"
	"frenoshugo-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	db, err := config.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Vehicle{},
		&models.Service{},
		&models.NotificationLog{},
		&models.User{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := seedAdmin(db, cfg); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	notifier := services.NewNotifier(db, cfg)
	notifier.Start()

	vehicleStore := store.NewVehicleStore(db, cfg.DefaultCountryCode)
	serviceStore := store.NewServiceStore(db)
	statsStore := store.NewStatsStore(db)

	r := routes.SetupRouter(routes.Deps{
		Cars:         controllers.NewCarsController(vehicleStore, cfg.DevMode),
		Services:     controllers.NewServicesController(serviceStore, notifier, cfg.DevMode),
		Consultation: controllers.NewConsultationController(serviceStore, cfg.DevMode),
		Stats:        controllers.NewStatsController(statsStore, db, cfg.DevMode),
		Auth:         controllers.NewAuthController(db, cfg.JWTSecret),
		JWTSecret:    cfg.JWTSecret,
	})
	printRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Servidor Frenos Hugo ejecutándose en puerto %s (db: %s)", cfg.Port, cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Cerrando servidor...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}

	notifier.Stop()
	config.Close(db)
	log.Println("Servidor cerrado")
}

// seedAdmin creates the single operator account from the environment when it
// does not exist yet. Password changes in the env are not applied to an
// existing account.
func seedAdmin(db *gorm.DB, cfg config.Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Println("ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", cfg.AdminUsername).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	user := models.User{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
		Role:     "admin",
	}
	return db.Create(&user).Error
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
