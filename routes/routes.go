package routes

import (
	"frenoshugo-backend/config"
	"frenoshugo-backend/controllers"
	"frenoshugo-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries the constructed controllers into the router. Nothing here is
// global; main builds the dependency graph and hands it over.
type Deps struct {
	Cars         *controllers.CarsController
	Services     *controllers.ServicesController
	Consultation *controllers.ConsultationController
	Stats        *controllers.StatsController
	Auth         *controllers.AuthController
	JWTSecret    string
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	r.Use(config.PerformanceLogger())

	r.GET("/health", deps.Stats.Health)
	r.GET("/info", deps.Stats.Info)
	r.GET("/consult-service", deps.Consultation.ConsultService)

	auth := r.Group("/auth")
	{
		auth.POST("/login", deps.Auth.Login)
	}

	admin := utils.AuthMiddleware(deps.JWTSecret)

	api := r.Group("/api")
	{
		cars := api.Group("/cars")
		{
			cars.POST("", deps.Cars.CreateCar)
			cars.GET("", deps.Cars.GetCars)
			cars.GET("/verify/:plate", deps.Cars.VerifyCar)
			cars.GET("/:id", deps.Cars.GetCar)
			cars.PUT("/:id", admin, deps.Cars.UpdateCar)
			cars.DELETE("/:id", admin, deps.Cars.DeleteCar)
		}

		services := api.Group("/services")
		{
			services.POST("", deps.Services.CreateService)
			services.GET("", deps.Services.GetServices)
			services.GET("/next-workorder", deps.Services.NextWorkOrder)
			services.GET("/check-workorder/:workOrder", deps.Services.CheckWorkOrder)
			services.GET("/:id", deps.Services.GetService)
			services.PUT("/:id", admin, deps.Services.UpdateService)
			services.DELETE("/:id", admin, deps.Services.DeleteService)
		}

		api.GET("/stats", deps.Stats.GetStats)
	}

	return r
}
