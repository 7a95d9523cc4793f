package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"frenoshugo-backend/models"
	"frenoshugo-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type stubNotifier struct {
	events []models.Service
}

func (s *stubNotifier) ServiceRegistered(service models.Service, vehicle models.Vehicle) {
	s.events = append(s.events, service)
}

type testEnv struct {
	router   *gin.Engine
	vehicles *store.VehicleStore
	services *store.ServiceStore
	notifier *stubNotifier
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.Vehicle{}, &models.Service{}, &models.NotificationLog{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	env := &testEnv{
		vehicles: store.NewVehicleStore(db, "+57"),
		services: store.NewServiceStore(db),
		notifier: &stubNotifier{},
	}

	cars := NewCarsController(env.vehicles, true)
	services := NewServicesController(env.services, env.notifier, true)
	consultation := NewConsultationController(env.services, true)
	stats := NewStatsController(store.NewStatsStore(db), db, true)

	r := gin.New()
	r.POST("/api/cars", cars.CreateCar)
	r.GET("/api/cars", cars.GetCars)
	r.GET("/api/cars/verify/:plate", cars.VerifyCar)
	r.GET("/api/cars/:id", cars.GetCar)
	r.PUT("/api/cars/:id", cars.UpdateCar)
	r.DELETE("/api/cars/:id", cars.DeleteCar)
	r.POST("/api/services", services.CreateService)
	r.GET("/api/services", services.GetServices)
	r.GET("/api/services/next-workorder", services.NextWorkOrder)
	r.GET("/api/services/check-workorder/:workOrder", services.CheckWorkOrder)
	r.GET("/consult-service", consultation.ConsultService)
	r.GET("/api/stats", stats.GetStats)
	r.GET("/health", stats.Health)
	env.router = r
	return env
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) registerVehicle(t *testing.T) {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/cars", gin.H{
		"plate": "ABC123", "brand": "Toyota", "model": "Corolla",
		"owner": "Jane Doe", "phone": "3001234567",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("vehicle registration failed: %d %s", w.Code, w.Body.String())
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return body
}
