package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"frenoshugo-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := db.Create(&models.User{Username: "hugo", Password: "secret", Role: "admin"}).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	r := gin.New()
	r.POST("/auth/login", NewAuthController(db, "test-secret").Login)

	login := func(t *testing.T, payload gin.H) *httptest.ResponseRecorder {
		t.Helper()
		var buf bytes.Buffer
		json.NewEncoder(&buf).Encode(payload)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("missing fields", func(t *testing.T) {
		if w := login(t, gin.H{"username": "hugo"}); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if w := login(t, gin.H{"username": "hugo", "password": "nope"}); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if w := login(t, gin.H{"username": "ghost", "password": "secret"}); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("success returns a token", func(t *testing.T) {
		w := login(t, gin.H{"username": "hugo", "password": "secret"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		token, _ := body["token"].(string)
		if token == "" {
			t.Fatal("expected a token in the response")
		}
	})
}
