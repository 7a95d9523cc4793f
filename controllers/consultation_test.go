package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestConsultService(t *testing.T) {
	env := setupTest(t)
	env.registerVehicle(t)
	if w := env.do(t, http.MethodPost, "/api/services", gin.H{
		"workOrder": 100, "plate": "ABC123", "work": "Brake pads", "cost": 45.5,
	}); w.Code != http.StatusCreated {
		t.Fatalf("registration failed: %d", w.Code)
	}

	t.Run("no parameters", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/consult-service", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("non-numeric work order", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/consult-service?workOrder=abc", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("by work order joins the vehicle", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/consult-service?workOrder=100", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		body := decode(t, w)
		services := body["services"].([]interface{})
		if len(services) != 1 {
			t.Fatalf("expected one service, got %d", len(services))
		}
		row := services[0].(map[string]interface{})
		if row["brand"] != "TOYOTA" || row["owner"] != "JANE DOE" {
			t.Fatalf("expected joined vehicle fields, got %v", row)
		}
	})

	t.Run("plate search is case-insensitive", func(t *testing.T) {
		upper := env.do(t, http.MethodGet, "/consult-service?plate=ABC123", nil)
		lower := env.do(t, http.MethodGet, "/consult-service?plate=abc123", nil)
		if upper.Code != http.StatusOK || lower.Code != http.StatusOK {
			t.Fatalf("expected 200/200, got %d/%d", upper.Code, lower.Code)
		}
		if upper.Body.String() != lower.Body.String() {
			t.Fatal("expected identical result sets for both casings")
		}
	})

	t.Run("empty result is 404", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/consult-service?plate=ZZZ999", nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
