package controllers

import (
	"net/http"
	"time"

	"frenoshugo-backend/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const appVersion = "3.0.0"

type StatsController struct {
	store  *store.StatsStore
	db     *gorm.DB
	dbName string
	dev    bool
}

func NewStatsController(s *store.StatsStore, db *gorm.DB, dev bool) *StatsController {
	return &StatsController{store: s, db: db, dbName: db.Dialector.Name(), dev: dev}
}

// GetStats returns totals and latest records for both entities
func (ctl *StatsController) GetStats(c *gin.Context) {
	stats, err := ctl.store.GetStats(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Error al obtener estadísticas", ctl.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}

// Health is the liveness probe. Always 200; the body reports whether the
// database answers a ping.
func (ctl *StatsController) Health(c *gin.Context) {
	dbStatus := "down"
	if sqlDB, err := ctl.db.DB(); err == nil {
		if err := sqlDB.PingContext(c.Request.Context()); err == nil {
			dbStatus = "up"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   appVersion,
		"database":  gin.H{"driver": ctl.dbName, "status": dbStatus},
	})
}

// Info is the application banner
func (ctl *StatsController) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app":      "Frenos Hugo",
		"version":  appVersion,
		"database": ctl.dbName,
		"status":   "Funcionando",
	})
}
