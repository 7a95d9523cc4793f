package controllers

import (
	"net/http"
	"strconv"
	"time"

	"frenoshugo-backend/models"
	"frenoshugo-backend/store"
	"frenoshugo-backend/utils"

	"github.com/gin-gonic/gin"
)

// ServiceNotifier receives post-commit registration events. Implemented by
// services.Notifier; stubbed in tests.
type ServiceNotifier interface {
	ServiceRegistered(service models.Service, vehicle models.Vehicle)
}

// CreateServiceInput defines the expected JSON structure for registering a service
type CreateServiceInput struct {
	WorkOrder int     `json:"workOrder" binding:"required"`
	Plate     string  `json:"plate" binding:"required"`
	Work      string  `json:"work" binding:"required"`
	Cost      float64 `json:"cost" binding:"required,min=0"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Work *string  `json:"work"`
	Cost *float64 `json:"cost"`
}

type ServicesController struct {
	store    *store.ServiceStore
	notifier ServiceNotifier
	dev      bool
}

func NewServicesController(s *store.ServiceStore, notifier ServiceNotifier, dev bool) *ServicesController {
	return &ServicesController{store: s, notifier: notifier, dev: dev}
}

// CreateService registers a service for an existing vehicle. On success the
// owner is notified through the notifier queue; the response never waits on
// the send.
func (ctl *ServicesController) CreateService(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Todos los campos son requeridos")
		return
	}

	service, vehicle, err := ctl.store.Register(c.Request.Context(), store.RegisterInput{
		WorkOrder: input.WorkOrder,
		Plate:     input.Plate,
		Work:      input.Work,
		Cost:      input.Cost,
	})
	if err != nil {
		respondStoreError(c, err, "Error al registrar servicio", ctl.dev)
		return
	}

	if ctl.notifier != nil {
		ctl.notifier.ServiceRegistered(*service, *vehicle)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Servicio registrado exitosamente",
		"data":    service,
	})
}

// GetServices lists services filtered by plate, work order, start date and limit
func (ctl *ServicesController) GetServices(c *gin.Context) {
	filter := store.ServiceFilter{Plate: c.Query("placa")}

	if raw := c.Query("orden_trabajo"); raw != "" {
		workOrder, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "La orden de trabajo debe ser numérica")
			return
		}
		filter.WorkOrder = &workOrder
	}
	if raw := c.Query("fecha_desde"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Fecha inválida, use AAAA-MM-DD")
			return
		}
		filter.From = &from
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Límite inválido")
			return
		}
		filter.Limit = limit
	}

	services, err := ctl.store.List(c.Request.Context(), filter)
	if err != nil {
		respondStoreError(c, err, "Error al obtener servicios", ctl.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services,
		"count":   len(services),
	})
}

// NextWorkOrder suggests the next free ticket number. Advisory only: the
// number is not reserved, and registration re-validates uniqueness.
func (ctl *ServicesController) NextWorkOrder(c *gin.Context) {
	next, err := ctl.store.NextWorkOrder(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Error al calcular la siguiente orden de trabajo", ctl.dev)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nextWorkOrder": next})
}

// CheckWorkOrder reports whether a ticket number is already taken
func (ctl *ServicesController) CheckWorkOrder(c *gin.Context) {
	workOrder, err := strconv.Atoi(c.Param("workOrder"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "La orden de trabajo debe ser numérica")
		return
	}

	exists, err := ctl.store.WorkOrderExists(c.Request.Context(), workOrder)
	if err != nil {
		respondStoreError(c, err, "Error al verificar la orden de trabajo", ctl.dev)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// GetService retrieves one service by id
func (ctl *ServicesController) GetService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	service, err := ctl.store.FindByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Error al obtener servicio", ctl.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": service})
}

// UpdateService updates the work description or cost of a service
func (ctl *ServicesController) UpdateService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}

	service, err := ctl.store.Update(c.Request.Context(), id, store.ServiceUpdate{
		Work: input.Work,
		Cost: input.Cost,
	})
	if err != nil {
		respondStoreError(c, err, "Error al actualizar servicio", ctl.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Servicio actualizado exitosamente",
		"data":    service,
	})
}

// DeleteService removes a service, returning the deleted record
func (ctl *ServicesController) DeleteService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	service, err := ctl.store.Delete(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Error al eliminar servicio", ctl.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Servicio eliminado exitosamente",
		"data":    service,
	})
}
