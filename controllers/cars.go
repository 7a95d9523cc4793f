package controllers

import (
	"net/http"
	"strconv"

	"frenoshugo-backend/store"
	"frenoshugo-backend/utils"

	"github.com/gin-gonic/gin"
)

// CreateCarInput defines the expected JSON structure for registering a vehicle
type CreateCarInput struct {
	Plate string `json:"plate" binding:"required"`
	Brand string `json:"brand" binding:"required"`
	Model string `json:"model" binding:"required"`
	Owner string `json:"owner" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// UpdateCarInput defines the expected JSON structure for updating a vehicle
type UpdateCarInput struct {
	Plate *string `json:"plate"`
	Brand *string `json:"brand"`
	Model *string `json:"model"`
	Owner *string `json:"owner"`
	Phone *string `json:"phone"`
}

type CarsController struct {
	store *store.VehicleStore
	dev   bool
}

func NewCarsController(s *store.VehicleStore, dev bool) *CarsController {
	return &CarsController{store: s, dev: dev}
}

// CreateCar registers a new vehicle
func (ctl *CarsController) CreateCar(c *gin.Context) {
	var input CreateCarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Todos los campos son obligatorios")
		return
	}

	vehicle, err := ctl.store.Create(c.Request.Context(), store.VehicleInput{
		Plate: input.Plate,
		Brand: input.Brand,
		Model: input.Model,
		Owner: input.Owner,
		Phone: input.Phone,
	})
	if err != nil {
		respondStoreError(c, err, "Error al registrar vehículo", ctl.dev)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Vehículo registrado exitosamente",
		"data":    vehicle,
	})
}

// GetCars lists vehicles, optionally filtered by plate or owner substring
func (ctl *CarsController) GetCars(c *gin.Context) {
	vehicles, err := ctl.store.List(c.Request.Context(), store.VehicleFilter{
		Plate: c.Query("placa"),
		Owner: c.Query("propietario"),
	})
	if err != nil {
		respondStoreError(c, err, "Error al obtener vehículos", ctl.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    vehicles,
		"count":   len(vehicles),
	})
}

// VerifyCar reports whether a plate is registered. A store failure here is a
// connectivity problem, reported as 503 so the frontend can degrade.
func (ctl *CarsController) VerifyCar(c *gin.Context) {
	plate := c.Param("plate")
	if plate == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Debe indicar una placa")
		return
	}

	vehicle, err := ctl.store.FindByPlate(c.Request.Context(), plate)
	if err != nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Base de datos no disponible")
		return
	}

	if vehicle == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "exists": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "exists": true, "data": vehicle})
}

// GetCar retrieves one vehicle by id
func (ctl *CarsController) GetCar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	vehicle, err := ctl.store.FindByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Error al obtener vehículo", ctl.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": vehicle})
}

// UpdateCar updates an existing vehicle
func (ctl *CarsController) UpdateCar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input UpdateCarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}

	vehicle, err := ctl.store.Update(c.Request.Context(), id, store.VehicleUpdate{
		Plate: input.Plate,
		Brand: input.Brand,
		Model: input.Model,
		Owner: input.Owner,
		Phone: input.Phone,
	})
	if err != nil {
		respondStoreError(c, err, "Error al actualizar vehículo", ctl.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Vehículo actualizado exitosamente",
		"data":    vehicle,
	})
}

// DeleteCar removes a vehicle and its services, returning the deleted record
func (ctl *CarsController) DeleteCar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	vehicle, servicesDeleted, err := ctl.store.Delete(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Error al eliminar vehículo", ctl.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "Vehículo eliminado exitosamente",
		"data":            vehicle,
		"servicesDeleted": servicesDeleted,
	})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "ID inválido")
		return 0, false
	}
	return uint(id), true
}
