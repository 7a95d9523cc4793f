package controllers

import (
	"net/http"
	"strconv"

	"frenoshugo-backend/models"
	"frenoshugo-backend/store"
	"frenoshugo-backend/utils"

	"github.com/gin-gonic/gin"
)

type ConsultationController struct {
	store *store.ServiceStore
	dev   bool
}

func NewConsultationController(s *store.ServiceStore, dev bool) *ConsultationController {
	return &ConsultationController{store: s, dev: dev}
}

// ConsultService is the public lookup: services joined with their vehicle,
// searched by plate or by work order. Exactly one of the two parameters must
// be given. An empty result is reported as 404, which the consultation page
// relies on.
func (ctl *ConsultationController) ConsultService(c *gin.Context) {
	plate := c.Query("plate")
	rawWorkOrder := c.Query("workOrder")

	if plate == "" && rawWorkOrder == "" {
		utils.RespondWithError(c, http.StatusBadRequest,
			"Debe proporcionar una placa o número de orden de trabajo")
		return
	}

	var (
		results    []models.ServiceWithVehicle
		searchType string
		searchVal  string
	)

	if rawWorkOrder != "" {
		workOrder, err := strconv.Atoi(rawWorkOrder)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "La orden de trabajo debe ser numérica")
			return
		}
		row, err := ctl.store.FindByWorkOrder(c.Request.Context(), workOrder)
		if err != nil {
			respondStoreError(c, err, "Error consultando servicios", ctl.dev)
			return
		}
		if row != nil {
			results = append(results, *row)
		}
		searchType, searchVal = "workOrder", rawWorkOrder
	} else {
		rows, err := ctl.store.FindByPlate(c.Request.Context(), plate)
		if err != nil {
			respondStoreError(c, err, "Error consultando servicios", ctl.dev)
			return
		}
		results = rows
		searchType, searchVal = "plate", plate
	}

	if len(results) == 0 {
		message := "No se encontraron servicios para esa placa"
		if searchType == "workOrder" {
			message = "No se encontró servicio con esa orden de trabajo"
		}
		utils.RespondWithError(c, http.StatusNotFound, message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"services":    results,
		"total":       len(results),
		"searchType":  searchType,
		"searchValue": searchVal,
	})
}
