package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"frenoshugo-backend/store"
	"frenoshugo-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondStoreError maps the store error taxonomy onto HTTP statuses and the
// uniform failure envelope. Driver error text only leaves the process as the
// optional detail field, and only in dev mode; unexpected errors are logged
// in full server-side and surfaced as a generic message.
func respondStoreError(c *gin.Context, err error, fallback string, dev bool) {
	switch {
	case errors.Is(err, store.ErrValidation):
		utils.RespondWithError(c, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, store.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Registro no encontrado")
	case errors.Is(err, store.ErrDuplicatePlate):
		utils.RespondWithErrorDetail(c, http.StatusConflict,
			"Ya existe un vehículo con esa placa", "PLATE_EXISTS")
	case errors.Is(err, store.ErrDuplicateWorkOrder):
		utils.RespondWithErrorDetail(c, http.StatusConflict,
			"Ya existe un servicio con esa orden de trabajo", "WORKORDER_EXISTS")
	case errors.Is(err, store.ErrVehicleNotFound):
		utils.RespondWithError(c, http.StatusNotFound,
			"No existe un vehículo registrado con esa placa")
	case errors.Is(err, store.ErrVehicleHasServices):
		utils.RespondWithError(c, http.StatusConflict,
			"El vehículo tiene servicios registrados")
	default:
		log.Printf("Unexpected store error: %v", err)
		detail := ""
		if dev {
			detail = err.Error()
		}
		utils.RespondWithErrorDetail(c, http.StatusInternalServerError, fallback, detail)
	}
}

// validationMessage keeps the human-readable part of a wrapped validation
// error, dropping the sentinel prefix.
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), store.ErrValidation.Error())
	msg = strings.TrimPrefix(msg, ": ")
	if msg == "" {
		return "Datos inválidos"
	}
	return msg
}
