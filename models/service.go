package models

import (
	"time"
)

// Service is one unit of work performed on a vehicle. WorkOrder is the
// shop-assigned ticket number, unique across all services.
type Service struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	WorkOrder int     `gorm:"uniqueIndex;not null" json:"workOrder"`
	Plate     string  `gorm:"size:20;index;not null" json:"plate"`
	Work      string  `gorm:"type:text;not null" json:"work"`
	Cost      float64 `gorm:"type:decimal(10,2);not null" json:"cost"`

	ServiceDate time.Time `json:"serviceDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ServiceWithVehicle is a consultation row: a service joined with the
// descriptive fields of its vehicle.
type ServiceWithVehicle struct {
	Service
	Brand string `json:"brand"`
	Model string `json:"model"`
	Owner string `json:"owner"`
	Phone string `json:"phone"`
}
