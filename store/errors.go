// Package store holds the persistence layer: gorm-backed repositories for
// vehicles and services plus the error taxonomy the HTTP layer maps to
// status codes. The repositories are backend-agnostic; the concrete driver
// (PostgreSQL or SQLite) is chosen when the *gorm.DB handle is opened.
package store

import "errors"

var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound means the targeted record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicatePlate means a vehicle with that plate is already registered.
	ErrDuplicatePlate = errors.New("plate already registered")

	// ErrDuplicateWorkOrder means that work order number is already taken.
	ErrDuplicateWorkOrder = errors.New("work order already registered")

	// ErrVehicleNotFound means a service referenced a plate with no vehicle.
	ErrVehicleNotFound = errors.New("no vehicle registered for plate")

	// ErrVehicleHasServices blocks a plate change while services reference it.
	ErrVehicleHasServices = errors.New("vehicle has registered services")
)
