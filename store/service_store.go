package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"frenoshugo-backend/models"
	"frenoshugo-backend/utils"

	"gorm.io/gorm"
)

// ServiceStore persists service records and the joined consultation queries.
type ServiceStore struct {
	db *gorm.DB
}

func NewServiceStore(db *gorm.DB) *ServiceStore {
	return &ServiceStore{db: db}
}

// RegisterInput carries the raw registration fields for one service.
type RegisterInput struct {
	WorkOrder int
	Plate     string
	Work      string
	Cost      float64
}

// ServiceUpdate carries optional replacement fields; nil means keep.
// The plate reference is fixed at registration and cannot be changed.
type ServiceUpdate struct {
	Work *string
	Cost *float64
}

// ServiceFilter narrows List.
type ServiceFilter struct {
	Plate     string
	WorkOrder *int
	From      *time.Time
	Limit     int
}

const joinedColumns = "services.*, vehicles.brand, vehicles.model, vehicles.owner, vehicles.phone"

// NextWorkOrder suggests the next free ticket number: max existing + 1, or 1
// on an empty store. Purely advisory; nothing reserves the number, so two
// concurrent callers can be offered the same value. The unique index on
// work_order rejects the second writer at registration time.
func (s *ServiceStore) NextWorkOrder(ctx context.Context) (int, error) {
	var next int
	err := s.db.WithContext(ctx).
		Model(&models.Service{}).
		Select("COALESCE(MAX(work_order), 0) + 1").
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (s *ServiceStore) WorkOrderExists(ctx context.Context, workOrder int) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("work_order = ?", workOrder).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Register validates, resolves the vehicle and inserts the service. The
// checks run in order so each failure mode is distinct: validation, duplicate
// work order, unknown plate. The vehicle probe and the insert are two round
// trips, not one transaction; if the duplicate probe and a concurrent
// registration race, the unique index settles it and the loser still gets
// ErrDuplicateWorkOrder. The resolved vehicle is returned alongside the
// service so the caller can notify the owner.
func (s *ServiceStore) Register(ctx context.Context, in RegisterInput) (*models.Service, *models.Vehicle, error) {
	if in.WorkOrder <= 0 {
		return nil, nil, fmt.Errorf("%w: orden de trabajo inválida", ErrValidation)
	}
	if in.Plate == "" || in.Work == "" {
		return nil, nil, fmt.Errorf("%w: todos los campos son obligatorios", ErrValidation)
	}
	if in.Cost < 0 {
		return nil, nil, fmt.Errorf("%w: el costo no puede ser negativo", ErrValidation)
	}

	exists, err := s.WorkOrderExists(ctx, in.WorkOrder)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrDuplicateWorkOrder
	}

	plate := utils.NormalizeIdentifier(in.Plate)
	var vehicle models.Vehicle
	err = s.db.WithContext(ctx).Where("plate = ?", plate).First(&vehicle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	service := models.Service{
		WorkOrder:   in.WorkOrder,
		Plate:       plate,
		Work:        utils.NormalizeIdentifier(in.Work),
		Cost:        in.Cost,
		ServiceDate: time.Now(),
	}

	if err := s.db.WithContext(ctx).Create(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrDuplicateWorkOrder
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			// Vehicle deleted between the probe and the insert.
			return nil, nil, ErrVehicleNotFound
		}
		return nil, nil, err
	}
	return &service, &vehicle, nil
}

// FindByPlate returns the services for a plate, newest first, each joined
// with the vehicle's descriptive fields. Case-insensitive on the plate.
func (s *ServiceStore) FindByPlate(ctx context.Context, plate string) ([]models.ServiceWithVehicle, error) {
	var rows []models.ServiceWithVehicle
	err := s.db.WithContext(ctx).
		Table("services").
		Select(joinedColumns).
		Joins("JOIN vehicles ON vehicles.plate = services.plate").
		Where("services.plate = ?", utils.NormalizeIdentifier(plate)).
		Order("services.service_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByWorkOrder returns the service with that ticket number joined with its
// vehicle, or nil when none exists.
func (s *ServiceStore) FindByWorkOrder(ctx context.Context, workOrder int) (*models.ServiceWithVehicle, error) {
	var rows []models.ServiceWithVehicle
	err := s.db.WithContext(ctx).
		Table("services").
		Select(joinedColumns).
		Joins("JOIN vehicles ON vehicles.plate = services.plate").
		Where("services.work_order = ?", workOrder).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (s *ServiceStore) FindByID(ctx context.Context, id uint) (*models.Service, error) {
	var service models.Service
	err := s.db.WithContext(ctx).First(&service, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (s *ServiceStore) List(ctx context.Context, filter ServiceFilter) ([]models.Service, error) {
	query := s.db.WithContext(ctx).Model(&models.Service{})
	if filter.Plate != "" {
		query = query.Where("plate = ?", utils.NormalizeIdentifier(filter.Plate))
	}
	if filter.WorkOrder != nil {
		query = query.Where("work_order = ?", *filter.WorkOrder)
	}
	if filter.From != nil {
		query = query.Where("service_date >= ?", *filter.From)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var services []models.Service
	if err := query.Order("created_at DESC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (s *ServiceStore) Update(ctx context.Context, id uint, in ServiceUpdate) (*models.Service, error) {
	var service models.Service
	err := s.db.WithContext(ctx).First(&service, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if in.Work != nil {
		service.Work = utils.NormalizeIdentifier(*in.Work)
	}
	if in.Cost != nil {
		if *in.Cost < 0 {
			return nil, fmt.Errorf("%w: el costo no puede ser negativo", ErrValidation)
		}
		service.Cost = *in.Cost
	}

	if err := s.db.WithContext(ctx).Save(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// Delete removes a service and returns the deleted record for confirmation.
func (s *ServiceStore) Delete(ctx context.Context, id uint) (*models.Service, error) {
	var service models.Service
	err := s.db.WithContext(ctx).First(&service, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}
