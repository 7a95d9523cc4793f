package store

import (
	"context"
	"errors"
	"fmt"

	"frenoshugo-backend/models"
	"frenoshugo-backend/utils"

	"gorm.io/gorm"
)

// VehicleStore persists vehicles. All identifying text is normalized on the
// way in, so every lookup is an exact match on the stored uppercase form.
type VehicleStore struct {
	db          *gorm.DB
	countryCode string
}

func NewVehicleStore(db *gorm.DB, countryCode string) *VehicleStore {
	return &VehicleStore{db: db, countryCode: countryCode}
}

// VehicleInput carries the raw registration fields. Every field is required.
type VehicleInput struct {
	Plate string
	Brand string
	Model string
	Owner string
	Phone string
}

// VehicleUpdate carries optional replacement fields; nil means keep.
type VehicleUpdate struct {
	Plate *string
	Brand *string
	Model *string
	Owner *string
	Phone *string
}

// VehicleFilter narrows List. Non-empty values match as substrings.
type VehicleFilter struct {
	Plate string
	Owner string
}

func (s *VehicleStore) Create(ctx context.Context, in VehicleInput) (*models.Vehicle, error) {
	if in.Plate == "" || in.Brand == "" || in.Model == "" || in.Owner == "" || in.Phone == "" {
		return nil, fmt.Errorf("%w: todos los campos son obligatorios", ErrValidation)
	}
	phone := utils.NormalizePhone(in.Phone, s.countryCode)
	if !utils.ValidatePhone(phone) {
		return nil, fmt.Errorf("%w: teléfono inválido", ErrValidation)
	}

	vehicle := models.Vehicle{
		Plate: utils.NormalizeIdentifier(in.Plate),
		Brand: utils.NormalizeIdentifier(in.Brand),
		Model: utils.NormalizeIdentifier(in.Model),
		Owner: utils.NormalizeIdentifier(in.Owner),
		Phone: phone,
	}

	if err := s.db.WithContext(ctx).Create(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicatePlate
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindByPlate returns the vehicle with the given plate, or nil when there is
// none. The caller decides whether absence is an error.
func (s *VehicleStore) FindByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := s.db.WithContext(ctx).
		Where("plate = ?", utils.NormalizeIdentifier(plate)).
		First(&vehicle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (s *VehicleStore) FindByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := s.db.WithContext(ctx).First(&vehicle, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (s *VehicleStore) List(ctx context.Context, filter VehicleFilter) ([]models.Vehicle, error) {
	query := s.db.WithContext(ctx).Model(&models.Vehicle{})
	if filter.Plate != "" {
		query = query.Where("plate LIKE ?", "%"+utils.NormalizeIdentifier(filter.Plate)+"%")
	}
	if filter.Owner != "" {
		query = query.Where("owner LIKE ?", "%"+utils.NormalizeIdentifier(filter.Owner)+"%")
	}

	var vehicles []models.Vehicle
	if err := query.Order("created_at DESC").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (s *VehicleStore) Update(ctx context.Context, id uint, in VehicleUpdate) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := s.db.WithContext(ctx).First(&vehicle, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if in.Plate != nil {
		vehicle.Plate = utils.NormalizeIdentifier(*in.Plate)
	}
	if in.Brand != nil {
		vehicle.Brand = utils.NormalizeIdentifier(*in.Brand)
	}
	if in.Model != nil {
		vehicle.Model = utils.NormalizeIdentifier(*in.Model)
	}
	if in.Owner != nil {
		vehicle.Owner = utils.NormalizeIdentifier(*in.Owner)
	}
	if in.Phone != nil {
		phone := utils.NormalizePhone(*in.Phone, s.countryCode)
		if !utils.ValidatePhone(phone) {
			return nil, fmt.Errorf("%w: teléfono inválido", ErrValidation)
		}
		vehicle.Phone = phone
	}

	if err := s.db.WithContext(ctx).Save(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicatePlate
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			// Plate change with services still pointing at the old plate.
			return nil, ErrVehicleHasServices
		}
		return nil, err
	}
	return &vehicle, nil
}

// Delete removes the vehicle and all of its services in one transaction and
// returns the deleted record plus the number of cascaded services. A vehicle
// is never deleted leaving orphaned services behind.
func (s *VehicleStore) Delete(ctx context.Context, id uint) (*models.Vehicle, int64, error) {
	var vehicle models.Vehicle
	var servicesDeleted int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&vehicle, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		res := tx.Where("plate = ?", vehicle.Plate).Delete(&models.Service{})
		if res.Error != nil {
			return res.Error
		}
		servicesDeleted = res.RowsAffected

		return tx.Delete(&vehicle).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return &vehicle, servicesDeleted, nil
}
