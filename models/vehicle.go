package models

import (
	"time"
)

// Vehicle is a customer car registered with the shop. The license plate is
// the business key: stored uppercased and unique, never reassigned.
type Vehicle struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Plate string `gorm:"size:20;uniqueIndex;not null" json:"plate"`
	Brand string `gorm:"size:100;not null" json:"brand"`
	Model string `gorm:"size:100;not null" json:"model"`
	Owner string `gorm:"size:200;not null" json:"owner"`
	Phone string `gorm:"size:20;not null" json:"phone"`

	CreatedAt time.Time `json:"createdAt"`

	Services []Service `gorm:"foreignKey:Plate;references:Plate" json:"-"`
}
