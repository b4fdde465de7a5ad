package model

import "github.com/deppfellow/starwars-api/internal/validation"

// Vehicle is a ship or ground vehicle of the saga.
type Vehicle struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:250;not null" json:"name"`
	Model        string `gorm:"size:250;not null" json:"model"`
	Capacity     int    `gorm:"not null" json:"capacity"`
	VehicleClass string `gorm:"size:250;not null" json:"vehicle_class"`
}

// TableName maps Vehicle to the vehicles table.
func (Vehicle) TableName() string {
	return "vehicles"
}

// GetID returns the vehicle id.
func (r Vehicle) GetID() uint { return r.ID }

// GetName returns the vehicle name.
func (r Vehicle) GetName() string { return r.Name }

// CreateVehiclePayload is the POST /vehicle body.
type CreateVehiclePayload struct {
	Name         string `json:"name" validate:"required"`
	Model        string `json:"model" validate:"required"`
	Capacity     *int   `json:"capacity" validate:"required"`
	VehicleClass string `json:"vehicle_class" validate:"required"`
}

// Validate checks that every field is present.
func (p *CreateVehiclePayload) Validate() error {
	return validation.Struct(p)
}

// ToModel builds the record to insert. Call it only after Validate.
func (p *CreateVehiclePayload) ToModel() *Vehicle {
	return &Vehicle{
		Name:         p.Name,
		Model:        p.Model,
		Capacity:     *p.Capacity,
		VehicleClass: p.VehicleClass,
	}
}
