package model

import "github.com/deppfellow/starwars-api/internal/validation"

// Planet is a world of the saga.
type Planet struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"size:250;not null" json:"name"`
	Gravity    int    `gorm:"not null" json:"gravity"`
	Population int    `gorm:"not null" json:"population"`
	Climate    string `gorm:"size:250;not null" json:"climate"`
	Terrain    string `gorm:"size:250;not null" json:"terrain"`
}

// TableName maps Planet to the planets table.
func (Planet) TableName() string {
	return "planets"
}

// GetID returns the planet id.
func (r Planet) GetID() uint { return r.ID }

// GetName returns the planet name.
func (r Planet) GetName() string { return r.Name }

// CreatePlanetPayload is the POST /planet body.
type CreatePlanetPayload struct {
	Name       string `json:"name" validate:"required"`
	Gravity    *int   `json:"gravity" validate:"required"`
	Population *int   `json:"population" validate:"required"`
	Climate    string `json:"climate" validate:"required"`
	Terrain    string `json:"terrain" validate:"required"`
}

// Validate checks that every field is present. Zero counts as present.
func (p *CreatePlanetPayload) Validate() error {
	return validation.Struct(p)
}

// ToModel builds the record to insert. Call it only after Validate.
func (p *CreatePlanetPayload) ToModel() *Planet {
	return &Planet{
		Name:       p.Name,
		Gravity:    *p.Gravity,
		Population: *p.Population,
		Climate:    p.Climate,
		Terrain:    p.Terrain,
	}
}
