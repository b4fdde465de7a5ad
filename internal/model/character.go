package model

import "github.com/deppfellow/starwars-api/internal/validation"

// Character is a person or droid of the saga.
type Character struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:250;not null" json:"name"`
	Age       int    `gorm:"not null" json:"age"`
	Gender    string `gorm:"size:250;not null" json:"gender"`
	SkinColor string `gorm:"size:250;not null" json:"skin_color"`
}

// TableName maps Character to the characters table.
func (Character) TableName() string {
	return "characters"
}

// GetID returns the character id.
func (r Character) GetID() uint { return r.ID }

// GetName returns the character name.
func (r Character) GetName() string { return r.Name }

// CreateCharacterPayload is the POST /character body. Age is a pointer so
// that an explicit 0 counts as present.
type CreateCharacterPayload struct {
	Name      string `json:"name" validate:"required"`
	Age       *int   `json:"age" validate:"required"`
	Gender    string `json:"gender" validate:"required"`
	SkinColor string `json:"skin_color" validate:"required"`
}

// Validate checks that every field is present.
func (p *CreateCharacterPayload) Validate() error {
	return validation.Struct(p)
}

// ToModel builds the record to insert. Call it only after Validate.
func (p *CreateCharacterPayload) ToModel() *Character {
	return &Character{
		Name:      p.Name,
		Age:       *p.Age,
		Gender:    p.Gender,
		SkinColor: p.SkinColor,
	}
}
