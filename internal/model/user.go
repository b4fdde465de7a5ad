package model

import "github.com/deppfellow/starwars-api/internal/validation"

// User is a blog reader. Username and email are unique.
type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"size:250;not null" json:"name"`
	Username string  `gorm:"size:250;not null;uniqueIndex:users_username_key" json:"username"`
	Email    string  `gorm:"size:250;not null;uniqueIndex:users_email_key" json:"email"`
	Password *string `gorm:"size:250" json:"-"`
}

// TableName maps User to the users table.
func (User) TableName() string {
	return "users"
}

// GetID returns the user id.
func (r User) GetID() uint { return r.ID }

// GetName returns the display name.
func (r User) GetName() string { return r.Name }

// CreateUserPayload is the POST /user body. Password is optional.
type CreateUserPayload struct {
	Name     string  `json:"name" validate:"required"`
	Username string  `json:"username" validate:"required"`
	Email    string  `json:"email" validate:"required"`
	Password *string `json:"password"`
}

// Validate checks that every required field is present.
func (p *CreateUserPayload) Validate() error {
	return validation.Struct(p)
}

// ToModel builds the record to insert. The password is hashed by the service.
func (p *CreateUserPayload) ToModel() *User {
	return &User{
		Name:     p.Name,
		Username: p.Username,
		Email:    p.Email,
	}
}
