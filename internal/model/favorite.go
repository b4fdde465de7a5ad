package model

import (
	"encoding/json"
	"fmt"

	"github.com/deppfellow/starwars-api/internal/validation"
)

// TargetKind names the record type a favorite points at.
type TargetKind string

const (
	TargetCharacter TargetKind = "character"
	TargetPlanet    TargetKind = "planet"
	TargetVehicle   TargetKind = "vehicle"
)

// TargetKinds lists every kind in route registration order.
var TargetKinds = []TargetKind{TargetCharacter, TargetPlanet, TargetVehicle}

func (k TargetKind) Valid() bool {
	switch k {
	case TargetCharacter, TargetPlanet, TargetVehicle:
		return true
	}
	return false
}

// EntityName is the record type name used in client messages.
func (k TargetKind) EntityName() string {
	switch k {
	case TargetCharacter:
		return "Character"
	case TargetPlanet:
		return "Planet"
	case TargetVehicle:
		return "Vehicle"
	}
	return string(k)
}

// Column is the favorites column holding ids of this kind.
func (k TargetKind) Column() string {
	return string(k) + "_id"
}

// Target is exactly one of Character(id), Planet(id) or Vehicle(id).
type Target struct {
	Kind TargetKind
	ID   uint
}

func (t Target) String() string {
	return fmt.Sprintf("%s %d", t.Kind, t.ID)
}

// Favorite links a user to one target. The three nullable columns are
// the storage form of Target; exactly one of them is set.
type Favorite struct {
	ID          uint  `gorm:"primaryKey" json:"id"`
	UserID      uint  `gorm:"not null;index;uniqueIndex:favorites_user_character_key;uniqueIndex:favorites_user_planet_key;uniqueIndex:favorites_user_vehicle_key" json:"user_id"`
	CharacterID *uint `gorm:"uniqueIndex:favorites_user_character_key;check:favorites_single_target_check,(CASE WHEN character_id IS NULL THEN 0 ELSE 1 END + CASE WHEN planet_id IS NULL THEN 0 ELSE 1 END + CASE WHEN vehicle_id IS NULL THEN 0 ELSE 1 END) = 1" json:"character_id"`
	PlanetID    *uint `gorm:"uniqueIndex:favorites_user_planet_key" json:"planet_id"`
	VehicleID   *uint `gorm:"uniqueIndex:favorites_user_vehicle_key" json:"vehicle_id"`

	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Character *Character `gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE" json:"-"`
	Planet    *Planet    `gorm:"foreignKey:PlanetID;constraint:OnDelete:CASCADE" json:"-"`
	Vehicle   *Vehicle   `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// NewFavorite builds the row for userID favoriting target.
func NewFavorite(userID uint, target Target) (*Favorite, error) {
	if userID == 0 || target.ID == 0 {
		return nil, fmt.Errorf("favorite needs a user and a target id")
	}

	f := &Favorite{UserID: userID}
	id := target.ID

	switch target.Kind {
	case TargetCharacter:
		f.CharacterID = &id
	case TargetPlanet:
		f.PlanetID = &id
	case TargetVehicle:
		f.VehicleID = &id
	default:
		return nil, fmt.Errorf("unknown favorite target kind %q", target.Kind)
	}

	return f, nil
}

// Target recovers the union from the nullable columns. ok is false when
// the row does not have exactly one target set.
func (f *Favorite) Target() (Target, bool) {
	var (
		target Target
		set    int
	)

	if f.CharacterID != nil {
		target = Target{Kind: TargetCharacter, ID: *f.CharacterID}
		set++
	}
	if f.PlanetID != nil {
		target = Target{Kind: TargetPlanet, ID: *f.PlanetID}
		set++
	}
	if f.VehicleID != nil {
		target = Target{Kind: TargetVehicle, ID: *f.VehicleID}
		set++
	}

	if set != 1 {
		return Target{}, false
	}
	return target, true
}

// FavoritePayload addresses a (user, target) pair through the path. The
// kind comes from the route itself.
type FavoritePayload struct {
	UserID   uint `param:"id" json:"-"`
	TargetID uint `param:"target_id" json:"-"`
}

func (p *FavoritePayload) Validate() error {
	return validation.Struct(p)
}

// UserFavoritesResponse lists a user's favorites under "result".
type UserFavoritesResponse struct {
	Result []Favorite `json:"result"`
}

// FavoriteCreatedResponse is {"created": true, "<kind>": favorite}.
type FavoriteCreatedResponse struct {
	Kind     TargetKind
	Favorite *Favorite
}

func (r FavoriteCreatedResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"created":      true,
		string(r.Kind): r.Favorite,
	})
}
