package models

import (
	"strings"
	"time"

	"github.com/joshua-takyi/eventscape/internal/errdef"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VenueStatus string

const (
	StatusPending  VenueStatus = "pending"
	StatusActive   VenueStatus = "active"
	StatusInactive VenueStatus = "inactive"
)

type VenueContact struct {
	Email   string `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Website string `bson:"website,omitempty" json:"website,omitempty" validate:"omitempty,url"`
}

type Venue struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HostID string             `bson:"host_id" json:"host_id"`

	Name        string `bson:"name" json:"name" validate:"required,max=200"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Slug        string `bson:"slug" json:"slug"`

	// LOCATION
	Location *GeoPoint `bson:"location" json:"location" validate:"required"`
	Address  *Address  `bson:"address" json:"address" validate:"required"`

	Capacity  *int          `bson:"capacity,omitempty" json:"capacity,omitempty" validate:"omitempty,min=1"`
	Amenities []string      `bson:"amenities" json:"amenities"`
	Contact   *VenueContact `bson:"contact,omitempty" json:"contact,omitempty"`

	Status    VenueStatus `bson:"status" json:"status"`
	CreatedAt time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time   `bson:"updated_at" json:"updated_at"`
}

func (v *Venue) Validate() error {
	if err := Validate.Struct(v); err != nil {
		return errdef.NewBadRequest("invalid venue: %v", err)
	}
	if err := v.Location.Validate(); err != nil {
		return err
	}
	if err := Validate.Struct(v.Address); err != nil {
		return errdef.NewBadRequest("invalid venue address: %v", err)
	}
	if v.Contact != nil {
		if err := Validate.Struct(v.Contact); err != nil {
			return errdef.NewBadRequest("invalid venue contact: %v", err)
		}
	}
	return nil
}

func (v *Venue) BeforeCreate(hostID string, now time.Time) {
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	if v.Amenities == nil {
		v.Amenities = []string{}
	}
	v.HostID = hostID
	v.Slug = GenerateSlug(v.Name, v.Address.City)
	v.Status = StatusPending
	v.CreatedAt = now
	v.UpdatedAt = now
}

// GenerateSlug lowercases the parts and joins their alphanumeric runs with dashes.
func GenerateSlug(parts ...string) string {
	var words []string
	for _, p := range parts {
		words = append(words, strings.FieldsFunc(strings.ToLower(p), func(r rune) bool {
			return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
		})...)
	}
	return strings.Join(words, "-")
}
