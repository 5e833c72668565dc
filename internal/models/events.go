package models

import (
	"time"

	"github.com/joshua-takyi/eventscape/internal/errdef"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TicketTier struct {
	Name      string  `bson:"name" json:"name" validate:"required"`
	Price     float64 `bson:"price" json:"price" validate:"min=0"`
	Available int     `bson:"available" json:"available" validate:"min=0"`
	Sold      int     `bson:"sold" json:"sold" validate:"min=0"`
}

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title" validate:"required,max=200"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category" json:"category" validate:"required"` // e.g. "music", "tech"

	// LOCATION
	Location      *GeoPoint           `bson:"location,omitempty" json:"location,omitempty"`
	Address       *Address            `bson:"address,omitempty" json:"address,omitempty"`
	DirectionsURL string              `bson:"directions_url,omitempty" json:"directions_url,omitempty"`
	VenueID       *primitive.ObjectID `bson:"venue_id,omitempty" json:"venue_id,omitempty"`

	// SCHEDULE
	StartDate time.Time  `bson:"start_date" json:"start_date" validate:"required"`
	EndDate   *time.Time `bson:"end_date,omitempty" json:"end_date,omitempty"`

	Organizer    string         `bson:"organizer,omitempty" json:"organizer,omitempty"`
	MaxAttendees *int           `bson:"max_attendees,omitempty" json:"max_attendees,omitempty" validate:"omitempty,min=1"`
	TicketTiers  []TicketTier   `bson:"ticket_tiers,omitempty" json:"ticket_tiers,omitempty" validate:"dive"`
	Tags         []string       `bson:"tags" json:"tags"`
	Metadata     map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`

	// Score is the text relevance attached by search reads only.
	Score float64 `bson:"score,omitempty" json:"score,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Validate runs the struct tags and the cross-field rules the tags cannot express.
func (e *Event) Validate() error {
	if err := Validate.Struct(e); err != nil {
		return errdef.NewBadRequest("invalid event: %v", err)
	}
	if e.Location != nil {
		if err := e.Location.Validate(); err != nil {
			return err
		}
	}
	if e.Address != nil {
		if err := Validate.Struct(e.Address); err != nil {
			return errdef.NewBadRequest("invalid event address: %v", err)
		}
	}
	if e.EndDate != nil && !e.EndDate.After(e.StartDate) {
		return errdef.NewBadRequest("end_date must be after start_date")
	}
	return nil
}

func (e *Event) BeforeCreate(now time.Time) {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	e.CreatedAt = now
	e.UpdatedAt = now
}

// EventUpdate carries a partial update. Nil fields are left untouched in the store.
type EventUpdate struct {
	Title         *string             `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string             `json:"description,omitempty"`
	Category      *string             `json:"category,omitempty" validate:"omitempty,min=1"`
	Location      *GeoPoint           `json:"location,omitempty"`
	Address       *Address            `json:"address,omitempty"`
	DirectionsURL *string             `json:"-"`
	VenueID       *primitive.ObjectID `json:"venue_id,omitempty"`
	StartDate     *time.Time          `json:"start_date,omitempty"`
	EndDate       *time.Time          `json:"end_date,omitempty"`
	Organizer     *string             `json:"organizer,omitempty"`
	MaxAttendees  *int                `json:"max_attendees,omitempty" validate:"omitempty,min=1"`
	TicketTiers   []TicketTier        `json:"ticket_tiers,omitempty" validate:"omitempty,dive"`
	Tags          []string            `json:"tags,omitempty"`
	Metadata      map[string]any      `json:"metadata,omitempty"`
}

func (u *EventUpdate) Validate() error {
	if err := Validate.Struct(u); err != nil {
		return errdef.NewBadRequest("invalid event update: %v", err)
	}
	if u.Location != nil {
		if err := u.Location.Validate(); err != nil {
			return err
		}
	}
	if u.Address != nil {
		if err := Validate.Struct(u.Address); err != nil {
			return errdef.NewBadRequest("invalid event address: %v", err)
		}
	}
	return nil
}

// IsEmpty reports whether the update would not change any field.
func (u *EventUpdate) IsEmpty() bool {
	return len(u.SetFields()) == 0
}

// SetFields returns the $set document for the supplied fields only.
func (u *EventUpdate) SetFields() bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Location != nil {
		set["location"] = u.Location
	}
	if u.Address != nil {
		set["address"] = u.Address
	}
	if u.DirectionsURL != nil {
		set["directions_url"] = *u.DirectionsURL
	}
	if u.VenueID != nil {
		set["venue_id"] = *u.VenueID
	}
	if u.StartDate != nil {
		set["start_date"] = *u.StartDate
	}
	if u.EndDate != nil {
		set["end_date"] = *u.EndDate
	}
	if u.Organizer != nil {
		set["organizer"] = *u.Organizer
	}
	if u.MaxAttendees != nil {
		set["max_attendees"] = *u.MaxAttendees
	}
	if u.TicketTiers != nil {
		set["ticket_tiers"] = u.TicketTiers
	}
	if u.Tags != nil {
		set["tags"] = u.Tags
	}
	if u.Metadata != nil {
		set["metadata"] = u.Metadata
	}
	return set
}
