package models

import (
	"strings"
	"time"

	"github.com/joshua-takyi/eventscape/internal/errdef"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	EventID   *primitive.ObjectID `bson:"event_id,omitempty" json:"event_id,omitempty"`
	VenueID   *primitive.ObjectID `bson:"venue_id,omitempty" json:"venue_id,omitempty"`
	UserID    string              `bson:"user_id" json:"user_id" validate:"required"`
	Rating    int                 `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment   string              `bson:"comment,omitempty" json:"comment,omitempty" validate:"max=2000"`
	Score     float64             `bson:"score,omitempty" json:"score,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updated_at"`
}

// Validate requires exactly one subject: an event or a venue, never both.
func (r *Review) Validate() error {
	if (r.EventID == nil) == (r.VenueID == nil) {
		return errdef.NewBadRequest("review must reference exactly one of event_id or venue_id")
	}
	if err := Validate.Struct(r); err != nil {
		return errdef.NewBadRequest("invalid review: %v", err)
	}
	return nil
}

func (r *Review) BeforeCreate(now time.Time) {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	r.Comment = strings.TrimSpace(r.Comment)
	r.CreatedAt = now
	r.UpdatedAt = now
}

type ReviewUpdate struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

func (u *ReviewUpdate) Validate() error {
	if u.Rating == nil && u.Comment == nil {
		return errdef.NewBadRequest("nothing to update: expected rating or comment")
	}
	if err := Validate.Struct(u); err != nil {
		return errdef.NewBadRequest("invalid review update: %v", err)
	}
	return nil
}

func (u *ReviewUpdate) SetFields(now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if u.Rating != nil {
		set["rating"] = *u.Rating
	}
	if u.Comment != nil {
		set["comment"] = strings.TrimSpace(*u.Comment)
	}
	return set
}
