package models

import (
	"time"

	"github.com/joshua-takyi/eventscape/internal/errdef"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CheckinMethodQR     = "qr"
	CheckinMethodManual = "manual"
	CheckinMethodNFC    = "nfc"
	CheckinMethodGeo    = "geo"
)

type CheckinMetadata struct {
	DeviceInfo    string `bson:"device_info,omitempty" json:"device_info,omitempty"`
	IPAddress     string `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	StaffVerified bool   `bson:"staff_verified" json:"staff_verified"`
}

type Checkin struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID primitive.ObjectID `bson:"event_id" json:"event_id"`
	UserID  string             `bson:"user_id" json:"user_id" validate:"required"`
	// VenueID is copied from the event so analytics can group without a join.
	VenueID     *primitive.ObjectID `bson:"venue_id,omitempty" json:"venue_id,omitempty"`
	Code        string              `bson:"code" json:"code"`
	TicketTier  string              `bson:"ticket_tier,omitempty" json:"ticket_tier,omitempty"`
	Method      string              `bson:"method,omitempty" json:"method,omitempty" validate:"omitempty,oneof=qr manual nfc geo"`
	Location    *GeoPoint           `bson:"location,omitempty" json:"location,omitempty"`
	Metadata    *CheckinMetadata    `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CheckInTime time.Time           `bson:"check_in_time" json:"check_in_time"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt   *time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

func (c *Checkin) Validate() error {
	if c.EventID.IsZero() {
		return errdef.NewBadRequest("event_id is required")
	}
	if err := Validate.Struct(c); err != nil {
		return errdef.NewBadRequest("invalid check-in: %v", err)
	}
	if c.Location != nil {
		if err := c.Location.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CheckinUpdate holds the only fields a check-in may change after creation.
type CheckinUpdate struct {
	Method     *string          `json:"method,omitempty" validate:"omitempty,oneof=qr manual nfc geo"`
	TicketTier *string          `json:"ticket_tier,omitempty"`
	Metadata   *CheckinMetadata `json:"metadata,omitempty"`
}

func (u *CheckinUpdate) Validate() error {
	if err := Validate.Struct(u); err != nil {
		return errdef.NewBadRequest("invalid check-in update: %v", err)
	}
	if u.Method == nil && u.TicketTier == nil && u.Metadata == nil {
		return errdef.NewBadRequest("nothing to update: expected method, ticket_tier or metadata")
	}
	return nil
}

func (u *CheckinUpdate) SetFields(now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if u.Method != nil {
		set["method"] = *u.Method
	}
	if u.TicketTier != nil {
		set["ticket_tier"] = *u.TicketTier
	}
	if u.Metadata != nil {
		set["metadata"] = u.Metadata
	}
	return set
}
