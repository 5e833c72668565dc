package models

import (
	"math"
	"testing"
	"time"

	"github.com/joshua-takyi/eventscape/internal/errdef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewGeoPoint_RangeEnforcement(t *testing.T) {
	tests := []struct {
		name    string
		lng     float64
		lat     float64
		wantErr bool
	}{
		{"new york", -74.0060, 40.7128, false},
		{"corner max", 180, 90, false},
		{"corner min", -180, -90, false},
		{"longitude too large", 180.0001, 0, true},
		{"longitude too small", -181, 0, true},
		{"latitude too large", 0, 90.5, true},
		{"latitude too small", 0, -91, true},
		{"nan longitude", math.NaN(), 0, true},
		{"nan latitude", 0, math.NaN(), true},
		{"infinite longitude", math.Inf(1), 0, true},
		{"infinite latitude", 0, math.Inf(-1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewGeoPoint(tt.lng, tt.lat)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errdef.IsBadRequest(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lng, p.Longitude())
			assert.Equal(t, tt.lat, p.Latitude())
		})
	}
}

func TestGeoPoint_ValidateShape(t *testing.T) {
	assert.Error(t, (&GeoPoint{Type: "Polygon", Coordinates: []float64{0, 0}}).Validate())
	assert.Error(t, (&GeoPoint{Type: PointType, Coordinates: []float64{0}}).Validate())
	assert.NoError(t, (&GeoPoint{Type: PointType, Coordinates: []float64{1, 2}}).Validate())
}

func TestAddress_String(t *testing.T) {
	a := Address{Street: "350 5th Ave", City: "New York", State: "NY", Zip: "10118", Country: "United States"}
	assert.Equal(t, "350 5th Ave, New York, NY 10118, United States", a.String())

	a.Zip = ""
	assert.Equal(t, "350 5th Ave, New York, NY, United States", a.String())
}

func validEvent() *Event {
	return &Event{
		Title:     "Jazz Night",
		Category:  "music",
		StartDate: time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC),
	}
}

func TestEvent_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validEvent().Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		e := validEvent()
		e.Title = ""
		assert.True(t, errdef.IsBadRequest(e.Validate()))
	})

	t.Run("end before start", func(t *testing.T) {
		e := validEvent()
		end := e.StartDate.Add(-time.Hour)
		e.EndDate = &end
		assert.True(t, errdef.IsBadRequest(e.Validate()))
	})

	t.Run("end equal to start", func(t *testing.T) {
		e := validEvent()
		end := e.StartDate
		e.EndDate = &end
		assert.True(t, errdef.IsBadRequest(e.Validate()))
	})

	t.Run("bad location", func(t *testing.T) {
		e := validEvent()
		e.Location = &GeoPoint{Type: PointType, Coordinates: []float64{200, 0}}
		assert.True(t, errdef.IsBadRequest(e.Validate()))
	})

	t.Run("negative ticket price", func(t *testing.T) {
		e := validEvent()
		e.TicketTiers = []TicketTier{{Name: "GA", Price: -1}}
		assert.True(t, errdef.IsBadRequest(e.Validate()))
	})
}

func TestEvent_BeforeCreate(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	e := validEvent()
	e.BeforeCreate(now)

	assert.False(t, e.ID.IsZero())
	assert.NotNil(t, e.Tags)
	assert.Equal(t, now, e.CreatedAt)
	assert.Equal(t, now, e.UpdatedAt)
}

func TestEventUpdate_SetFields(t *testing.T) {
	title := "New title"
	u := &EventUpdate{Title: &title, Tags: []string{"jazz"}}

	set := u.SetFields()
	assert.Equal(t, "New title", set["title"])
	assert.Equal(t, []string{"jazz"}, set["tags"])
	assert.NotContains(t, set, "category")
	assert.False(t, u.IsEmpty())
	assert.True(t, (&EventUpdate{}).IsEmpty())
}

func TestReview_ExactlyOneSubject(t *testing.T) {
	eventID := primitive.NewObjectID()
	venueID := primitive.NewObjectID()

	tests := []struct {
		name    string
		review  Review
		wantErr bool
	}{
		{"event only", Review{EventID: &eventID, UserID: "u1", Rating: 4}, false},
		{"venue only", Review{VenueID: &venueID, UserID: "u1", Rating: 5}, false},
		{"both", Review{EventID: &eventID, VenueID: &venueID, UserID: "u1", Rating: 3}, true},
		{"neither", Review{UserID: "u1", Rating: 3}, true},
		{"rating too high", Review{EventID: &eventID, UserID: "u1", Rating: 6}, true},
		{"rating zero", Review{EventID: &eventID, UserID: "u1", Rating: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.review.Validate()
			if tt.wantErr {
				assert.True(t, errdef.IsBadRequest(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestReviewUpdate_Validate(t *testing.T) {
	assert.Error(t, (&ReviewUpdate{}).Validate())

	bad := 9
	assert.Error(t, (&ReviewUpdate{Rating: &bad}).Validate())

	comment := "  better than expected  "
	u := &ReviewUpdate{Comment: &comment}
	require.NoError(t, u.Validate())
	assert.Equal(t, "better than expected", u.SetFields(time.Now())["comment"])
}

func TestCheckin_Validate(t *testing.T) {
	c := &Checkin{EventID: primitive.NewObjectID(), UserID: "u1", Method: CheckinMethodQR}
	assert.NoError(t, c.Validate())

	c.Method = "carrier-pigeon"
	assert.True(t, errdef.IsBadRequest(c.Validate()))

	assert.True(t, errdef.IsBadRequest((&Checkin{UserID: "u1"}).Validate()))
	assert.True(t, errdef.IsBadRequest((&Checkin{EventID: primitive.NewObjectID()}).Validate()))
}

func TestCheckinUpdate_SetFields(t *testing.T) {
	assert.Error(t, (&CheckinUpdate{}).Validate())

	method := CheckinMethodNFC
	u := &CheckinUpdate{Method: &method}
	require.NoError(t, u.Validate())

	now := time.Now()
	set := u.SetFields(now)
	assert.Equal(t, CheckinMethodNFC, set["method"])
	assert.Equal(t, now, set["updated_at"])
	assert.NotContains(t, set, "user_id")
}

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "the-blue-note-new-york", GenerateSlug("The Blue Note!", "New York"))
	assert.Equal(t, "", GenerateSlug("  "))
}

func TestVenue_ValidateAndBeforeCreate(t *testing.T) {
	loc, err := NewGeoPoint(-74.0, 40.7)
	require.NoError(t, err)
	v := &Venue{
		Name:     "Hall",
		Location: loc,
		Address:  &Address{Street: "1 Main St", City: "Springfield", State: "IL", Country: "United States"},
	}
	require.NoError(t, v.Validate())

	now := time.Now()
	v.BeforeCreate("host-1", now)
	assert.Equal(t, "host-1", v.HostID)
	assert.Equal(t, StatusPending, v.Status)
	assert.Equal(t, "hall-springfield", v.Slug)
	assert.NotNil(t, v.Amenities)

	v.Contact = &VenueContact{Email: "not-an-email"}
	assert.True(t, errdef.IsBadRequest(v.Validate()))
}

func TestRoundDistance(t *testing.T) {
	assert.Equal(t, 1.23, RoundDistance(1.234))
	assert.Equal(t, 1.24, RoundDistance(1.235000001))
	assert.Equal(t, 0.0, RoundDistance(0.004))
}

func TestNewWeekendFeature(t *testing.T) {
	loc, _ := NewGeoPoint(-74.0060, 40.7128)
	start := time.Date(2026, 10, 17, 15, 0, 0, 0, time.FixedZone("EST", -5*3600))
	ev := &GeoEvent{
		Event: Event{
			ID:        primitive.NewObjectID(),
			Title:     "Market",
			Category:  "food",
			Location:  loc,
			StartDate: start,
		},
		Distance: 2.4567,
	}

	f := NewWeekendFeature(ev)
	assert.Equal(t, FeatureType, f.Type)
	assert.Equal(t, "", f.Properties.EndDate)
	assert.Equal(t, []string{}, f.Properties.Tags)
	assert.Equal(t, 2.46, f.Properties.Distance)
	assert.Equal(t, "2026-10-17T20:00:00Z", f.Properties.StartDate)

	end := start.Add(3 * time.Hour)
	ev.EndDate = &end
	assert.Equal(t, "2026-10-17T23:00:00Z", NewWeekendFeature(ev).Properties.EndDate)
}

func TestChangeEvent_Notification(t *testing.T) {
	now := time.Now().UTC()
	ev := &ChangeEvent{OperationType: "delete"}
	ev.Namespace.Coll = CheckinsColName
	ev.DocumentKey.ID = primitive.NewObjectID()

	n, err := ev.Notification(now)
	require.NoError(t, err)
	assert.Equal(t, "delete", n.Operation)
	assert.Equal(t, CheckinsColName, n.Collection)
	assert.Equal(t, ev.DocumentKey.ID.Hex(), n.DocumentID)
	assert.Equal(t, now, n.OccurredAt)
	assert.Nil(t, n.Document)
}
