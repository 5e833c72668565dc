package helpers

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventscape/internal/errdef"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseObjectID treats a malformed id like an unknown one.
func ParseObjectID(raw, kind string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, errdef.NewNotFound("%s %s not found", kind, raw)
	}
	return id, nil
}

// QueryInt reads an integer query parameter, returning def when it is absent.
func QueryInt(c *gin.Context, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errdef.NewBadRequest("invalid %s parameter: %q", key, raw)
	}
	return v, nil
}

func QueryFloat(c *gin.Context, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, errdef.NewBadRequest("invalid %s parameter: %q", key, raw)
	}
	return &v, nil
}

// RequiredFloat is QueryFloat for parameters that must be present.
func RequiredFloat(c *gin.Context, key string) (float64, error) {
	v, err := QueryFloat(c, key)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, errdef.NewBadRequest("%s is required", key)
	}
	return *v, nil
}

// QueryTime parses an RFC 3339 timestamp.
func QueryTime(c *gin.Context, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errdef.NewBadRequest("invalid %s parameter, expected RFC 3339: %q", key, raw)
	}
	return &t, nil
}

// QueryObjectID parses an optional id filter. Unlike path ids, a malformed filter is a client error.
func QueryObjectID(c *gin.Context, key string) (*primitive.ObjectID, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, errdef.NewBadRequest("invalid %s parameter: %q", key, raw)
	}
	return &id, nil
}

// QueryList splits a comma separated parameter and drops empty entries.
func QueryList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range strings.Split(c.Query(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
