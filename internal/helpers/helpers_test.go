package helpers

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joshua-takyi/eventscape/internal/errdef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestTokenValidator_HMAC(t *testing.T) {
	v, err := NewTokenValidator(context.Background(), "", "s3cret")
	require.NoError(t, err)
	defer v.Close()

	valid := sign(t, "s3cret", &Claims{Role: "host", RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	claims, err := v.Validate(valid)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID())
	assert.True(t, claims.IsHost())

	expired := sign(t, "s3cret", &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}})
	_, err = v.Validate(expired)
	assert.Error(t, err)

	wrongKey := sign(t, "other", &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	_, err = v.Validate(wrongKey)
	assert.Error(t, err)

	noSubject := sign(t, "s3cret", &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	_, err = v.Validate(noSubject)
	assert.Error(t, err)
}

func TestTokenValidator_NeedsAKey(t *testing.T) {
	_, err := NewTokenValidator(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrNoVerificationKey)
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", tok)

	_, ok = BearerToken("Basic dXNlcg==")
	assert.False(t, ok)
	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
}

func TestParseObjectID(t *testing.T) {
	_, err := ParseObjectID("not-an-id", "event")
	assert.True(t, errdef.IsNotFound(err))

	id, err := ParseObjectID("65f1c0a2b3c4d5e6f7a8b9c0", "event")
	require.NoError(t, err)
	assert.Equal(t, "65f1c0a2b3c4d5e6f7a8b9c0", id.Hex())
}

func queryContext(rawQuery string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestQueryParsing(t *testing.T) {
	c := queryContext("limit=15&lat=40.7128&bad=x&ref=2026-10-19T09:00:00Z&tags=jazz,,%20live&venue_id=zzz")

	limit, err := QueryInt(c, "limit", 20)
	require.NoError(t, err)
	assert.Equal(t, 15, limit)

	def, err := QueryInt(c, "offset", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, def)

	_, err = QueryInt(c, "bad", 0)
	assert.True(t, errdef.IsBadRequest(err))

	lat, err := RequiredFloat(c, "lat")
	require.NoError(t, err)
	assert.InDelta(t, 40.7128, lat, 1e-9)

	_, err = RequiredFloat(c, "lng")
	assert.True(t, errdef.IsBadRequest(err))

	for _, raw := range []string{"NaN", "nan", "Inf", "-Inf", "+Infinity"} {
		_, err = QueryFloat(queryContext("radius_km="+raw), "radius_km")
		assert.True(t, errdef.IsBadRequest(err), raw)
	}

	ref, err := QueryTime(c, "ref")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, ref.Weekday())

	assert.Equal(t, []string{"jazz", "live"}, QueryList(c, "tags"))

	_, err = QueryObjectID(c, "venue_id")
	assert.True(t, errdef.IsBadRequest(err))
}
