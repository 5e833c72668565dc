package errdef_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/joshua-takyi/eventscape/internal/errdef"

	"github.com/stretchr/testify/assert"
)

func TestIsBadRequest(t *testing.T) {
	assert.False(t, errdef.IsBadRequest(errors.New("some error")))
	assert.True(t, errdef.IsBadRequest(errdef.NewBadRequest("some error")))
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, errdef.IsNotFound(errors.New("some error")))
	assert.True(t, errdef.IsNotFound(errdef.NewNotFound("some error")))
}

func TestIsDuplicated(t *testing.T) {
	assert.False(t, errdef.IsDuplicated(errors.New("some error")))
	assert.True(t, errdef.IsDuplicated(errdef.NewDuplicated("some error")))
}

func TestIsGeocoding(t *testing.T) {
	assert.False(t, errdef.IsGeocoding(errors.New("some error")))
	assert.True(t, errdef.IsGeocoding(errdef.NewGeocoding("some error")))
}

func TestIsUnauthorized(t *testing.T) {
	assert.False(t, errdef.IsUnauthorized(errors.New("some error")))
	assert.True(t, errdef.IsUnauthorized(errdef.NewUnauthorized("some error")))
}

func TestIsForbidden(t *testing.T) {
	assert.False(t, errdef.IsForbidden(errors.New("some error")))
	assert.True(t, errdef.IsForbidden(errdef.NewForbidden("some error")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	cause := errors.New("provider down")
	err := fmt.Errorf("enrich event: %w", errdef.NewGeocoding("forward geocode: %w", cause))

	assert.True(t, errdef.IsGeocoding(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, errdef.IsBadRequest(err))
}
