package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventscape/internal/errdef"
	"github.com/joshua-takyi/eventscape/internal/geocode"
	"github.com/joshua-takyi/eventscape/internal/helpers"
	"github.com/joshua-takyi/eventscape/internal/models"
)

type geocodeResponse struct {
	*geocode.Result
	DirectionsURL string `json:"directions_url,omitempty"`
}

type reverseResponse struct {
	Address       *models.Address `json:"address"`
	DirectionsURL string          `json:"directions_url,omitempty"`
}

// Geocode is an explicit lookup, so provider failures reach the caller instead of being swallowed.
func Geocode(g geocode.Geocoder) gin.HandlerFunc {
	return func(c *gin.Context) {
		address := strings.TrimSpace(c.Query("address"))
		if address == "" {
			_ = c.Error(errdef.NewBadRequest("address is required"))
			return
		}
		res, err := g.Geocode(c.Request.Context(), address)
		if err != nil {
			_ = c.Error(err)
			return
		}
		directions, _ := geocode.DirectionsURL(address)
		c.JSON(http.StatusOK, helpers.SuccessResponse(geocodeResponse{res, directions}, ""))
	}
}

func ReverseGeocode(g geocode.Geocoder) gin.HandlerFunc {
	return func(c *gin.Context) {
		lng, err := helpers.RequiredFloat(c, "longitude")
		if err != nil {
			_ = c.Error(err)
			return
		}
		lat, err := helpers.RequiredFloat(c, "latitude")
		if err != nil {
			_ = c.Error(err)
			return
		}
		if err := models.ValidateLngLat(lng, lat); err != nil {
			_ = c.Error(err)
			return
		}

		addr, err := g.ReverseGeocode(c.Request.Context(), lng, lat)
		if err != nil {
			_ = c.Error(err)
			return
		}
		directions, _ := geocode.DirectionsURL(addr.String())
		c.JSON(http.StatusOK, helpers.SuccessResponse(reverseResponse{addr, directions}, ""))
	}
}
