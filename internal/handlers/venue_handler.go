package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventscape/internal/errdef"
	"github.com/joshua-takyi/eventscape/internal/helpers"
	"github.com/joshua-takyi/eventscape/internal/models"
	"github.com/joshua-takyi/eventscape/internal/services"
)

func CreateVenueHandler(v *services.VenuesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := currentClaims(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		if !claims.IsHost() && !claims.IsAdmin() {
			_ = c.Error(errdef.NewForbidden("only users with host role can create venues"))
			return
		}

		var venue models.Venue
		if err := bindJSON(c, &venue); err != nil {
			_ = c.Error(err)
			return
		}

		createdVenue, err := v.CreateVenue(c.Request.Context(), claims.UserID(), &venue)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(createdVenue, "Venue created successfully"))
	}
}

func ListVenues(v *services.VenuesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := helpers.QueryInt(c, "limit", 10)
		if err != nil {
			_ = c.Error(err)
			return
		}
		offset, err := helpers.QueryInt(c, "offset", 0)
		if err != nil {
			_ = c.Error(err)
			return
		}

		venues, total, err := v.ListVenues(c.Request.Context(), offset, limit)
		if err != nil {
			_ = c.Error(err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, helpers.PaginatedResponse(venues, page, limit, total))
	}
}

func GetVenue(v *services.VenuesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "venue")
		if err != nil {
			_ = c.Error(err)
			return
		}
		venue, err := v.GetVenue(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(venue, ""))
	}
}

// DeleteVenue removes a venue owned by the caller. Another host's venue reads as not found.
func DeleteVenue(v *services.VenuesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := currentClaims(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		id, err := pathID(c, "venue")
		if err != nil {
			_ = c.Error(err)
			return
		}

		if err := v.DeleteVenue(c.Request.Context(), claims.UserID(), id); err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "venue deleted successfully"))
	}
}
