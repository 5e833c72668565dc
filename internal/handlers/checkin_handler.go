package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventscape/internal/errdef"
	"github.com/joshua-takyi/eventscape/internal/helpers"
	"github.com/joshua-takyi/eventscape/internal/models"
	"github.com/joshua-takyi/eventscape/internal/services"
)

// CheckIn records the caller's attendance. A repeated check-in answers 409.
func CheckIn(cs *services.CheckinService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := currentClaims(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		eventID, err := pathID(c, "event")
		if err != nil {
			_ = c.Error(err)
			return
		}

		var checkin models.Checkin
		if c.Request.ContentLength != 0 {
			if err := bindJSON(c, &checkin); err != nil {
				_ = c.Error(err)
				return
			}
		}
		if checkin.Metadata != nil && checkin.Metadata.IPAddress == "" {
			checkin.Metadata.IPAddress = c.ClientIP()
		}

		created, err := cs.CheckIn(c.Request.Context(), eventID, claims.UserID(), &checkin)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(created, "Checked in successfully"))
	}
}

func GetCheckin(cs *services.CheckinService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "check-in")
		if err != nil {
			_ = c.Error(err)
			return
		}
		checkin, err := cs.GetCheckin(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(checkin, ""))
	}
}

func ListEventCheckins(cs *services.CheckinService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := pathID(c, "event")
		if err != nil {
			_ = c.Error(err)
			return
		}
		limit, err := helpers.QueryInt(c, "limit", 0)
		if err != nil {
			_ = c.Error(err)
			return
		}
		checkins, err := cs.ListByEvent(c.Request.Context(), eventID, limit)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.PaginatedResponse(checkins, 1, limit, len(checkins)))
	}
}

func ListUserCheckins(cs *services.CheckinService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.Param("id"))
		if userID == "" {
			_ = c.Error(errdef.NewBadRequest("user ID is required"))
			return
		}
		limit, err := helpers.QueryInt(c, "limit", 0)
		if err != nil {
			_ = c.Error(err)
			return
		}
		checkins, err := cs.ListByUser(c.Request.Context(), userID, limit)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.PaginatedResponse(checkins, 1, limit, len(checkins)))
	}
}

func UpdateCheckin(cs *services.CheckinService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := currentClaims(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		id, err := pathID(c, "check-in")
		if err != nil {
			_ = c.Error(err)
			return
		}
		var update models.CheckinUpdate
		if err := bindJSON(c, &update); err != nil {
			_ = c.Error(err)
			return
		}

		updated, err := cs.UpdateCheckin(c.Request.Context(), id, claims.UserID(), &update)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(updated, "Check-in updated successfully"))
	}
}

func DeleteCheckin(cs *services.CheckinService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := currentClaims(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		id, err := pathID(c, "check-in")
		if err != nil {
			_ = c.Error(err)
			return
		}
		if err := cs.DeleteCheckin(c.Request.Context(), id, claims.UserID()); err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "check-in deleted successfully"))
	}
}
