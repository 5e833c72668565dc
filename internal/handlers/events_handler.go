package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventscape/internal/helpers"
	"github.com/joshua-takyi/eventscape/internal/models"
	"github.com/joshua-takyi/eventscape/internal/services"
)

type eventWithEnrichment struct {
	Event      *models.Event               `json:"event"`
	Enrichment *services.EnrichmentOutcome `json:"enrichment,omitempty"`
}

func CreateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := currentClaims(c); err != nil {
			_ = c.Error(err)
			return
		}
		var event models.Event
		if err := bindJSON(c, &event); err != nil {
			_ = c.Error(err)
			return
		}

		created, outcome, err := es.CreateEvent(c.Request.Context(), &event)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(eventWithEnrichment{created, outcome}, "Event created successfully"))
	}
}

func GetEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "event")
		if err != nil {
			_ = c.Error(err)
			return
		}
		event, err := es.GetEvent(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(event, ""))
	}
}

func UpdateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := currentClaims(c); err != nil {
			_ = c.Error(err)
			return
		}
		id, err := pathID(c, "event")
		if err != nil {
			_ = c.Error(err)
			return
		}
		var update models.EventUpdate
		if err := bindJSON(c, &update); err != nil {
			_ = c.Error(err)
			return
		}

		updated, outcome, err := es.UpdateEvent(c.Request.Context(), id, &update)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(eventWithEnrichment{updated, outcome}, "Event updated successfully"))
	}
}

func DeleteEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := currentClaims(c); err != nil {
			_ = c.Error(err)
			return
		}
		id, err := pathID(c, "event")
		if err != nil {
			_ = c.Error(err)
			return
		}
		if err := es.DeleteEvent(c.Request.Context(), id); err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "event deleted successfully"))
	}
}
