package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventscape/internal/helpers"
	"github.com/joshua-takyi/eventscape/internal/models"
	"github.com/joshua-takyi/eventscape/internal/services"
)

func CreateReview(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := currentClaims(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		var review models.Review
		if err := bindJSON(c, &review); err != nil {
			_ = c.Error(err)
			return
		}

		created, err := rs.CreateReview(c.Request.Context(), claims.UserID(), &review)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(created, "Review created successfully"))
	}
}

// ListReviews needs exactly one of event_id or venue_id.
func ListReviews(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := helpers.QueryObjectID(c, "event_id")
		if err != nil {
			_ = c.Error(err)
			return
		}
		venueID, err := helpers.QueryObjectID(c, "venue_id")
		if err != nil {
			_ = c.Error(err)
			return
		}
		limit, err := helpers.QueryInt(c, "limit", 0)
		if err != nil {
			_ = c.Error(err)
			return
		}

		reviews, err := rs.ListReviews(c.Request.Context(), eventID, venueID, limit)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.PaginatedResponse(reviews, 1, limit, len(reviews)))
	}
}

func SearchReviews(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := helpers.QueryInt(c, "limit", 0)
		if err != nil {
			_ = c.Error(err)
			return
		}
		reviews, err := rs.SearchReviews(c.Request.Context(), c.Query("q"), limit)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(reviews, ""))
	}
}

func UpdateReview(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := currentClaims(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		id, err := pathID(c, "review")
		if err != nil {
			_ = c.Error(err)
			return
		}
		var update models.ReviewUpdate
		if err := bindJSON(c, &update); err != nil {
			_ = c.Error(err)
			return
		}

		updated, err := rs.UpdateReview(c.Request.Context(), id, claims.UserID(), &update)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(updated, "Review updated successfully"))
	}
}

func DeleteReview(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := currentClaims(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		id, err := pathID(c, "review")
		if err != nil {
			_ = c.Error(err)
			return
		}
		if err := rs.DeleteReview(c.Request.Context(), id, claims.UserID()); err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "review deleted successfully"))
	}
}
