package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventscape/internal/errdef"
	"github.com/joshua-takyi/eventscape/internal/helpers"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func currentClaims(c *gin.Context) (*helpers.Claims, error) {
	claims, ok := helpers.CurrentClaims(c)
	if !ok || claims.UserID() == "" {
		return nil, errdef.NewUnauthorized("unauthorized")
	}
	return claims, nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return errdef.NewBadRequest("invalid request payload: %v", err)
	}
	return nil
}

// pathID reads the :id parameter. Clients sometimes send ids wrapped in quotes.
func pathID(c *gin.Context, kind string) (primitive.ObjectID, error) {
	raw := strings.Trim(strings.TrimSpace(c.Param("id")), "\"'")
	return helpers.ParseObjectID(raw, kind)
}
