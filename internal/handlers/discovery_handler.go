package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventscape/internal/helpers"
	"github.com/joshua-takyi/eventscape/internal/services"
)

const defaultRadiusKm = 10

func listParams(c *gin.Context, searchKey string) (services.ListParams, error) {
	limit, err := helpers.QueryInt(c, "limit", 0)
	if err != nil {
		return services.ListParams{}, err
	}
	offset, err := helpers.QueryInt(c, "offset", 0)
	if err != nil {
		return services.ListParams{}, err
	}
	cursor := c.Query("cursor_id")
	if cursor == "" {
		cursor = c.Query("cursor")
	}
	upcoming, _ := strconv.ParseBool(c.Query("upcoming_only"))

	return services.ListParams{
		Category:     c.Query("category"),
		Search:       c.Query(searchKey),
		Cursor:       cursor,
		Offset:       offset,
		Limit:        limit,
		UpcomingOnly: upcoming,
	}, nil
}

func nearbyParams(c *gin.Context) (services.NearbyParams, error) {
	var p services.NearbyParams
	var err error
	if p.Longitude, err = helpers.RequiredFloat(c, "longitude"); err != nil {
		return p, err
	}
	if p.Latitude, err = helpers.RequiredFloat(c, "latitude"); err != nil {
		return p, err
	}
	radius, err := helpers.QueryFloat(c, "radius_km")
	if err != nil {
		return p, err
	}
	p.RadiusKm = defaultRadiusKm
	if radius != nil {
		p.RadiusKm = *radius
	}
	if p.Limit, err = helpers.QueryInt(c, "limit", 0); err != nil {
		return p, err
	}
	p.Category = c.Query("category")
	return p, nil
}

func refTime(c *gin.Context) (time.Time, error) {
	ref, err := helpers.QueryTime(c, "ref")
	if err != nil || ref == nil {
		return time.Time{}, err
	}
	return *ref, nil
}

// ListEvents serves cursor pagination with an offset fallback for malformed cursors.
func ListEvents(ds *services.DiscoveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := listParams(c, "search")
		if err != nil {
			_ = c.Error(err)
			return
		}
		page, err := ds.ListEvents(c.Request.Context(), p)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(page, ""))
	}
}

func SearchEvents(ds *services.DiscoveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := listParams(c, "q")
		if err != nil {
			_ = c.Error(err)
			return
		}
		page, err := ds.SearchEvents(c.Request.Context(), p)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(page, ""))
	}
}

func NearbyEvents(ds *services.DiscoveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := nearbyParams(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		fc, err := ds.Nearby(c.Request.Context(), p)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(fc, ""))
	}
}

func WeekendEvents(ds *services.DiscoveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := nearbyParams(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		ref, err := refTime(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		fc, err := ds.WeekendNearby(c.Request.Context(), p, ref)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(fc, ""))
	}
}

func WeekendInfo(ds *services.DiscoveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref, err := refTime(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(ds.WeekendInfo(ref), ""))
	}
}

// DiscoverEvents is the compound category, location and date range search.
func DiscoverEvents(ds *services.DiscoveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p services.CompoundParams
		var err error
		if p.Longitude, err = helpers.QueryFloat(c, "longitude"); err != nil {
			_ = c.Error(err)
			return
		}
		if p.Latitude, err = helpers.QueryFloat(c, "latitude"); err != nil {
			_ = c.Error(err)
			return
		}
		radius, err := helpers.QueryFloat(c, "radius_km")
		if err != nil {
			_ = c.Error(err)
			return
		}
		p.RadiusKm = defaultRadiusKm
		if radius != nil {
			p.RadiusKm = *radius
		}
		start, err := helpers.QueryTime(c, "start_date")
		if err != nil {
			_ = c.Error(err)
			return
		}
		end, err := helpers.QueryTime(c, "end_date")
		if err != nil {
			_ = c.Error(err)
			return
		}
		if start != nil {
			p.StartDate = *start
		}
		if end != nil {
			p.EndDate = *end
		}
		if p.Limit, err = helpers.QueryInt(c, "limit", 0); err != nil {
			_ = c.Error(err)
			return
		}
		p.Category = c.Query("category")

		result, err := ds.Compound(c.Request.Context(), p)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(result, ""))
	}
}
