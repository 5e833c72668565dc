package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventscape/internal/container"
	"github.com/joshua-takyi/eventscape/internal/handlers"
	"github.com/joshua-takyi/eventscape/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.Auth(container.Tokens, container.Logger)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": "eventscape-api",
			})
		})
		v1.GET("/stream", handlers.Stream(container.Broker, container.Logger))
	}

	events := v1.Group("/events")
	{
		events.GET("", handlers.ListEvents(container.DiscoveryService))
		events.GET("/search", handlers.SearchEvents(container.DiscoveryService))
		events.GET("/nearby", handlers.NearbyEvents(container.DiscoveryService))
		events.GET("/weekend", handlers.WeekendEvents(container.DiscoveryService))
		events.GET("/weekend/info", handlers.WeekendInfo(container.DiscoveryService))
		events.GET("/discover", handlers.DiscoverEvents(container.DiscoveryService))
		events.GET("/:id", handlers.GetEvent(container.EventService))
		events.GET("/:id/checkins", handlers.ListEventCheckins(container.CheckinService))

		events.POST("", auth, handlers.CreateEvent(container.EventService))
		events.PATCH("/:id", auth, handlers.UpdateEvent(container.EventService))
		events.DELETE("/:id", auth, handlers.DeleteEvent(container.EventService))
		events.POST("/:id/checkins", auth, handlers.CheckIn(container.CheckinService))
	}

	checkins := v1.Group("/checkins")
	{
		checkins.GET("/:id", handlers.GetCheckin(container.CheckinService))
		checkins.PATCH("/:id", auth, handlers.UpdateCheckin(container.CheckinService))
		checkins.DELETE("/:id", auth, handlers.DeleteCheckin(container.CheckinService))
	}
	v1.GET("/users/:id/checkins", handlers.ListUserCheckins(container.CheckinService))

	reviews := v1.Group("/reviews")
	{
		reviews.GET("", handlers.ListReviews(container.ReviewService))
		reviews.GET("/search", handlers.SearchReviews(container.ReviewService))
		reviews.POST("", auth, handlers.CreateReview(container.ReviewService))
		reviews.PATCH("/:id", auth, handlers.UpdateReview(container.ReviewService))
		reviews.DELETE("/:id", auth, handlers.DeleteReview(container.ReviewService))
	}

	venues := v1.Group("/venues")
	{
		venues.GET("", handlers.ListVenues(container.VenueService))
		venues.GET("/:id", handlers.GetVenue(container.VenueService))
		venues.POST("", auth, handlers.CreateVenueHandler(container.VenueService))
		venues.DELETE("/:id", auth, handlers.DeleteVenue(container.VenueService))
	}

	geo := v1.Group("/geocode")
	{
		geo.GET("", handlers.Geocode(container.Geocoder))
		geo.GET("/reverse", handlers.ReverseGeocode(container.Geocoder))
	}

	return r
}
