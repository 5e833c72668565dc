package container

import (
	"log/slog"

	"github.com/joshua-takyi/eventscape/internal/geocode"
	"github.com/joshua-takyi/eventscape/internal/middleware"
	"github.com/joshua-takyi/eventscape/internal/models"
	"github.com/joshua-takyi/eventscape/internal/realtime"
	"github.com/joshua-takyi/eventscape/internal/services"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Clients are the external connections the container is built from. AMQP is optional.
type Clients struct {
	Mongo    *mongo.Client
	AMQP     *amqp.Connection
	Geocoder geocode.Geocoder
	Tokens   middleware.TokenValidator
}

type Options struct {
	DatabaseName string
	AMQPQueue    string
	Discovery    services.DiscoveryConfig
	CORSOrigins  []string
}

// Container holds all application dependencies
type Container struct {
	Logger      *slog.Logger
	CORSOrigins []string

	Indexes  models.IndexManager
	Geocoder geocode.Geocoder
	Tokens   middleware.TokenValidator

	EventService     *services.EventService
	DiscoveryService *services.DiscoveryService
	CheckinService   *services.CheckinService
	ReviewService    *services.ReviewService
	VenueService     *services.VenuesService

	Broker   *realtime.Broker
	Listener *realtime.Listener
}

// NewContainer creates a new dependency injection container
func NewContainer(logger *slog.Logger, clients Clients, opts Options) *Container {
	repo := models.MongodbNewRepo(clients.Mongo, opts.DatabaseName)

	var publisher realtime.Publisher
	if clients.AMQP != nil {
		publisher = realtime.NewAMQPPublisher(clients.AMQP, opts.AMQPQueue)
	}
	broker := realtime.NewBroker()

	return &Container{
		Logger:      logger,
		CORSOrigins: opts.CORSOrigins,

		Indexes:  repo,
		Geocoder: clients.Geocoder,
		Tokens:   clients.Tokens,

		EventService:     services.NewEventService(repo, services.NewEnricher(clients.Geocoder, logger), logger),
		DiscoveryService: services.NewDiscoveryService(repo, opts.Discovery, logger),
		CheckinService:   services.NewCheckinService(repo, repo, logger),
		ReviewService:    services.NewReviewService(repo, repo, repo),
		VenueService:     services.NewVenuesService(repo, logger),

		Broker:   broker,
		Listener: realtime.NewListener(repo, broker, publisher, logger),
	}
}

// NewGeocoder builds the provider client, caching through Redis when a client is available.
func NewGeocoder(cfg geocode.Config, rdb *redis.Client, logger *slog.Logger) *geocode.Client {
	var cache geocode.Cache
	if rdb != nil {
		cache = geocode.NewRedisCache(rdb, "eventscape:geocode:")
	}
	return geocode.NewClient(cfg, cache, logger)
}
