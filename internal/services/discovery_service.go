package services

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/joshua-takyi/eventscape/internal/errdef"
	"github.com/joshua-takyi/eventscape/internal/metrics"
	"github.com/joshua-takyi/eventscape/internal/models"
	"github.com/joshua-takyi/eventscape/internal/weekend"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultPageLimit = 20
	DefaultMaxLimit  = 100
	MaxRadiusKm      = 20000.0
)

// DiscoveryConfig bounds page sizes. Zero values fall back to DefaultPageLimit and DefaultMaxLimit.
type DiscoveryConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// ListParams drives listing and search. A Cursor that is not an ObjectID hex switches to Offset paging.
type ListParams struct {
	Category     string
	Search       string
	Cursor       string
	Offset       int
	Limit        int
	UpcomingOnly bool
}

// NearbyParams is a point, a radius in kilometres and an optional category.
type NearbyParams struct {
	Longitude float64
	Latitude  float64
	RadiusKm  float64
	Limit     int
	Category  string
}

// CompoundParams filters by date range and category. With Longitude and Latitude both nil the search
// runs as a plain date range query and RadiusKm is ignored.
type CompoundParams struct {
	Category  string
	Longitude *float64
	Latitude  *float64
	RadiusKm  float64
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}

type DiscoveryService struct {
	eventsRepo models.EventsRepo
	cfg        DiscoveryConfig
	now        func() time.Time
	logger     *slog.Logger
}

func NewDiscoveryService(eventsRepo models.EventsRepo, cfg DiscoveryConfig, logger *slog.Logger) *DiscoveryService {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultPageLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = DefaultMaxLimit
	}
	return &DiscoveryService{
		eventsRepo: eventsRepo,
		cfg:        cfg,
		now:        time.Now,
		logger:     logger,
	}
}

func (ds *DiscoveryService) limit(requested int) (int, error) {
	switch {
	case requested == 0:
		return ds.cfg.DefaultLimit, nil
	case requested < 0 || requested > ds.cfg.MaxLimit:
		return 0, errdef.NewBadRequest("limit must be between 1 and %d", ds.cfg.MaxLimit)
	default:
		return requested, nil
	}
}

// ListEvents pages through events. A cursor that is not an ObjectID hex switches to offset paging
// instead of failing.
func (ds *DiscoveryService) ListEvents(ctx context.Context, p ListParams) (*models.EventPage, error) {
	limit, err := ds.limit(p.Limit)
	if err != nil {
		return nil, err
	}
	if p.Offset < 0 {
		return nil, errdef.NewBadRequest("offset must not be negative")
	}

	search := strings.TrimSpace(p.Search)
	filter := bson.M{}
	if p.Category != "" {
		filter["category"] = p.Category
	}
	if p.UpcomingOnly {
		filter["start_date"] = bson.M{"$gte": ds.now().UTC()}
	}

	score := bson.M{"$meta": "textScore"}
	opts := options.Find().SetLimit(int64(limit))
	if search != "" {
		filter["$text"] = bson.M{"$search": search}
		opts.SetProjection(bson.M{"score": score})
	}

	useCursor := p.Cursor == "" || primitive.IsValidObjectID(p.Cursor)
	if useCursor {
		if p.Cursor != "" {
			after, _ := primitive.ObjectIDFromHex(p.Cursor)
			filter["_id"] = bson.M{"$gt": after}
		}
		sort := bson.D{{Key: "_id", Value: 1}}
		if search != "" {
			sort = bson.D{{Key: "score", Value: score}, {Key: "_id", Value: 1}}
		}
		opts.SetSort(sort)
	} else {
		sort := bson.D{{Key: "start_date", Value: 1}, {Key: "_id", Value: 1}}
		if search != "" {
			sort = bson.D{{Key: "score", Value: score}, {Key: "start_date", Value: 1}, {Key: "_id", Value: 1}}
		}
		opts.SetSort(sort).SetSkip(int64(p.Offset))
	}

	start := time.Now()
	events, err := ds.eventsRepo.FindEvents(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	page := &models.EventPage{
		Events:  events,
		HasMore: len(events) == limit,
	}
	if useCursor {
		page.PaginationType = models.PaginationCursor
		if len(events) == limit {
			next := events[len(events)-1].ID.Hex()
			page.NextCursor = &next
		}
	} else {
		page.PaginationType = models.PaginationOffset
		next := p.Offset + len(events)
		page.Offset = &next
	}

	metrics.RecordDiscoveryQuery(page.PaginationType, len(events), time.Since(start))
	return page, nil
}

// SearchEvents is ListEvents with a mandatory text query; results are ordered by relevance.
func (ds *DiscoveryService) SearchEvents(ctx context.Context, p ListParams) (*models.EventPage, error) {
	if strings.TrimSpace(p.Search) == "" {
		return nil, errdef.NewBadRequest("search query is required")
	}
	return ds.ListEvents(ctx, p)
}

func (ds *DiscoveryService) validateNearby(p *NearbyParams) error {
	if err := models.ValidateLngLat(p.Longitude, p.Latitude); err != nil {
		return err
	}
	if err := validateRadius(p.RadiusKm); err != nil {
		return err
	}
	limit, err := ds.limit(p.Limit)
	if err != nil {
		return err
	}
	p.Limit = limit
	return nil
}

func validateRadius(km float64) error {
	if math.IsNaN(km) || km <= 0 || km > MaxRadiusKm {
		return errdef.NewBadRequest("radius_km must be greater than 0 and at most %v", MaxRadiusKm)
	}
	return nil
}

func geoNearStage(lng, lat, radiusKm float64, query bson.D) bson.D {
	spec := bson.D{
		{Key: "near", Value: bson.D{
			{Key: "type", Value: models.PointType},
			{Key: "coordinates", Value: bson.A{lng, lat}},
		}},
		{Key: "distanceField", Value: "distance"},
		{Key: "maxDistance", Value: radiusKm * 1000},
		{Key: "spherical", Value: true},
		{Key: "distanceMultiplier", Value: 0.001},
	}
	if len(query) > 0 {
		spec = append(spec, bson.E{Key: "query", Value: query})
	}
	return bson.D{{Key: "$geoNear", Value: spec}}
}

// NearbyPipeline is the nearest-first query: geo cut, then category, then limit.
func NearbyPipeline(p NearbyParams) mongo.Pipeline {
	pipeline := mongo.Pipeline{geoNearStage(p.Longitude, p.Latitude, p.RadiusKm, nil)}
	if p.Category != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{{Key: "category", Value: p.Category}}}})
	}
	return append(pipeline, bson.D{{Key: "$limit", Value: int64(p.Limit)}})
}

// WeekendPipeline restricts the geo cut to events starting inside w, then orders them by start time.
func WeekendPipeline(p NearbyParams, w weekend.Window) mongo.Pipeline {
	inWindow := bson.D{{Key: "start_date", Value: bson.D{
		{Key: "$gte", Value: w.Start},
		{Key: "$lte", Value: w.End},
	}}}
	pipeline := mongo.Pipeline{geoNearStage(p.Longitude, p.Latitude, p.RadiusKm, inWindow)}
	if p.Category != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{{Key: "category", Value: p.Category}}}})
	}
	return append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "start_date", Value: 1}}}},
		bson.D{{Key: "$limit", Value: int64(p.Limit)}},
	)
}

func (ds *DiscoveryService) Nearby(ctx context.Context, p NearbyParams) (*models.FeatureCollection, error) {
	if err := ds.validateNearby(&p); err != nil {
		return nil, err
	}

	start := time.Now()
	events, err := ds.eventsRepo.AggregateGeoEvents(ctx, NearbyPipeline(p))
	if err != nil {
		return nil, err
	}
	metrics.RecordDiscoveryQuery("nearby", len(events), time.Since(start))

	fc := &models.FeatureCollection{
		Type:     models.FeatureCollectionType,
		Features: make([]*models.Feature, 0, len(events)),
	}
	for _, e := range events {
		fc.Features = append(fc.Features, models.NewFeature(e))
	}
	return fc, nil
}

// WeekendNearby finds events near a point that start inside the weekend window following ref.
// A zero ref means now.
func (ds *DiscoveryService) WeekendNearby(ctx context.Context, p NearbyParams, ref time.Time) (*models.WeekendFeatureCollection, error) {
	if err := ds.validateNearby(&p); err != nil {
		return nil, err
	}
	if ref.IsZero() {
		ref = ds.now()
	}
	w := weekend.Next(ref)

	start := time.Now()
	events, err := ds.eventsRepo.AggregateGeoEvents(ctx, WeekendPipeline(p, w))
	if err != nil {
		return nil, err
	}
	metrics.RecordDiscoveryQuery("weekend", len(events), time.Since(start))

	fc := &models.WeekendFeatureCollection{
		Type:         models.FeatureCollectionType,
		Features:     make([]*models.WeekendFeature, 0, len(events)),
		WeekendRange: models.WeekendRange{Start: w.Start, End: w.End},
	}
	for _, e := range events {
		fc.Features = append(fc.Features, models.NewWeekendFeature(e))
	}
	fc.TotalEvents = len(fc.Features)
	return fc, nil
}

func (ds *DiscoveryService) WeekendInfo(ref time.Time) weekend.Info {
	if ref.IsZero() {
		ref = ds.now()
	}
	return weekend.Describe(ref)
}

// Compound searches a date range with an optional category. With coordinates it runs nearest-first
// inside radius; without them it falls back to a plain date-ordered find.
func (ds *DiscoveryService) Compound(ctx context.Context, p CompoundParams) (*models.CompoundResult, error) {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return nil, errdef.NewBadRequest("start_date and end_date are required")
	}
	if p.EndDate.Before(p.StartDate) {
		return nil, errdef.NewBadRequest("end_date must not be before start_date")
	}
	if (p.Longitude == nil) != (p.Latitude == nil) {
		return nil, errdef.NewBadRequest("longitude and latitude must be supplied together")
	}
	limit, err := ds.limit(p.Limit)
	if err != nil {
		return nil, err
	}

	query := bson.D{{Key: "start_date", Value: bson.D{
		{Key: "$gte", Value: p.StartDate.UTC()},
		{Key: "$lte", Value: p.EndDate.UTC()},
	}}}
	if p.Category != "" {
		query = append(query, bson.E{Key: "category", Value: p.Category})
	}

	start := time.Now()
	if p.Longitude != nil {
		if err := models.ValidateLngLat(*p.Longitude, *p.Latitude); err != nil {
			return nil, err
		}
		if err := validateRadius(p.RadiusKm); err != nil {
			return nil, err
		}
		pipeline := mongo.Pipeline{
			geoNearStage(*p.Longitude, *p.Latitude, p.RadiusKm, query),
			bson.D{{Key: "$sort", Value: bson.D{{Key: "start_date", Value: 1}}}},
			bson.D{{Key: "$limit", Value: int64(limit)}},
		}
		found, err := ds.eventsRepo.AggregateGeoEvents(ctx, pipeline)
		if err != nil {
			return nil, err
		}
		events := make([]*models.CompoundEvent, 0, len(found))
		for _, e := range found {
			d := models.RoundDistance(e.Distance)
			events = append(events, &models.CompoundEvent{Event: &e.Event, Distance: &d})
		}
		metrics.RecordDiscoveryQuery("compound_geo", len(events), time.Since(start))
		return &models.CompoundResult{Mode: models.CompoundModeGeo, Events: events}, nil
	}

	filter := bson.M{}
	for _, e := range query {
		filter[e.Key] = e.Value
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "start_date", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit))

	found, err := ds.eventsRepo.FindEvents(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	events := make([]*models.CompoundEvent, 0, len(found))
	for _, e := range found {
		events = append(events, &models.CompoundEvent{Event: e})
	}
	metrics.RecordDiscoveryQuery("compound_date_range", len(events), time.Since(start))
	return &models.CompoundResult{Mode: models.CompoundModeDateRange, Events: events}, nil
}
