package catalog

import (
	"context"
	"fmt"
	"time"

	"railbook/internal/provider"
	"railbook/internal/shared/constants"
	"railbook/pkg/cache"
	"railbook/pkg/logger"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// scheduleWarmConcurrency bounds parallel schedule fetches when warming
const scheduleWarmConcurrency = 4

// Service owns the station list and the train registry
type Service interface {
	// GetStations never fails; provider errors yield the fallback list
	GetStations(ctx context.Context) []Station
	// GetTrainDetails returns nil without error for unknown ids
	GetTrainDetails(ctx context.Context, id int) (*Train, error)
	Register(trains ...Train)
	Lookup(id int) (*Train, bool)
	// FallbackTrains is the static train list normalized against the
	// fallback stations
	FallbackTrains() []Train
	WarmSchedules(ctx context.Context, trainNumbers []string) error
}

type service struct {
	provider    provider.Provider
	cache       cache.Service
	registry    *Registry
	stationsTTL time.Duration
	group       singleflight.Group
	log         *logger.Logger

	fallbackStations []Station
	fallbackTrains   []Train
}

// NewService builds the catalog. The static fallback trains are registered
// up front so they resolve by id before any search has run.
func NewService(p provider.Provider, c cache.Service, stationsTTL time.Duration) Service {
	if stationsTTL <= 0 {
		stationsTTL = constants.TTL_STATIC_LONG
	}
	fallbackStations := NormalizeStations(provider.FallbackStations())
	s := &service{
		provider:         p,
		cache:            c,
		registry:         NewRegistry(),
		stationsTTL:      stationsTTL,
		log:              logger.GetDefault(),
		fallbackStations: fallbackStations,
		fallbackTrains:   NormalizeTrains(provider.FallbackTrains(), fallbackStations),
	}
	s.registry.Register(s.fallbackTrains...)
	return s
}

func (s *service) GetStations(ctx context.Context) []Station {
	v, err, _ := s.group.Do(constants.CACHE_KEY_STATIONS_ALL, func() (interface{}, error) {
		var raw []provider.IRStation
		err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_STATIONS_ALL, s.stationsTTL, func() (interface{}, error) {
			stations, err := s.provider.GetAllStations(ctx)
			if err != nil {
				return nil, err
			}
			if len(stations) == 0 {
				return nil, fmt.Errorf("provider returned no stations")
			}
			return stations, nil
		}, &raw)
		if err != nil {
			return nil, err
		}
		return NormalizeStations(raw), nil
	})
	if err != nil {
		s.log.LogProviderFallback(ctx, "get stations", err)
		return s.copyFallbackStations()
	}
	stations := v.([]Station)
	out := make([]Station, len(stations))
	copy(out, stations)
	return out
}

func (s *service) GetTrainDetails(ctx context.Context, id int) (*Train, error) {
	train, ok := s.registry.Lookup(id)
	if !ok {
		return nil, nil
	}
	if train.Number == "" {
		return train, nil
	}

	var (
		stations []Station
		schedule *provider.IRTrainSchedule
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stations = s.GetStations(gctx)
		return nil
	})
	g.Go(func() error {
		sched, err := s.getSchedule(gctx, train.Number)
		if err != nil {
			s.log.LogProviderFallback(ctx, "get train schedule", err)
			return nil
		}
		schedule = sched
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	train.Stops = NormalizeStops(schedule, stations)
	return train, nil
}

func (s *service) getSchedule(ctx context.Context, trainNumber string) (*provider.IRTrainSchedule, error) {
	var schedule *provider.IRTrainSchedule
	key := constants.BuildTrainScheduleKey(trainNumber)
	err := s.cache.GetOrSet(ctx, key, constants.TTL_SEMI_STATIC, func() (interface{}, error) {
		return s.provider.GetTrainSchedule(ctx, trainNumber)
	}, &schedule)
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

// WarmSchedules loads the schedules of the given trains into the cache
func (s *service) WarmSchedules(ctx context.Context, trainNumbers []string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scheduleWarmConcurrency)
	for _, number := range trainNumbers {
		if number == "" {
			continue
		}
		g.Go(func() error {
			if _, err := s.getSchedule(gctx, number); err != nil {
				return fmt.Errorf("warm schedule %s: %w", number, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *service) Register(trains ...Train) {
	s.registry.Register(trains...)
}

func (s *service) Lookup(id int) (*Train, bool) {
	return s.registry.Lookup(id)
}

func (s *service) FallbackTrains() []Train {
	out := make([]Train, len(s.fallbackTrains))
	for i := range s.fallbackTrains {
		out[i] = *s.fallbackTrains[i].Clone()
	}
	return out
}

func (s *service) copyFallbackStations() []Station {
	out := make([]Station, len(s.fallbackStations))
	copy(out, s.fallbackStations)
	return out
}
