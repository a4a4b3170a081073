package search

import (
	"context"
	"time"

	"railbook/internal/catalog"
	"railbook/internal/provider"
	"railbook/internal/shared/apperror"
	"railbook/internal/shared/constants"
	"railbook/pkg/cache"
	"railbook/pkg/logger"
)

// AvailabilityOverlay replaces snapshot seat counts with tracked ones
type AvailabilityOverlay interface {
	Overlay(train *catalog.Train)
}

// Engine answers route searches over the normalized catalog
type Engine struct {
	provider provider.Provider
	catalog  catalog.Service
	cache    cache.Service
	ttl      time.Duration
	overlay  AvailabilityOverlay
	log      *logger.Logger
}

// NewEngine creates a search engine. overlay may be nil.
func NewEngine(p provider.Provider, cat catalog.Service, c cache.Service, ttl time.Duration, overlay AvailabilityOverlay) *Engine {
	if ttl <= 0 {
		ttl = constants.TTL_DYNAMIC_SHORT
	}
	return &Engine{
		provider: p,
		catalog:  cat,
		cache:    c,
		ttl:      ttl,
		overlay:  overlay,
		log:      logger.GetDefault(),
	}
}

// Search returns the trains running from one station code to another. The
// date is forwarded to the provider only. Provider failures fall back to
// the static train list; a ProviderError is returned only once ctx is done.
// Every returned train is registered in the catalog.
func (e *Engine) Search(ctx context.Context, from, to, date string) ([]catalog.Train, error) {
	var trains []catalog.Train

	raw, err := e.fetch(ctx, from, to, date)
	switch {
	case err == nil:
		trains = catalog.NormalizeTrains(raw, e.catalog.GetStations(ctx))
	case ctx.Err() != nil:
		return nil, apperror.NewProvider("search trains", err)
	default:
		e.log.LogProviderFallback(ctx, "search trains", err)
		trains = e.catalog.FallbackTrains()
	}

	matches := Filter(trains, from, to)
	e.catalog.Register(matches...)

	if e.overlay != nil {
		for i := range matches {
			e.overlay.Overlay(&matches[i])
		}
	}
	return matches, nil
}

func (e *Engine) fetch(ctx context.Context, from, to, date string) ([]provider.IRTrain, error) {
	var raw []provider.IRTrain
	key := constants.BuildTrainSearchKey(from, to, date)
	err := e.cache.GetOrSet(ctx, key, e.ttl, func() (interface{}, error) {
		return e.provider.SearchTrains(ctx, from, to, date)
	}, &raw)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// Filter keeps trains whose resolved origin and destination codes equal
// from and to exactly. The result is never nil.
func Filter(trains []catalog.Train, from, to string) []catalog.Train {
	matches := make([]catalog.Train, 0, len(trains))
	for i := range trains {
		if trains[i].SourceCode() == from && trains[i].DestinationCode() == to {
			matches = append(matches, trains[i])
		}
	}
	return matches
}
