// Command seed warms the shared Redis cache with the station list, popular
// route searches and the schedules of the trains they return.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"railbook/internal/catalog"
	"railbook/internal/provider"
	"railbook/internal/search"
	"railbook/internal/shared/config"
	"railbook/internal/shared/constants"
	"railbook/internal/shared/database"
	"railbook/pkg/cache"
	"railbook/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

const defaultRoutes = "NDLS-MMCT,NDLS-MAS,MMCT-KOAA,NDLS-HWH,NDLS-BPL,NDLS-TVC,BCT-NDLS,SBC-NZM"

type route struct {
	From string
	To   string
}

// parseRoutes reads a comma separated list of FROM-TO station code pairs
func parseRoutes(raw string) ([]route, error) {
	var routes []route
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		from, to, ok := strings.Cut(part, "-")
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if !ok || from == "" || to == "" || from == to {
			return nil, fmt.Errorf("invalid route %q, expected FROM-TO", part)
		}
		routes = append(routes, route{From: from, To: to})
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("no routes given")
	}
	return routes, nil
}

type Summary struct {
	Stations  int
	Routes    int
	Trains    int
	Schedules int
}

type Seeder struct {
	cache   cache.Service
	catalog catalog.Service
	engine  *search.Engine
	log     *logger.Logger
}

func NewSeeder(p provider.Provider, c cache.Service, cfg *config.Config) *Seeder {
	cat := catalog.NewService(p, c, cfg.Redis.StationsTTL)
	return &Seeder{
		cache:   c,
		catalog: cat,
		engine:  search.NewEngine(p, cat, c, cfg.Redis.SearchTTL, nil),
		log:     logger.GetDefault(),
	}
}

// SeedAll loads stations, runs every route search for date and warms the
// schedules of all numbered trains found
func (s *Seeder) SeedAll(ctx context.Context, routes []route, date string) (Summary, error) {
	summary := Summary{Stations: len(s.catalog.GetStations(ctx))}

	var (
		mu      sync.Mutex
		numbers = make(map[string]struct{})
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, r := range routes {
		g.Go(func() error {
			trains, err := s.engine.Search(gctx, r.From, r.To, date)
			if err != nil {
				return fmt.Errorf("search %s-%s: %w", r.From, r.To, err)
			}
			s.log.Info("Route warmed", "from", r.From, "to", r.To, "trains", len(trains))

			mu.Lock()
			defer mu.Unlock()
			summary.Routes++
			for _, t := range trains {
				summary.Trains++
				if t.Number != "" {
					numbers[t.Number] = struct{}{}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}

	list := make([]string, 0, len(numbers))
	for n := range numbers {
		list = append(list, n)
	}
	if err := s.catalog.WarmSchedules(ctx, list); err != nil {
		return summary, fmt.Errorf("warm schedules: %w", err)
	}
	summary.Schedules = len(list)
	return summary, nil
}

// Flush drops the cached station list, searches and schedules so the next
// SeedAll refetches everything from the provider
func (s *Seeder) Flush(ctx context.Context) error {
	if err := s.cache.Delete(ctx, constants.CACHE_KEY_STATIONS_ALL); err != nil {
		return err
	}
	for _, pattern := range []string{
		constants.CACHE_KEY_TRAINS_SEARCH + ":*",
		constants.CACHE_KEY_TRAIN_SCHEDULE + "*",
	} {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			return err
		}
	}
	s.log.Info("Catalog cache flushed")
	return nil
}

func main() {
	if err := run(); err != nil {
		logger.GetDefault().Error("Cache seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	cfg := config.Load()
	appLogger := logger.NewWithWriter(os.Stdout, cfg.LogLevel)
	logger.SetDefault(appLogger)

	var routesFlag, dateFlag string
	var timeout time.Duration
	var flush bool
	flagSet := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	flagSet.StringVar(&routesFlag, "routes", defaultRoutes, "comma separated FROM-TO station code pairs to search")
	flagSet.StringVar(&dateFlag, "date", "", "travel date to search (default: tomorrow)")
	flagSet.DurationVar(&timeout, "timeout", 2*time.Minute, "overall time limit")
	flagSet.BoolVar(&flush, "flush", false, "drop cached catalog entries before seeding")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	routes, err := parseRoutes(routesFlag)
	if err != nil {
		return err
	}
	if dateFlag == "" {
		dateFlag = time.Now().AddDate(0, 0, 1).Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, dateFlag); err != nil {
		return fmt.Errorf("invalid --date %q: %w", dateFlag, err)
	}

	db := database.InitDB(cfg)
	defer db.Close()
	if db.GetRedis() == nil {
		return fmt.Errorf("redis is not available; enable REDIS_ENABLED to seed the shared cache")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	appLogger.Info("Seeding cache", "routes", len(routes), "date", dateFlag, "remote_provider", cfg.UsesRemoteProvider())
	seeder := NewSeeder(provider.New(cfg.Provider), cache.NewService(db.GetRedis()), cfg)
	if flush {
		if err := seeder.Flush(ctx); err != nil {
			return fmt.Errorf("flush cache: %w", err)
		}
	}
	summary, err := seeder.SeedAll(ctx, routes, dateFlag)
	if err != nil {
		return err
	}

	appLogger.Info("Cache seeded",
		"stations", summary.Stations,
		"routes", summary.Routes,
		"trains", summary.Trains,
		"schedules", summary.Schedules,
	)
	return nil
}
