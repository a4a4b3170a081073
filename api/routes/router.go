// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"railbook/internal/bookings"
	"railbook/internal/catalog"
	"railbook/internal/fares"
	"railbook/internal/notifications"
	"railbook/internal/provider"
	"railbook/internal/search"
	"railbook/internal/shared/config"
	"railbook/internal/shared/database"
	"railbook/internal/shared/middleware"
	"railbook/pkg/cache"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "railbook/docs"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	cache     cache.Service
	provider  provider.Provider
	catalog   catalog.Service
	inventory *fares.Inventory
	ledger    *bookings.Ledger
	publisher notifications.Publisher
}

// NewRouter builds the domain graph shared by every route group. The
// ledger is created once here and lives for the whole process.
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher) *Router {
	r := &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}

	if client := db.GetRedis(); client != nil {
		r.cache = cache.NewService(client)
	} else {
		r.cache = cache.NewMemoryService()
	}

	r.provider = provider.New(cfg.Provider)
	r.catalog = catalog.NewService(r.provider, r.cache, cfg.Redis.StationsTTL)

	opts := []bookings.LedgerOption{bookings.WithMaxPNRAttempts(cfg.Booking.MaxPNRAttempts)}
	if cfg.Booking.TrackSeats {
		r.inventory = fares.NewInventory()
		opts = append(opts, bookings.WithInventory(r.inventory))
	}
	r.ledger = bookings.NewLedger(r.catalog, opts...)
	return r
}

// Catalog exposes the catalog service, used by the cache warmer
func (r *Router) Catalog() catalog.Service {
	return r.catalog
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupCatalogRoutes(api)
		r.setupSearchRoutes(api)
		r.setupFareRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// Redis is optional; an unreachable configured instance is still reported
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "railbook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "railbook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "operational",
			"api_version":     r.config.APIVersion,
			"remote_provider": r.config.UsesRemoteProvider(),
			"seat_tracking":   r.inventory != nil,
			"bookings":        r.ledger.Len(),
			"timestamp":       time.Now(),
		})
	})
}

// setupCatalogRoutes configures station and train detail routes
func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	catalog.SetupCatalogRoutes(rg, catalog.NewController(r.catalog))
}

// setupSearchRoutes configures train search
func (r *Router) setupSearchRoutes(rg *gin.RouterGroup) {
	var overlay search.AvailabilityOverlay
	if r.inventory != nil {
		overlay = r.inventory
	}
	engine := search.NewEngine(r.provider, r.catalog, r.cache, r.config.Redis.SearchTTL, overlay)
	search.SetupSearchRoutes(rg, search.NewController(engine))
}

// setupFareRoutes configures fare quotes
func (r *Router) setupFareRoutes(rg *gin.RouterGroup) {
	fares.SetupFareRoutes(rg, fares.NewController(r.catalog, r.inventory))
}

// setupBookingRoutes configures booking management routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingService := bookings.NewService(r.ledger, r.publisher)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController, middleware.JWTAuthWithConfig(r.config))
}
