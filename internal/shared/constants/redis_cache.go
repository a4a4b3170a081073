package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// Pattern: railbook:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_LONG   = 24 * time.Hour  // station list
	TTL_SEMI_STATIC   = 1 * time.Hour   // train schedules
	TTL_DYNAMIC_SHORT = 5 * time.Minute // search results carry seat snapshots
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "railbook"
)

// ================== CATALOG MODULE ==================

const (
	CACHE_KEY_STATIONS_ALL   = CACHE_PREFIX + ":catalog:stations:all"
	CACHE_KEY_TRAINS_SEARCH  = CACHE_PREFIX + ":catalog:trains:search"   // + :from:X:to:Y:date:Z
	CACHE_KEY_TRAIN_SCHEDULE = CACHE_PREFIX + ":catalog:trains:schedule:" // + train-number
)

// ================== RATE LIMIT MODULE ==================

const (
	RATELIMIT_KEY_PREFIX = CACHE_PREFIX + ":ratelimit"
)

// ================== KEY BUILDERS ==================

// BuildTrainSearchKey builds the cache key for a search triple
func BuildTrainSearchKey(from, to, date string) string {
	return fmt.Sprintf("%s:from:%s:to:%s:date:%s", CACHE_KEY_TRAINS_SEARCH, from, to, date)
}

// BuildTrainScheduleKey builds the cache key for a train's schedule
func BuildTrainScheduleKey(trainNumber string) string {
	return CACHE_KEY_TRAIN_SCHEDULE + trainNumber
}

// BuildRateLimitKey builds the limiter key for a client and route class
func BuildRateLimitKey(clientIP, limitType string) string {
	return fmt.Sprintf("%s:%s:%s", RATELIMIT_KEY_PREFIX, clientIP, limitType)
}
