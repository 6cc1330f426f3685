package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = time.Hour

// WeatherCachePrefix is the prefix used for Redis weather cache keys.
const WeatherCachePrefix = "weather:"

// WeatherCacheTTL is the time-to-live for cached weather payloads.
const WeatherCacheTTL = 30 * time.Minute
