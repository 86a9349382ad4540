// Copyright (c) 2026 Hinário. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Catalog Bounds: Length limits for hymn numbers, names, and submitters.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "hinario-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Catalog Bounds

const (
	// MaxNumberLen bounds the stored hymn number (including the provenance prefix).
	MaxNumberLen = 10

	// MaxNameLen bounds the persisted hymn name.
	MaxNameLen = 200

	// MaxRowNameLen bounds the name a picker row accepts. The row editor is
	// narrower than the persisted bound: the submission form is the place for
	// long titles, the row is for quick matching.
	MaxRowNameLen = 60

	// MaxRowNumberLen bounds the number a picker row accepts.
	MaxRowNumberLen = 5

	// MaxSubmitterLen bounds the optional submitter attribution.
	MaxSubmitterLen = 100

	// MinCreationNameLen is the shortest trimmed name for which a picker row
	// offers the inline "create new hymn" affordance.
	MinCreationNameLen = 3
)

// # Numbering

const (
	// NumberPrefix is the literal provenance prefix for community-submitted
	// hymns ("A" for the public Hinário A collection).
	NumberPrefix = "A"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaCore = "core"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisKeyPublicHymnList caches the full public hymn listing.
	RedisKeyPublicHymnList = "hymn:public_list"

	// PublicHymnListTTL bounds staleness of the cached listing. Creations
	// invalidate the key eagerly, so the TTL only covers out-of-band writes.
	PublicHymnListTTL = 5 * time.Minute
)
