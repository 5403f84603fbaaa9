// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Storage Keys: The persisted key-value document layout.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "dublix-api"
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

// # Persisted Document Keys
//
// This layout is compatibility-bound: it mirrors what earlier releases wrote
// to device storage, so an upgraded install keeps its favorites, watch
// progress, comments, and guest identity.

const (
	// KeyFavorites holds the whole-set favorites document (JSON array of anime ids).
	KeyFavorites = "favorites"

	// KeyWatchPrefix prefixes one watch-progress document per anime id.
	KeyWatchPrefix = "watch-"

	// KeyComments holds the whole-collection comments document.
	KeyComments = "anime_comments"

	// KeyGuestUser holds the synthesized guest identity document.
	KeyGuestUser = "guest_user"

	// KeyUserProfiles holds the user id -> {username, avatar} attribution map.
	KeyUserProfiles = "user_profiles"
)

// # Catalog Cache Taxonomy

const (
	// CachePrefixCatalog prefixes catalog read-through cache entries in Redis.
	CachePrefixCatalog = "catalog:anime_list"

	// CachePrefixEpisodes prefixes per-title episode list cache entries.
	CachePrefixEpisodes = "catalog:episodes:"
)

// # Derived Views

const (
	// ContinueWatchingLimit is the default number of most-recent watch-progress
	// records surfaced by the Continue Watching view.
	ContinueWatchingLimit = 6

	// SuggestionsLimit is the number of catalog entries shown as suggestions
	// beside the player.
	SuggestionsLimit = 8
)

// # Guest Identity Defaults

const (
	// GuestIDPrefix prefixes every synthesized guest identity token.
	GuestIDPrefix = "guest_"

	// GuestDefaultUsername is the display name assigned at identity creation.
	GuestDefaultUsername = "Guest"

	// GuestDefaultEmail is a placeholder address; no mail is ever sent.
	GuestDefaultEmail = "guest@dublix.app"

	// GuestRole is the only role in the system.
	GuestRole = "user"

	// AnonymousUsername is used when attributing a comment whose author no
	// longer resolves in the profiles map.
	AnonymousUsername = "Anonymous"
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
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldStatus  = "status"
	FieldChecks  = "checks"
	FieldContent = "content"
	FieldSeason  = "season"
	FieldEpisode = "episode"
)
