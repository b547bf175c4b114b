// cmd/veritas/constants.go
package main

import "time"

// VERSION is the current bot version
const VERSION = "1.2.0"

// Embed colors per verdict
const (
	ColorTrue       = 0x2ECC71 // green
	ColorFalse      = 0xE74C3C // red
	ColorMisleading = 0xE67E22 // orange
	ColorOther      = 0x95A5A6 // gray
	ColorInfo       = 0x7289DA // blurple, informational embeds
)

// Pagination limits
const (
	PageContentLimit = 1000 // characters per page
	MaxWikiSummaries = 3    // summaries picked per encyclopedia lookup
	MaxRelatedLinks  = 3    // related-coverage headlines per result
)

// Button custom IDs for pagination controls
const (
	ButtonIDPrev  = "factcheck_prev"
	ButtonIDNext  = "factcheck_next"
	ButtonIDFirst = "factcheck_first"
)

// Permission levels
const (
	PermLevelEveryone = 0
	PermLevelAdmin    = 1
	PermLevelOwner    = 2
)

// Default timings, overridable via environment
const (
	DefaultCooldown    = 10 * time.Second
	DefaultSessionTTL  = 120 * time.Second
	DefaultHTTPTimeout = 12 * time.Second
)
