package outbound

import "time"

// MatchMetrics receives observations from the matching use cases.
type MatchMetrics interface {
	// RecordMatchRequest records one FindMatches call; outcome is "ok",
	// "invalid_profile", "catalog_error" or "empty".
	RecordMatchRequest(outcome string, candidates int, duration time.Duration)
	RecordMatchScore(score int)
	RecordCacheLookup(cache string, hit bool)
}
