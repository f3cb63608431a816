package domain

// SwipeAction is a like/pass decision submitted by a user.
type SwipeAction string

const (
	ActionLike SwipeAction = "like"
	ActionPass SwipeAction = "pass"
)

func (a SwipeAction) Valid() bool {
	return a == ActionLike || a == ActionPass
}

// SwipeResult reports the outcome of processing a swipe decision.
type SwipeResult struct {
	Matched     bool         `json:"matched"`
	MatchedUser *UserProfile `json:"user,omitempty"`
}

// RankedCandidate is a potential partner scored against the requester.
// Computed fresh per request, never persisted.
type RankedCandidate struct {
	User               UserProfile `json:"user"`
	CompatibilityScore int         `json:"compatibility_score"`
	DistanceKm         int         `json:"distance_km"`
}
