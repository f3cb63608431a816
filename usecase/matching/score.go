package matching

import "github.com/swolemates/backend/domain"

// Scoring weights. The total is additive and intentionally unbounded: the
// goal term grows with every shared tag, capped in practice by the size of
// the goal vocabulary.
const (
	pointsPerSharedGoal     = 10
	pointsPerExperienceStep = 10
	pointsSchedule          = 20
	pointsGym               = 20
)

// Score computes the compatibility between two profiles. Pure function,
// symmetric for well-formed input.
func Score(a, b *domain.UserProfile) int {
	score := 0

	// Shared goals.
	bGoals := make(map[string]struct{}, len(b.Goals))
	for _, g := range b.Goals {
		bGoals[g] = struct{}{}
	}
	for _, g := range a.Goals {
		if _, ok := bGoals[g]; ok {
			score += pointsPerSharedGoal
		}
	}

	// Experience proximity: identical levels score 20, adjacent 10,
	// opposite ends 0. Unknown levels contribute nothing.
	if ordA, ordB := a.Experience.Ordinal(), b.Experience.Ordinal(); ordA >= 0 && ordB >= 0 {
		diff := ordA - ordB
		if diff < 0 {
			diff = -diff
		}
		score += (2 - diff) * pointsPerExperienceStep
	}

	// Schedule compatibility: equal windows or a flexible side on either end.
	if a.Schedule == b.Schedule || a.Schedule == domain.ScheduleFlexible || b.Schedule == domain.ScheduleFlexible {
		score += pointsSchedule
	}

	// Same home gym, exact string match. Two profiles that both left the
	// gym unset compare equal and take the points.
	if a.Gym == b.Gym {
		score += pointsGym
	}

	return score
}
