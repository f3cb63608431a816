package domain

import "time"

// ExperienceLevel is the self-reported training experience of a user.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "Beginner"
	ExperienceIntermediate ExperienceLevel = "Intermediate"
	ExperienceAdvanced     ExperienceLevel = "Advanced"
)

// Ordinal maps the experience level onto 0..2. Unknown values map to -1.
func (e ExperienceLevel) Ordinal() int {
	switch e {
	case ExperienceBeginner:
		return 0
	case ExperienceIntermediate:
		return 1
	case ExperienceAdvanced:
		return 2
	default:
		return -1
	}
}

func (e ExperienceLevel) Valid() bool {
	return e.Ordinal() >= 0
}

// Schedule is the preferred training window of a user.
type Schedule string

const (
	ScheduleMorning   Schedule = "Morning"
	ScheduleAfternoon Schedule = "Afternoon"
	ScheduleEvening   Schedule = "Evening"
	ScheduleFlexible  Schedule = "Flexible"
)

func (s Schedule) Valid() bool {
	switch s {
	case ScheduleMorning, ScheduleAfternoon, ScheduleEvening, ScheduleFlexible:
		return true
	}
	return false
}

// Goals is the fixed vocabulary of fitness goal tags.
var Goals = []string{
	"Build Muscle",
	"Weight Loss",
	"Strength",
	"Cardio",
	"Powerlifting",
	"CrossFit",
	"General Fitness",
	"Conditioning",
}

// ValidGoal reports whether the tag belongs to the goal vocabulary.
func ValidGoal(tag string) bool {
	for _, g := range Goals {
		if g == tag {
			return true
		}
	}
	return false
}

// UserProfile represents a member of the platform together with the
// relationship state the matching engine maintains for them.
type UserProfile struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email,omitempty"`
	Age             int             `json:"age"`
	ProfilePic      string          `json:"profile_pic,omitempty"`
	Bio             string          `json:"bio,omitempty"`
	Experience      ExperienceLevel `json:"experience"`
	Goals           []string        `json:"goals"`
	Schedule        Schedule        `json:"schedule"`
	Gym             string          `json:"gym"`
	Location        Point           `json:"location"`
	City            string          `json:"city,omitempty"`
	WorkoutsMonth   int             `json:"workouts_this_month"`
	Streak          int             `json:"streak"`
	LastWorkoutDate *time.Time      `json:"last_workout_date,omitempty"`

	// Relationship sets. Insertion-ordered, unique. Mutate only through
	// the methods below so uniqueness holds.
	LikedUsers  []string `json:"liked_users,omitempty"`
	PassedUsers []string `json:"passed_users,omitempty"`
	Matches     []string `json:"matches,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Like records a like decision. It returns false when the target was
// already liked, making repeated swipes idempotent.
func (u *UserProfile) Like(targetID string) bool {
	added, set := appendUnique(u.LikedUsers, targetID)
	u.LikedUsers = set
	return added
}

// Pass records a pass decision with the same idempotence as Like.
func (u *UserProfile) Pass(targetID string) bool {
	added, set := appendUnique(u.PassedUsers, targetID)
	u.PassedUsers = set
	return added
}

// AddMatch records a mutual match edge endpoint.
func (u *UserProfile) AddMatch(targetID string) bool {
	added, set := appendUnique(u.Matches, targetID)
	u.Matches = set
	return added
}

func (u *UserProfile) HasLiked(targetID string) bool {
	return contains(u.LikedUsers, targetID)
}

func (u *UserProfile) IsMatchedWith(targetID string) bool {
	return contains(u.Matches, targetID)
}

// ExcludedIDs returns every user the owner must never see as a candidate
// again: everyone already liked, passed or matched, plus the owner itself.
func (u *UserProfile) ExcludedIDs() []string {
	out := make([]string, 0, len(u.LikedUsers)+len(u.PassedUsers)+len(u.Matches)+1)
	out = append(out, u.ID)
	for _, set := range [][]string{u.LikedUsers, u.PassedUsers, u.Matches} {
		for _, id := range set {
			_, out = appendUnique(out, id)
		}
	}
	return out
}

// Sanitized returns a copy safe to hand to other users: contact details
// and relationship sets are stripped.
func (u *UserProfile) Sanitized() UserProfile {
	out := *u
	out.Email = ""
	out.LikedUsers = nil
	out.PassedUsers = nil
	out.Matches = nil
	return out
}

func appendUnique(set []string, id string) (bool, []string) {
	if id == "" || contains(set, id) {
		return false, set
	}
	return true, append(set, id)
}

func contains(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}
