package domain

import "time"

// Workout is a single logged training session.
type Workout struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Exercises []string  `json:"exercises,omitempty"`
	Duration  int       `json:"duration"` // minutes
	BuddyID   string    `json:"buddy_id,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Date      time.Time `json:"date"`
}

// ScheduledWorkoutStatus tracks the lifecycle of a planned session.
type ScheduledWorkoutStatus string

const (
	WorkoutPending   ScheduledWorkoutStatus = "pending"
	WorkoutConfirmed ScheduledWorkoutStatus = "confirmed"
	WorkoutCancelled ScheduledWorkoutStatus = "cancelled"
	WorkoutCompleted ScheduledWorkoutStatus = "completed"
)

// ScheduledWorkout is a training session planned with a matched buddy.
type ScheduledWorkout struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	BuddyID   string                 `json:"buddy_id"`
	Date      time.Time              `json:"date"`
	Time      string                 `json:"time"`
	Gym       string                 `json:"gym"`
	Type      string                 `json:"type,omitempty"`
	Notes     string                 `json:"notes,omitempty"`
	Status    ScheduledWorkoutStatus `json:"status"`
	CreatedAt time.Time              `json:"created_at"`
}

// ApplyWorkout folds a freshly logged workout into the owner's monthly
// stats and streak. A streak survives exactly one calendar day between
// sessions; a longer gap resets it to 1.
func (u *UserProfile) ApplyWorkout(at time.Time) {
	u.WorkoutsMonth++
	if u.LastWorkoutDate != nil {
		days := calendarDaysBetween(*u.LastWorkoutDate, at)
		switch {
		case days == 1:
			u.Streak++
		case days > 1:
			u.Streak = 1
		}
	} else {
		u.Streak = 1
	}
	t := at
	u.LastWorkoutDate = &t
}

func calendarDaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
