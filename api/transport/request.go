package transport

// PointPayload carries geographic coordinates in request bodies.
type PointPayload struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

type ProfileUpdateRequest struct {
	Name       string        `json:"name"`
	Age        int           `json:"age"`
	ProfilePic string        `json:"profile_pic"`
	Bio        string        `json:"bio"`
	Experience string        `json:"experience"`
	Goals      []string      `json:"goals"`
	Schedule   string        `json:"schedule"`
	Gym        string        `json:"gym"`
	Location   *PointPayload `json:"location"`
	City       string        `json:"city"`
}

type SwipeRequest struct {
	TargetUserID string `json:"target_user_id"`
	Action       string `json:"action"`
}

type MessageRequest struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

type WorkoutRequest struct {
	Type      string   `json:"type"`
	Exercises []string `json:"exercises"`
	Duration  int      `json:"duration"`
	BuddyID   string   `json:"buddy_id"`
	Notes     string   `json:"notes"`
	Date      string   `json:"date"`
}

type ScheduleWorkoutRequest struct {
	BuddyID string `json:"buddy_id"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Gym     string `json:"gym"`
	Type    string `json:"type"`
	Notes   string `json:"notes"`
}

type AuthLoginRequest struct {
	UserID string `json:"user_id"`
	TTL    int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}
