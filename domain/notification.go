package domain

import "time"

// NotificationType classifies in-app notifications.
type NotificationType string

const (
	NotificationMatch   NotificationType = "match"
	NotificationMessage NotificationType = "message"
	NotificationWorkout NotificationType = "workout"
)

// Notification is an in-app event addressed to a single user. Delivery is
// best-effort: matches, messages and scheduled workouts stay valid even
// when the notification never arrives.
type Notification struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Type      NotificationType  `json:"type"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	Read      bool              `json:"read"`
	CreatedAt time.Time         `json:"created_at"`
}
