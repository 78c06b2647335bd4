package domain

import "time"

// ActivityAction names what a user did to their session.
type ActivityAction string

const (
	ActivityLogin         ActivityAction = "login"
	ActivityLoginRejected ActivityAction = "login_rejected"
	ActivityLogout        ActivityAction = "logout"
)

// Activity is one entry of the user activity trail.
type Activity struct {
	ID         string         `json:"id" bson:"_id"`
	UserID     string         `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Email      string         `json:"email" bson:"email"`
	Role       Role           `json:"role,omitempty" bson:"role,omitempty"`
	Action     ActivityAction `json:"action" bson:"action"`
	OccurredAt time.Time      `json:"occurred_at" bson:"occurred_at"`
}
