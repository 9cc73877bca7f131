package models

import "time"

type Action string

const (
	ActionSignIn  Action = "sign-in"
	ActionSignOut Action = "sign-out"
)

// Title is the capitalized form used in user-facing messages.
func (a Action) Title() string {
	switch a {
	case ActionSignIn:
		return "Sign-in"
	case ActionSignOut:
		return "Sign-out"
	default:
		return string(a)
	}
}

const (
	PunchSucceeded = "success"
	PunchFailed    = "failed"
)

type Punch struct {
	ID        int64     `json:"id,omitempty"`
	Action    Action    `json:"action"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
