package events

import "context"

// Auth lifecycle event types.
const (
	UserRegistered = "user.registered"
	UserLoggedIn   = "user.logged_in"
)

// AuthChannel is the channel auth lifecycle events are published on.
const AuthChannel = "auth.events"

type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp int64       `json:"timestamp"`
}

// UserPayload identifies the user an auth event is about.
type UserPayload struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type Handler func(ctx context.Context, event Event) error

type Publisher interface {
	Publish(ctx context.Context, channel string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, channel string, handler Handler) error
}

type Broker interface {
	Publisher
	Subscriber
}
