package profile

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventUpserted EventType = "profile.upserted"
	EventDeleted  EventType = "profile.deleted"
)

// Event is published after a profile write has been committed.
type Event struct {
	Type           EventType `json:"event_type"`
	OwnerID        uuid.UUID `json:"owner_id"`
	GithubUsername string    `json:"github_username,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
