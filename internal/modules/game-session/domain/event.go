package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventSessionStarted    EventType = "session_started"
	EventParticleCollected EventType = "particle_collected"
	EventGateUsed          EventType = "gate_used"
	EventTurnEnded         EventType = "turn_ended"
	EventSessionCompleted  EventType = "session_completed"
)

// Event is a write-once entry in the session's append-only log. Payload
// fields are type-specific and omitted when not set.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	PlayerID   *uuid.UUID `json:"player_id,omitempty"`
	PlayerName string     `json:"player_name,omitempty"`

	// particle_collected
	ParticleType ParticleType `json:"particle_type,omitempty"`
	Location     string       `json:"location,omitempty"`

	// gate_used
	TargetID string `json:"target_id,omitempty"`

	// turn_ended
	NextPlayer string `json:"next_player,omitempty"`

	// session_completed
	WinnerID   *uuid.UUID `json:"winner_id,omitempty"`
	WinnerName string     `json:"winner_name,omitempty"`
}
