package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusReady      Status = "ready"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// MinPlayers is the minimum viable player count. A session becomes Ready once
// this many players have joined, and can only be started from Waiting or Ready.
const MinPlayers = 2

const DefaultMaxPlayers = 2

type ParticleType string

const (
	ParticlePhoton   ParticleType = "photon"
	ParticleElectron ParticleType = "electron"
	ParticleNeutrino ParticleType = "neutrino"
	ParticleQuark    ParticleType = "quark"
)

type Particle struct {
	ID       uuid.UUID    `json:"id"`
	Type     ParticleType `json:"type"`
	Position string       `json:"position"`
}

type Player struct {
	UserID             uuid.UUID  `json:"user_id"`
	DisplayName        string     `json:"display_name"`
	Role               Role       `json:"role"`
	Position           string     `json:"position"`
	CollectedParticles []Particle `json:"collected_particles"`
}

// Session is the full game state. It is persisted as a single self-describing
// blob - the event log included - and only ever mutated through the engine.
type Session struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Status     Status     `json:"status"`
	CreatorID  uuid.UUID  `json:"creator_id"`
	MaxPlayers int        `json:"max_players"`
	Board      string     `json:"board"`
	TurnIndex  int        `json:"turn_index"`
	Players    []Player   `json:"players"`
	Particles  []Particle `json:"particles"`
	Events     []Event    `json:"events"`
	WinnerID   *uuid.UUID `json:"winner_id,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewSession creates a Waiting session with the creator as its first member,
// holding the primary role, and the deterministic starting particle layout.
func NewSession(
	id uuid.UUID,
	creatorID uuid.UUID,
	creatorName string,
	name string,
	maxPlayers int,
	now time.Time,
) (Session, error) {
	if name == "" {
		return Session{}, fmt.Errorf("%w: session name is empty", ErrInvalidInput)
	}

	if maxPlayers == 0 {
		maxPlayers = DefaultMaxPlayers
	}

	if maxPlayers < MinPlayers {
		return Session{}, fmt.Errorf(
			"%w: max players %d is below the minimum of %d",
			ErrInvalidInput,
			maxPlayers,
			MinPlayers,
		)
	}

	creator := Player{
		UserID:             creatorID,
		DisplayName:        creatorName,
		Role:               NextRole(nil),
		Position:           StartLocation,
		CollectedParticles: []Particle{},
	}

	return Session{
		ID:         id,
		Name:       name,
		Status:     StatusWaiting,
		CreatorID:  creatorID,
		MaxPlayers: maxPlayers,
		Board:      DefaultBoard,
		Players:    []Player{creator},
		Particles:  startingParticles(),
		Events:     []Event{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Join appends the user as a new player and returns the assigned role. Once
// the minimum player count is met the session moves from Waiting to Ready.
func (s *Session) Join(userID uuid.UUID, displayName string, now time.Time) (Role, error) {
	if s.member(userID) != nil {
		return "", ErrAlreadyMember
	}

	if len(s.Players) >= s.MaxPlayers {
		return "", ErrSessionFull
	}

	role := NextRole(s.Players)

	s.Players = append(s.Players, Player{
		UserID:             userID,
		DisplayName:        displayName,
		Role:               role,
		Position:           StartLocation,
		CollectedParticles: []Particle{},
	})

	if s.Status == StatusWaiting && len(s.Players) >= MinPlayers {
		s.Status = StatusReady
	}

	return role, nil
}

// Start moves the session into InProgress. Only the creator may start, and
// only from Waiting or Ready.
func (s *Session) Start(requesterID uuid.UUID, now time.Time) error {
	if requesterID != s.CreatorID {
		return ErrForbidden
	}

	if s.Status != StatusWaiting && s.Status != StatusReady {
		return fmt.Errorf("%w: cannot start a session in status %q", ErrInvalidState, s.Status)
	}

	s.Status = StatusInProgress
	s.StartedAt = &now
	s.TurnIndex = 0

	starter := s.member(requesterID)
	s.Events = append(s.Events, Event{
		Type:       EventSessionStarted,
		Timestamp:  now,
		PlayerID:   &requesterID,
		PlayerName: starter.DisplayName,
	})

	return nil
}

func (s *Session) member(userID uuid.UUID) *Player {
	for i := range s.Players {
		if s.Players[i].UserID == userID {
			return &s.Players[i]
		}
	}
	return nil
}
