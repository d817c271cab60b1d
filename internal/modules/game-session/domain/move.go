package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionMove           Action = "move"
	ActionUseQuantumGate Action = "use_quantum_gate"
	ActionEndTurn        Action = "end_turn"
)

// Move is a closed set of actions. Each variant statically declares what it
// requires of Target; anything outside the set is rejected as invalid input.
type Move struct {
	Action Action `json:"action"`

	// Target is a board location for ActionMove and another player's
	// identifier for ActionUseQuantumGate. Unused by ActionEndTurn.
	Target string `json:"target,omitempty"`
}

func (m Move) Validate() error {
	switch m.Action {
	case ActionMove:
		if m.Target == "" {
			return fmt.Errorf("%w: action %q requires a target location", ErrInvalidInput, m.Action)
		}
		if !ValidLocation(m.Target) {
			return fmt.Errorf("%w: unknown location %q", ErrInvalidInput, m.Target)
		}
	case ActionUseQuantumGate:
		if m.Target == "" {
			return fmt.Errorf("%w: action %q requires a target player", ErrInvalidInput, m.Action)
		}
	case ActionEndTurn:
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidInput, m.Action)
	}

	return nil
}

// ApplyMove processes a single move by a member and then evaluates the win
// condition, regardless of the action taken. The session is persisted by the
// caller whether or not the game completed.
func (s *Session) ApplyMove(userID uuid.UUID, move Move, now time.Time) error {
	player := s.member(userID)
	if player == nil {
		return fmt.Errorf("%w: user is not a member", ErrNotFound)
	}

	if s.Status != StatusInProgress {
		return fmt.Errorf("%w: session is in status %q", ErrInvalidState, s.Status)
	}

	if err := move.Validate(); err != nil {
		return err
	}

	switch move.Action {
	case ActionMove:
		s.applyMovement(player, move.Target, now)
	case ActionUseQuantumGate:
		s.applyQuantumGate(player, move.Target, now)
	case ActionEndTurn:
		s.applyEndTurn(player, now)
	}

	s.evaluateWin(player, now)

	return nil
}

// applyMovement repositions the player and collects at most one particle from
// the target location - the first one in stable order, if several share it.
// Plain movement without a pickup emits no event.
func (s *Session) applyMovement(player *Player, target string, now time.Time) {
	player.Position = target

	for i, particle := range s.Particles {
		if particle.Position != target {
			continue
		}

		s.Particles = append(s.Particles[:i], s.Particles[i+1:]...)
		player.CollectedParticles = append(player.CollectedParticles, particle)

		s.Events = append(s.Events, Event{
			Type:         EventParticleCollected,
			Timestamp:    now,
			PlayerID:     &player.UserID,
			PlayerName:   player.DisplayName,
			ParticleType: particle.Type,
			Location:     target,
		})
		break
	}
}

// applyQuantumGate has no mechanical effect beyond the log entry. Callers
// must not assume any state change.
func (s *Session) applyQuantumGate(player *Player, target string, now time.Time) {
	s.Events = append(s.Events, Event{
		Type:       EventGateUsed,
		Timestamp:  now,
		PlayerID:   &player.UserID,
		PlayerName: player.DisplayName,
		TargetID:   target,
	})
}

// applyEndTurn advances the turn cyclically. Any member may end any turn -
// turn ownership is deliberately not enforced.
func (s *Session) applyEndTurn(player *Player, now time.Time) {
	s.TurnIndex = (s.TurnIndex + 1) % len(s.Players)
	next := s.Players[s.TurnIndex]

	s.Events = append(s.Events, Event{
		Type:       EventTurnEnded,
		Timestamp:  now,
		PlayerID:   &player.UserID,
		PlayerName: player.DisplayName,
		NextPlayer: next.DisplayName,
	})
}
