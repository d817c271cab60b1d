package domain

import "time"

// WinConditionMet reports whether all particles have been collected and some
// player is back at the start location holding at least one particle. The
// qualifying player does not need to be the one who collected the last
// particle.
func WinConditionMet(s Session) bool {
	if len(s.Particles) > 0 {
		return false
	}

	for _, p := range s.Players {
		if p.Position == StartLocation && len(p.CollectedParticles) > 0 {
			return true
		}
	}

	return false
}

// evaluateWin completes the session when the win condition holds. The
// recorded winner is the mover whose action triggered the evaluation, not
// necessarily the qualifying player.
func (s *Session) evaluateWin(mover *Player, now time.Time) {
	if !WinConditionMet(*s) {
		return
	}

	winnerID := mover.UserID

	s.Status = StatusCompleted
	s.WinnerID = &winnerID
	s.CompletedAt = &now

	s.Events = append(s.Events, Event{
		Type:       EventSessionCompleted,
		Timestamp:  now,
		WinnerID:   &winnerID,
		WinnerName: mover.DisplayName,
	})
}
