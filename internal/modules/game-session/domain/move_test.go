package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func inProgressSession(t *testing.T, playerCount int) Session {
	t.Helper()

	session, creatorID := newTestSession(t, 4)
	for i := 1; i < playerCount; i++ {
		_, err := session.Join(uuid.New(), "player", time.Now())
		require.NoError(t, err)
	}

	require.NoError(t, session.Start(creatorID, time.Now()))
	return session
}

func Test_Move_Collects_Exactly_One_Particle_At_Target(t *testing.T) {
	// Arrange
	session := inProgressSession(t, 2)
	mover := session.Players[0].UserID

	target := session.Particles[0].Position
	particleID := session.Particles[0].ID
	before := len(session.Particles)

	// Act
	err := session.ApplyMove(mover, Move{Action: ActionMove, Target: target}, time.Now())

	// Assert
	require.NoError(t, err)
	require.Equal(t, target, session.Players[0].Position)
	require.Len(t, session.Particles, before-1)
	require.Len(t, session.Players[0].CollectedParticles, 1)
	require.Equal(t, particleID, session.Players[0].CollectedParticles[0].ID)

	require.Len(t, session.Events, 2) // session_started + particle_collected
	require.Equal(t, EventParticleCollected, session.Events[1].Type)
	require.Equal(t, target, session.Events[1].Location)
}

func Test_Move_Collects_First_Particle_When_Several_Share_Location(t *testing.T) {
	// Arrange
	session := inProgressSession(t, 2)
	mover := session.Players[0].UserID

	first := Particle{ID: uuid.New(), Type: ParticlePhoton, Position: "sector_c"}
	second := Particle{ID: uuid.New(), Type: ParticleQuark, Position: "sector_c"}
	session.Particles = []Particle{first, second}

	// Act
	err := session.ApplyMove(mover, Move{Action: ActionMove, Target: "sector_c"}, time.Now())

	// Assert
	require.NoError(t, err)
	require.Len(t, session.Particles, 1)
	require.Equal(t, second.ID, session.Particles[0].ID)
	require.Equal(t, first.ID, session.Players[0].CollectedParticles[0].ID)
}

func Test_Move_Without_Pickup_Emits_No_Event(t *testing.T) {
	// Arrange
	session := inProgressSession(t, 2)
	mover := session.Players[0].UserID

	session.Particles = []Particle{{ID: uuid.New(), Type: ParticlePhoton, Position: "sector_a"}}
	eventsBefore := len(session.Events)

	// Act
	err := session.ApplyMove(mover, Move{Action: ActionMove, Target: "sector_b"}, time.Now())

	// Assert
	require.NoError(t, err)
	require.Equal(t, "sector_b", session.Players[0].Position)
	require.Len(t, session.Events, eventsBefore)
}

func Test_Move_Requires_A_Known_Target_Location(t *testing.T) {
	// Arrange
	session := inProgressSession(t, 2)
	mover := session.Players[0].UserID

	// Act
	missingTarget := session.ApplyMove(mover, Move{Action: ActionMove}, time.Now())
	unknownTarget := session.ApplyMove(mover, Move{Action: ActionMove, Target: "sector_z"}, time.Now())

	// Assert
	require.ErrorIs(t, missingTarget, ErrInvalidInput)
	require.ErrorIs(t, unknownTarget, ErrInvalidInput)
}

func Test_EndTurn_Advances_TurnIndex_Cyclically(t *testing.T) {
	// Arrange
	session := inProgressSession(t, 3)
	mover := session.Players[0].UserID
	initial := session.TurnIndex

	// Act - a full cycle of end_turn calls returns to the initial index.
	for i := 0; i < len(session.Players); i++ {
		err := session.ApplyMove(mover, Move{Action: ActionEndTurn}, time.Now())
		require.NoError(t, err)
	}

	// Assert
	require.Equal(t, initial, session.TurnIndex)
}

func Test_EndTurn_Does_Not_Require_Turn_Ownership(t *testing.T) {
	// Arrange
	session := inProgressSession(t, 3)

	// TurnIndex is 0; the third player ends the turn anyway.
	outOfTurn := session.Players[2].UserID

	// Act
	err := session.ApplyMove(outOfTurn, Move{Action: ActionEndTurn}, time.Now())

	// Assert
	require.NoError(t, err)
	require.Equal(t, 1, session.TurnIndex)

	last := session.Events[len(session.Events)-1]
	require.Equal(t, EventTurnEnded, last.Type)
	require.Equal(t, session.Players[1].DisplayName, last.NextPlayer)
}

func Test_UseQuantumGate_Only_Logs_An_Event(t *testing.T) {
	// Arrange
	session := inProgressSession(t, 2)
	mover := session.Players[0].UserID
	target := session.Players[1].UserID.String()

	positionBefore := session.Players[0].Position
	particlesBefore := len(session.Particles)

	// Act
	err := session.ApplyMove(mover, Move{Action: ActionUseQuantumGate, Target: target}, time.Now())

	// Assert
	require.NoError(t, err)
	require.Equal(t, positionBefore, session.Players[0].Position)
	require.Len(t, session.Particles, particlesBefore)

	last := session.Events[len(session.Events)-1]
	require.Equal(t, EventGateUsed, last.Type)
	require.Equal(t, target, last.TargetID)
}

func Test_UseQuantumGate_Requires_A_Target(t *testing.T) {
	// Arrange
	session := inProgressSession(t, 2)
	mover := session.Players[0].UserID

	// Act
	err := session.ApplyMove(mover, Move{Action: ActionUseQuantumGate}, time.Now())

	// Assert
	require.ErrorIs(t, err, ErrInvalidInput)
}

func Test_ApplyMove_Rejects_Unknown_Actions(t *testing.T) {
	// Arrange
	session := inProgressSession(t, 2)
	mover := session.Players[0].UserID

	// Act
	err := session.ApplyMove(mover, Move{Action: "teleport", Target: "sector_a"}, time.Now())

	// Assert
	require.ErrorIs(t, err, ErrInvalidInput)
}

func Test_ApplyMove_Fails_For_Non_Member(t *testing.T) {
	// Arrange
	session := inProgressSession(t, 2)

	// Act
	err := session.ApplyMove(uuid.New(), Move{Action: ActionEndTurn}, time.Now())

	// Assert
	require.ErrorIs(t, err, ErrNotFound)
}

func Test_ApplyMove_Fails_When_Session_Not_In_Progress(t *testing.T) {
	// Arrange
	session, creatorID := newTestSession(t, 2)

	// Act
	err := session.ApplyMove(creatorID, Move{Action: ActionEndTurn}, time.Now())

	// Assert
	require.ErrorIs(t, err, ErrInvalidState)
}
