package domain

import "github.com/google/uuid"

// DefaultBoard is the only board shipped right now. The board identifier is
// kept on the session so alternative layouts can be introduced later without
// a schema change.
const DefaultBoard = "quantum_realm"

const StartLocation = "start"

// Locations in board order. The start sector sits in the middle of the 3x3 grid.
var boardLocations = []string{
	"sector_a",
	"sector_b",
	"sector_c",
	"sector_d",
	StartLocation,
	"sector_e",
	"sector_f",
	"sector_g",
	"sector_h",
}

func Locations() []string {
	locations := make([]string, len(boardLocations))
	copy(locations, boardLocations)
	return locations
}

func ValidLocation(location string) bool {
	for _, l := range boardLocations {
		if l == location {
			return true
		}
	}
	return false
}

var particleTypes = []ParticleType{
	ParticlePhoton,
	ParticleElectron,
	ParticleNeutrino,
	ParticleQuark,
}

// startingParticles seeds one particle per non-start sector, types cycling
// through the vocabulary in board order. The layout is deterministic - only
// the particle IDs are random.
func startingParticles() []Particle {
	particles := make([]Particle, 0, len(boardLocations)-1)
	for _, location := range boardLocations {
		if location == StartLocation {
			continue
		}

		particles = append(particles, Particle{
			ID:       uuid.New(),
			Type:     particleTypes[len(particles)%len(particleTypes)],
			Position: location,
		})
	}
	return particles
}
