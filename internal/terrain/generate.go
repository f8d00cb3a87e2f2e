package terrain

import (
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/vovakirdan/hexfront/internal/hex"
)

// Generator selects the terrain generation algorithm.
type Generator string

const (
	// GeneratorLadder draws each cell independently from a cumulative
	// probability ladder.
	GeneratorLadder Generator = "ladder"

	// GeneratorNoise derives forests and hills from layered simplex noise,
	// giving clustered woods and ridges instead of scattered cells.
	GeneratorNoise Generator = "noise"
)

// Cumulative thresholds of the ladder draw.
const (
	forestBelow = 0.20
	hillBelow   = 0.35
	trenchBelow = 0.40
)

// ParseGenerator validates a generator name. Empty means ladder.
func ParseGenerator(s string) (Generator, error) {
	switch Generator(s) {
	case "", GeneratorLadder:
		return GeneratorLadder, nil
	case GeneratorNoise:
		return GeneratorNoise, nil
	}
	return "", fmt.Errorf("terrain: unknown generator %q", s)
}

// Generate builds a width x height map with the ladder generator.
// The same seed always yields the same map.
func Generate(seed int64, width, height int) *Map {
	m := NewMap(width, height)
	m.seed = seed
	rng := newMulberry32(seed)

	m.Cells(func(c hex.Coord, _ Kind) {
		m.Set(c, ladder(rng.Float64()))
	})
	return m
}

// GenerateWith builds a map using the named generator.
func GenerateWith(gen Generator, seed int64, width, height int) (*Map, error) {
	switch gen {
	case "", GeneratorLadder:
		return Generate(seed, width, height), nil
	case GeneratorNoise:
		return generateNoise(seed, width, height), nil
	}
	return nil, fmt.Errorf("terrain: unknown generator %q", gen)
}

func ladder(r float64) Kind {
	switch {
	case r < forestBelow:
		return Forest
	case r < hillBelow:
		return Hill
	case r < trenchBelow:
		return Trench
	default:
		return Plain
	}
}

// generateNoise samples an elevation field for hills and a vegetation field
// for forests. Trenches stay rare and scattered, drawn from mulberry32.
func generateNoise(seed int64, width, height int) *Map {
	m := NewMap(width, height)
	m.seed = seed

	elevNoise := opensimplex.NewNormalized(seed)
	vegNoise := opensimplex.NewNormalized(seed + 1)
	rng := newMulberry32(seed)

	m.Cells(func(c hex.Coord, _ Kind) {
		// Axial to cartesian so the noise field is isotropic on the grid
		x := float64(c.Q) * 1.5
		y := (float64(c.Q)/2 + float64(c.R)) * math.Sqrt(3)

		elev := octaveNoise(elevNoise, x, y, 3, 0.18, 0.5)
		veg := octaveNoise(vegNoise, x, y, 2, 0.22, 0.5)
		draw := rng.Float64()

		switch {
		case elev > 0.62:
			m.Set(c, Hill)
		case veg > 0.58:
			m.Set(c, Forest)
		case draw < trenchBelow-hillBelow:
			m.Set(c, Trench)
		default:
			m.Set(c, Plain)
		}
	})
	return m
}

// octaveNoise layers several frequencies of the same noise source.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}
