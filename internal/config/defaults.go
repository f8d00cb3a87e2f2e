package config

import (
	_ "embed"

	"github.com/vovakirdan/hexfront/internal/hex"
)

//go:embed defaults/scenario.yaml
var defaultScenarioYAML []byte

// DefaultScenario returns the standard scenario.
func DefaultScenario() Scenario {
	return Scenario{
		Board: BoardConfig{
			Width:     9,
			Height:    11,
			Seed:      0,
			Generator: "ladder",
		},
		Headquarters: HQConfig{
			Blue: hex.Coord{Q: 1, R: 5},
			Red:  hex.Coord{Q: 7, R: 5},
		},
		Players: PlayersConfig{
			Blue: "Player",
			Red:  "CPU",
		},
		Rules: RulesConfig{
			ScoreToWin: 10,
			KillAward:  2,
		},
		AI: AIConfig{
			StepTicks: 30,
			TargetValues: map[string]int{
				"artillery":  4,
				"machinegun": 3,
				"infantry":   2,
				"engineer":   1,
			},
		},
		Roster: []UnitPlacement{
			{Side: "blue", Type: "infantry", Q: 0, R: 5},
			{Side: "blue", Type: "machinegun", Q: 1, R: 4},
			{Side: "blue", Type: "artillery", Q: 0, R: 6},
			{Side: "blue", Type: "engineer", Q: 1, R: 6},
			{Side: "red", Type: "infantry", Q: 8, R: 5},
			{Side: "red", Type: "machinegun", Q: 7, R: 4},
			{Side: "red", Type: "artillery", Q: 8, R: 4},
			{Side: "red", Type: "engineer", Q: 7, R: 6},
		},
	}
}

// DefaultYAML returns the embedded default scenario file.
func DefaultYAML() []byte {
	return defaultScenarioYAML
}
