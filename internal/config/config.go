// Package config provides YAML-based scenario loading for hexfront.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/hexfront/internal/ai"
	"github.com/vovakirdan/hexfront/internal/battle"
	"github.com/vovakirdan/hexfront/internal/hex"
	"github.com/vovakirdan/hexfront/internal/rules"
	"github.com/vovakirdan/hexfront/internal/terrain"
)

// Scenario contains everything needed to set up a match.
type Scenario struct {
	Board        BoardConfig     `yaml:"board"`
	Headquarters HQConfig        `yaml:"headquarters"`
	Players      PlayersConfig   `yaml:"players"`
	Rules        RulesConfig     `yaml:"rules"`
	AI           AIConfig        `yaml:"ai"`
	Roster       []UnitPlacement `yaml:"roster"`
}

// BoardConfig defines the playing area and map generation.
type BoardConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Seed      int64  `yaml:"seed"`      // 0 = time-based at match start
	Generator string `yaml:"generator"` // "ladder" or "noise"
}

// HQConfig defines the headquarters coordinate of each side.
type HQConfig struct {
	Blue hex.Coord `yaml:"blue"`
	Red  hex.Coord `yaml:"red"`
}

// PlayersConfig holds the display names of both sides.
type PlayersConfig struct {
	Blue string `yaml:"blue"`
	Red  string `yaml:"red"`
}

// RulesConfig defines the scoring constants.
type RulesConfig struct {
	ScoreToWin int `yaml:"score_to_win"`
	KillAward  int `yaml:"kill_award"`

	// DiceSeed seeds the combat dice. Zero means a fresh clock seed per
	// match; the board seed never drives the dice.
	DiceSeed int64 `yaml:"dice_seed"`
}

// AIConfig defines the automated side's pacing and target ranking.
type AIConfig struct {
	StepTicks    int            `yaml:"step_ticks"` // ticks between AI steps in the TUI
	TargetValues map[string]int `yaml:"target_values"`
}

// UnitPlacement is one roster entry.
type UnitPlacement struct {
	Side string `yaml:"side"`
	Type string `yaml:"type"`
	Q    int    `yaml:"q"`
	R    int    `yaml:"r"`
}

// Validate checks the scenario and returns every problem found.
func (s Scenario) Validate() error {
	var errs []error

	if _, err := terrain.ParseGenerator(s.Board.Generator); err != nil {
		errs = append(errs, err)
	}
	if s.Rules.ScoreToWin < 0 || s.Rules.KillAward < 0 {
		errs = append(errs, fmt.Errorf("config: rules values must not be negative"))
	}
	if s.AI.StepTicks < 0 {
		errs = append(errs, fmt.Errorf("config: ai.step_ticks must not be negative"))
	}
	if _, err := s.targetValues(); err != nil {
		errs = append(errs, err)
	}

	setup, err := s.Setup()
	if err != nil {
		errs = append(errs, err)
	} else if err := setup.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Setup converts the scenario into a battle setup.
func (s Scenario) Setup() (battle.Setup, error) {
	setup := battle.Setup{
		Width:  s.Board.Width,
		Height: s.Board.Height,
		Seed:   s.Board.Seed,
		HQ: map[battle.Side]hex.Coord{
			battle.Blue: s.Headquarters.Blue,
			battle.Red:  s.Headquarters.Red,
		},
		Players: map[battle.Side]string{
			battle.Blue: s.Players.Blue,
			battle.Red:  s.Players.Red,
		},
	}

	for i, p := range s.Roster {
		side, err := battle.ParseSide(p.Side)
		if err != nil {
			return setup, fmt.Errorf("config: roster[%d]: %w", i, err)
		}
		ut, err := battle.ParseUnitType(p.Type)
		if err != nil {
			return setup, fmt.Errorf("config: roster[%d]: %w", i, err)
		}
		setup.Roster = append(setup.Roster, battle.Placement{
			Side: side,
			Type: ut,
			Pos:  hex.Coord{Q: p.Q, R: p.R},
		})
	}
	return setup, nil
}

// RulesConfig returns the engine configuration.
func (s Scenario) RulesConfig() rules.Config {
	return rules.Config{
		ScoreToWin: s.Rules.ScoreToWin,
		KillAward:  s.Rules.KillAward,
	}
}

// Generator returns the terrain generator to use.
func (s Scenario) Generator() terrain.Generator {
	gen, err := terrain.ParseGenerator(s.Board.Generator)
	if err != nil {
		return terrain.GeneratorLadder
	}
	return gen
}

// Planner builds the AI planner from the configured target values.
func (s Scenario) Planner() *ai.Planner {
	values, err := s.targetValues()
	if err != nil || len(values) == 0 {
		return ai.NewPlanner(nil)
	}
	return ai.NewPlanner(values)
}

func (s Scenario) targetValues() (map[battle.UnitType]int, error) {
	if len(s.AI.TargetValues) == 0 {
		return nil, nil
	}
	out := make(map[battle.UnitType]int, len(s.AI.TargetValues))
	for name, v := range s.AI.TargetValues {
		ut, err := battle.ParseUnitType(name)
		if err != nil {
			return nil, fmt.Errorf("config: ai.target_values: %w", err)
		}
		out[ut] = v
	}
	return out, nil
}
