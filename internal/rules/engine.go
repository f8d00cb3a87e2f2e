// Package rules is the authoritative rules engine. It answers legality
// queries (reachable hexes, attackable targets, trench sites) and applies
// actions to a *battle.State passed in by the caller.
//
// Apply* mutators follow a no-op contract: a call on a missing unit or a
// finished match changes nothing. The Move, Attack and Fortify wrappers
// validate against the query results first and report why an action was
// refused.
package rules

import (
	"errors"
	"math/rand"
	"time"
)

// Errors returned by the validating wrappers.
var (
	ErrGameOver      = errors.New("rules: game is over")
	ErrUnitNotFound  = errors.New("rules: unit not found")
	ErrNotYourTurn   = errors.New("rules: unit does not belong to the active side")
	ErrAlreadyMoved  = errors.New("rules: unit has already moved this turn")
	ErrIllegalMove   = errors.New("rules: destination is not reachable")
	ErrIllegalAttack = errors.New("rules: target is not attackable")
	ErrCannotFortify = errors.New("rules: trench cannot be built there")
)

// Config holds the tunable constants of the rules.
type Config struct {
	ScoreToWin int // a side reaching this score wins
	KillAward  int // points for eliminating an enemy unit
}

// DefaultConfig returns the standard rules: first to 10 points, 2 per kill.
func DefaultConfig() Config {
	return Config{
		ScoreToWin: 10,
		KillAward:  2,
	}
}

// Dice supplies the random component of combat damage.
type Dice interface {
	// Bonus returns 0 or 1 with equal probability.
	Bonus() int
}

type randDice struct {
	rng *rand.Rand
}

func (d randDice) Bonus() int {
	return d.rng.Intn(2)
}

// NewDice returns dice backed by a seeded math/rand source.
func NewDice(seed int64) Dice {
	return randDice{rng: rand.New(rand.NewSource(seed))}
}

// FixedDice always rolls the same bonus.
type FixedDice int

// Bonus returns the fixed value.
func (d FixedDice) Bonus() int {
	return int(d)
}

// Engine applies the rules with a given configuration and dice source.
// It keeps no match state between calls.
type Engine struct {
	cfg  Config
	dice Dice
}

// New creates an engine. A nil dice source is replaced by time-seeded dice,
// independent of the map seed.
func New(cfg Config, dice Dice) *Engine {
	if dice == nil {
		dice = NewDice(time.Now().UnixNano())
	}
	if cfg.ScoreToWin <= 0 {
		cfg.ScoreToWin = DefaultConfig().ScoreToWin
	}
	if cfg.KillAward <= 0 {
		cfg.KillAward = DefaultConfig().KillAward
	}
	return &Engine{cfg: cfg, dice: dice}
}

// Config returns the engine's rule constants.
func (e *Engine) Config() Config {
	return e.cfg
}
