package rules

import (
	"github.com/vovakirdan/hexfront/internal/battle"
	"github.com/vovakirdan/hexfront/internal/hex"
)

// AttackResult describes the outcome of one attack.
type AttackResult struct {
	AttackerID int
	TargetID   int
	Damage     int
	TargetHP   int  // hit points left, <= 0 when killed
	Killed     bool // target was removed
	Applied    bool // false when the attack was a no-op
}

// Attackable returns the enemy units within the unit's attack range,
// in roster order. Range is the only gate; terrain never blocks fire.
func (e *Engine) Attackable(st *battle.State, u *battle.Unit) []*battle.Unit {
	if u == nil || u.Acted || st.Over {
		return nil
	}

	rng := u.Stats().Range
	var out []*battle.Unit
	for _, other := range st.Units {
		if other.Side == u.Side {
			continue
		}
		if hex.Distance(u.Pos, other.Pos) <= rng {
			out = append(out, other)
		}
	}
	return out
}

// CanAttack reports whether target is in the attacker's target set.
func (e *Engine) CanAttack(st *battle.State, attacker *battle.Unit, targetID int) bool {
	for _, t := range e.Attackable(st, attacker) {
		if t.ID == targetID {
			return true
		}
	}
	return false
}

// Damage returns the damage one attack would deal before the dice bonus.
func Damage(attacker, target battle.UnitType) int {
	return max(0, attacker.Stats().Attack-target.Stats().Defense)
}

// ApplyAttack resolves an attack without validating range. The attacker
// is always marked acted. A target reduced to zero hit points is removed
// and the attacker's side scores the kill award. Stale attacker or target
// IDs make the call a no-op.
func (e *Engine) ApplyAttack(st *battle.State, attackerID, targetID int) AttackResult {
	res := AttackResult{AttackerID: attackerID, TargetID: targetID}
	if st.Over {
		return res
	}
	attacker := st.Unit(attackerID)
	target := st.Unit(targetID)
	if attacker == nil || target == nil {
		return res
	}

	res.Damage = Damage(attacker.Type, target.Type) + e.dice.Bonus()
	target.HP -= res.Damage
	attacker.Acted = true
	res.TargetHP = target.HP
	res.Applied = true

	if target.HP <= 0 {
		st.Remove(target.ID)
		st.Score[attacker.Side] += e.cfg.KillAward
		res.Killed = true
	}

	e.CheckWin(st)
	return res
}

// Attack validates and applies an attack by a unit of the active side.
func (e *Engine) Attack(st *battle.State, attackerID, targetID int) (AttackResult, error) {
	u, err := e.activeUnit(st, attackerID)
	if err != nil {
		return AttackResult{}, err
	}
	if !e.CanAttack(st, u, targetID) {
		return AttackResult{}, ErrIllegalAttack
	}
	return e.ApplyAttack(st, attackerID, targetID), nil
}
