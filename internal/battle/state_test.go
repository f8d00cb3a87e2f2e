package battle

import (
	"strings"
	"testing"

	"github.com/vovakirdan/hexfront/internal/hex"
	"github.com/vovakirdan/hexfront/internal/terrain"
)

func TestNewDefaultSetup(t *testing.T) {
	st, err := New(DefaultSetup(42))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if st.Turn != 1 {
		t.Errorf("Turn = %d, expected 1", st.Turn)
	}
	if st.Active != Blue {
		t.Errorf("Active = %s, expected BLUE", st.Active)
	}
	if st.Over || st.Winner != NoSide {
		t.Errorf("new match should not be over (over=%v winner=%s)", st.Over, st.Winner)
	}
	if len(st.Units) != 8 {
		t.Fatalf("len(Units) = %d, expected 8", len(st.Units))
	}
	if st.MatchID == "" {
		t.Error("MatchID should be assigned")
	}

	// IDs start at 1 and follow roster order
	for i, u := range st.Units {
		if u.ID != i+1 {
			t.Errorf("Units[%d].ID = %d, expected %d", i, u.ID, i+1)
		}
		if u.HP != u.Stats().HP {
			t.Errorf("%v spawned with HP %d, expected %d", u, u.HP, u.Stats().HP)
		}
	}

	if got := st.UnitAt(hex.Coord{Q: 8, R: 4}); got == nil || got.Type != Artillery || got.Side != Red {
		t.Errorf("UnitAt(8,4) = %v, expected RED Artillery", got)
	}
	if got := st.HQ[Blue]; got != (hex.Coord{Q: 1, R: 5}) {
		t.Errorf("HQ[BLUE] = %v", got)
	}
}

func TestUnitIDsNeverReused(t *testing.T) {
	st, _ := New(DefaultSetup(1))
	st.Remove(8)
	u := st.Spawn(Red, Infantry, hex.Coord{Q: 6, R: 5})
	if u.ID != 9 {
		t.Errorf("spawned ID = %d, expected 9", u.ID)
	}
	if st.Unit(8) != nil {
		t.Error("removed unit is still reachable by ID")
	}
}

func TestSetupValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(s *Setup)
		wantErr string
	}{
		{"default is valid", func(s *Setup) {}, ""},
		{"empty red roster", func(s *Setup) { s.Roster = s.Roster[:4] }, "RED has an empty roster"},
		{"off board", func(s *Setup) { s.Roster[0].Pos = hex.Coord{Q: -1, R: 0} }, "off the board"},
		{"duplicate position", func(s *Setup) { s.Roster[1].Pos = s.Roster[0].Pos }, "already occupied"},
		{"missing hq", func(s *Setup) { delete(s.HQ, Red) }, "no headquarters"},
		{"bad size", func(s *Setup) { s.Width = 0 }, "invalid board size"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultSetup(1)
			tc.modify(&s)
			err := s.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() = %v, expected error containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestResetFlagsOnlyTouchesSide(t *testing.T) {
	st, _ := New(DefaultSetup(1))
	for _, u := range st.Units {
		u.Moved, u.Acted = true, true
	}

	st.ResetFlags(Red)

	for _, u := range st.Units {
		wantActed := u.Side == Blue
		if u.Acted != wantActed || u.Moved != wantActed {
			t.Errorf("%v flags moved=%v acted=%v", u, u.Moved, u.Acted)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	st, _ := New(DefaultSetup(1))
	c := st.Clone()

	c.Units[0].HP = 1
	c.Score[Blue] = 4
	c.Remove(2)

	if st.Units[0].HP == 1 || st.Score[Blue] != 0 || st.Unit(2) == nil {
		t.Error("Clone shares state with the original")
	}
}

func TestUnitTypeCapabilities(t *testing.T) {
	tests := []struct {
		t          UnitType
		actsAfter  bool
		fortifies  bool
		entersHill bool
	}{
		{Infantry, true, false, true},
		{MachineGun, true, false, true},
		{Artillery, false, false, false},
		{Engineer, false, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.t.String(), func(t *testing.T) {
			if got := tc.t.CanActAfterMove(); got != tc.actsAfter {
				t.Errorf("CanActAfterMove() = %v", got)
			}
			if got := tc.t.CanFortify(); got != tc.fortifies {
				t.Errorf("CanFortify() = %v", got)
			}
			if got := tc.t.CanEnter(terrain.Hill); got != tc.entersHill {
				t.Errorf("CanEnter(Hill) = %v", got)
			}
			if !tc.t.CanEnter(terrain.Trench) || !tc.t.CanEnter(terrain.Plain) {
				t.Error("every type may enter plain and trench")
			}
		})
	}
}

func TestParse(t *testing.T) {
	if s, err := ParseSide("Blue"); err != nil || s != Blue {
		t.Errorf("ParseSide(Blue) = %v, %v", s, err)
	}
	if _, err := ParseSide("green"); err == nil {
		t.Error("ParseSide(green) should fail")
	}
	if ut, err := ParseUnitType("mg"); err != nil || ut != MachineGun {
		t.Errorf("ParseUnitType(mg) = %v, %v", ut, err)
	}
	if _, err := ParseUnitType("tank"); err == nil {
		t.Error("ParseUnitType(tank) should fail")
	}
	if Blue.Opponent() != Red || Red.Opponent() != Blue {
		t.Error("Opponent() mismatch")
	}
}
