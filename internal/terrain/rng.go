package terrain

// mulberry32 is a small 32-bit generator. Identical seeds produce identical
// sequences on every platform, which keeps generated maps reproducible.
type mulberry32 struct {
	state uint32
}

func newMulberry32(seed int64) *mulberry32 {
	return &mulberry32{state: uint32(seed)}
}

// Float64 returns the next value in [0, 1).
func (m *mulberry32) Float64() float64 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296.0
}
