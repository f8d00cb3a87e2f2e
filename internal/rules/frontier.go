package rules

import "github.com/vovakirdan/hexfront/internal/hex"

type frontierItem struct {
	pos  hex.Coord
	cost int
	seq  int // insertion order, breaks cost ties first-in first-out
}

// frontier is a min-heap of search nodes ordered by accumulated cost.
type frontier []frontierItem

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)   { *f = append(*f, x.(frontierItem)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}
