package physics

import (
	"cmp"
	"math"
	"slices"
)

// Pair is an unordered pair of body indices with I < J.
type Pair struct {
	I, J int
}

type cellKey struct {
	X, Y int
}

// Grid is a uniform spatial hash used to prune pair candidates. With the cell
// size set to one body diameter, two overlapping bodies always share a cell or
// sit in adjacent cells.
type Grid struct {
	cellSize float64
	cells    map[cellKey][]int
	keys     []cellKey
}

// NewGrid creates an empty grid with the given cell size.
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int),
	}
}

// Insert records the body with the given index at point p.
func (g *Grid) Insert(index int, p Vector2D) {
	key := g.keyFor(p)
	for len(g.keys) <= index {
		g.keys = append(g.keys, cellKey{})
	}
	g.keys[index] = key
	g.cells[key] = append(g.cells[key], index)
}

// Pairs returns every candidate pair in ascending (I, J) order, each pair once.
func (g *Grid) Pairs() []Pair {
	var pairs []Pair
	for i, key := range g.keys {
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for _, j := range g.cells[cellKey{X: key.X + dx, Y: key.Y + dy}] {
					if j > i {
						pairs = append(pairs, Pair{I: i, J: j})
					}
				}
			}
		}
	}
	slices.SortFunc(pairs, func(a, b Pair) int {
		if c := cmp.Compare(a.I, b.I); c != 0 {
			return c
		}
		return cmp.Compare(a.J, b.J)
	})
	return pairs
}

func (g *Grid) keyFor(p Vector2D) cellKey {
	return cellKey{
		X: int(math.Floor(p.X / g.cellSize)),
		Y: int(math.Floor(p.Y / g.cellSize)),
	}
}

// AllPairs returns every pair of n indices in ascending (I, J) order.
func AllPairs(n int) []Pair {
	pairs := make([]Pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, Pair{I: i, J: j})
		}
	}
	return pairs
}
