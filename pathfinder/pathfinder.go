// Package pathfinder finds routes across a grid using A*.
package pathfinder

import (
	"github.com/zyedidia/generic/heap"

	"github.com/laurheth/pumpkin-oubliette/models"
)

// Step costs. Diagonals cost a little more than straight steps so routes do not
// cut corners for free.
const (
	StraightCost = 1.0
	DiagonalCost = 1.2

	// DefaultIterationFactor multiplies the heuristic distance between start and end
	// to get the expansion budget of a single search.
	DefaultIterationFactor = 40
)

// Heuristic estimates the remaining cost between two positions
type Heuristic func(a, b models.Position) float64

// Manhattan is the default heuristic
func Manhattan(a, b models.Position) float64 {
	return float64(a.Manhattan(b))
}

// Option configures a PathFinder
type Option func(*PathFinder)

// WithWeight sets a per-cell cost multiplier. The default weight is 1.
func WithWeight(weight func(pos models.Position) float64) Option {
	return func(p *PathFinder) {
		p.weight = weight
	}
}

// WithHeuristic replaces the Manhattan heuristic
func WithHeuristic(h Heuristic) Option {
	return func(p *PathFinder) {
		p.heuristic = h
	}
}

// WithIterationFactor changes the budget multiplier
func WithIterationFactor(factor int) Option {
	return func(p *PathFinder) {
		p.factor = factor
	}
}

// PathFinder runs A* searches over cells accepted by its passability predicate
type PathFinder struct {
	canPass       func(pos models.Position) bool
	weight        func(pos models.Position) float64
	heuristic     Heuristic
	factor        int
	maxIterations int
}

// New creates a PathFinder. maxIterations caps the expansion budget of any single
// search; zero or less means the budget is only limited by the iteration factor.
func New(canPass func(pos models.Position) bool, maxIterations int, opts ...Option) *PathFinder {
	p := &PathFinder{
		canPass:       canPass,
		heuristic:     Manhattan,
		factor:        DefaultIterationFactor,
		maxIterations: maxIterations,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var (
	straightSteps = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	diagonalSteps = [4][2]int{{1, -1}, {1, 1}, {-1, 1}, {-1, -1}}
)

type location struct {
	pos      models.Position
	steps    float64
	estimate float64
	previous *location
	closed   bool
}

type entry struct {
	loc   *location
	steps float64
	score float64
	seq   int
}

func lessEntry(a, b entry) bool {
	if a.score != b.score {
		return a.score < b.score
	}
	if a.loc.estimate != b.loc.estimate {
		return a.loc.estimate < b.loc.estimate
	}
	return a.seq < b.seq
}

// FindPath returns the route from start to end, excluding start and including end.
// The result is empty if end cannot be reached within the iteration budget.
func (p *PathFinder) FindPath(start, end models.Position, includeDiagonals bool) []models.Position {
	if start == end {
		return nil
	}

	budget := int(float64(p.factor) * p.heuristic(start, end))
	if p.maxIterations > 0 && budget > p.maxIterations {
		budget = p.maxIterations
	}

	known := make(map[models.Position]*location)
	open := heap.New[entry](lessEntry)
	seq := 0

	first := &location{pos: start, estimate: p.heuristic(start, end)}
	known[start] = first
	open.Push(entry{loc: first, steps: 0, score: first.estimate, seq: seq})

	var found *location
	for iterations := 0; iterations < budget; {
		e, ok := open.Pop()
		if !ok {
			break
		}
		current := e.loc
		// Superseded by a cheaper push, or already expanded at this cost
		if e.steps != current.steps || current.closed {
			continue
		}
		iterations++
		current.closed = true

		if current.pos == end {
			found = current
			break
		}

		expand := func(step [2]int, cost float64) {
			next := current.pos.Add(step[0], step[1])
			if !p.canPass(next) {
				return
			}
			if p.weight != nil {
				cost *= p.weight(next)
			}
			steps := current.steps + cost
			loc, seen := known[next]
			if !seen {
				loc = &location{pos: next, estimate: p.heuristic(next, end)}
				known[next] = loc
			} else if loc.steps <= steps {
				return
			}
			// Cheaper route: relax, and reopen the location if it had been expanded
			loc.steps = steps
			loc.previous = current
			loc.closed = false
			seq++
			open.Push(entry{loc: loc, steps: steps, score: steps + loc.estimate, seq: seq})
		}

		for _, step := range straightSteps {
			expand(step, StraightCost)
		}
		if includeDiagonals {
			for _, step := range diagonalSteps {
				expand(step, DiagonalCost)
			}
		}
	}

	if found == nil {
		return nil
	}

	route := make([]models.Position, 0, int(found.steps)+1)
	for loc := found; loc != nil && loc.pos != start; loc = loc.previous {
		route = append(route, loc.pos)
	}
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route
}
