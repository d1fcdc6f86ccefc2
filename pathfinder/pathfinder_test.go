package pathfinder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laurheth/pumpkin-oubliette/models"
)

// parseMap turns an ASCII sketch into a passability predicate. '#' is a wall,
// anything else is floor; outside the sketch is impassable.
func parseMap(sketch string) (func(models.Position) bool, map[rune]models.Position) {
	rows := strings.Split(strings.TrimSpace(sketch), "\n")
	marks := map[rune]models.Position{}
	for y, row := range rows {
		for x, r := range row {
			if r != '#' && r != '.' {
				marks[r] = models.Position{X: x, Y: y}
			}
		}
	}
	canPass := func(p models.Position) bool {
		if p.Y < 0 || p.Y >= len(rows) || p.X < 0 || p.X >= len(rows[p.Y]) {
			return false
		}
		return rows[p.Y][p.X] != '#'
	}
	return canPass, marks
}

func assertValidPath(t *testing.T, canPass func(models.Position) bool, start, end models.Position, path []models.Position) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, end, path[len(path)-1])
	prev := start
	for _, p := range path {
		assert.True(t, canPass(p), "cell %v on path is not passable", p)
		assert.Equal(t, 1, prev.Chebyshev(p), "step %v -> %v is not adjacent", prev, p)
		prev = p
	}
}

func TestFindPathStraightLine(t *testing.T) {
	canPass, marks := parseMap(`
#######
#S...E#
#######`)
	pf := New(canPass, 0)

	path := pf.FindPath(marks['S'], marks['E'], false)

	assert.Equal(t, []models.Position{{X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1}, {X: 5, Y: 1}}, path)
}

func TestFindPathAroundWall(t *testing.T) {
	canPass, marks := parseMap(`
#########
#S..#...#
#...#...#
#...#..E#
#.......#
#########`)
	pf := New(canPass, 0)

	for _, diagonals := range []bool{false, true} {
		path := pf.FindPath(marks['S'], marks['E'], diagonals)
		assertValidPath(t, canPass, marks['S'], marks['E'], path)
		if !diagonals {
			prev := marks['S']
			for _, p := range path {
				assert.Equal(t, 1, prev.Manhattan(p), "orthogonal search took a diagonal step")
				prev = p
			}
		}
	}
}

func TestFindPathUnreachable(t *testing.T) {
	canPass, marks := parseMap(`
#######
#S.#.E#
#######`)
	pf := New(canPass, 0)

	assert.Empty(t, pf.FindPath(marks['S'], marks['E'], true))
}

func TestFindPathSameCell(t *testing.T) {
	canPass, marks := parseMap(`
###
#S#
###`)
	assert.Empty(t, New(canPass, 0).FindPath(marks['S'], marks['S'], true))
}

func TestFindPathRespectsIterationCap(t *testing.T) {
	canPass, marks := parseMap(`
############
#S.........#
##########.#
#E.........#
############`)
	capped := New(canPass, 3)
	assert.Empty(t, capped.FindPath(marks['S'], marks['E'], true))

	uncapped := New(canPass, 0)
	assertValidPath(t, canPass, marks['S'], marks['E'], uncapped.FindPath(marks['S'], marks['E'], true))
}

func TestFindPathIsDeterministic(t *testing.T) {
	canPass, marks := parseMap(`
##########
#S.......#
#........#
#........#
#.......E#
##########`)
	pf := New(canPass, 0)

	first := pf.FindPath(marks['S'], marks['E'], true)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, pf.FindPath(marks['S'], marks['E'], true))
	}
}

func TestFindPathWeightAvoidsExpensiveCells(t *testing.T) {
	canPass, marks := parseMap(`
#######
#S.x.E#
#.....#
#######`)
	expensive := marks['x']
	pf := New(canPass, 0, WithWeight(func(p models.Position) float64 {
		if p == expensive {
			return 50
		}
		return 1
	}))

	path := pf.FindPath(marks['S'], marks['E'], false)

	assertValidPath(t, canPass, marks['S'], marks['E'], path)
	assert.NotContains(t, path, expensive)
}
