package neighbor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/supoke/internal/compat"
	"svw.info/supoke/internal/domain"
)

var gfw = []domain.Element{"grass", "fire", "water"}

// cyclic lays out elements[(i+j) mod n].
func cyclic(elements []domain.Element) domain.SolutionGrid {
	n := len(elements)
	g := domain.NewSolutionGrid(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			g[i][j] = elements[(i+j)%n]
		}
	}
	return g
}

func TestCount(t *testing.T) {
	for n := 3; n <= 6; n++ {
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				edgeR := r == 0 || r == n-1
				edgeC := c == 0 || c == n-1
				want := 8
				switch {
				case edgeR && edgeC:
					want = 3
				case edgeR || edgeC:
					want = 5
				}
				assert.Equal(t, want, Count(n, n, r, c), "n=%d (%d,%d)", n, r, c)
			}
		}
	}
	assert.Equal(t, 0, Count(1, 1, 0, 0))
	assert.Equal(t, 3, Count(2, 2, 1, 1))
}

func TestAggregateScenario(t *testing.T) {
	attack, defense, err := Aggregate(cyclic(gfw), compat.Default(domain.Lenient).Bind(gfw))
	require.NoError(t, err)

	assert.Equal(t, domain.OverlayGrid{
		{6, 11, 6},
		{11, 17, 11},
		{6, 11, 9},
	}, attack)
	assert.Equal(t, domain.OverlayGrid{
		{9, 11, 6},
		{11, 17, 11},
		{6, 11, 6},
	}, defense)
}

func TestAggregateBounds(t *testing.T) {
	elems := []domain.Element{"grass", "fire", "water", "electric", "ground"}
	tbl := compat.Default(domain.Lenient).Bind(elems)
	max, err := tbl.MaxDamage(elems)
	require.NoError(t, err)

	attack, defense, err := Aggregate(cyclic(elems), tbl)
	require.NoError(t, err)

	n := len(elems)
	sumA, sumD := 0, 0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			limit := Count(n, n, r, c) * max
			assert.GreaterOrEqual(t, attack[r][c], 0)
			assert.LessOrEqual(t, attack[r][c], limit)
			assert.GreaterOrEqual(t, defense[r][c], 0)
			assert.LessOrEqual(t, defense[r][c], limit)
			sumA += attack[r][c]
			sumD += defense[r][c]
		}
	}
	// every ordered neighbour pair is counted once on each side
	assert.Equal(t, sumA, sumD)
}

func TestAggregateStrictError(t *testing.T) {
	grid := domain.SolutionGrid{{"grass", "plasma"}, {"plasma", "grass"}}
	_, _, err := Aggregate(grid, compat.Default(domain.Strict))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLookup))

	attack, _, err := Aggregate(grid, compat.Default(domain.Lenient))
	require.NoError(t, err)
	// grass -> plasma x2 default, grass -> grass 1
	assert.Equal(t, 3, attack[0][0])
}

func TestConsistent(t *testing.T) {
	tbl := compat.Default(domain.Lenient).Bind(gfw)
	b := &domain.Board{
		Elements: gfw,
		Cells: domain.SolutionGrid{
			{"grass", "fire", ""},
			{"fire", "", ""},
			{"", "", ""},
		},
		Attack: domain.OverlayGrid{{6, 11, 6}, {11, 17, 11}, {6, 11, 9}},
	}
	// the top-left corner deals 1+1 to its fire neighbours; 4 more is needed
	b.Cells[1][1] = "water"
	ok, err := Consistent(b, tbl, 1, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	b.Cells[1][1] = "grass"
	ok, err = Consistent(b, tbl, 1, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConsistentPartialOverflow(t *testing.T) {
	tbl := compat.Default(domain.Lenient).Bind(gfw)
	b := &domain.Board{
		Elements: gfw,
		Cells: domain.SolutionGrid{
			{"grass", "", ""},
			{"", "water", ""},
			{"", "", ""},
		},
		Defense: domain.OverlayGrid{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
	}
	// grass deals 4 to the centre, already above its defense clue of 0
	ok, err := Consistent(b, tbl, 1, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Consistent(&domain.Board{Cells: b.Cells}, tbl, 1, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}
