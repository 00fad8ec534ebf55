package generator

import (
	"math/rand"

	"svw.info/supoke/internal/domain"
)

// Strategy lays out a solution grid for the given elements.
type Strategy func(elements []domain.Element) (domain.SolutionGrid, error)

// Deterministic builds the cyclic-shift Latin square:
// cell(i,j) = elements[(i+j) mod N]. Row i is elements rotated by i.
func Deterministic(elements []domain.Element) (domain.SolutionGrid, error) {
	if err := domain.ValidateElements(elements); err != nil {
		return nil, err
	}
	n := len(elements)
	grid := make(domain.SolutionGrid, n)
	for i := 0; i < n; i++ {
		row := make([]domain.Element, n)
		for j := 0; j < n; j++ {
			row[j] = elements[(i+j)%n]
		}
		grid[i] = row
	}
	return grid, nil
}

// Randomized shuffles the elements and the row order, then shifts:
// cell(i,j) = shuffled[(rowPerm[i]+j) mod N]. rowPerm is a bijection, so
// each column still sees every residue exactly once.
func Randomized(elements []domain.Element, rng *rand.Rand) (domain.SolutionGrid, error) {
	if err := domain.ValidateElements(elements); err != nil {
		return nil, err
	}
	n := len(elements)
	shuffled := append([]domain.Element(nil), elements...)
	rng.Shuffle(n, func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	rowPerm := rng.Perm(n)

	grid := make(domain.SolutionGrid, n)
	for i := 0; i < n; i++ {
		row := make([]domain.Element, n)
		for j := 0; j < n; j++ {
			row[j] = shuffled[(rowPerm[i]+j)%n]
		}
		grid[i] = row
	}
	return grid, nil
}

// RandomizedWith binds rng into a Strategy. The returned strategy
// advances rng on every call.
func RandomizedWith(rng *rand.Rand) Strategy {
	return func(elements []domain.Element) (domain.SolutionGrid, error) {
		return Randomized(elements, rng)
	}
}
