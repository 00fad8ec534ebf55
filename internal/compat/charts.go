package compat

import (
	"sort"

	"svw.info/supoke/internal/domain"
)

// Chart is a Source backed by a nested map: attacker -> defender -> value.
type Chart struct {
	name   string
	values map[domain.Element]map[domain.Element]int
	domain map[domain.Element]struct{}
}

// NewChart copies values into a named chart. Every element that appears
// as an attacker or a defender belongs to the chart's domain.
func NewChart(name string, values map[domain.Element]map[domain.Element]int) *Chart {
	c := &Chart{
		name:   name,
		values: make(map[domain.Element]map[domain.Element]int, len(values)),
		domain: make(map[domain.Element]struct{}),
	}
	for a, row := range values {
		c.domain[a] = struct{}{}
		cp := make(map[domain.Element]int, len(row))
		for d, v := range row {
			c.domain[d] = struct{}{}
			cp[d] = v
		}
		c.values[a] = cp
	}
	return c
}

func (c *Chart) Name() string { return c.name }

func (c *Chart) Damage(attacker, defender domain.Element) (int, bool) {
	v, ok := c.values[attacker][defender]
	return v, ok
}

func (c *Chart) Knows(e domain.Element) bool {
	_, ok := c.domain[e]
	return ok
}

// Elements lists the chart's domain in sorted order.
func (c *Chart) Elements() []domain.Element {
	out := make([]domain.Element, 0, len(c.domain))
	for e := range c.domain {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Simplified is the hand-tuned chart for the five common elements.
func Simplified() *Chart { return simplified }

// Full is the 18-type chart. 0 = no effect, 1 = weak, 2 = normal, 4 = super effective.
func Full() *Chart { return full }

var simplified = NewChart("simplified", map[domain.Element]map[domain.Element]int{
	"grass":    {"grass": 1, "fire": 1, "water": 4, "electric": 1, "ground": 1},
	"fire":     {"grass": 4, "fire": 1, "water": 1, "electric": 1, "ground": 1},
	"water":    {"grass": 1, "fire": 4, "water": 1, "electric": 1, "ground": 2},
	"electric": {"grass": 1, "fire": 1, "water": 4, "electric": 1, "ground": 0},
	"ground":   {"grass": 1, "fire": 2, "water": 1, "electric": 4, "ground": 1},
})

var full = NewChart("full", map[domain.Element]map[domain.Element]int{
	"normal":   {"normal": 1, "fighting": 1, "flying": 1, "poison": 1, "ground": 1, "rock": 1, "bug": 1, "ghost": 0, "steel": 1, "fire": 1, "water": 1, "grass": 1, "electric": 1, "psychic": 1, "ice": 1, "dragon": 1, "dark": 1, "fairy": 1},
	"fighting": {"normal": 2, "fighting": 1, "flying": 1, "poison": 1, "ground": 1, "rock": 2, "bug": 1, "ghost": 0, "steel": 2, "fire": 1, "water": 1, "grass": 1, "electric": 1, "psychic": 1, "ice": 2, "dragon": 1, "dark": 2, "fairy": 1},
	"flying":   {"normal": 1, "fighting": 2, "flying": 1, "poison": 1, "ground": 1, "rock": 1, "bug": 2, "ghost": 1, "steel": 1, "fire": 1, "water": 1, "grass": 2, "electric": 1, "psychic": 1, "ice": 1, "dragon": 1, "dark": 1, "fairy": 1},
	"poison":   {"normal": 1, "fighting": 1, "flying": 1, "poison": 1, "ground": 1, "rock": 1, "bug": 1, "ghost": 1, "steel": 0, "fire": 1, "water": 1, "grass": 2, "electric": 1, "psychic": 1, "ice": 1, "dragon": 1, "dark": 1, "fairy": 2},
	"ground":   {"normal": 1, "fighting": 1, "flying": 0, "poison": 2, "ground": 1, "rock": 2, "bug": 1, "ghost": 1, "steel": 2, "fire": 2, "water": 1, "grass": 1, "electric": 2, "psychic": 1, "ice": 1, "dragon": 1, "dark": 1, "fairy": 1},
	"rock":     {"normal": 1, "fighting": 1, "flying": 2, "poison": 1, "ground": 1, "rock": 1, "bug": 2, "ghost": 1, "steel": 1, "fire": 2, "water": 1, "grass": 1, "electric": 1, "psychic": 1, "ice": 2, "dragon": 1, "dark": 1, "fairy": 1},
	"bug":      {"normal": 1, "fighting": 1, "flying": 1, "poison": 1, "ground": 1, "rock": 1, "bug": 1, "ghost": 1, "steel": 1, "fire": 1, "water": 1, "grass": 2, "electric": 1, "psychic": 2, "ice": 1, "dragon": 1, "dark": 2, "fairy": 1},
	"ghost":    {"normal": 0, "fighting": 1, "flying": 1, "poison": 1, "ground": 1, "rock": 1, "bug": 1, "ghost": 2, "steel": 1, "fire": 1, "water": 1, "grass": 1, "electric": 1, "psychic": 2, "ice": 1, "dragon": 1, "dark": 1, "fairy": 1},
	"steel":    {"normal": 1, "fighting": 1, "flying": 1, "poison": 1, "ground": 1, "rock": 2, "bug": 1, "ghost": 1, "steel": 1, "fire": 1, "water": 1, "grass": 1, "electric": 1, "psychic": 1, "ice": 2, "dragon": 1, "dark": 1, "fairy": 2},
	"fire":     {"normal": 1, "fighting": 1, "flying": 1, "poison": 1, "ground": 1, "rock": 1, "bug": 2, "ghost": 1, "steel": 2, "fire": 1, "water": 1, "grass": 2, "electric": 1, "psychic": 1, "ice": 2, "dragon": 1, "dark": 1, "fairy": 1},
	"water":    {"normal": 1, "fighting": 1, "flying": 1, "poison": 1, "ground": 2, "rock": 2, "bug": 1, "ghost": 1, "steel": 1, "fire": 2, "water": 1, "grass": 1, "electric": 1, "psychic": 1, "ice": 1, "dragon": 1, "dark": 1, "fairy": 1},
	"grass":    {"normal": 1, "fighting": 1, "flying": 1, "poison": 1, "ground": 2, "rock": 2, "bug": 1, "ghost": 1, "steel": 1, "fire": 1, "water": 2, "grass": 1, "electric": 1, "psychic": 1, "ice": 1, "dragon": 1, "dark": 1, "fairy": 1},
	"electric": {"normal": 1, "fighting": 1, "flying": 2, "poison": 1, "ground": 0, "rock": 1, "bug": 1, "ghost": 1, "steel": 1, "fire": 1, "water": 4, "grass": 1, "electric": 1, "psychic": 1, "ice": 1, "dragon": 1, "dark": 1, "fairy": 1},
	"psychic":  {"normal": 1, "fighting": 2, "flying": 1, "poison": 2, "ground": 1, "rock": 1, "bug": 1, "ghost": 1, "steel": 1, "fire": 1, "water": 1, "grass": 1, "electric": 1, "psychic": 1, "ice": 1, "dragon": 1, "dark": 0, "fairy": 1},
	"ice":      {"normal": 1, "fighting": 1, "flying": 2, "poison": 1, "ground": 2, "rock": 1, "bug": 1, "ghost": 1, "steel": 1, "fire": 1, "water": 1, "grass": 2, "electric": 1, "psychic": 1, "ice": 1, "dragon": 2, "dark": 1, "fairy": 1},
	"dragon":   {"normal": 1, "fighting": 1, "flying": 1, "poison": 1, "ground": 1, "rock": 1, "bug": 1, "ghost": 1, "steel": 1, "fire": 1, "water": 1, "grass": 1, "electric": 1, "psychic": 1, "ice": 1, "dragon": 2, "dark": 1, "fairy": 0},
	"dark":     {"normal": 1, "fighting": 1, "flying": 1, "poison": 1, "ground": 1, "rock": 1, "bug": 1, "ghost": 2, "steel": 1, "fire": 1, "water": 1, "grass": 1, "electric": 1, "psychic": 2, "ice": 1, "dragon": 1, "dark": 1, "fairy": 1},
	"fairy":    {"normal": 1, "fighting": 2, "flying": 1, "poison": 1, "ground": 1, "rock": 1, "bug": 1, "ghost": 1, "steel": 1, "fire": 1, "water": 1, "grass": 1, "electric": 1, "psychic": 1, "ice": 1, "dragon": 2, "dark": 2, "fairy": 1},
})

