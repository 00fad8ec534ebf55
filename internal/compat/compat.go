// Package compat resolves directional damage values between elements.
//
// A Table consults an ordered list of Sources. Binding a table to the
// active element set of a puzzle moves the sources that know every active
// element to the front, so a small hand-tuned chart wins over a broad one
// whenever it covers the whole puzzle. Pairs no source defines resolve to
// DefaultDamage in Lenient mode and to a *domain.LookupError in Strict mode.
package compat

import (
	"svw.info/supoke/internal/domain"
)

// DefaultDamage is returned by lenient tables for pairs no source defines.
const DefaultDamage = 1

// Source is one layer of compatibility data.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string
	// Damage returns the value for attacker -> defender and whether it is defined.
	Damage(attacker, defender domain.Element) (int, bool)
	// Knows reports whether e appears in the source's domain.
	Knows(e domain.Element) bool
}

// Table is a read-only, priority ordered lookup over sources.
// It is safe for concurrent use.
type Table struct {
	mode    domain.LookupMode
	sources []Source
}

// New builds a table trying sources in the given order.
func New(mode domain.LookupMode, sources ...Source) *Table {
	return &Table{mode: mode, sources: append([]Source(nil), sources...)}
}

// Default is the built-in simplified chart backed by the full chart.
func Default(mode domain.LookupMode) *Table {
	return New(mode, Simplified(), Full())
}

// Mode reports how unknown pairs are handled.
func (t *Table) Mode() domain.LookupMode { return t.mode }

// WithMode returns a copy of t using mode.
func (t *Table) WithMode(mode domain.LookupMode) *Table {
	return New(mode, t.sources...)
}

// Sources returns the sources in lookup order.
func (t *Table) Sources() []Source { return append([]Source(nil), t.sources...) }

// Bind returns a table for a puzzle over elements: sources whose domain
// holds every element come first, the rest keep their relative order.
func (t *Table) Bind(elements []domain.Element) *Table {
	covering := make([]Source, 0, len(t.sources))
	partial := make([]Source, 0, len(t.sources))
	for _, s := range t.sources {
		if covers(s, elements) {
			covering = append(covering, s)
		} else {
			partial = append(partial, s)
		}
	}
	return New(t.mode, append(covering, partial...)...)
}

func covers(s Source, elements []domain.Element) bool {
	for _, e := range elements {
		if !s.Knows(e) {
			return false
		}
	}
	return true
}

// Damage returns the value attacker deals to defender.
func (t *Table) Damage(attacker, defender domain.Element) (int, error) {
	for _, s := range t.sources {
		if v, ok := s.Damage(attacker, defender); ok {
			return v, nil
		}
	}
	if t.mode == domain.Strict {
		return 0, &domain.LookupError{Attacker: attacker, Defender: defender}
	}
	return DefaultDamage, nil
}

// MaxDamage is the largest single-pair value over elements.
func (t *Table) MaxDamage(elements []domain.Element) (int, error) {
	max := 0
	for _, a := range elements {
		for _, d := range elements {
			v, err := t.Damage(a, d)
			if err != nil {
				return 0, err
			}
			if v > max {
				max = v
			}
		}
	}
	return max, nil
}

// Missing lists the pairs over elements that no source defines.
func (t *Table) Missing(elements []domain.Element) []domain.LookupError {
	strict := t.WithMode(domain.Strict)
	var out []domain.LookupError
	for _, a := range elements {
		for _, d := range elements {
			if _, err := strict.Damage(a, d); err != nil {
				out = append(out, domain.LookupError{Attacker: a, Defender: d})
			}
		}
	}
	return out
}
