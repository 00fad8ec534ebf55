package domain

import "strings"

// GeneratorKind selects how the solution grid is laid out.
type GeneratorKind int

const (
	Deterministic GeneratorKind = iota // cyclic shift of the element list
	Randomized                         // shuffled elements and row order
)

func (k GeneratorKind) String() string {
	if k == Randomized {
		return "randomized"
	}
	return "deterministic"
}

func (k GeneratorKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *GeneratorKind) UnmarshalText(b []byte) error {
	*k = ParseGeneratorKind(string(b))
	return nil
}

// ParseGeneratorKind maps a flag or JSON value to a kind. Unknown values
// fall back to Randomized, matching what players get by default.
func ParseGeneratorKind(s string) GeneratorKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deterministic", "cyclic", "fixed":
		return Deterministic
	default:
		return Randomized
	}
}

// LookupMode controls what a compatibility table does with unknown pairs.
type LookupMode int

const (
	Lenient LookupMode = iota // unknown pairs resolve to the default value
	Strict                    // unknown pairs are a LookupError
)

func (m LookupMode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}

// ParseLookupMode maps "strict" to Strict; anything else is Lenient.
func ParseLookupMode(s string) LookupMode {
	if strings.EqualFold(strings.TrimSpace(s), "strict") {
		return Strict
	}
	return Lenient
}

// StrategyTier limits the deductions the hinter may use.
type StrategyTier int

const (
	StrategySingles StrategyTier = iota // row/column leaves one candidate
	StrategyClues                       // attack/defense sums pick the candidate
)

func (t StrategyTier) String() string {
	if t == StrategyClues {
		return "clues"
	}
	return "singles"
}

func (t StrategyTier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *StrategyTier) UnmarshalText(b []byte) error {
	*t = ParseStrategyTier(string(b))
	return nil
}

// ParseStrategyTier maps a request value to a tier.
func ParseStrategyTier(s string) StrategyTier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clues", "attack", "defense":
		return StrategyClues
	default:
		return StrategySingles
	}
}
