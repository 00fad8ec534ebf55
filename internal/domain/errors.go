package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ReservedRunes separate fields and rows in the grid text form, so no
// element symbol may contain them.
const ReservedRunes = ",\r\n"

var (
	// ErrInvalidElementSet reports an empty or duplicate-containing element list.
	ErrInvalidElementSet = errors.New("invalid element set")
	// ErrLookup reports a compatibility pair missing from every table.
	ErrLookup = errors.New("compatibility lookup failed")
	// ErrMalformedGrid reports encoded grid text that cannot be decoded.
	ErrMalformedGrid = errors.New("malformed grid")
)

// InvalidElementSetError carries the reason an element list was rejected.
type InvalidElementSetError struct {
	Reason    string
	Duplicate Element
}

func (e *InvalidElementSetError) Error() string {
	if e.Duplicate != "" {
		return fmt.Sprintf("%s: duplicate element %q", ErrInvalidElementSet, e.Duplicate)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidElementSet, e.Reason)
}

func (e *InvalidElementSetError) Is(target error) bool { return target == ErrInvalidElementSet }

// LookupError names the pair a strict table could not resolve.
type LookupError struct {
	Attacker Element
	Defender Element
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: no value for %q -> %q", ErrLookup, e.Attacker, e.Defender)
}

func (e *LookupError) Is(target error) bool { return target == ErrLookup }

// MalformedGridError locates the field that failed to decode.
// Line and Field are 1-based.
type MalformedGridError struct {
	Line  int
	Field int
	Value string
	Err   error
}

func (e *MalformedGridError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %v", ErrMalformedGrid, e.Err)
	}
	if e.Field == 0 {
		return fmt.Sprintf("%s: line %d: %v", ErrMalformedGrid, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: line %d field %d (%q): %v", ErrMalformedGrid, e.Line, e.Field, e.Value, e.Err)
}

func (e *MalformedGridError) Is(target error) bool { return target == ErrMalformedGrid }

func (e *MalformedGridError) Unwrap() error { return e.Err }

// ValidateElements checks that elements is non-empty and duplicate free.
func ValidateElements(elements []Element) error {
	if len(elements) == 0 {
		return &InvalidElementSetError{Reason: "no elements"}
	}
	seen := make(map[Element]struct{}, len(elements))
	for _, e := range elements {
		if e == "" {
			return &InvalidElementSetError{Reason: "empty element symbol"}
		}
		if strings.ContainsAny(string(e), ReservedRunes) || strings.TrimSpace(string(e)) != string(e) {
			return &InvalidElementSetError{Reason: fmt.Sprintf("element %q cannot be written as grid text", e)}
		}
		if _, ok := seen[e]; ok {
			return &InvalidElementSetError{Duplicate: e}
		}
		seen[e] = struct{}{}
	}
	return nil
}
