// Package gridcodec converts grids to and from their flat text form:
// one grid row per line, values separated by commas.
//
// Decoding trims the whole text and every field. In integer grids an
// empty field is zero; any other field that does not parse is reported
// as a *domain.MalformedGridError. Rows of differing length are also
// malformed.
package gridcodec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"svw.info/supoke/internal/domain"
)

const (
	// FieldSep separates values within a row.
	FieldSep = ","
	// RowSep separates rows.
	RowSep = "\n"
)

// Encode renders grid using format for each value.
func Encode[T any](grid [][]T, format func(T) string) string {
	var sb strings.Builder
	for r, row := range grid {
		if r > 0 {
			sb.WriteString(RowSep)
		}
		for c, v := range row {
			if c > 0 {
				sb.WriteString(FieldSep)
			}
			sb.WriteString(format(v))
		}
	}
	return sb.String()
}

// EncodeInts renders an overlay grid.
func EncodeInts(g domain.OverlayGrid) string {
	return Encode([][]int(g), strconv.Itoa)
}

// EncodeSymbols renders an element grid verbatim.
func EncodeSymbols(g domain.SolutionGrid) string {
	return Encode([][]domain.Element(g), func(e domain.Element) string { return string(e) })
}

// Decode parses text with parse applied to every trimmed field.
// Empty text decodes to an empty grid.
func Decode[T any](text string, parse func(string) (T, error)) ([][]T, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return [][]T{}, nil
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), RowSep)
	out := make([][]T, 0, len(lines))
	width := -1
	for i, line := range lines {
		fields := strings.Split(line, FieldSep)
		if width >= 0 && len(fields) != width {
			return nil, &domain.MalformedGridError{
				Line: i + 1,
				Err:  fmt.Errorf("row has %d fields, want %d", len(fields), width),
			}
		}
		width = len(fields)
		row := make([]T, len(fields))
		for j, f := range fields {
			f = strings.TrimSpace(f)
			v, err := parse(f)
			if err != nil {
				return nil, &domain.MalformedGridError{Line: i + 1, Field: j + 1, Value: f, Err: err}
			}
			row[j] = v
		}
		out = append(out, row)
	}
	return out, nil
}

var errNotInteger = errors.New("not a non-negative integer")

// ParseInt parses an overlay value; "" is zero.
func ParseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, errNotInteger
	}
	return v, nil
}

// ParseSymbol keeps the trimmed field as the element.
func ParseSymbol(s string) (domain.Element, error) {
	return domain.Element(s), nil
}

// DecodeInts parses an overlay grid.
func DecodeInts(text string) (domain.OverlayGrid, error) {
	g, err := Decode(text, ParseInt)
	if err != nil {
		return nil, err
	}
	return domain.OverlayGrid(g), nil
}

// DecodeSymbols parses an element grid. Empty fields become empty cells.
func DecodeSymbols(text string) (domain.SolutionGrid, error) {
	g, err := Decode(text, ParseSymbol)
	if err != nil {
		return nil, err
	}
	return domain.SolutionGrid(g), nil
}
