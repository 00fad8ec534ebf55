package compat

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"svw.info/supoke/internal/domain"
)

// chartFile is the on-disk shape of a custom chart:
//
//	name: house-rules
//	damage:
//	  grass: {water: 4, fire: 1}
//	  fire:  {grass: 4}
type chartFile struct {
	Name   string                    `yaml:"name"`
	Damage map[string]map[string]int `yaml:"damage"`
}

// LoadYAML decodes a custom chart. Unknown fields and negative values are rejected.
func LoadYAML(r io.Reader) (*Chart, error) {
	var f chartFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("compat: empty chart file")
		}
		return nil, fmt.Errorf("compat: parse chart: %w", err)
	}
	if len(f.Damage) == 0 {
		return nil, errors.New("compat: chart has no damage entries")
	}
	if f.Name == "" {
		f.Name = "custom"
	}
	values := make(map[domain.Element]map[domain.Element]int, len(f.Damage))
	for a, row := range f.Damage {
		attacker := domain.ParseElement(a)
		m := make(map[domain.Element]int, len(row))
		for d, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("compat: negative damage %d for %s -> %s", v, a, d)
			}
			m[domain.ParseElement(d)] = v
		}
		values[attacker] = m
	}
	return NewChart(f.Name, values), nil
}

// LoadYAMLFile opens path and decodes it with LoadYAML.
func LoadYAMLFile(path string) (*Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("compat: open chart: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}
