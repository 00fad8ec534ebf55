package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/supoke/internal/domain"
)

func TestDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, domain.Randomized, cfg.Kind())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
addr: ":9000"
storage: sqlite
elements: [Grass, fire, water, electric]
generator: deterministic
lookup: strict
`))
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "./data", cfg.PersistPath) // default kept
	assert.Equal(t, []domain.Element{"grass", "fire", "water", "electric"}, cfg.ElementSet())
	assert.Equal(t, domain.Deterministic, cfg.Kind())

	tbl, err := cfg.Table()
	require.NoError(t, err)
	assert.Equal(t, domain.Strict, tbl.Mode())
}

func TestParseIsCaseInsensitive(t *testing.T) {
	cfg, err := Parse([]byte("storage: SQLite\nlookup: Strict\ngenerator: Deterministic\n"))
	require.NoError(t, err)
	assert.Equal(t, "SQLite", cfg.Storage)
	assert.Equal(t, domain.Deterministic, cfg.Kind())
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"unknown field": "adress: x\n",
		"storage":       "storage: redis\n",
		"lookup":        "lookup: loose\n",
		"generator":     "generator: magic\n",
		"duplicates":    "elements: [grass, Grass]\n",
		"no elements":   "elements: []\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestTableWithCustomChart(t *testing.T) {
	dir := t.TempDir()
	chart := filepath.Join(dir, "chart.yaml")
	require.NoError(t, os.WriteFile(chart, []byte("damage:\n  grass: {water: 9}\n"), 0o644))
	path := filepath.Join(dir, "supoke.yaml")
	require.NoError(t, os.WriteFile(path, []byte("table_path: "+chart+"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	tbl, err := cfg.Table()
	require.NoError(t, err)
	v, err := tbl.Damage("grass", "water")
	require.NoError(t, err)
	assert.Equal(t, 9, v)

	cfg.TablePath = filepath.Join(dir, "missing.yaml")
	_, err = cfg.Table()
	assert.Error(t, err)
}
