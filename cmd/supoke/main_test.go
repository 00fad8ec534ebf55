package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/supoke/internal/config"
)

const gfwPuzzle = "grass,fire,water\nfire,water,grass\nwater,grass,fire\n\n" +
	"6,11,6\n11,17,11\n6,11,9\n\n" +
	"9,11,6\n11,17,11\n6,11,6\n"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"serve", "generate", "verify"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
	flag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)
}

func TestGenerateDeterministic(t *testing.T) {
	out, err := run(t, "generate", "-e", "Grass, Fire, Water", "-k", "deterministic")
	require.NoError(t, err)
	assert.Equal(t, gfwPuzzle, out)
}

func TestGenerateSeedReproducible(t *testing.T) {
	a, err := run(t, "generate", "-e", "normal,fire,water,grass,electric", "-s", "42")
	require.NoError(t, err)
	b, err := run(t, "generate", "-e", "normal,fire,water,grass,electric", "-s", "42")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateRejectsDuplicates(t *testing.T) {
	_, err := run(t, "generate", "-e", "fire,FIRE")
	assert.Error(t, err)
}

func TestGenerateStrict(t *testing.T) {
	_, err := run(t, "generate", "-e", "grass,plasma", "--strict")
	assert.Error(t, err)

	_, err = run(t, "generate", "-e", "grass,plasma")
	assert.NoError(t, err)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "supoke.yaml")
	require.NoError(t, os.WriteFile(path, []byte("elements: [grass, fire, water]\ngenerator: deterministic\n"), 0o644))
	out, err := run(t, "generate", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, gfwPuzzle, out)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("storage: tape\n"), 0o644))
	_, err = run(t, "generate", "--config", bad)
	assert.Error(t, err)
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	sol := writeFile(t, dir, "sol.csv", "grass,fire,water\nfire,water,grass\nwater,grass,fire\n")
	att := writeFile(t, dir, "att.csv", " 6, 11, 6\n11,17,11\n6,11,9\n")
	bad := writeFile(t, dir, "bad.csv", "6,11,6\n11,17,11\n6,11,\n")
	base := []string{"verify", "-e", "grass,fire,water", "-k", "deterministic"}

	out, err := run(t, append(base, "--solution", sol, "--attack", att)...)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	// the empty field decodes to 0
	out, err = run(t, append(base, "--defense", bad)...)
	assert.ErrorIs(t, err, errMismatch)
	assert.Contains(t, out, "defense (0,0): want 9, got 6")
	assert.Contains(t, out, "defense (2,2): want 6, got 0")

	_, err = run(t, base...)
	assert.Error(t, err)
}

func TestVerifyMalformed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "att.csv", "1,x\n")
	_, err := run(t, "verify", "-e", "grass,fire", "--attack", path)
	assert.Error(t, err)
}

func TestGenerateSaveThenVerifyByID(t *testing.T) {
	for _, backend := range []string{"fs", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			cmd := NewRootCommand()
			var out, errOut bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&errOut)
			cmd.SetArgs([]string{"generate", "-e", "grass,fire,water", "-k", "deterministic", "--save",
				"--persist-path", dir, "--storage", backend, "--log-level", "error"})
			require.NoError(t, cmd.Execute())
			require.Contains(t, errOut.String(), "saved ")
			id := errOut.String()[len("saved ") : errOut.Len()-1]

			sol := writeFile(t, t.TempDir(), "sol.csv", "grass,fire,water\nfire,water,grass\nwater,grass,fire\n")
			got, err := run(t, "verify", "--id", id, "--solution", sol, "--persist-path", dir, "--storage", backend)
			require.NoError(t, err)
			assert.Equal(t, "ok\n", got)
		})
	}
}

func TestOpenStorageIgnoresCase(t *testing.T) {
	cfg := config.Default()
	cfg.Storage = "SQLite"
	cfg.PersistPath = t.TempDir()
	_, closeFn, err := openStorage(cfg)
	require.NoError(t, err)
	require.NoError(t, closeFn())
	assert.FileExists(t, filepath.Join(cfg.PersistPath, "puzzles.db"))
}
