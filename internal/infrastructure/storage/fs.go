package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"svw.info/supoke/internal/domain"
)

// FS stores one JSON file per puzzle under <dir>/<n>x<n>/<id>.json.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func sizeDir(n int) string {
	return fmt.Sprintf("%dx%d", n, n)
}

func (s *FS) pathFor(id string, n int) string {
	return filepath.Join(s.dir, sizeDir(n), strings.TrimSpace(id)+".json")
}

// validID rejects IDs that would escape the storage directory or act as
// glob patterns.
func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\*?[]`) && id != "." && id != ".."
}

func (s *FS) Save(ctx context.Context, p *domain.Puzzle) error {
	if err := checkSavable(p); err != nil {
		return err
	}
	if !validID(p.ID) {
		return fmt.Errorf("invalid puzzle ID %q", p.ID)
	}
	// Ensure directory ./data/{n}x{n} exists
	target := s.pathFor(p.ID, p.Size())
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(toRecord(p))
}

func (s *FS) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	dirs, err := filepath.Glob(filepath.Join(s.dir, "*x*"))
	if err != nil {
		return nil, err
	}
	dirs = append(dirs, s.dir) // flat layout
	candidates := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			continue
		}
		candidates = append(candidates, filepath.Join(dir, id+".json"))
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var rec record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("puzzle %s: %w", id, err)
		}
		return rec.puzzle()
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *FS) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	dirs, err := filepath.Glob(filepath.Join(s.dir, "*x*"))
	if err != nil {
		return nil, err
	}
	dirs = append(dirs, s.dir)

	var out []domain.PuzzleMeta
	for _, dir := range dirs {
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			continue
		}
		ents, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			if !strings.HasSuffix(name, ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				continue
			}
			var rec record
			if err := json.Unmarshal(data, &rec); err != nil || rec.ID == "" {
				continue
			}
			out = append(out, rec.meta())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}
