package httpadapter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matryer/way"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"svw.info/supoke/internal/compat"
	"svw.info/supoke/internal/domain"
	"svw.info/supoke/internal/generator"
	"svw.info/supoke/internal/hint"
	"svw.info/supoke/internal/infrastructure/storage"
	"svw.info/supoke/internal/solver"
	"svw.info/supoke/internal/usecase"
	"svw.info/supoke/internal/validator"
)

var gfw = []domain.Element{"grass", "fire", "water"}

func newRouter(t *testing.T) *way.Router {
	t.Helper()
	table := compat.Default(domain.Lenient)
	uc := usecase.NewService(
		solver.NewBacktrackingSolver(table),
		generator.NewAssembler(table),
		validator.New(),
		hint.NewSingles(table),
		storage.NewFS(t.TempDir()),
		zap.NewNop(),
	)
	router := way.NewRouter()
	New(uc, gfw, domain.Deterministic).Register(router)
	return router
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func decodeResp[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestGenerateDefaults(t *testing.T) {
	rec := do(t, newRouter(t), http.MethodPost, "/api/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeResp[generateResp](t, rec)
	require.NotNil(t, resp.Puzzle)
	assert.Equal(t, domain.Deterministic, resp.Puzzle.Kind)
	assert.Equal(t, domain.SolutionGrid{
		{"grass", "fire", "water"},
		{"fire", "water", "grass"},
		{"water", "grass", "fire"},
	}, resp.Puzzle.Solution)
	assert.Equal(t, domain.OverlayGrid{{6, 11, 6}, {11, 17, 11}, {6, 11, 9}}, resp.Puzzle.Attack)
	assert.Equal(t, domain.OverlayGrid{{9, 11, 6}, {11, 17, 11}, {6, 11, 6}}, resp.Puzzle.Defense)
	assert.Equal(t, 9, resp.Nodes)
	assert.Contains(t, rec.Body.String(), `"kind":"deterministic"`)
}

func TestGenerateRejectsDuplicates(t *testing.T) {
	rec := do(t, newRouter(t), http.MethodPost, "/api/generate", generateReq{Elements: []string{"Fire", "fire"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decodeResp[generateResp](t, rec).Error)
}

func TestGenerateInvalidJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMethodNotRouted(t *testing.T) {
	rec := do(t, newRouter(t), http.MethodGet, "/api/generate", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidate(t *testing.T) {
	b := domain.Board{Elements: gfw, Cells: domain.SolutionGrid{
		{"grass", "grass", ""},
		{"", "", ""},
		{"", "", ""},
	}}
	rec := do(t, newRouter(t), http.MethodPost, "/api/validate", validateReq{Board: b})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResp[validateResp](t, rec)
	assert.False(t, resp.OK)
	assert.Equal(t, []domain.CellCoord{{Row: 0, Col: 1}}, resp.Conflicts)
}

func TestSolveAndHint(t *testing.T) {
	router := newRouter(t)
	gen := decodeResp[generateResp](t, do(t, router, http.MethodPost, "/api/generate", nil))
	b := domain.Board{
		Elements: gen.Puzzle.Elements,
		Cells:    domain.NewSolutionGrid(3),
		Attack:   gen.Puzzle.Attack,
		Defense:  gen.Puzzle.Defense,
	}

	rec := do(t, router, http.MethodPost, "/api/solve", solveReq{Board: b, CheckUnique: true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sol := decodeResp[solveResp](t, rec)
	require.NotNil(t, sol.Unique)
	assert.Len(t, sol.Cells, 3)

	b.Cells[0][1] = "fire"
	b.Cells[1][0] = "fire"
	rec = do(t, router, http.MethodPost, "/api/hint", hintReq{Board: b, MaxTier: "clues"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	hr := decodeResp[hintResp](t, rec)
	require.True(t, hr.Found)
	assert.Equal(t, domain.StrategyClues, hr.Hint.Strategy)
	assert.Equal(t, domain.Element("grass"), hr.Hint.Element)
}

func TestSolveRejectsBadShape(t *testing.T) {
	b := domain.Board{Elements: gfw, Cells: domain.SolutionGrid{{"grass"}}}
	rec := do(t, newRouter(t), http.MethodPost, "/api/solve", solveReq{Board: b})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveLoadMoveExport(t *testing.T) {
	router := newRouter(t)
	gen := decodeResp[generateResp](t, do(t, router, http.MethodPost, "/api/generate", nil))
	pj := *gen.Puzzle
	draft := draftJSON{Name: "starter", Kind: pj.Kind, Elements: pj.Elements, Solution: pj.Solution}

	rec := do(t, router, http.MethodPost, "/api/save", saveReq{Puzzle: draft})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id := decodeResp[saveResp](t, rec).ID
	require.NotEmpty(t, id)

	rec = do(t, router, http.MethodPost, "/api/load", loadReq{ID: id})
	require.Equal(t, http.StatusOK, rec.Code)
	loaded := decodeResp[loadResp](t, rec).Puzzle
	assert.Equal(t, "starter", loaded.Name)
	assert.Equal(t, pj.Attack, loaded.Attack)

	rec = do(t, router, http.MethodGet, "/api/list", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeResp[listResp](t, rec)
	require.Len(t, list.Puzzles, 1)
	assert.Equal(t, 3, list.Puzzles[0].Size)

	rec = do(t, router, http.MethodPost, "/api/move", map[string]any{"id": id, "row": 0, "col": 0, "element": "Grass"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decodeResp[moveResp](t, rec).Correct)

	rec = do(t, router, http.MethodPost, "/api/move", map[string]any{"id": id, "row": 5, "col": 0, "element": "grass"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	wrong := pj.Attack
	wrong[2][2] = 1
	rec = do(t, router, http.MethodPost, "/api/check", checkReq{ID: id, Attack: wrong})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cr := decodeResp[checkResp](t, rec)
	assert.False(t, cr.OK)
	require.Len(t, cr.Mismatches, 1)
	assert.Equal(t, "attack", cr.Mismatches[0].Grid)

	rec = do(t, router, http.MethodGet, "/api/puzzles/"+id+"/attack", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "6,11,6\n11,17,11\n6,11,9\n", rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/puzzles/"+id+"/other", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveRejectsRaggedGrid(t *testing.T) {
	draft := draftJSON{
		Elements: gfw,
		Solution: domain.SolutionGrid{{"grass", "fire", "water"}},
	}
	rec := do(t, newRouter(t), http.MethodPost, "/api/save", saveReq{Puzzle: draft})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	draft.Solution = domain.SolutionGrid{{"grass", "fire", "water"}, {"grass", "fire", "water"}, {"water", "grass", "fire"}}
	rec = do(t, newRouter(t), http.MethodPost, "/api/save", saveReq{Puzzle: draft})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveDerivesOverlays(t *testing.T) {
	router := newRouter(t)
	zeros := [][]int{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	rec := do(t, router, http.MethodPost, "/api/save", map[string]any{
		"puzzle": map[string]any{
			"elements": gfw,
			"solution": [][]string{{"grass", "fire", "water"}, {"fire", "water", "grass"}, {"water", "grass", "fire"}},
			"attack":   zeros,
			"defense":  zeros,
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id := decodeResp[saveResp](t, rec).ID

	rec = do(t, router, http.MethodPost, "/api/load", loadReq{ID: id})
	require.Equal(t, http.StatusOK, rec.Code)
	loaded := decodeResp[loadResp](t, rec).Puzzle
	assert.Equal(t, domain.OverlayGrid{{6, 11, 6}, {11, 17, 11}, {6, 11, 9}}, loaded.Attack)
	assert.Equal(t, domain.OverlayGrid{{9, 11, 6}, {11, 17, 11}, {6, 11, 6}}, loaded.Defense)

	rec = do(t, router, http.MethodPost, "/api/check", checkReq{ID: id, Attack: loaded.Attack, Defense: loaded.Defense})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeResp[checkResp](t, rec).OK)
}

func TestHintRejectsMisshapenBoard(t *testing.T) {
	router := newRouter(t)
	for _, b := range []domain.Board{
		{Elements: gfw, Cells: domain.SolutionGrid{{}, {}, {}}},
		{Elements: gfw, Cells: domain.NewSolutionGrid(3), Attack: domain.OverlayGrid{{6}}},
	} {
		rec := do(t, router, http.MethodPost, "/api/hint", hintReq{Board: b, MaxTier: "clues"})
		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		assert.NotEmpty(t, decodeResp[hintResp](t, rec).Error)
	}
}

func TestLoadMissing(t *testing.T) {
	router := newRouter(t)
	rec := do(t, router, http.MethodPost, "/api/load", loadReq{ID: "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/load", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/puzzles/nope/solution", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListEmpty(t *testing.T) {
	rec := do(t, newRouter(t), http.MethodGet, "/api/list", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"puzzles":[]`)
}
