package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/matryer/way"

	"svw.info/supoke/internal/domain"
	"svw.info/supoke/internal/gridcodec"
	"svw.info/supoke/internal/infrastructure/storage"
	"svw.info/supoke/internal/ports"
	"svw.info/supoke/internal/usecase"
	"svw.info/supoke/internal/validator"
)

type Handler struct {
	UC *usecase.Service
	// Elements is used when a generate request names none.
	Elements []domain.Element
	// Kind is used when a generate request names none.
	Kind domain.GeneratorKind
}

func New(uc *usecase.Service, elements []domain.Element, kind domain.GeneratorKind) *Handler {
	return &Handler{UC: uc, Elements: elements, Kind: kind}
}

func (h *Handler) Register(router *way.Router) {
	router.HandleFunc(http.MethodPost, "/api/generate", h.handleGenerate)
	router.HandleFunc(http.MethodPost, "/api/solve", h.handleSolve)
	router.HandleFunc(http.MethodPost, "/api/validate", h.handleValidate)
	router.HandleFunc(http.MethodPost, "/api/hint", h.handleHint)
	router.HandleFunc(http.MethodPost, "/api/move", h.handleMove)
	router.HandleFunc(http.MethodPost, "/api/check", h.handleCheck)
	router.HandleFunc(http.MethodPost, "/api/save", h.handleSave)
	router.HandleFunc(http.MethodPost, "/api/load", h.handleLoad)
	router.HandleFunc(http.MethodGet, "/api/list", h.handleList)
	router.HandleFunc(http.MethodGet, "/api/puzzles/:id/:grid", h.handleExport)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decode reads a JSON body; an empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidElementSet),
		errors.Is(err, domain.ErrMalformedGrid),
		errors.Is(err, domain.ErrLookup):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// puzzleJSON is the wire form of a puzzle.
type puzzleJSON struct {
	ID        string               `json:"id,omitempty"`
	Name      string               `json:"name,omitempty"`
	Notes     string               `json:"notes,omitempty"`
	Seed      int64                `json:"seed,omitempty"`
	Kind      domain.GeneratorKind `json:"kind"`
	Elements  []domain.Element     `json:"elements"`
	CreatedAt int64                `json:"createdAt,omitempty"`
	Solution  domain.SolutionGrid  `json:"solution"`
	Attack    domain.OverlayGrid   `json:"attack"`
	Defense   domain.OverlayGrid   `json:"defense"`
}

func toJSON(p *domain.Puzzle) *puzzleJSON {
	return &puzzleJSON{
		ID:        p.ID,
		Name:      p.Name,
		Notes:     p.Notes,
		Seed:      p.Seed,
		Kind:      p.Kind,
		Elements:  p.Elements(),
		CreatedAt: p.CreatedAt,
		Solution:  p.Solution(),
		Attack:    p.Attack(),
		Defense:   p.Defense(),
	}
}

// ---- Generate ----

type generateReq struct {
	Elements []string `json:"elements,omitempty"`
	Kind     string   `json:"kind,omitempty"`
	Seed     int64    `json:"seed,omitempty"`
}

type generateResp struct {
	Puzzle     *puzzleJSON `json:"puzzle,omitempty"`
	DurationMs int64       `json:"durationMs,omitempty"`
	Nodes      int         `json:"nodes,omitempty"`
	Error      string      `json:"error,omitempty"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, generateResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	elements := h.Elements
	if len(req.Elements) > 0 {
		elements = make([]domain.Element, 0, len(req.Elements))
		for _, e := range req.Elements {
			elements = append(elements, domain.ParseElement(e))
		}
	}
	kind := h.Kind
	if req.Kind != "" {
		kind = domain.ParseGeneratorKind(req.Kind)
	}
	seed := req.Seed
	if seed == 0 && kind == domain.Randomized {
		seed = time.Now().UnixNano()
	}
	p, st, err := h.UC.Generate(r.Context(), ports.GenerateRequest{Elements: elements, Kind: kind, Seed: seed})
	if err != nil {
		writeJSON(w, statusFor(err), generateResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, generateResp{
		Puzzle:     toJSON(p),
		DurationMs: st.Duration.Milliseconds(),
		Nodes:      st.Nodes,
	})
}

// ---- Validate ----

type validateReq struct {
	Board domain.Board `json:"board"`
}
type validateResp struct {
	OK        bool               `json:"ok"`
	Conflicts []domain.CellCoord `json:"conflicts,omitempty"`
	Error     string             `json:"error,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, validateResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	ok, conflicts, err := h.UC.Validate(r.Context(), &req.Board)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, validateResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, validateResp{OK: ok, Conflicts: conflicts})
}

// ---- Solve ----

type solveReq struct {
	Board       domain.Board `json:"board"`
	CheckUnique bool         `json:"checkUnique,omitempty"`
}
type solveResp struct {
	Cells      domain.SolutionGrid `json:"cells,omitempty"`
	Unique     *bool               `json:"unique,omitempty"`
	DurationMs int64               `json:"durationMs,omitempty"`
	Nodes      int                 `json:"nodes,omitempty"`
	Error      string              `json:"error,omitempty"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, solveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	out, st, err := h.UC.Solve(r.Context(), &req.Board)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, solveResp{Error: err.Error(), DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes})
		return
	}
	resp := solveResp{Cells: out.Cells, DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes}
	if req.CheckUnique {
		unique, ust, err := h.UC.Unique(r.Context(), &req.Board)
		if err != nil {
			writeJSON(w, statusFor(err), solveResp{Error: err.Error()})
			return
		}
		resp.Unique = &unique
		resp.Nodes += ust.Nodes
		resp.DurationMs += ust.Duration.Milliseconds()
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- Hint ----

type hintReq struct {
	Board   domain.Board `json:"board"`
	MaxTier string       `json:"maxTier,omitempty"`
}
type hintResp struct {
	Found bool         `json:"found"`
	Hint  *domain.Hint `json:"hint,omitempty"`
	Error string       `json:"error,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	var req hintReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, hintResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	hh, ok, err := h.UC.Hint(r.Context(), &req.Board, domain.ParseStrategyTier(req.MaxTier))
	if err != nil {
		writeJSON(w, statusFor(err), hintResp{Error: err.Error()})
		return
	}
	resp := hintResp{Found: ok}
	if ok {
		resp.Hint = &hh
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- Move / Check ----

type moveReq struct {
	ID string `json:"id"`
	domain.Move
}
type moveResp struct {
	Correct bool   `json:"correct"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveReq
	if err := decode(r, &req); err != nil || req.ID == "" {
		writeJSON(w, http.StatusBadRequest, moveResp{Error: "invalid JSON or missing id"})
		return
	}
	req.Element = domain.ParseElement(string(req.Element))
	ok, err := h.UC.CheckMove(r.Context(), req.ID, req.Move)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, moveResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, moveResp{Correct: ok})
}

type checkReq struct {
	ID      string              `json:"id"`
	Cells   domain.SolutionGrid `json:"cells,omitempty"`
	Attack  domain.OverlayGrid  `json:"attack,omitempty"`
	Defense domain.OverlayGrid  `json:"defense,omitempty"`
}
type checkResp struct {
	OK         bool                 `json:"ok"`
	Mismatches []validator.Mismatch `json:"mismatches,omitempty"`
	Error      string               `json:"error,omitempty"`
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkReq
	if err := decode(r, &req); err != nil || req.ID == "" {
		writeJSON(w, http.StatusBadRequest, checkResp{Error: "invalid JSON or missing id"})
		return
	}
	mm, err := h.UC.CheckGrids(r.Context(), req.ID, req.Cells, req.Attack, req.Defense)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, checkResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, checkResp{OK: len(mm) == 0, Mismatches: mm})
}

// ---- Save / Load / List ----

// draftJSON is what a client may save. Overlays are derived from the
// solution, so any attack or defense grids sent along are ignored.
type draftJSON struct {
	ID        string               `json:"id,omitempty"`
	Name      string               `json:"name,omitempty"`
	Notes     string               `json:"notes,omitempty"`
	Seed      int64                `json:"seed,omitempty"`
	Kind      domain.GeneratorKind `json:"kind"`
	Elements  []domain.Element     `json:"elements"`
	CreatedAt int64                `json:"createdAt,omitempty"`
	Solution  domain.SolutionGrid  `json:"solution"`
}

type saveReq struct {
	Puzzle draftJSON `json:"puzzle"`
}
type saveResp struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var req saveReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, saveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	d := req.Puzzle
	p, err := h.UC.Derive(r.Context(), d.Elements, d.Solution)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, saveResp{Error: err.Error()})
		return
	}
	p.ID, p.Name, p.Notes = d.ID, d.Name, d.Notes
	p.Seed, p.Kind, p.CreatedAt = d.Seed, d.Kind, d.CreatedAt
	if p.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, saveResp{Error: err.Error()})
			return
		}
		p.ID = id.String()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().UnixNano()
	}
	if err := h.UC.Save(r.Context(), p); err != nil {
		writeJSON(w, statusFor(err), saveResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, saveResp{ID: p.ID})
}

type loadReq struct {
	ID string `json:"id"`
}
type loadResp struct {
	Puzzle *puzzleJSON `json:"puzzle,omitempty"`
	Error  string      `json:"error,omitempty"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadReq
	if err := decode(r, &req); err != nil || req.ID == "" {
		writeJSON(w, http.StatusBadRequest, loadResp{Error: "invalid JSON or missing id"})
		return
	}
	p, err := h.UC.Load(r.Context(), req.ID)
	if err != nil {
		writeJSON(w, statusFor(err), loadResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, loadResp{Puzzle: toJSON(p)})
}

type listResp struct {
	Puzzles []domain.PuzzleMeta `json:"puzzles"`
	Error   string              `json:"error,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ps, err := h.UC.List(r.Context())
	if err != nil {
		writeJSON(w, statusFor(err), listResp{Error: err.Error()})
		return
	}
	if ps == nil {
		ps = []domain.PuzzleMeta{}
	}
	writeJSON(w, http.StatusOK, listResp{Puzzles: ps})
}

// ---- Export ----

// handleExport writes one grid of a stored puzzle as CSV text.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	p, err := h.UC.Load(r.Context(), way.Param(r.Context(), "id"))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	var body string
	switch way.Param(r.Context(), "grid") {
	case "solution":
		body = gridcodec.EncodeSymbols(p.Solution())
	case "attack":
		body = gridcodec.EncodeInts(p.Attack())
	case "defense":
		body = gridcodec.EncodeInts(p.Defense())
	default:
		http.Error(w, "grid must be solution, attack or defense", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	_, _ = io.WriteString(w, body+gridcodec.RowSep)
}
