package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/matryer/way"

	"github.com/vovakirdan/tui-cells/internal/games/cells/core"
	"github.com/vovakirdan/tui-cells/internal/storage"
)

// maxBodyBytes bounds request bodies. A board string for MaxCells
// distinct cells stays well below it.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"` // malformed board subfield
}

type collectionResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Levels int    `json:"levels"`
}

type levelResponse struct {
	Collection string `json:"collection"`
	Number     int    `json:"number"`
	Name       string `json:"name"`
	Board      string `json:"board"`
	Help       string `json:"help,omitempty"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	BuildArea  string `json:"build_area"`
	Enemies    int    `json:"enemies"`
}

type stepRequest struct {
	Board  string   `json:"board"`
	Ticks  int      `json:"ticks"`
	Phases []string `json:"phases"`
}

type stepResponse struct {
	Board  string `json:"board"`
	Status string `json:"status"`
	Ticks  int    `json:"ticks"`
}

type validateRequest struct {
	Board string `json:"board"`
}

type validateResponse struct {
	Valid  bool   `json:"valid"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Board  string `json:"board,omitempty"` // canonical encoding
}

type boardResponse struct {
	Name      string `json:"name"`
	Board     string `json:"board"`
	UpdatedAt string `json:"updated_at"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("cannot write response", "error", err)
	}
}

// writeError reports err, naming the board subfield for decode errors.
func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	var de *core.DecodeError
	if errors.As(err, &de) {
		resp.Field = de.Field
	}
	s.writeJSON(w, status, resp)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// stepper returns the configured stepper, or one for the given phase
// names when any are present.
func (s *Server) stepper(phases []string) (core.Stepper, error) {
	if len(phases) == 0 {
		return s.opts.Stepper, nil
	}
	order, err := core.ParsePhases(phases)
	if err != nil {
		return core.Stepper{}, err
	}
	return core.Stepper{Phases: order}, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": core.Version})
}

func (s *Server) handleCollections(w http.ResponseWriter, _ *http.Request) {
	resp := []collectionResponse{}
	if s.opts.Catalog != nil {
		for _, c := range s.opts.Catalog.Collections() {
			resp = append(resp, collectionResponse{ID: c.ID, Name: c.Name, Levels: len(c.Levels)})
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	id := way.Param(r.Context(), "id")
	n, err := strconv.Atoi(way.Param(r.Context(), "n"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid level number %q", way.Param(r.Context(), "n")))
		return
	}
	if s.opts.Catalog == nil {
		s.writeError(w, http.StatusNotFound, errors.New("no level catalog"))
		return
	}
	lvl, err := s.opts.Catalog.Level(id, n)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	b, err := lvl.NewBoard()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, levelResponse{
		Collection: lvl.Collection,
		Number:     lvl.Number,
		Name:       lvl.Title(),
		Board:      lvl.Board,
		Help:       lvl.Help,
		Width:      b.Width(),
		Height:     b.Height(),
		BuildArea:  b.BuildArea().String(),
		Enemies:    b.Count(core.KindEnemy),
	})
}

// handleStep advances a board by up to the requested number of ticks,
// stopping early once the run is blocked or completed.
func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	var req stepRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Ticks == 0 {
		req.Ticks = 1
	}
	if req.Ticks < 0 || req.Ticks > s.opts.MaxTicks {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("ticks must be between 1 and %d", s.opts.MaxTicks))
		return
	}
	stepper, err := s.stepper(req.Phases)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	b, err := core.Decode(req.Board)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	status, ticks := stepper.Run(b, req.Ticks)
	s.writeJSON(w, http.StatusOK, stepResponse{
		Board:  core.Encode(b),
		Status: status.String(),
		Ticks:  ticks,
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	b, err := core.Decode(req.Board)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, validateResponse{
		Valid:  true,
		Width:  b.Width(),
		Height: b.Height(),
		Board:  core.Encode(b),
	})
}

func (s *Server) handleListBoards(w http.ResponseWriter, _ *http.Request) {
	boards, err := s.opts.Store.ListBoards()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	resp := make([]boardResponse, 0, len(boards))
	for _, b := range boards {
		resp = append(resp, toBoardResponse(b))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	b, err := s.opts.Store.LoadBoard(way.Param(r.Context(), "name"))
	if err != nil {
		s.writeError(w, storageStatus(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, toBoardResponse(b))
}

func (s *Server) handlePutBoard(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(way.Param(r.Context(), "name"))
	var req validateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := core.Validate(req.Board); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.opts.Store.SaveBoard(name, req.Board); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	saved, err := s.opts.Store.LoadBoard(name)
	if err != nil {
		s.writeError(w, storageStatus(err), err)
		return
	}
	s.logger.Info("board saved", "name", name)
	s.writeJSON(w, http.StatusOK, toBoardResponse(saved))
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	if err := s.opts.Store.DeleteBoard(way.Param(r.Context(), "name")); err != nil {
		s.writeError(w, storageStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toBoardResponse(b storage.SavedBoard) boardResponse {
	return boardResponse{
		Name:      b.Name,
		Board:     b.Board,
		UpdatedAt: b.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func storageStatus(err error) int {
	if errors.Is(err, storage.ErrBoardNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
