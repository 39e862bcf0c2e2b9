package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-cells/internal/games/cells/core"
)

// frame is one /ws/run message. Tick 0 carries the decoded board.
type frame struct {
	Tick   int    `json:"tick"`
	Board  string `json:"board"`
	Status string `json:"status"`
}

type runParams struct {
	board    *core.Board
	stepper  core.Stepper
	interval time.Duration
	maxTicks int
}

func (s *Server) parseRunParams(r *http.Request) (runParams, error) {
	q := r.URL.Query()
	p := runParams{interval: s.opts.StreamInterval, maxTicks: s.opts.MaxTicks}

	b, err := core.Decode(q.Get("board"))
	if err != nil {
		return p, err
	}
	p.board = b

	if v := q.Get("interval"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return p, fmt.Errorf("invalid interval %q", v)
		}
		p.interval = time.Duration(ms) * time.Millisecond
	}
	if v := q.Get("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > s.opts.MaxTicks {
			return p, fmt.Errorf("max must be between 1 and %d", s.opts.MaxTicks)
		}
		p.maxTicks = n
	}

	var phases []string
	if v := q.Get("phases"); v != "" {
		phases = strings.Split(v, ",")
	}
	if p.stepper, err = s.stepper(phases); err != nil {
		return p, err
	}
	return p, nil
}

// handleRun streams a simulation run over a WebSocket, one frame per
// tick, and closes once the run stops or the tick limit is reached.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	p, err := s.parseRunParams(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// The client sends nothing; reading only detects the close.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					s.logger.Debug("stream reader stopped", "error", err)
				}
				return
			}
		}
	}()

	status := core.Ongoing
	if err := conn.WriteJSON(frame{Tick: 0, Board: core.Encode(p.board), Status: status.String()}); err != nil {
		return
	}

	ticker := time.NewTicker(max(p.interval, time.Millisecond))
	defer ticker.Stop()

	tick := 0
	for status == core.Ongoing && tick < p.maxTicks {
		select {
		case <-gone:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
		status = p.stepper.Advance(p.board)
		tick++
		if err := conn.WriteJSON(frame{Tick: tick, Board: core.Encode(p.board), Status: status.String()}); err != nil {
			if !errors.Is(err, websocket.ErrCloseSent) {
				s.logger.Debug("stream write failed", "error", err)
			}
			return
		}
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, status.String())
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	s.logger.Debug("stream finished", "ticks", tick, "status", status)

	select {
	case <-gone:
	case <-time.After(time.Second):
	}
}
