package api

import (
	"github.com/matryer/way"
)

// Route paths.
const (
	pathHealth      = "/healthz"
	pathCollections = "/collections"
	pathLevel       = "/collections/:id/levels/:n"
	pathStep        = "/step"
	pathValidate    = "/validate"
	pathRun         = "/ws/run"
	pathBoards      = "/boards"
	pathBoard       = "/boards/:name"
)

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", pathHealth, s.handleHealth)
	s.router.HandleFunc("GET", pathCollections, s.handleCollections)
	s.router.HandleFunc("GET", pathLevel, s.handleLevel)
	s.router.HandleFunc("POST", pathStep, s.handleStep)
	s.router.HandleFunc("POST", pathValidate, s.handleValidate)
	s.router.HandleFunc("GET", pathRun, s.handleRun)

	if s.opts.Store != nil {
		s.router.HandleFunc("GET", pathBoards, s.handleListBoards)
		s.router.HandleFunc("GET", pathBoard, s.handleGetBoard)
		s.router.HandleFunc("PUT", pathBoard, s.handlePutBoard)
		s.router.HandleFunc("DELETE", pathBoard, s.handleDeleteBoard)
	}
}
