// Package cells provides the playable cells puzzle for the terminal front end.
package cells

import (
	"errors"
	"fmt"

	platformcore "github.com/vovakirdan/tui-cells/internal/core"
	"github.com/vovakirdan/tui-cells/internal/config"
	"github.com/vovakirdan/tui-cells/internal/games/cells/core"
	"github.com/vovakirdan/tui-cells/internal/games/cells/levels"
)

// Mode represents the game mode.
type Mode string

const (
	ModePuzzle  Mode = "puzzle"
	ModeSandbox Mode = "sandbox"
)

// Options controls how a run advances.
type Options struct {
	Stepper      core.Stepper
	AutoTickRate int // frames between automatic ticks while running
	MaxTicks     int // a run stops after this many ticks
}

// DefaultOptions returns the options used when no configuration is given.
func DefaultOptions() Options {
	return Options{
		Stepper:      core.Stepper{Phases: core.DefaultPhases},
		AutoTickRate: 15,
		MaxTicks:     500,
	}
}

// OptionsFromConfig builds run options from the loaded configuration.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	stepper, err := cfg.Stepper()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Stepper:      stepper,
		AutoTickRate: cfg.Simulation.AutoTickRate,
		MaxTicks:     cfg.Simulation.MaxTicks,
	}, nil
}

// Game implements the cells puzzle and sandbox.
type Game struct {
	mode    Mode
	opts    Options
	catalog *levels.Catalog
	level   levels.Level
	initial string // board text restored by Reset

	board    *core.Board
	arranged string // board text before the current run
	cursor   core.Coord
	grabbed  bool
	grabFrom core.Coord

	// Run state
	running bool
	frames  int
	ticks   int
	status  core.Status

	// Screen dimensions
	screenW int
	screenH int

	solved   bool
	quit     bool
	tooSmall bool

	message string
	failed  bool // message reports a refused action
}

// NewPuzzle creates a game for a catalog level. The catalog is used to
// continue with the next level after a win and may be nil.
func NewPuzzle(cat *levels.Catalog, lvl levels.Level, opts Options) (*Game, error) {
	if err := core.Validate(lvl.Board); err != nil {
		return nil, fmt.Errorf("level %s/%d: %w", lvl.Collection, lvl.Number, err)
	}
	return &Game{
		mode:    ModePuzzle,
		opts:    normalize(opts),
		catalog: cat,
		level:   lvl,
		initial: lvl.Board,
	}, nil
}

// NewSandbox creates a free-editing game starting from b. A nil board
// starts from an empty width x height board.
func NewSandbox(b *core.Board, width, height int, opts Options) *Game {
	if b == nil {
		b = core.NewBoard(width, height)
		b.SetBuildArea(core.NewArea(core.C(0, 0), core.C(width-1, height-1)))
	}
	return &Game{
		mode:    ModeSandbox,
		opts:    normalize(opts),
		initial: core.Encode(b),
	}
}

func normalize(opts Options) Options {
	def := DefaultOptions()
	if len(opts.Stepper.Phases) == 0 {
		opts.Stepper = def.Stepper
	}
	if opts.AutoTickRate <= 0 {
		opts.AutoTickRate = def.AutoTickRate
	}
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = def.MaxTicks
	}
	return opts
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeSandbox {
		return "sandbox"
	}
	return fmt.Sprintf("%s_%d", g.level.Collection, g.level.Number)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeSandbox {
		return "Sandbox"
	}
	return g.level.Title()
}

// Mode returns the game mode.
func (g *Game) Mode() Mode { return g.mode }

// Level returns the level being played. It is the zero Level in sandbox mode.
func (g *Game) Level() levels.Level { return g.level }

// Board returns the live board.
func (g *Game) Board() *core.Board { return g.board }

// Cursor returns the cursor position.
func (g *Game) Cursor() core.Coord { return g.cursor }

// Message returns the status line text.
func (g *Game) Message() string { return g.message }

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.quit = false
	g.loadBoard()
	g.checkScreenSize()
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// loadBoard decodes the initial board and clears all run state.
func (g *Game) loadBoard() {
	b, err := core.Decode(g.initial)
	if err != nil {
		// Constructors validate the text, so this only guards against misuse.
		b = core.NewBoard(1, 1)
		g.fail(err)
	} else {
		g.setMessage("")
	}
	g.board = b
	g.arranged = ""
	g.cursor = g.startCursor()
	g.grabbed = false
	g.running = false
	g.frames = 0
	g.ticks = 0
	g.status = core.Ongoing
	g.solved = false
}

// startCursor places the cursor on the build area's top-left corner.
func (g *Game) startCursor() core.Coord {
	c := g.board.BuildArea().TopLeft
	if !g.board.Contains(c) {
		return core.C(0, 0)
	}
	return c
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	if g.board == nil {
		return
	}
	minW := g.board.Width()*cellWidth + 4
	minH := g.board.Height() + hudHeight + 5
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one UI frame.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	var result platformcore.StepResult

	if in.Has(platformcore.ActionBack) {
		g.quit = true
		result.State = g.State()
		return result
	}

	if g.tooSmall {
		result.State = g.State()
		return result
	}

	if g.solved {
		switch {
		case in.Has(platformcore.ActionConfirm):
			g.advanceLevel()
		case in.Has(platformcore.ActionRestart):
			g.rewind()
		}
		result.State = g.State()
		return result
	}

	g.moveCursor(in)

	switch {
	case in.Has(platformcore.ActionConfirm):
		g.toggleRun()
	case in.Has(platformcore.ActionStep):
		g.running = false
		if g.finished() {
			g.setMessage("Run finished, press R to rewind")
		} else {
			result.Solved = g.tick()
		}
	case in.Has(platformcore.ActionRestart):
		g.rewind()
	case in.Has(platformcore.ActionGrab):
		g.grabOrDrop()
	case in.Has(platformcore.ActionCycle):
		g.edit(func(c core.Coord) error { return core.CycleCell(g.board, c) })
	case in.Has(platformcore.ActionRotate):
		g.edit(func(c core.Coord) error {
			ok, err := core.RotateCell(g.board, c)
			if err == nil && !ok {
				return errNothingToRotate
			}
			return err
		})
	case in.Has(platformcore.ActionDelete):
		g.edit(func(c core.Coord) error { return core.RemoveCell(g.board, c) })
	}

	if g.running {
		g.frames++
		if g.frames%g.opts.AutoTickRate == 0 {
			result.Solved = g.tick()
		}
	}

	result.State = g.State()
	return result
}

var errNothingToRotate = errors.New("nothing to rotate here")

// moveCursor applies arrow input, clamped to the board.
func (g *Game) moveCursor(in platformcore.InputFrame) {
	var d core.Dir
	switch {
	case in.Has(platformcore.ActionUp):
		d = core.DirUp
	case in.Has(platformcore.ActionRight):
		d = core.DirRight
	case in.Has(platformcore.ActionDown):
		d = core.DirDown
	case in.Has(platformcore.ActionLeft):
		d = core.DirLeft
	default:
		return
	}
	if next, ok := g.board.Neighbor(g.cursor, d); ok {
		g.cursor = next
	}
}

// finished reports whether the current run cannot continue.
func (g *Game) finished() bool {
	if g.ticks == 0 {
		return false
	}
	return g.status != core.Ongoing || g.ticks >= g.opts.MaxTicks
}

// toggleRun starts or pauses automatic ticking.
func (g *Game) toggleRun() {
	if g.running {
		g.running = false
		g.setMessage(fmt.Sprintf("Paused at tick %d", g.ticks))
		return
	}
	if g.finished() {
		g.setMessage("Run finished, press R to rewind")
		return
	}
	g.grabbed = false
	g.running = true
	g.frames = 0
	g.setMessage("Running")
}

// tick advances the simulation once. It returns a completion record when
// the tick solved a puzzle level.
func (g *Game) tick() *platformcore.Completion {
	if g.ticks == 0 {
		g.arranged = core.Encode(g.board)
		g.grabbed = false
	}
	g.status = g.opts.Stepper.Advance(g.board)
	g.ticks++

	switch g.status {
	case core.Completed:
		g.running = false
		if g.mode == ModeSandbox {
			g.setMessage(fmt.Sprintf("All enemies destroyed after %d ticks", g.ticks))
			return nil
		}
		g.solved = true
		g.setMessage(fmt.Sprintf("Solved in %d ticks", g.ticks))
		return &platformcore.Completion{
			Collection: g.level.Collection,
			Level:      g.level.Number,
			Ticks:      g.ticks,
			Board:      g.arranged,
		}
	case core.Blocked:
		g.running = false
		g.setMessage(fmt.Sprintf("Blocked after %d ticks, press R to rewind", g.ticks))
	default:
		if g.ticks >= g.opts.MaxTicks {
			g.running = false
			g.setMessage(fmt.Sprintf("Stopped after %d ticks, press R to rewind", g.ticks))
		}
	}
	return nil
}

// rewind restores the arrangement made before the current run.
func (g *Game) rewind() {
	if g.ticks == 0 {
		g.running = false
		g.grabbed = false
		return
	}
	b, err := core.Decode(g.arranged)
	if err != nil {
		g.fail(err)
		return
	}
	g.board = b
	g.arranged = ""
	g.running = false
	g.frames = 0
	g.ticks = 0
	g.status = core.Ongoing
	g.solved = false
	g.setMessage("Rewound")
}

// advanceLevel continues with the next catalog level, or leaves the game
// when the collection is done.
func (g *Game) advanceLevel() {
	if g.catalog == nil {
		g.quit = true
		return
	}
	next, ok := g.catalog.Next(g.level.Collection, g.level.Number)
	if !ok {
		g.quit = true
		return
	}
	g.level = next
	g.initial = next.Board
	g.loadBoard()
	g.checkScreenSize()
}

// beginEdit reports whether the board may be changed right now. In sandbox
// mode an edit after a run adopts the current board as the new arrangement.
func (g *Game) beginEdit() bool {
	if g.running {
		g.fail(errors.New("stop the simulation to edit"))
		return false
	}
	if g.ticks > 0 {
		if g.mode == ModePuzzle {
			g.fail(errors.New("press R to rewind before rearranging"))
			return false
		}
		g.ticks = 0
		g.arranged = ""
		g.status = core.Ongoing
	}
	return true
}

// grabOrDrop picks up the cell under the cursor, or drops the held cell.
func (g *Game) grabOrDrop() {
	if !g.beginEdit() {
		return
	}
	if !g.grabbed {
		if g.mode == ModePuzzle && !g.board.BuildArea().Contains(g.cursor) {
			g.fail(core.ErrOutsideBuildArea)
			return
		}
		if g.board.At(g.cursor) == core.NoCell {
			g.fail(core.ErrEmptySource)
			return
		}
		g.grabbed = true
		g.grabFrom = g.cursor
		g.setMessage("")
		return
	}

	g.grabbed = false
	if g.cursor == g.grabFrom {
		return
	}
	var err error
	if g.mode == ModePuzzle {
		err = core.MoveWithinBuildArea(g.board, g.grabFrom, g.cursor)
	} else {
		err = core.Move(g.board, g.grabFrom, g.cursor)
	}
	if err != nil {
		g.fail(err)
		return
	}
	g.setMessage("")
}

// edit applies a sandbox-only operation at the cursor.
func (g *Game) edit(op func(core.Coord) error) {
	if g.mode != ModeSandbox || !g.beginEdit() {
		return
	}
	g.grabbed = false
	if err := op(g.cursor); err != nil {
		g.fail(err)
		return
	}
	g.setMessage("")
}

func (g *Game) setMessage(msg string) {
	g.message = msg
	g.failed = false
}

func (g *Game) fail(err error) {
	g.message = err.Error()
	g.failed = true
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Ticks:    g.ticks,
		Running:  g.running,
		Solved:   g.solved,
		GameOver: g.quit,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	if g.mode == ModeSandbox {
		return "Arrows Space:Grab C:Cycle O:Rotate X:Delete Enter:Run N:Step R:Rewind B:Back"
	}
	return "Arrows: Move | Space: Grab | Enter: Run | N: Step | R: Rewind | B: Back"
}
