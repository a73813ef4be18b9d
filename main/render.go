package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/TheFellow/smokesim/pkg/settings"
)

// Game is the window viewer. The simulation advances on the ebiten update
// goroutine, one step per tick.
type Game struct {
	sim   *simulation
	prefs *settings.Manager

	cells *ebiten.Image
	pix   []byte
}

func NewGame(sim *simulation, prefs *settings.Manager) *Game {
	nx, ny := sim.grid.NX(), sim.grid.NY()
	return &Game{
		sim:   sim,
		prefs: prefs,
		cells: ebiten.NewImage(nx, ny),
		pix:   make([]byte, 4*nx*ny),
	}
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.prefs.TogglePaused()
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.prefs.CycleDisplay()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.sim.setAdvectSmoke(g.prefs.ToggleSmokeAdvection())
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.sim.reset()
	}

	if g.prefs.Get().Paused {
		return nil
	}
	return g.sim.tick()
}

func (g *Game) Draw(screen *ebiten.Image) {
	s := g.prefs.Get()
	writePixels(g.pix, g.sim.grid, s.Display, g.sim.field(s.Display))
	g.cells.WritePixels(g.pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(s.Scale), float64(s.Scale))
	screen.DrawImage(g.cells, op)

	ebitenutil.DebugPrint(screen, g.sim.status(s.Display, s.Paused))
}

func (g *Game) Layout(_, _ int) (int, int) {
	scale := g.prefs.Get().Scale
	return g.sim.grid.NX() * scale, g.sim.grid.NY() * scale
}

func runWindow(sim *simulation, prefs *settings.Manager) error {
	scale := prefs.Get().Scale
	ebiten.SetWindowSize(sim.grid.NX()*scale, sim.grid.NY()*scale)
	ebiten.SetWindowTitle("SmokeSim")
	return ebiten.RunGame(NewGame(sim, prefs))
}
