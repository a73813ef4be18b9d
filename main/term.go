package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/TheFellow/smokesim/pkg/settings"
)

const termFrame = 33 * time.Millisecond

// terminal draws each cell as two blank columns with a coloured background,
// grid row 0 at the bottom.
type terminal struct {
	screen tcell.Screen
	sim    *simulation
	prefs  *settings.Manager
}

func runTerminal(sim *simulation, prefs *settings.Manager) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init terminal screen: %w", err)
	}
	defer screen.Fini()

	t := &terminal{screen: screen, sim: sim, prefs: prefs}
	return t.run()
}

func (t *terminal) run() error {
	ticker := time.NewTicker(termFrame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(t.screen.PollEvent, events, done)

	for {
		select {
		case ev := <-events:
			if !t.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if !t.prefs.Get().Paused {
				if err := t.sim.tick(); err != nil {
					return err
				}
			}
			t.draw()
		}
	}
}

// pumpEvents forwards polled events until poll returns nil or done closes.
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent returns false once the viewer should quit.
func (t *terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				t.prefs.TogglePaused()
			case 'd':
				t.prefs.CycleDisplay()
			case 'm':
				t.sim.setAdvectSmoke(t.prefs.ToggleSmokeAdvection())
			case 'r':
				t.sim.reset()
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *terminal) draw() {
	t.screen.Clear()

	s := t.prefs.Get()
	g := t.sim.grid
	f := t.sim.field(s.Display)
	lo, hi := colorRange(s.Display, f)

	width, height := t.screen.Size()
	ny := g.NY()
	for i := 0; i < ny; i++ {
		y := ny - 1 - i
		if y >= height-2 {
			continue
		}
		for j := 0; j < g.NX() && 2*j+1 < width; j++ {
			c := cellColor(g, f, i, j, lo, hi)
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			t.screen.SetContent(2*j, y, ' ', nil, style)
			t.screen.SetContent(2*j+1, y, ' ', nil, style)
		}
	}

	status := t.sim.status(s.Display, s.Paused)
	row := min(ny, height-2)
	x := 0
	for _, r := range status {
		if r == '\n' {
			row++
			x = 0
			continue
		}
		if x < width && row < height {
			t.screen.SetContent(x, row, r, nil, tcell.StyleDefault)
		}
		x++
	}

	t.screen.Show()
}
