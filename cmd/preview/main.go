// Command preview draws a generated dungeon in the terminal. n and p step through
// seeds, q or Esc quits.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/laurheth/pumpkin-oubliette/content"
	"github.com/laurheth/pumpkin-oubliette/dungeon"
	"github.com/laurheth/pumpkin-oubliette/models"
	"github.com/laurheth/pumpkin-oubliette/random"
)

type preview struct {
	screen tcell.Screen
	params dungeon.Params
	seed   int64
	level  *dungeon.Dungeon
	err    error
}

func (p *preview) generate() {
	params := p.params
	params.Player = models.NewPlayer("preview")
	params.Populator = content.NewSpawner()
	p.level, p.err = dungeon.Generate(params, random.New(p.seed))
	if p.err != nil {
		return
	}
	grid := p.level.Grid()
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			grid.SetVisible(models.Position{X: x, Y: y})
		}
	}
}

func style(art models.Art) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.GetColor(art.Foreground)).
		Background(tcell.GetColor(art.Background))
}

func (p *preview) drawText(x, y int, text string, st tcell.Style) {
	for i, r := range text {
		p.screen.SetContent(x+i, y, r, nil, st)
	}
}

func (p *preview) draw() {
	p.screen.Clear()
	if p.err != nil {
		p.drawText(0, 0, fmt.Sprintf("seed %d: %v", p.seed, p.err), tcell.StyleDefault.Foreground(tcell.ColorRed))
		p.screen.Show()
		return
	}

	grid := p.level.DrawableGrid()
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			art := grid.At(x, y)
			glyph := []rune(art.Glyph)
			if len(glyph) == 0 {
				glyph = []rune{' '}
			}
			st := style(art)
			pos := models.Position{X: x, Y: y}
			if pos == p.level.Entrance || pos == p.level.Exit {
				st = st.Reverse(true)
			}
			p.screen.SetContent(x, y, glyph[0], nil, st)
		}
	}

	status := fmt.Sprintf("seed %d  %dx%d  rooms %d  hallways %d  [n]ext [p]rev [q]uit",
		p.seed, grid.Width, grid.Height, len(p.level.Rooms()), len(p.level.Hallways()))
	p.drawText(0, grid.Height+1, status, tcell.StyleDefault)
	p.screen.Show()
}

func (p *preview) run() {
	p.generate()
	p.draw()
	for {
		switch ev := p.screen.PollEvent().(type) {
		case *tcell.EventResize:
			p.screen.Sync()
			p.draw()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
				return
			case ev.Rune() == 'n':
				p.seed++
			case ev.Rune() == 'p':
				p.seed--
			default:
				continue
			}
			p.generate()
			p.draw()
		}
	}
}

func main() {
	seed := flag.Int64("seed", 20201031, "generator seed")
	width := flag.Int("width", 40, "dungeon width")
	height := flag.Int("height", 40, "dungeon height")
	density := flag.Float64("density", 0.75, "fraction of the area to fill with rooms")
	level := flag.Int("level", 1, "dungeon level, raises danger")
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}

	p := &preview{
		screen: screen,
		seed:   *seed,
		params: dungeon.Params{
			Width:   *width,
			Height:  *height,
			Density: *density,
			Level:   *level,
		},
	}
	p.run()
	screen.Fini()
	os.Exit(0)
}
