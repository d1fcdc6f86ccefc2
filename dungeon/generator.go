package dungeon

import (
	"fmt"
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/laurheth/pumpkin-oubliette/models"
	"github.com/laurheth/pumpkin-oubliette/random"
)

const (
	minRoomSize      = 5
	maxRoomSize      = 7
	maxRoomAttempts  = 100
	maxRoomLinks     = 2
	wallAreaFactor   = 3
	entranceWeightOf = 6

	DefaultFOVRadius = 8
)

// Params controls generation
type Params struct {
	Width   int
	Height  int
	Density float64 // fraction of the level to fill before placement stops
	Level   int

	// Aggression of the player, feeding the danger of generated content
	Aggression float64
	FOVRadius  int

	// Player, when set, is placed at the entrance
	Player    models.Occupant
	Populator Populator

	RoomFlavours []Flavour
	HallFlavours []Flavour

	// Logf receives progress lines. Nil keeps generation quiet.
	Logf func(format string, args ...any)
}

func (p Params) validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("dimensions %dx%d: %w", p.Width, p.Height, ErrInvalidParams)
	}
	if p.Density <= 0 || p.Density > 1 {
		return fmt.Errorf("density %v: %w", p.Density, ErrInvalidParams)
	}
	return nil
}

type generator struct {
	d      *Dungeon
	params Params
	rng    random.Source
	noise  opensimplex.Noise
	linked map[[2]NodeID]bool
}

// Generate builds a level. The same source seed and params always give the same
// level.
func Generate(params Params, rng random.Source) (*Dungeon, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if params.FOVRadius <= 0 {
		params.FOVRadius = DefaultFOVRadius
	}
	if params.RoomFlavours == nil {
		params.RoomFlavours = DefaultRoomFlavours
	}
	if params.HallFlavours == nil {
		params.HallFlavours = DefaultHallFlavours
	}

	g := &generator{
		d:      newDungeon(params, rng.Seed()),
		params: params,
		rng:    rng,
		noise:  opensimplex.NewNormalized(int64(rng.Range(0, math.MaxInt32))),
		linked: make(map[[2]NodeID]bool),
	}

	g.placeRooms()
	if len(g.d.rooms) == 0 {
		return nil, fmt.Errorf("%dx%d level: %w", params.Width, params.Height, ErrNoRooms)
	}
	g.untangle()
	g.chooseEntranceAndExit()
	g.assignFlavour()
	g.postProcess()

	if params.Player != nil {
		if err := g.d.Place(params.Player, g.d.Entrance); err != nil {
			return nil, fmt.Errorf("failed to place player: %w", err)
		}
	}
	g.populate()

	g.logf("level %d: %d rooms, %d hallways, entrance %v, exit %v",
		g.d.Level, len(g.d.rooms), len(g.d.hallways), g.d.Entrance, g.d.Exit)
	return g.d, nil
}

func (g *generator) logf(format string, args ...any) {
	if g.params.Logf != nil {
		g.params.Logf(format, args...)
	}
}

func (g *generator) placeRooms() {
	w, h := g.params.Width, g.params.Height
	target := g.params.Density * float64(w*h)
	carved := 0
	for attempt := 0; attempt < maxRoomAttempts && float64(carved) < target; attempt++ {
		rw := g.rng.Range(minRoomSize, maxRoomSize)
		rh := g.rng.Range(minRoomSize, maxRoomSize)
		center := models.Position{X: g.rng.Range(1, w-2), Y: g.rng.Range(1, h-2)}
		room := g.addRoom(center, rw, rh)
		if room == nil {
			continue
		}
		carved += rw * rh
		if len(g.d.rooms) > 1 {
			carved += g.connectRoom(room)
		}
	}
}

func roomBounds(center models.Position, w, h int) Rect {
	return Rect{
		Left:   int(math.Ceil(float64(center.X) - float64(w)/2)),
		Right:  int(math.Ceil(float64(center.X) + float64(w)/2)),
		Top:    int(math.Ceil(float64(center.Y) - float64(h)/2)),
		Bottom: int(math.Ceil(float64(center.Y) + float64(h)/2)),
	}
}

// addRoom carves a room if its bounds and a one cell margin are untouched
func (g *generator) addRoom(center models.Position, w, h int) *Room {
	bounds := roomBounds(center, w, h)
	margin := bounds.Expand(1)
	grid := g.d.grid
	for y := margin.Top; y <= margin.Bottom; y++ {
		for x := margin.Left; x <= margin.Right; x++ {
			cell := grid.Cell(x, y)
			if cell == nil || !cell.Empty {
				return nil
			}
		}
	}

	room := g.d.graph.AddRoom(center, bounds)
	g.d.rooms = append(g.d.rooms, room.ID())
	for y := bounds.Top; y <= bounds.Bottom; y++ {
		for x := bounds.Left; x <= bounds.Right; x++ {
			onRing := x == bounds.Left || x == bounds.Right || y == bounds.Top || y == bounds.Bottom
			if onRing {
				grid.SetCellParams(x, y, wallParams(room.ID(), roomWallArt))
			} else {
				grid.SetCellParams(x, y, floorParams(room.ID(), g.floorArt(x, y, roomFloorArt, roomMossArt)))
			}
		}
	}
	return room
}

func (g *generator) floorArt(x, y int, plain, variant models.Art) models.Art {
	if g.noise.Eval2(float64(x)*floorNoiseZoom, float64(y)*floorNoiseZoom) > floorNoiseCut {
		return variant
	}
	return plain
}

func linkKey(a, b NodeID) [2]NodeID {
	if a > b {
		a, b = b, a
	}
	return [2]NodeID{a, b}
}

// connectRoom digs corridors to the nearest rooms not linked to room yet
func (g *generator) connectRoom(room *Room) int {
	others := len(g.d.rooms) - 1
	links := g.rng.Range(1, min(others, maxRoomLinks))
	added := 0
	for i := 0; i < links; i++ {
		var nearest *Room
		best := math.MaxInt
		for _, id := range g.d.rooms {
			if id == room.ID() || g.linked[linkKey(id, room.ID())] {
				continue
			}
			other := g.d.graph.Room(id)
			if dist := other.Center().DistanceSquared(room.Center()); dist < best {
				best = dist
				nearest = other
			}
		}
		if nearest == nil {
			break
		}
		g.linked[linkKey(nearest.ID(), room.ID())] = true
		added += g.carveHallway(room, nearest)
	}
	return added
}

// untangle rebuilds every room's connections from the hallway floor that
// physically touches its interior.
func (g *generator) untangle() {
	graph := g.d.graph
	for _, id := range g.d.rooms {
		graph.ClearConnections(id)
	}
	for _, id := range g.d.hallways {
		for _, other := range graph.Node(id).Connections() {
			if graph.Room(other) == nil {
				graph.Disconnect(id, other)
			}
		}
	}

	grid := g.d.grid
	for _, room := range g.d.Rooms() {
		inner := room.Bounds.Interior()
		for y := inner.Top; y <= inner.Bottom; y++ {
			for x := inner.Left; x <= inner.Right; x++ {
				for _, dir := range orthogonal {
					cell := grid.Cell(x+dir.X, y+dir.Y)
					if cell == nil || !cell.Passable {
						continue
					}
					if graph.Hallway(cell.Node) != nil {
						graph.Connect(room.ID(), cell.Node)
					}
				}
			}
		}
	}
}

// chooseEntranceAndExit prefers poorly connected rooms as the entrance and puts
// the exit as many hops away as possible.
func (g *generator) chooseEntranceAndExit() {
	d := g.d
	options := make([]random.Weighted[NodeID], 0, len(d.rooms))
	for _, room := range d.Rooms() {
		options = append(options, random.Weighted[NodeID]{
			Value:  room.ID(),
			Weight: float64(entranceWeightOf - len(room.Connections())),
		})
	}
	d.entranceRoom = random.PickWeighted(g.rng, options)
	d.exitRoom, _ = d.graph.FindMostDistant(d.entranceRoom, d.rooms)
	if d.exitRoom == NoNode {
		d.exitRoom = d.entranceRoom
	}
	d.Entrance = d.graph.Room(d.entranceRoom).Center()
	d.Exit = d.graph.Room(d.exitRoom).Center()
	d.grid.SetCellParams(d.Exit.X, d.Exit.Y, floorParams(d.exitRoom, stairsArt))
}

func (g *generator) assignFlavour() {
	rooms := NewFlavourDeck(g.rng, g.params.RoomFlavours)
	for _, room := range g.d.Rooms() {
		f := rooms.Draw()
		room.SetFlavour(f.Name, f.Description)
	}
	halls := NewFlavourDeck(g.rng, g.params.HallFlavours)
	for _, h := range g.d.Hallways() {
		f := halls.Draw()
		h.SetFlavour(f.Name, f.Description)
	}
}

var orthogonal = []models.Position{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}
