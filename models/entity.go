package models

// Attitude describes how an actor feels about the player
type Attitude string

const (
	AttitudeFriendly Attitude = "friendly"
	AttitudeHostile  Attitude = "hostile"
	AttitudeNeutral  Attitude = "neutral"
)

// Occupant is anything that can stand in a grid cell
type Occupant interface {
	GetID() string
	GetPosition() Position
	SetPosition(pos Position)
	GetArt() Art
}

// Actor holds the state shared by everything that moves around the dungeon
type Actor struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Art      Art      `json:"art"`
	Attitude Attitude `json:"attitude"`
	Position Position `json:"position"`
	HP       int      `json:"hp"`
	MaxHP    int      `json:"max_hp"`
}

func (a *Actor) GetID() string            { return a.ID }
func (a *Actor) GetPosition() Position    { return a.Position }
func (a *Actor) SetPosition(pos Position) { a.Position = pos }

// GetArt falls back to a white @ when the actor has no glyph of its own
func (a *Actor) GetArt() Art {
	art := a.Art
	if art.Glyph == "" {
		art.Glyph = "@"
	}
	if art.Foreground == "" {
		art.Foreground = "white"
	}
	if art.Background == "" {
		art.Background = "black"
	}
	return art
}

// Player is the human-controlled actor
type Player struct {
	Actor
	// Aggression rises when the player attacks and falls when they befriend; it feeds
	// the danger value of newly generated levels.
	Aggression float64 `json:"aggression"`
	Deepest    int     `json:"deepest"`
}

// NewPlayer creates the player actor
func NewPlayer(id string) *Player {
	return &Player{
		Actor: Actor{
			ID:       id,
			Name:     "Franklin",
			Title:    "the Pumpkin Slayer",
			Art:      Art{Glyph: "@", Foreground: "white", Background: "black"},
			Attitude: AttitudeFriendly,
			HP:       10,
			MaxHP:    10,
		},
	}
}

// Monster is a generated critter that may chase the player
type Monster struct {
	Actor
	Attack      int  `json:"attack"`
	Defense     int  `json:"defense"`
	Persistence int  `json:"persistence"` // turns a monster stays awake after losing sight of the player
	Speed       int  `json:"speed"`
	Sleeps      bool `json:"sleeps"`

	awake int
}

// Awake reports whether the monster is currently paying attention
func (m *Monster) Awake() bool {
	return m.awake >= 0
}

// Notice wakes the monster up. It returns true if the monster was asleep before.
func (m *Monster) Notice() bool {
	wasAsleep := m.awake < 0
	m.awake = m.Persistence
	return wasAsleep
}

// Forget lets the monster drift back towards sleep by one turn
func (m *Monster) Forget() {
	if m.awake >= 0 {
		m.awake--
	}
}

// NewMonster creates a sleeping monster
func NewMonster(id, name, title string, art Art, attitude Attitude) *Monster {
	return &Monster{
		Actor: Actor{
			ID:       id,
			Name:     name,
			Title:    title,
			Art:      art,
			Attitude: attitude,
			HP:       3,
			MaxHP:    3,
		},
		Persistence: 8,
		Speed:       1,
		awake:       -1,
	}
}

// Doodad is a stationary object the player can examine or pick up
type Doodad struct {
	Actor
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// NewDoodad creates a doodad
func NewDoodad(id, name, description string, art Art, tags ...string) *Doodad {
	return &Doodad{
		Actor: Actor{
			ID:       id,
			Name:     name,
			Art:      art,
			Attitude: AttitudeNeutral,
		},
		Description: description,
		Tags:        tags,
	}
}
