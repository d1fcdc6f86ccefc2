package dungeon

import (
	"github.com/laurheth/pumpkin-oubliette/random"
)

// Flavour is a name and description pair for a room or hallway
type Flavour struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

var DefaultRoomFlavours = []Flavour{
	{"Mossy room", "The walls of this room are covered by a strange moss."},
	{"Damp room", "Water drips from the ceiling here, and lies stagnant on the ground."},
	{"Stoney room", "The floors and walls here are very smoothly hewn flagstone."},
	{"Uncomfortable room", "Something about this room feels off, but you can't put your finger on it."},
	{"Torchlit room", "Torches line the walls, making this room very well lit."},
	{"Dark room", "This room is very dark. Your torch light casts eerie shadows."},
	{"Weird room", "The walls aren't quite at right angles with the floor."},
	{"Pumpkin mural room", "A magnificent mural of a pumpkin is painted onto the wall."},
	{"Coffee room", "This room smells like coffee. Somebody must have spilled some recently."},
	{"Warm room", "It feels very warm here. You aren't sure why, and you don't want to find out."},
	{"Drafty room", "Wind gusts through grates in the floor and ceiling. It's actually quite chilly."},
	{"Wine cellar", "The walls are lined with bottles. You don't trust them enough to drink any."},
	{"Library", "Bookshelves cover the walls. Every book is written in pumpkin-script."},
	{"Rumpus room", "The walls and floors are padded. Parties have been held here."},
	{"Cat hair room", "A very nice carpet and fancy walls, completely covered in cat hair."},
	{"Laundry room", "Laundry machines are built into the walls. Why do pumpkins need laundry?"},
}

var DefaultHallFlavours = []Flavour{
	{"Mouldy hallway", "The air in this hallway is filled with spores."},
	{"Vine filled hallway", "Pumpkin vines cover every surface of the hall."},
	{"Winding hallway", "The walls make this hallway feel a lot windier than it is."},
	{"Stone hallway", "Finely crafted stones line this hallway. It looks brand new."},
	{"Cold hallway", "There is a draft in this hallway, making it feel quite cold."},
	{"Torchlit hallway", "Torches line the walls, making the hall quite bright."},
	{"Boring hallway", "This hallway is boring. You can't wait to reach a room instead."},
	{"Uneven hallway", "The walls and floors here are uneven. You worry that you might trip."},
	{"Cobweb hallway", "Cobwebs fill this hallway. It gives you the creeps."},
	{"Dusty hallway", "Dust bunnies live in every corner. It hasn't been cleaned in a century."},
	{"Moaning hallway", "Strange moaning sounds echo through this hallway."},
}

// FlavourDeck deals flavours without repeating one until the pool runs out, then
// reshuffles. The first card after a reshuffle never repeats the last one dealt.
type FlavourDeck struct {
	pool  []Flavour
	order []int
	next  int
	last  int
	rng   random.Source
}

// NewFlavourDeck shuffles pool into a new deck
func NewFlavourDeck(rng random.Source, pool []Flavour) *FlavourDeck {
	d := &FlavourDeck{pool: pool, rng: rng, last: -1}
	d.shuffle()
	return d
}

func (d *FlavourDeck) shuffle() {
	d.order = make([]int, len(d.pool))
	for i := range d.order {
		d.order[i] = i
	}
	for i := len(d.order) - 1; i > 0; i-- {
		j := d.rng.Range(0, i)
		d.order[i], d.order[j] = d.order[j], d.order[i]
	}
	if len(d.order) > 1 && d.order[0] == d.last {
		swap := d.rng.Range(1, len(d.order)-1)
		d.order[0], d.order[swap] = d.order[swap], d.order[0]
	}
	d.next = 0
}

// Draw deals the next flavour. An empty pool deals the zero Flavour.
func (d *FlavourDeck) Draw() Flavour {
	if len(d.pool) == 0 {
		return Flavour{}
	}
	if d.next >= len(d.order) {
		d.shuffle()
	}
	idx := d.order[d.next]
	d.next++
	d.last = idx
	return d.pool[idx]
}
