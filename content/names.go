package content

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/laurheth/pumpkin-oubliette/random"
)

var (
	namePrefixes = []string{"Fran", "Sa", "Ra", "Al", "Lau", "Em", "Bo", "Shru", "Ad", "Ran", "San", "An", "Dan", "Reg", "Char"}
	nameSuffixes = []string{"chesca", "klin", "lly", "chel", "exis", "ren", "ma", "nnie", "ti", "am", "dy", "iel", "ron", "inald", "lie"}
)

const nameAttempts = 10

// NameGen glues a prefix to a suffix, trying not to hand out the same name twice
type NameGen struct {
	used mapset.Set[string]
}

func NewNameGen() *NameGen {
	return &NameGen{used: mapset.New[string]()}
}

// Name returns a new name. A fixed prefix or suffix is used as given; an empty
// one is picked at random. After a few clashes a repeated name is accepted.
func (n *NameGen) Name(rng random.Source, prefix, suffix string) string {
	var name string
	for attempt := 0; attempt < nameAttempts; attempt++ {
		p, s := prefix, suffix
		if p == "" {
			p = random.Pick(rng, namePrefixes)
		}
		if s == "" {
			s = random.Pick(rng, nameSuffixes)
		}
		name = p + s
		if !n.used.Has(name) {
			break
		}
	}
	n.used.Put(name)
	return name
}

// Clear forgets every name handed out, usually when a new level starts
func (n *NameGen) Clear() {
	n.used = mapset.New[string]()
}
