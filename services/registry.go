package services

import (
	"github.com/laurheth/pumpkin-oubliette/models"
)

// Registry tracks every actor on the current level of one game
type Registry struct {
	actors []models.Occupant
	byID   map[string]models.Occupant
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]models.Occupant)}
}

// Add registers an actor. Adding an id twice replaces the old actor.
func (r *Registry) Add(occ models.Occupant) {
	if _, exists := r.byID[occ.GetID()]; exists {
		r.Remove(occ.GetID())
	}
	r.actors = append(r.actors, occ)
	r.byID[occ.GetID()] = occ
}

// Remove forgets an actor
func (r *Registry) Remove(id string) {
	if _, exists := r.byID[id]; !exists {
		return
	}
	delete(r.byID, id)
	for i, occ := range r.actors {
		if occ.GetID() == id {
			r.actors = append(r.actors[:i], r.actors[i+1:]...)
			break
		}
	}
}

// Get finds an actor by id
func (r *Registry) Get(id string) (models.Occupant, bool) {
	occ, ok := r.byID[id]
	return occ, ok
}

// All returns the actors in the order they were added, which is also turn order
func (r *Registry) All() []models.Occupant {
	out := make([]models.Occupant, len(r.actors))
	copy(out, r.actors)
	return out
}

// At returns the actor standing at pos, if any
func (r *Registry) At(pos models.Position) models.Occupant {
	for _, occ := range r.actors {
		if occ.GetPosition() == pos {
			return occ
		}
	}
	return nil
}

// Monsters returns the monsters in turn order
func (r *Registry) Monsters() []*models.Monster {
	var out []*models.Monster
	for _, occ := range r.actors {
		if m, ok := occ.(*models.Monster); ok {
			out = append(out, m)
		}
	}
	return out
}

// ClearExcept drops every actor but the one with keepID
func (r *Registry) ClearExcept(keepID string) {
	kept, ok := r.byID[keepID]
	r.actors = nil
	r.byID = make(map[string]models.Occupant)
	if ok {
		r.Add(kept)
	}
}

func (r *Registry) Len() int {
	return len(r.actors)
}
