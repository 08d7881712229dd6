// Package score rates how desirable it is for two rooms to share a wall
// of a given length.
//
// A score is additive:
//
//   - shared length / 10, so a 500 cm wall is worth 50 points
//   - from each room's side, its adjacency bonus if it prefers the other
//     type, otherwise a penalty if it avoids it
//   - a plumbing bonus when both rooms are wet rooms
//   - a clustering bonus when both share a non-default type
//   - a span bonus for walls at or above the structural span
//
// The adjacency rule is evaluated twice, once per side, so a preference
// declared by both types counts twice.
package score

import (
	"github.com/gduarte0/program2mass/pkg/room"
)

// Defaults for [Scorer].
const (
	DefaultAvoidPenalty = 30
	DefaultWetBonus     = 45
	DefaultSameBonus    = 25
	DefaultSpanBonus    = 15
	DefaultSpan         = 400
	DefaultBaseDivisor  = 10
)

// DefaultWetTypes are the room types that benefit from sharing plumbing.
var DefaultWetTypes = []room.Type{room.Kitchen, room.Bathroom, room.Utility}

// Scorer computes wall values from a catalog's adjacency rules.
type Scorer struct {
	Catalog      *room.Catalog
	AvoidPenalty float64
	WetBonus     float64
	SameBonus    float64
	SpanBonus    float64
	Span         int
	BaseDivisor  float64

	wet   [room.NumTypes]bool
	rules [room.NumTypes]*room.Adjacency
}

// New returns a scorer with the default weights.
func New(c *room.Catalog) *Scorer {
	if c == nil {
		c = room.DefaultCatalog()
	}
	s := &Scorer{
		Catalog:      c,
		AvoidPenalty: DefaultAvoidPenalty,
		WetBonus:     DefaultWetBonus,
		SameBonus:    DefaultSameBonus,
		SpanBonus:    DefaultSpanBonus,
		Span:         DefaultSpan,
		BaseDivisor:  DefaultBaseDivisor,
	}
	s.SetWetTypes(DefaultWetTypes)
	for _, t := range room.Types() {
		if adj, ok := c.Adjacency(t); ok {
			s.rules[t] = &adj
		}
	}
	return s
}

// SetWetTypes replaces the wet room set.
func (s *Scorer) SetWetTypes(types []room.Type) {
	s.wet = [room.NumTypes]bool{}
	for _, t := range types {
		if t.Valid() {
			s.wet[t] = true
		}
	}
}

// Score rates a wall of length shared (cm) between rooms of type a and b.
func (s *Scorer) Score(shared int, a, b room.Type) float64 {
	v := float64(shared) / s.BaseDivisor
	v += s.side(a, b)
	v += s.side(b, a)
	if s.isWet(a) && s.isWet(b) {
		v += s.WetBonus
	}
	if a == b && a != room.Default {
		v += s.SameBonus
	}
	if shared >= s.Span {
		v += s.SpanBonus
	}
	return v
}

// side applies self's adjacency rule towards other.
func (s *Scorer) side(self, other room.Type) float64 {
	if !self.Valid() {
		return 0
	}
	rule := s.rules[self]
	if rule == nil {
		return 0
	}
	switch {
	case rule.Prefers(other):
		return rule.Bonus
	case rule.Avoids(other):
		return -s.AvoidPenalty
	}
	return 0
}

func (s *Scorer) isWet(t room.Type) bool { return t.Valid() && s.wet[t] }

// Connection totals the value of giving rooms[self] the candidate
// footprint. Every other room that already has a wall equal to either
// candidate wall contributes one score per matching candidate wall; a
// square candidate therefore matches twice. It returns the total value and
// the number of matches.
func (s *Scorer) Connection(candidate room.Dimensions, self int, rooms []room.Room) (float64, int) {
	var (
		total   float64
		matches int
	)
	typ := rooms[self].Type
	for i := range rooms {
		if i == self {
			continue
		}
		other := rooms[i]
		for _, wall := range candidate.Walls() {
			if other.Dimensions.Has(wall) {
				total += s.Score(wall, typ, other.Type)
				matches++
			}
		}
	}
	return total, matches
}
