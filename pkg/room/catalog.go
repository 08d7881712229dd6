package room

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Adjacency describes which neighbouring types a room type favours.
type Adjacency struct {
	Preferred []Type  `json:"preferred,omitempty"`
	Avoided   []Type  `json:"avoided,omitempty"`
	Bonus     float64 `json:"bonus"`
}

// Prefers reports whether other is in the preferred set.
func (a Adjacency) Prefers(other Type) bool { return slices.Contains(a.Preferred, other) }

// Avoids reports whether other is in the avoided set.
func (a Adjacency) Avoids(other Type) bool { return slices.Contains(a.Avoided, other) }

// Profile is everything the catalog knows about one room type.
type Profile struct {
	Keywords []string `json:"keywords,omitempty"`
	// Ratios are ordered most preferred first.
	Ratios   []Ratio  `json:"ratios"`
	Aspect   Bounds   `json:"aspect"`
	Category Category `json:"category"`
	// Adjacency is nil for types without rules.
	Adjacency *Adjacency `json:"adjacency,omitempty"`
}

func (p Profile) clone() Profile {
	out := Profile{
		Keywords: slices.Clone(p.Keywords),
		Ratios:   slices.Clone(p.Ratios),
		Aspect:   p.Aspect,
		Category: p.Category,
	}
	if p.Adjacency != nil {
		out.Adjacency = &Adjacency{
			Preferred: slices.Clone(p.Adjacency.Preferred),
			Avoided:   slices.Clone(p.Adjacency.Avoided),
			Bonus:     p.Adjacency.Bonus,
		}
	}
	return out
}

// Catalog is the immutable table of room type profiles.
type Catalog struct {
	profiles [NumTypes]Profile
}

// NewCatalog builds a catalog from per-type profiles. Types missing from
// profiles keep their DefaultCatalog entry. Every resulting profile must
// carry at least one ratio with positive terms and a non-empty aspect range.
func NewCatalog(profiles map[Type]Profile) (*Catalog, error) {
	c := DefaultCatalog()
	for t, p := range profiles {
		if !t.Valid() {
			return nil, fmt.Errorf("catalog: invalid room type %d", uint8(t))
		}
		if err := validateProfile(t, p); err != nil {
			return nil, err
		}
		c.profiles[t] = p.clone()
	}
	return c, nil
}

func validateProfile(t Type, p Profile) error {
	if len(p.Ratios) == 0 {
		return fmt.Errorf("catalog: %s: at least one ratio is required", t)
	}
	for _, r := range p.Ratios {
		if r.Length <= 0 || r.Width <= 0 {
			return fmt.Errorf("catalog: %s: ratio %s must be positive", t, r)
		}
	}
	if p.Aspect.Min <= 0 || p.Aspect.Max < p.Aspect.Min {
		return fmt.Errorf("catalog: %s: invalid aspect range [%g, %g]", t, p.Aspect.Min, p.Aspect.Max)
	}
	switch p.Category {
	case Public, Private, Service:
	default:
		return fmt.Errorf("catalog: %s: unknown category %q", t, p.Category)
	}
	if t == Default && len(p.Keywords) > 0 {
		return fmt.Errorf("catalog: default type cannot carry keywords")
	}
	return nil
}

// Classify maps a free-text room name to a type. The name is lower-cased
// and the first type in [Types] order with a keyword contained in the name
// wins. Names without any match are Default.
func (c *Catalog) Classify(name string) Type {
	lower := strings.ToLower(name)
	for t := range Default {
		for _, kw := range c.profiles[t].Keywords {
			if strings.Contains(lower, kw) {
				return t
			}
		}
	}
	return Default
}

// Profile returns a copy of the profile for t.
func (c *Catalog) Profile(t Type) Profile { return c.profiles[c.index(t)].clone() }

// Ratios returns the preferred ratios for t, most preferred first.
func (c *Catalog) Ratios(t Type) []Ratio { return slices.Clone(c.profiles[c.index(t)].Ratios) }

// Aspect returns the inclusive aspect bounds for t.
func (c *Catalog) Aspect(t Type) Bounds { return c.profiles[c.index(t)].Aspect }

// Category returns the rendering category for t.
func (c *Catalog) Category(t Type) Category { return c.profiles[c.index(t)].Category }

// Adjacency returns the adjacency rule for t, if one is declared.
func (c *Catalog) Adjacency(t Type) (Adjacency, bool) {
	p := c.profiles[c.index(t)]
	if p.Adjacency == nil {
		return Adjacency{}, false
	}
	return *p.clone().Adjacency, true
}

// index maps invalid types onto Default so lookups never panic.
func (c *Catalog) index(t Type) Type {
	if !t.Valid() {
		return Default
	}
	return t
}

// MarshalJSON encodes the catalog keyed by type tag. The encoding is
// deterministic and doubles as the catalog's cache key contribution.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	type entry struct {
		Type Type `json:"type"`
		Profile
	}
	out := make([]entry, 0, NumTypes)
	for _, t := range Types() {
		out = append(out, entry{Type: t, Profile: c.profiles[t]})
	}
	return json.Marshal(out)
}

// DefaultCatalog returns the stock keyword, ratio, category and adjacency
// tables.
func DefaultCatalog() *Catalog {
	c := &Catalog{}
	c.profiles[Living] = Profile{
		Keywords: []string{"living", "sala", "family room", "lounge", "sitting", "dining"},
		Ratios:   []Ratio{{4, 3}, {5, 4}, {3, 2}},
		Aspect:   Bounds{0.6, 1.5},
		Category: Public,
		Adjacency: &Adjacency{
			Preferred: []Type{Kitchen},
			Avoided:   []Type{Bathroom},
			Bonus:     25,
		},
	}
	c.profiles[Bedroom] = Profile{
		Keywords: []string{"bedroom", "quarto", "suite", "dormitorio", "bed", "master"},
		Ratios:   []Ratio{{3, 2}, {4, 3}, {5, 4}},
		Aspect:   Bounds{0.5, 1.5},
		Category: Private,
		Adjacency: &Adjacency{
			Preferred: []Type{Bedroom, Bathroom},
			Avoided:   []Type{Kitchen},
			Bonus:     30,
		},
	}
	c.profiles[Kitchen] = Profile{
		Keywords: []string{"kitchen", "cozinha", "cocina", "kitchenette"},
		Ratios:   []Ratio{{5, 3}, {3, 2}, {4, 3}},
		Aspect:   Bounds{0.5, 2.0},
		Category: Public,
		Adjacency: &Adjacency{
			Preferred: []Type{Living},
			Avoided:   []Type{Bedroom, Bathroom},
			Bonus:     40,
		},
	}
	c.profiles[Bathroom] = Profile{
		Keywords: []string{"bathroom", "bath", "wc", "toilet", "lavabo", "powder", "restroom"},
		Ratios:   []Ratio{{3, 2}, {2, 1}, {5, 4}},
		Aspect:   Bounds{0.4, 2.0},
		Category: Private,
		Adjacency: &Adjacency{
			Preferred: []Type{Bedroom},
			Avoided:   []Type{Kitchen, Living},
			Bonus:     50,
		},
	}
	c.profiles[Office] = Profile{
		Keywords: []string{"office", "study", "escritorio", "home office"},
		Ratios:   []Ratio{{3, 2}, {4, 3}, {5, 4}},
		Aspect:   Bounds{0.6, 1.5},
		Category: Private,
	}
	c.profiles[Circulation] = Profile{
		Keywords: []string{"hallway", "hall", "corridor", "corredor", "circulation", "entry", "foyer"},
		Ratios:   []Ratio{{2, 1}, {3, 1}, {5, 2}},
		Aspect:   Bounds{0.3, 3.0},
		Category: Service,
	}
	c.profiles[Utility] = Profile{
		Keywords: []string{"storage", "closet", "laundry", "utility", "pantry", "despensa", "lavanderia"},
		Ratios:   []Ratio{{2, 1}, {3, 2}, {1, 1}},
		Aspect:   Bounds{0.4, 2.5},
		Category: Service,
		Adjacency: &Adjacency{
			Preferred: []Type{Kitchen, Bathroom},
			Bonus:     35,
		},
	}
	c.profiles[Default] = Profile{
		Ratios:   []Ratio{{3, 2}, {4, 3}, {5, 4}, {1, 1}},
		Aspect:   Bounds{0.5, 1.5},
		Category: Public,
	}
	return c
}
