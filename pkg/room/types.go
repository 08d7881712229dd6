package room

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Type is a room type tag.
type Type uint8

// Room types in classification order. Default must stay last.
const (
	Living Type = iota
	Bedroom
	Kitchen
	Bathroom
	Office
	Circulation
	Utility
	Default
)

// NumTypes is the number of declared room types.
const NumTypes = int(Default) + 1

var typeNames = [NumTypes]string{
	Living:      "living",
	Bedroom:     "bedroom",
	Kitchen:     "kitchen",
	Bathroom:    "bathroom",
	Office:      "office",
	Circulation: "circulation",
	Utility:     "utility",
	Default:     "default",
}

// Types returns every room type in classification order, ending with Default.
func Types() []Type {
	out := make([]Type, NumTypes)
	for i := range out {
		out[i] = Type(i)
	}
	return out
}

// String returns the lower-case tag (e.g. "bedroom").
func (t Type) String() string {
	if int(t) < NumTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// Valid reports whether t is one of the declared types.
func (t Type) Valid() bool { return int(t) < NumTypes }

// ParseType converts a tag back into a Type. Matching is case-insensitive.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range typeNames {
		if name == s {
			return Type(i), nil
		}
	}
	return Default, fmt.Errorf("unknown room type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid room type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Category groups types for rendering layers.
type Category string

const (
	Public  Category = "public"
	Private Category = "private"
	Service Category = "service"
)

// Ratio is a preferred length:width proportion.
type Ratio struct {
	Length int `json:"length" toml:"length" yaml:"length"`
	Width  int `json:"width" toml:"width" yaml:"width"`
}

// String formats the ratio as "L:W".
func (r Ratio) String() string { return fmt.Sprintf("%d:%d", r.Length, r.Width) }

// Bounds is an inclusive aspect ratio range (length / width).
type Bounds struct {
	Min float64 `json:"min" toml:"min" yaml:"min"`
	Max float64 `json:"max" toml:"max" yaml:"max"`
}

// Contains reports whether aspect lies within [Min, Max].
func (b Bounds) Contains(aspect float64) bool {
	return aspect >= b.Min && aspect <= b.Max
}

// Dimensions is a rectangular footprint in centimetres.
type Dimensions struct {
	Length int `json:"length_cm" bson:"length_cm"`
	Width  int `json:"width_cm" bson:"width_cm"`
}

// Area returns the footprint area in m².
func (d Dimensions) Area() float64 {
	return float64(d.Length) * float64(d.Width) / 10000
}

// Aspect returns length divided by width, or 0 for a zero width.
func (d Dimensions) Aspect() float64 {
	if d.Width == 0 {
		return 0
	}
	return float64(d.Length) / float64(d.Width)
}

// Has reports whether either wall equals length.
func (d Dimensions) Has(length int) bool {
	return d.Length == length || d.Width == length
}

// Walls returns both wall lengths, length first.
func (d Dimensions) Walls() [2]int { return [2]int{d.Length, d.Width} }

// IsZero reports whether no dimensions were assigned.
func (d Dimensions) IsZero() bool { return d.Length == 0 && d.Width == 0 }

// String formats the footprint as "LxW" in centimetres.
func (d Dimensions) String() string { return fmt.Sprintf("%dx%d", d.Length, d.Width) }

// Request is a single program requirement.
type Request struct {
	Name string  `json:"name"`
	Area float64 `json:"area_m2"`
}

// Room is a dimensioned program entry.
type Room struct {
	Name          string     `json:"name"`
	RequestedArea float64    `json:"requested_area_m2"`
	Type          Type       `json:"room_type"`
	Dimensions    Dimensions `json:"dimensions"`
	// Optimized is set once a refinement step changed the initial solve.
	Optimized bool `json:"optimized"`
	// Module is the grid module the room was dimensioned on, 0 otherwise.
	Module int `json:"module_cm,omitempty"`
}

// ActualArea recomputes the area in m² from the current dimensions.
func (r Room) ActualArea() float64 { return r.Dimensions.Area() }

// AreaError returns |actual - requested| in m².
func (r Room) AreaError() float64 {
	diff := r.ActualArea() - r.RequestedArea
	if diff < 0 {
		return -diff
	}
	return diff
}

// MarshalJSON adds the derived actual area to the encoded room.
func (r Room) MarshalJSON() ([]byte, error) {
	type plain Room
	return json.Marshal(struct {
		plain
		ActualArea float64 `json:"actual_area_m2"`
	}{plain(r), r.ActualArea()})
}

// UnmarshalJSON decodes a room, ignoring the derived actual area.
func (r *Room) UnmarshalJSON(b []byte) error {
	type plain Room
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = Room(p)
	return nil
}
