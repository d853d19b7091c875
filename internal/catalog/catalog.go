// Package catalog holds the static rendering metadata for every placeable
// object type.
package catalog

import (
	"errors"
	"fmt"
)

// Type is an object-type tag. The set is closed; see Types.
type Type string

const (
	House    Type = "house"
	Road     Type = "road"
	School   Type = "school"
	Hospital Type = "hospital"
	Park     Type = "park"
)

// ErrInvalidType is returned for a tag outside the closed set.
var ErrInvalidType = errors.New("catalog: invalid object type")

// Meta describes how an object of a given type looks.
type Meta struct {
	Label string
	Icon  string
	Color string  // hex, #RRGGBB
	Size  float64 // diameter in canvas units
}

var order = []Type{House, Road, School, Hospital, Park}

var entries = map[Type]Meta{
	House:    {Label: "House", Icon: "🏠", Color: "#FF6B6B", Size: 40},
	Road:     {Label: "Road", Icon: "🛣️", Color: "#4A90E2", Size: 50},
	School:   {Label: "School", Icon: "🏫", Color: "#F5A623", Size: 45},
	Hospital: {Label: "Hospital", Icon: "🏥", Color: "#D84449", Size: 45},
	Park:     {Label: "Park", Icon: "🌲", Color: "#52C41A", Size: 50},
}

// Types returns every known tag in palette order.
func Types() []Type {
	out := make([]Type, len(order))
	copy(out, order)
	return out
}

// Lookup returns the metadata for t.
func Lookup(t Type) (Meta, bool) {
	m, ok := entries[t]
	return m, ok
}

// MustLookup is Lookup for tags already known to be valid.
func MustLookup(t Type) Meta {
	m, ok := entries[t]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown type %q", string(t)))
	}
	return m
}

// Parse converts a raw tag, failing with ErrInvalidType.
func Parse(s string) (Type, error) {
	t := Type(s)
	if _, ok := entries[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	return t, nil
}

// Valid reports whether t is in the closed set.
func (t Type) Valid() bool {
	_, ok := entries[t]
	return ok
}

func (t Type) String() string { return string(t) }
