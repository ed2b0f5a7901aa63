package models

import (
	"fmt"
	"strings"
)

// Element is the elemental type of a rolled creature
type Element int

const (
	ElementWater Element = iota
	ElementFire
	ElementGrass
)

// Elements lists every element in draw order
var Elements = []Element{ElementWater, ElementFire, ElementGrass}

// String returns the persisted name of the element
func (e Element) String() string {
	switch e {
	case ElementWater:
		return "Water"
	case ElementFire:
		return "Fire"
	case ElementGrass:
		return "Grass"
	default:
		return fmt.Sprintf("Element(%d)", int(e))
	}
}

// Emoji returns the emoji shown next to the element in chat
func (e Element) Emoji() string {
	switch e {
	case ElementWater:
		return "💧"
	case ElementFire:
		return "🔥"
	case ElementGrass:
		return "🍃"
	default:
		return ""
	}
}

// Valid reports whether e is one of the known elements
func (e Element) Valid() bool {
	return e >= ElementWater && e <= ElementGrass
}

// ParseElement decodes a stored element name. Matching is case-insensitive.
func ParseElement(s string) (Element, error) {
	for _, e := range Elements {
		if strings.EqualFold(strings.TrimSpace(s), e.String()) {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown element %q", s)
}
