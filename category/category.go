/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package category classifies utility-class tokens into ordered categories.
//
// The classification is a heuristic: a fixed table of prefixes per category,
// approximating the order a utility framework would emit. It does not read
// the framework's configuration and does not validate class names.
package category

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// ErrUnknown is returned when parsing a name that is not a category.
var ErrUnknown = errors.Base("unknown category")

// Category is a class category. Its numeric value is its output rank.
type Category int

const (
	Layout Category = iota
	Position
	Visibility
	Sizing
	Spacing
	Flexbox
	Grid
	Borders
	Effects
	Background
	Typography
	Visual
	Interactivity
	SVG
	Transitions
	// Misc matches every token no other category claims.
	Misc
)

var names = [...]string{
	Layout:        "layout",
	Position:      "position",
	Visibility:    "visibility",
	Sizing:        "sizing",
	Spacing:       "spacing",
	Flexbox:       "flexbox",
	Grid:          "grid",
	Borders:       "borders",
	Effects:       "effects",
	Background:    "background",
	Typography:    "typography",
	Visual:        "visual",
	Interactivity: "interactivity",
	SVG:           "svg",
	Transitions:   "transitions",
	Misc:          "misc",
}

// String returns the lower-case category label.
func (c Category) String() string {
	if c < Layout || c > Misc {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return names[c]
}

// Valid reports whether c is a member of the enumeration.
func (c Category) Valid() bool {
	return c >= Layout && c <= Misc
}

// All returns every category in output order.
func All() []Category {
	all := make([]Category, 0, len(names))
	for c := Layout; c <= Misc; c++ {
		all = append(all, c)
	}
	return all
}

// Parse returns the category with the given label.
func Parse(s string) (Category, error) {
	for c, name := range names {
		if name == s {
			return Category(c), nil
		}
	}
	return Misc, errors.Errorf("%w: %q", ErrUnknown, s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
