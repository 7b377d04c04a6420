/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package category

// Rule lists the prefixes that place a token in a category.
type Rule struct {
	Category Category
	Prefixes []string
}

// Table is an ordered list of rules. Rules are consulted in enumeration
// order regardless of their position in the slice.
type Table []Rule

// DefaultTable returns a fresh copy of the built-in prefix table.
// Some prefixes appear under two categories; the earlier category wins.
func DefaultTable() Table {
	return Table{
		{Layout, []string{
			"block", "inline", "inline-block", "flex", "inline-flex", "grid", "inline-grid", "contents", "flow-root",
			"hidden", "table", "container", "columns", "break-", "box-", "float-", "clear-", "object-", "overflow-",
		}},
		{Position, []string{
			"static", "fixed", "absolute", "relative", "sticky", "inset-", "top-", "right-", "bottom-", "left-", "z-",
		}},
		{Visibility, []string{
			"visible", "invisible", "backface-", "isolate", "isolation-",
		}},
		{Sizing, []string{
			"w-", "h-", "min-w-", "min-h-", "max-w-", "max-h-", "size-", "aspect-",
		}},
		{Spacing, []string{
			"p-", "px-", "py-", "pt-", "pr-", "pb-", "pl-",
			"m-", "mx-", "my-", "mt-", "mr-", "mb-", "ml-",
			"space-",
		}},
		{Flexbox, []string{
			"flex-", "justify-", "items-", "self-", "place-", "order-", "grow", "shrink", "basis-",
		}},
		{Grid, []string{
			"grid-", "col-", "row-", "auto-", "gap-",
		}},
		{Borders, []string{
			"border", "border-", "outline", "outline-",
		}},
		{Effects, []string{
			"rounded", "rounded-", "shadow", "shadow-",
		}},
		{Background, []string{
			"bg-", "from-", "via-", "to-", "gradient-",
		}},
		{Typography, []string{
			"text-", "font-", "antialiased", "italic", "not-italic", "normal-", "uppercase", "lowercase", "capitalize",
			"truncate", "indent-", "align-", "whitespace-", "break-", "tracking-", "leading-", "list-", "underline",
			"no-underline", "line-", "decoration-", "underline-", "tab-",
		}},
		{Visual, []string{
			"opacity-", "mix-", "blend-", "filter", "blur-", "brightness-", "contrast-", "drop-", "grayscale-", "hue-",
			"invert-", "saturate-", "sepia-", "backdrop-", "transform", "scale-", "rotate-", "translate-", "skew-",
			"origin-", "accent-", "appearance-", "cursor-", "caret-", "pointer-", "resize-", "scroll-", "snap-", "touch-",
		}},
		{Interactivity, []string{
			"cursor-", "resize-", "user-", "select-", "touch-", "scroll-", "snap-", "will-change-",
		}},
		{SVG, []string{
			"fill-", "stroke-",
		}},
		{Transitions, []string{
			"transition-", "duration-", "ease-", "delay-", "animate-", "motion-",
		}},
	}
}

// DefaultVariants returns the responsive and state modifiers stripped
// before classification.
func DefaultVariants() []string {
	return []string{
		"hover", "focus", "active", "group-hover", "dark",
		"lg", "md", "sm", "xl", "2xl",
		"motion-safe", "motion-reduce",
		"first", "last", "odd", "even",
		"visited", "disabled", "checked", "required", "valid", "invalid", "open",
		"before", "after",
	}
}

// Extend returns a copy of t with extra prefixes appended to the given
// categories. Categories absent from t gain a new rule.
func (t Table) Extend(extra map[Category][]string) Table {
	out := make(Table, 0, len(t)+len(extra))
	seen := make(map[Category]bool, len(t))
	for _, rule := range t {
		prefixes := append([]string(nil), rule.Prefixes...)
		prefixes = append(prefixes, extra[rule.Category]...)
		out = append(out, Rule{Category: rule.Category, Prefixes: prefixes})
		seen[rule.Category] = true
	}
	for _, c := range All() {
		if seen[c] || c == Misc || len(extra[c]) == 0 {
			continue
		}
		out = append(out, Rule{Category: c, Prefixes: append([]string(nil), extra[c]...)})
	}
	return out
}
