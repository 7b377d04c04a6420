/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package category

import "strings"

// VariantSeparator separates a variant from the class it modifies.
const VariantSeparator = ":"

// Classifier maps class tokens to categories. It is immutable once built
// and safe for concurrent use.
type Classifier struct {
	// prefixes is indexed by Category.
	prefixes [Misc][]string
	variants map[string]struct{}
}

var defaultClassifier = NewClassifier(DefaultTable(), DefaultVariants())

// Default returns the classifier built from DefaultTable and DefaultVariants.
func Default() *Classifier {
	return defaultClassifier
}

// Classify classifies a token with the default classifier.
func Classify(token string) Category {
	return defaultClassifier.Classify(token)
}

// NewClassifier builds a classifier from a prefix table and a variant set.
func NewClassifier(table Table, variants []string) *Classifier {
	c := &Classifier{variants: make(map[string]struct{}, len(variants))}
	for _, rule := range table {
		if !rule.Category.Valid() || rule.Category == Misc {
			continue
		}
		for _, prefix := range rule.Prefixes {
			if prefix != "" {
				c.prefixes[rule.Category] = append(c.prefixes[rule.Category], prefix)
			}
		}
	}
	for _, v := range variants {
		c.variants[v] = struct{}{}
	}
	return c
}

// StripVariant removes one leading known variant segment, if present.
// "md:hover:p-4" becomes "hover:p-4"; only a single segment is removed.
func (c *Classifier) StripVariant(token string) string {
	name, rest, found := strings.Cut(token, VariantSeparator)
	if !found {
		return token
	}
	if _, ok := c.variants[name]; ok {
		return rest
	}
	return token
}

// Classify returns the first category, in enumeration order, owning a
// prefix of the variant-stripped token. Tokens matching nothing are Misc.
func (c *Classifier) Classify(token string) Category {
	base := c.StripVariant(token)
	for cat := Layout; cat < Misc; cat++ {
		for _, prefix := range c.prefixes[cat] {
			if strings.HasPrefix(base, prefix) {
				return cat
			}
		}
	}
	return Misc
}

// Prefixes returns the prefixes registered for a category, in match order.
func (c *Classifier) Prefixes(cat Category) []string {
	if !cat.Valid() || cat == Misc {
		return nil
	}
	return append([]string(nil), c.prefixes[cat]...)
}
