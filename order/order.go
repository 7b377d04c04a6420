/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package order reorders utility-class strings by category.
package order

import (
	"strings"

	"bennypowers.dev/twsort/category"
)

// Group is the tokens of one category, in their original relative order.
type Group struct {
	Category category.Category `json:"category"`
	Tokens   []string          `json:"tokens"`
}

// Engine orders class strings using a classifier.
type Engine struct {
	classifier *category.Classifier
}

var defaultEngine = New(category.Default())

// New creates an engine. A nil classifier means category.Default().
func New(c *category.Classifier) *Engine {
	if c == nil {
		c = category.Default()
	}
	return &Engine{classifier: c}
}

// Default returns the engine backed by the default classifier.
func Default() *Engine {
	return defaultEngine
}

// Order orders a class string with the default engine.
func Order(classString string) string {
	return defaultEngine.Order(classString)
}

// Order returns classString with its tokens grouped by category rank.
// Tokens keep their relative order within a category and are joined by
// single spaces. Blank input is returned unchanged.
func (e *Engine) Order(classString string) string {
	if strings.TrimSpace(classString) == "" {
		return classString
	}
	buckets := e.partition(strings.Fields(classString))

	var sb strings.Builder
	sb.Grow(len(classString))
	for _, bucket := range buckets {
		for _, tok := range bucket {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(tok)
		}
	}
	return sb.String()
}

// Groups returns the non-empty category groups of classString in output order.
func (e *Engine) Groups(classString string) []Group {
	buckets := e.partition(strings.Fields(classString))
	var groups []Group
	for i, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		groups = append(groups, Group{Category: category.Category(i), Tokens: bucket})
	}
	return groups
}

// Classifier returns the engine's classifier.
func (e *Engine) Classifier() *category.Classifier {
	return e.classifier
}

func (e *Engine) partition(tokens []string) [category.Misc + 1][]string {
	var buckets [category.Misc + 1][]string
	for _, tok := range tokens {
		c := e.classifier.Classify(tok)
		buckets[c] = append(buckets[c], tok)
	}
	return buckets
}
