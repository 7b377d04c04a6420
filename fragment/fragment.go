/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package fragment builds and reads the HTML fragments exchanged with
// external class sorters.
package fragment

import (
	"html"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	"gitlab.com/tozd/go/errors"
)

// ClassAttribute is the attribute carrying the class string.
const ClassAttribute = "class"

// ErrNoClass is returned when a fragment has no class attribute.
var ErrNoClass = errors.Base("fragment has no class attribute")

var htmlLanguage = tree_sitter.NewLanguage(tree_sitter_html.Language())

// Wrap returns a fragment whose single element carries classString,
// escaped so quotes inside arbitrary values stay in the attribute.
func Wrap(classString string) string {
	return `<div class="` + html.EscapeString(classString) + `"></div>`
}

// ExtractClass returns the unescaped value of the first class attribute
// in fragment.
func ExtractClass(fragment string) (string, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(htmlLanguage); err != nil {
		return "", errors.Errorf("loading html grammar: %w", err)
	}

	source := []byte(fragment)
	tree := parser.Parse(source, nil)
	if tree == nil {
		return "", errors.Errorf("parsing fragment: %w", ErrNoClass)
	}
	defer tree.Close()

	if value, ok := findClass(tree.RootNode(), source); ok {
		return html.UnescapeString(value), nil
	}
	return "", errors.WithStack(ErrNoClass)
}

// findClass walks the tree depth-first for an attribute named class.
func findClass(node *tree_sitter.Node, source []byte) (string, bool) {
	if node == nil {
		return "", false
	}
	if node.Kind() == "attribute" {
		if value, ok := classValue(node, source); ok {
			return value, true
		}
		return "", false
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if value, ok := findClass(node.NamedChild(i), source); ok {
			return value, true
		}
	}
	return "", false
}

// classValue reads an attribute node shaped
// (attribute (attribute_name) (quoted_attribute_value (attribute_value)?)).
func classValue(attr *tree_sitter.Node, source []byte) (string, bool) {
	var name string
	var value string
	for i := uint(0); i < attr.NamedChildCount(); i++ {
		child := attr.NamedChild(i)
		switch child.Kind() {
		case "attribute_name":
			name = child.Utf8Text(source)
		case "attribute_value":
			value = child.Utf8Text(source)
		case "quoted_attribute_value":
			if child.NamedChildCount() > 0 {
				value = child.NamedChild(0).Utf8Text(source)
			}
		}
	}
	if name != ClassAttribute {
		return "", false
	}
	return value, true
}
