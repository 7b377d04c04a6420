/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package classify provides the classify command for twsort.
package classify

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mazznoer/csscolorparser"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/twsort/category"
	twfs "bennypowers.dev/twsort/fs"
	"bennypowers.dev/twsort/internal/session"
	"bennypowers.dev/twsort/order"
)

// Cmd is the classify cobra command.
var Cmd = &cobra.Command{
	Use:   "classify [tokens...]",
	Short: "Show the category of class tokens",
	Long: `Show which ordering category each class token falls in, using the
built-in prefix table plus any prefixes and variants from .config/twsort.yaml.
Without arguments tokens are read from stdin.

Use --groups to show the tokens grouped in the order they will be sorted,
and --table to print the prefix table itself.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("table", false, "Print the category prefix table")
	Cmd.Flags().Bool("groups", false, "Group the tokens by category in sorted order")
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
}

func run(cmd *cobra.Command, args []string) error {
	table, _ := cmd.Flags().GetBool("table")
	grouped, _ := cmd.Flags().GetBool("groups")
	format, _ := cmd.Flags().GetString("format")

	s, err := session.New(twfs.NewOSFileSystem(), session.OverridesFromViper())
	if err != nil {
		return err
	}
	classifier := s.Engine.Classifier()
	w := cmd.OutOrStdout()

	if table {
		return outputTable(w, classifier)
	}

	tokens := args
	if len(tokens) == 0 {
		if tokens, err = readTokens(cmd.InOrStdin()); err != nil {
			return err
		}
	}

	if grouped {
		return outputGroups(w, format, s.Engine.Groups(strings.Join(tokens, " ")))
	}

	entries := Classify(classifier, tokens)
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	for _, e := range entries {
		if e.Color != "" {
			fmt.Fprintf(w, "%-40s %-14s %s%s\n", e.Token, e.Category, colorSwatch(e.Color), e.Color)
			continue
		}
		fmt.Fprintf(w, "%-40s %s\n", e.Token, e.Category)
	}
	return nil
}

// Entry is a classified token.
type Entry struct {
	Token    string            `json:"token"`
	Category category.Category `json:"category"`
	// Color is the hex value of an arbitrary color, as in bg-[#1da1f2].
	Color string `json:"color,omitempty"`
}

// Classify classifies each whitespace-separated token in tokens.
func Classify(c *category.Classifier, tokens []string) []Entry {
	var entries []Entry
	for _, arg := range tokens {
		for _, tok := range strings.Fields(arg) {
			entries = append(entries, Entry{
				Token:    tok,
				Category: c.Classify(tok),
				Color:    arbitraryColor(c.StripVariant(tok)),
			})
		}
	}
	return entries
}

func readTokens(r io.Reader) ([]string, error) {
	var tokens []string
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	return tokens, scanner.Err()
}

func outputGroups(w io.Writer, format string, groups []order.Group) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(groups)
	}
	caser := cases.Title(language.English)
	for _, g := range groups {
		if _, err := fmt.Fprintf(w, "%-14s %s\n", caser.String(g.Category.String()), strings.Join(g.Tokens, " ")); err != nil {
			return err
		}
	}
	return nil
}

func outputTable(w io.Writer, c *category.Classifier) error {
	caser := cases.Title(language.English)
	for _, cat := range category.All() {
		prefixes := c.Prefixes(cat)
		if cat == category.Misc {
			prefixes = []string{"(anything else)"}
		}
		if _, err := fmt.Fprintf(w, "%-14s %s\n", caser.String(cat.String()), strings.Join(prefixes, " ")); err != nil {
			return err
		}
	}
	return nil
}

// arbitraryColor returns the hex form of a bracketed arbitrary value that
// parses as a CSS color, or "". Underscores stand for spaces.
func arbitraryColor(token string) string {
	open := strings.Index(token, "-[")
	if open < 0 || !strings.HasSuffix(token, "]") {
		return ""
	}
	value := strings.ReplaceAll(token[open+2:len(token)-1], "_", " ")
	c, err := csscolorparser.Parse(value)
	if err != nil {
		return ""
	}
	return c.HexString()
}

// colorSwatch returns a 24-bit ANSI color block for a parsed color.
func colorSwatch(hex string) string {
	c, err := csscolorparser.Parse(hex)
	if err != nil {
		return ""
	}
	r, g, b, _ := c.RGBA255()
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m ", r, g, b)
}
