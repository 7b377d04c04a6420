/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package order_test

import (
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/twsort/category"
	"bennypowers.dev/twsort/order"
)

func TestOrder(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"readme example", "text-lg flex p-4 bg-blue-500", "flex p-4 bg-blue-500 text-lg"},
		{"already ordered", "flex p-4 bg-blue-500 text-lg", "flex p-4 bg-blue-500 text-lg"},
		{"single token", "flex", "flex"},
		{"collapses whitespace", "  text-lg\t\tflex\n p-4 ", "flex p-4 text-lg"},
		{"misc last", "ring-2 card flex", "flex ring-2 card"},
		{"variants keep their prefix", "hover:bg-red-500 md:flex text-sm", "md:flex hover:bg-red-500 text-sm"},
		{"duplicates kept", "p-4 flex p-4", "flex p-4 p-4"},
		{"transitions after svg", "transition-all fill-current", "fill-current transition-all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, order.Order(tt.input))
		})
	}
}

func TestOrder_BlankIdentity(t *testing.T) {
	for _, in := range []string{"", " ", "   ", "\t\n"} {
		assert.Equal(t, in, order.Order(in))
	}
}

func TestOrder_IntraCategoryStability(t *testing.T) {
	// p-4, mx-2 and space-x-1 are all spacing; their order must survive
	got := order.Order("space-x-1 text-lg p-4 flex mx-2")
	assert.Equal(t, "flex space-x-1 p-4 mx-2 text-lg", got)
}

func TestEngine_Groups(t *testing.T) {
	groups := order.Default().Groups("text-lg flex p-4 bg-blue-500 text-white")
	require.Len(t, groups, 4)
	assert.Equal(t, category.Layout, groups[0].Category)
	assert.Equal(t, []string{"flex"}, groups[0].Tokens)
	assert.Equal(t, category.Typography, groups[3].Category)
	assert.Equal(t, []string{"text-lg", "text-white"}, groups[3].Tokens)
}

func TestNew_CustomClassifier(t *testing.T) {
	table := category.DefaultTable().Extend(map[category.Category][]string{category.Layout: {"prose"}})
	engine := order.New(category.NewClassifier(table, category.DefaultVariants()))
	assert.Equal(t, "prose p-4", engine.Order("p-4 prose"))
	assert.Equal(t, "p-4 prose", order.Order("p-4 prose"))
}

var pool = []string{
	"flex", "block", "hidden", "absolute", "z-10", "visible", "w-full", "h-4",
	"p-4", "mx-2", "space-y-1", "justify-between", "items-center", "gap-4",
	"border", "border-gray-200", "rounded", "shadow-md", "bg-white", "from-red-500",
	"text-lg", "font-bold", "uppercase", "opacity-75", "cursor-pointer", "user-select-none",
	"fill-current", "transition-all", "duration-200", "ring-2", "card", "btn-primary",
	"hover:bg-gray-100", "md:flex", "dark:text-white", "focus:ring", "lg:w-1/2",
}

func randomClassString(r *rand.Rand) string {
	n := r.Intn(12)
	seps := []string{" ", "  ", "\t", "\n  "}
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 || r.Intn(3) == 0 {
			sb.WriteString(seps[r.Intn(len(seps))])
		}
		sb.WriteString(pool[r.Intn(len(pool))])
	}
	return sb.String()
}

func TestOrder_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		in := randomClassString(r)
		out := order.Order(in)

		if strings.TrimSpace(in) == "" {
			require.Equal(t, in, out, "blank identity for %q", in)
			continue
		}

		// idempotence
		require.Equal(t, out, order.Order(out), "idempotence for %q", in)

		// token conservation
		inTokens := strings.Fields(in)
		outTokens := strings.Fields(out)
		slices.Sort(inTokens)
		sortedOut := slices.Clone(outTokens)
		slices.Sort(sortedOut)
		require.Equal(t, inTokens, sortedOut, "conservation for %q", in)

		// category monotonicity
		for j := 1; j < len(outTokens); j++ {
			require.LessOrEqual(t,
				int(category.Classify(outTokens[j-1])), int(category.Classify(outTokens[j])),
				"monotonicity for %q", in)
		}

		// intra-category stability
		originals := strings.Fields(in)
		for _, c := range category.All() {
			var before, after []string
			for _, tok := range originals {
				if category.Classify(tok) == c {
					before = append(before, tok)
				}
			}
			for _, tok := range outTokens {
				if category.Classify(tok) == c {
					after = append(after, tok)
				}
			}
			require.Equal(t, before, after, "stability of %s for %q", c, in)
		}
	}
}
