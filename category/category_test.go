/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package category_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/twsort/category"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		token string
		want  category.Category
	}{
		{"flex", category.Layout},
		{"flex-col", category.Layout},
		{"hidden", category.Layout},
		{"break-words", category.Layout},
		{"absolute", category.Position},
		{"z-10", category.Position},
		{"invisible", category.Visibility},
		{"w-full", category.Sizing},
		{"max-w-lg", category.Sizing},
		{"p-4", category.Spacing},
		{"px-2", category.Spacing},
		{"space-y-4", category.Spacing},
		{"justify-center", category.Flexbox},
		{"grow", category.Flexbox},
		{"gap-2", category.Grid},
		{"border", category.Borders},
		{"outline-none", category.Borders},
		{"rounded-lg", category.Effects},
		{"shadow", category.Effects},
		{"bg-blue-500", category.Background},
		{"from-red-100", category.Background},
		{"text-lg", category.Typography},
		{"font-bold", category.Typography},
		{"uppercase", category.Typography},
		{"opacity-50", category.Visual},
		{"cursor-pointer", category.Visual},
		{"user-select-none", category.Interactivity},
		{"will-change-transform", category.Interactivity},
		{"fill-current", category.SVG},
		{"transition-all", category.Transitions},
		{"duration-300", category.Transitions},
		{"ring-2", category.Misc},
		{"card-header", category.Misc},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, category.Classify(tt.token))
		})
	}
}

func TestClassify_Variants(t *testing.T) {
	tests := []struct {
		token string
		want  category.Category
	}{
		{"hover:bg-red-500", category.Background},
		{"md:flex", category.Layout},
		{"2xl:p-8", category.Spacing},
		{"group-hover:text-white", category.Typography},
		{"dark:border-gray-700", category.Borders},
		// only one segment is stripped
		{"md:hover:bg-red-500", category.Misc},
		// unknown variants are not stripped
		{"print:hidden", category.Misc},
		{"hover:", category.Misc},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, category.Classify(tt.token))
		})
	}
}

func TestStripVariant(t *testing.T) {
	c := category.Default()
	assert.Equal(t, "p-4", c.StripVariant("hover:p-4"))
	assert.Equal(t, "hover:p-4", c.StripVariant("md:hover:p-4"))
	assert.Equal(t, "p-4", c.StripVariant("p-4"))
	assert.Equal(t, "", c.StripVariant("dark:"))
	assert.Equal(t, "peer-checked:p-4", c.StripVariant("peer-checked:p-4"))
}

func TestClassify_Deterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		require.Equal(t, category.Typography, category.Classify("text-lg"))
	}
}

func TestNewClassifier_CustomTable(t *testing.T) {
	table := category.Table{
		{Category: category.Typography, Prefixes: []string{"prose"}},
		// rule order does not matter, enumeration order does
		{Category: category.Layout, Prefixes: []string{"pro"}},
	}
	c := category.NewClassifier(table, []string{"peer-checked"})

	assert.Equal(t, category.Layout, c.Classify("prose-lg"))
	assert.Equal(t, category.Layout, c.Classify("peer-checked:prose"))
	assert.Equal(t, category.Misc, c.Classify("text-lg"))
}

func TestNewClassifier_IgnoresEmptyPrefix(t *testing.T) {
	c := category.NewClassifier(category.Table{{Category: category.Layout, Prefixes: []string{""}}}, nil)
	assert.Equal(t, category.Misc, c.Classify("anything"))
}

func TestTable_Extend(t *testing.T) {
	base := category.DefaultTable()
	extended := base.Extend(map[category.Category][]string{
		category.Typography: {"prose"},
	})

	c := category.NewClassifier(extended, category.DefaultVariants())
	assert.Equal(t, category.Typography, c.Classify("prose-xl"))
	assert.Equal(t, category.Misc, category.Classify("prose-xl"), "default table must not change")

	for _, rule := range extended {
		if rule.Category == category.Typography {
			assert.Equal(t, "prose", rule.Prefixes[len(rule.Prefixes)-1])
		}
	}
	assert.Len(t, extended, len(base))
}

func TestParse(t *testing.T) {
	for _, c := range category.All() {
		parsed, err := category.Parse(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := category.Parse("colors")
	assert.ErrorIs(t, err, category.ErrUnknown)
}

func TestAll_Order(t *testing.T) {
	all := category.All()
	require.Len(t, all, 16)
	assert.Equal(t, category.Layout, all[0])
	assert.Equal(t, category.Misc, all[len(all)-1])
	for i := 1; i < len(all); i++ {
		assert.Less(t, int(all[i-1]), int(all[i]))
	}
}

func TestCategory_String_OutOfRange(t *testing.T) {
	assert.Equal(t, "Category(42)", category.Category(42).String())
	assert.False(t, category.Category(-1).Valid())
}
