package validator

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int         { return &i }
func strPtr(s string) *string   { return &s }
func item(index int) FormatItem { return FormatItem{Index: index} }

func TestExtractItems(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []FormatItem
		failure  Kind
	}{
		// --- No items ---
		{name: "empty", template: ""},
		{name: "plain text", template: "no placeholders here"},
		{name: "escaped open", template: "{{"},
		{name: "escaped close", template: "}}"},
		{name: "escaped item text", template: "{{0}}"},

		// --- Items ---
		{name: "single item", template: "Hello {0}!", want: []FormatItem{item(0)}},
		{name: "items in order of appearance", template: "{1} {0} {1}", want: []FormatItem{item(1), item(0), item(1)}},
		{
			name:     "alignment and spec",
			template: "{0,-5} {1:N2} {2,3:C}",
			want: []FormatItem{
				{Index: 0, Alignment: intPtr(-5)},
				{Index: 1, FormatSpec: strPtr("N2")},
				{Index: 2, Alignment: intPtr(3), FormatSpec: strPtr("C")},
			},
		},
		{name: "non-ascii text", template: "→ {0} ←", want: []FormatItem{item(0)}},

		// --- Runs of three or more braces ---
		{name: "escape then item", template: "{{{0}}}", want: []FormatItem{item(0)}},
		{name: "item then escaped close", template: "{0}}}", want: []FormatItem{item(0)}},
		{name: "four open four close", template: "{{{{}}}}"},
		{name: "three open", template: "{{{", failure: UnbalancedBraces},
		{name: "escaped open then stray close", template: "{{0}", failure: UnbalancedBraces},
		{name: "item then single extra close", template: "{0}}", failure: UnbalancedBraces},
		{name: "nested open", template: "{0{1}", failure: UnbalancedBraces},
		{name: "brace inside spec", template: "{0:{{}}}"},

		// --- Failures ---
		{name: "lone open", template: "{", failure: UnbalancedBraces},
		{name: "lone close", template: "}", failure: UnbalancedBraces},
		{name: "unclosed item", template: "{0", failure: UnbalancedBraces},
		{name: "empty item", template: "{}", failure: InvalidCharAfterOpenBrace},
		{name: "space after open", template: "{ 0}", failure: InvalidCharAfterOpenBrace},
		{name: "letter after open", template: "a {b}", failure: InvalidCharAfterOpenBrace},
		{name: "item failure propagates", template: "{0,x} {", failure: ItemAlignmentNotInteger},
		{name: "malformed item", template: "{0:a,b}", failure: ItemMalformed},
		{name: "index not a number", template: "{0x}", failure: ItemIndexNotInteger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, failure := ExtractItems(tt.template)
			if tt.failure != 0 {
				require.NotNil(t, failure)
				assert.Equal(t, tt.failure, failure.Kind)
				assert.Nil(t, got)
				return
			}
			require.Nil(t, failure, "unexpected failure %v", failure)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractItems(%q) mismatch (-want +got):\n%s", tt.template, diff)
			}
		})
	}
}

// Every template made only of "{{" and "}}" pairs is balanced and has no items.
func TestExtractItemsEscapePairs(t *testing.T) {
	pairs := []string{"{{", "}}"}

	for n := 1; n <= 6; n++ {
		for mask := 0; mask < 1<<n; mask++ {
			var b strings.Builder
			for i := range n {
				b.WriteString(pairs[(mask>>i)&1])
			}

			template := b.String()
			got, failure := ExtractItems(template)
			assert.Nil(t, failure, "template %q", template)
			assert.Empty(t, got, "template %q", template)
		}
	}
}
