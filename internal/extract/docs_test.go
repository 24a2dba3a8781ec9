package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/archlens/internal/syntax"
)

func docLines(lines ...string) syntax.Trivia {
	text := ""
	for i, l := range lines {
		if i > 0 {
			text += "\n"
		}
		text += "/// " + l
	}
	return syntax.Trivia{Kind: syntax.TriviaSingleLineDoc, Text: text}
}

func TestSummaryFor(t *testing.T) {
	tests := []struct {
		name    string
		leading []syntax.Trivia
		want    *string
	}{
		{
			name: "no trivia",
			want: nil,
		},
		{
			name:    "plain comment only",
			leading: []syntax.Trivia{{Kind: syntax.TriviaComment, Text: "// not docs"}},
			want:    nil,
		},
		{
			name:    "single line summary",
			leading: []syntax.Trivia{docLines("<summary>Gets id</summary>")},
			want:    strPtr("Gets id"),
		},
		{
			name:    "multi line summary is trimmed",
			leading: []syntax.Trivia{docLines("<summary>", "Gets id", "</summary>")},
			want:    strPtr("Gets id"),
		},
		{
			name: "summary with sibling elements",
			leading: []syntax.Trivia{docLines(
				"<summary>Finds a user.</summary>",
				`<param name="id">The id.</param>`,
				"<returns>The user.</returns>",
			)},
			want: strPtr("Finds a user."),
		},
		{
			name:    "nested markup contributes text",
			leading: []syntax.Trivia{docLines(`<summary>Uses <c>Repo</c> internally</summary>`)},
			want:    strPtr("Uses Repo internally"),
		},
		{
			name:    "first summary wins",
			leading: []syntax.Trivia{docLines("<summary>first</summary>", "<summary>second</summary>")},
			want:    strPtr("first"),
		},
		{
			name:    "summary nested in other element",
			leading: []syntax.Trivia{docLines("<remarks><summary>deep</summary></remarks>")},
			want:    strPtr("deep"),
		},
		{
			name:    "no summary element",
			leading: []syntax.Trivia{docLines("<remarks>hello</remarks>")},
			want:    nil,
		},
		{
			name:    "malformed markup",
			leading: []syntax.Trivia{docLines("<summary>unclosed")},
			want:    nil,
		},
		{
			name:    "mismatched tags",
			leading: []syntax.Trivia{docLines("<summary>text</remarks>")},
			want:    nil,
		},
		{
			name:    "malformed after summary still fails",
			leading: []syntax.Trivia{docLines("<summary>ok</summary>", "<para>")},
			want:    nil,
		},
		{
			name:    "entities are decoded",
			leading: []syntax.Trivia{docLines("<summary>a &lt; b</summary>")},
			want:    strPtr("a < b"),
		},
		{
			name: "multi line doc block",
			leading: []syntax.Trivia{{
				Kind: syntax.TriviaMultiLineDoc,
				Text: "/**\n * <summary>\n * Block docs\n * </summary>\n */",
			}},
			want: strPtr("Block docs"),
		},
		{
			name: "first doc block after plain comment",
			leading: []syntax.Trivia{
				{Kind: syntax.TriviaComment, Text: "// region"},
				docLines("<summary>after comment</summary>"),
				docLines("<summary>ignored</summary>"),
			},
			want: strPtr("after comment"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := &syntax.Node{Kind: syntax.KindCompilationUnit}
			m := root.Append(&syntax.Node{Kind: syntax.KindMethod, Name: "M", Leading: tt.leading})
			idx := BuildTriviaIndex(&syntax.File{Root: root})

			got := SummaryFor(m, idx)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestBuildTriviaIndex_OnlyDocumentedMembers(t *testing.T) {
	root := &syntax.Node{Kind: syntax.KindCompilationUnit}
	ns := root.Append(&syntax.Node{Kind: syntax.KindNamespace, Name: "App"})
	documented := ns.Append(&syntax.Node{Kind: syntax.KindClass, Name: "A", Leading: []syntax.Trivia{docLines("<summary>A</summary>")}})
	plain := ns.Append(&syntax.Node{Kind: syntax.KindClass, Name: "B"})
	field := documented.Append(&syntax.Node{Kind: syntax.KindField, Leading: []syntax.Trivia{docLines("<summary>f</summary>")}})

	idx := BuildTriviaIndex(&syntax.File{Root: root})

	assert.Len(t, idx, 2)
	assert.Contains(t, idx, documented)
	assert.Contains(t, idx, field)
	assert.NotContains(t, idx, plain)
}

func TestBuildTriviaIndex_NilFile(t *testing.T) {
	assert.Empty(t, BuildTriviaIndex(nil))
	assert.Nil(t, SummaryFor(&syntax.Node{}, nil))
}
