package csharp

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/archlens/internal/syntax"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// readFixture reads a test fixture file relative to the project root.
// Tests run from internal/csharp/, so the relative path is ../../testdata/...
func readFixture(t *testing.T, relPath string) []byte {
	t.Helper()
	data, err := os.ReadFile("../../" + relPath)
	require.NoError(t, err, "reading fixture %s", relPath)
	return data
}

func parse(t *testing.T, path string, src []byte) *syntax.File {
	t.Helper()
	p := NewTreeSitterParser()
	defer p.Close()
	f, err := p.Parse(context.Background(), path, src)
	require.NoError(t, err)
	require.NotNil(t, f)
	return f
}

// find returns the first descendant with the given kind and name, or nil.
func find(root *syntax.Node, kind syntax.Kind, name string) *syntax.Node {
	for _, n := range root.Descendants() {
		if n.Kind == kind && n.Name == name {
			return n
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestTreeSitterParser_BlockNamespace(t *testing.T) {
	f := parse(t, "Models/Repo.cs", readFixture(t, "testdata/fixtures/csharp_project/Models/Repo.cs"))
	assert.Equal(t, "Models/Repo.cs", f.Path)

	ns := find(f.Root, syntax.KindNamespace, "App.Models")
	require.NotNil(t, ns)

	repoIface := find(f.Root, syntax.KindInterface, "IRepo")
	require.NotNil(t, repoIface)
	assert.Equal(t, ns, repoIface.Parent)
	require.Len(t, repoIface.Leading, 1)
	assert.Equal(t, syntax.TriviaSingleLineDoc, repoIface.Leading[0].Kind)
	assert.Contains(t, repoIface.Leading[0].Text, "Read access to stored records.")

	methods := repoIface.Members(syntax.KindMethod)
	require.Len(t, methods, 2)
	assert.Equal(t, "Find", methods[0].Name)
	assert.Equal(t, "string", methods[0].Type)
	assert.Equal(t, []syntax.Param{{Name: "id", Type: "int"}}, methods[0].Params)
	require.Len(t, methods[0].Leading, 1, "consecutive /// lines form one block")
	assert.Equal(t, "/// <summary>Gets id</summary>\n/// <param name=\"id\">Record id.</param>", methods[0].Leading[0].Text)
	assert.Empty(t, methods[1].Leading)

	repo := find(f.Root, syntax.KindClass, "Repo")
	require.NotNil(t, repo)
	assert.Equal(t, []string{"IRepo"}, repo.BaseTypes)
	require.Len(t, repo.Leading, 1)
	assert.Equal(t, syntax.TriviaComment, repo.Leading[0].Kind)

	fields := repo.Members(syntax.KindField)
	require.Len(t, fields, 1)
	assert.Equal(t, "int", fields[0].Type)
	assert.Equal(t, []string{"cache"}, fields[0].Variables)
	assert.Len(t, repo.Members(syntax.KindMethod), 2)
	assert.Greater(t, repo.Line, repoIface.Line)
}

func TestTreeSitterParser_FileScopedNamespace(t *testing.T) {
	f := parse(t, "Services/UserService.cs", readFixture(t, "testdata/fixtures/csharp_project/Services/UserService.cs"))

	svc := find(f.Root, syntax.KindClass, "UserService")
	require.NotNil(t, svc)
	assert.Equal(t, "App.Services", svc.EnclosingNamespace())
	assert.Equal(t, []string{"ServiceBase", "IUserService", "IDisposable"}, svc.BaseTypes)

	fields := svc.Members(syntax.KindField)
	require.Len(t, fields, 3)
	assert.Equal(t, "IRepo", fields[0].Type)
	assert.Equal(t, []string{"repo"}, fields[0].Variables)
	assert.Equal(t, "int", fields[1].Type)
	assert.Equal(t, []string{"x", "y"}, fields[1].Variables)

	props := svc.Members(syntax.KindProperty)
	require.Len(t, props, 2)
	assert.Equal(t, "Name", props[0].Name)
	assert.Equal(t, "string", props[0].Type)
	require.Len(t, props[1].Leading, 1)
	assert.Equal(t, syntax.TriviaMultiLineDoc, props[1].Leading[0].Kind)

	ctors := svc.Members(syntax.KindConstructor)
	require.Len(t, ctors, 1)
	assert.Equal(t, []syntax.Param{
		{Name: "repo", Type: "IRepo"},
		{Name: "logger", Type: "ILogger<UserService>"},
		{Name: "retries", Type: "int"},
	}, ctors[0].Params)

	opts := find(f.Root, syntax.KindClass, "Options")
	require.NotNil(t, opts)
	assert.Equal(t, svc, opts.Parent)
	assert.Equal(t, "", opts.EnclosingNamespace())

	iface := find(f.Root, syntax.KindInterface, "IUserService")
	require.NotNil(t, iface)
	assert.Equal(t, "App.Services", iface.EnclosingNamespace())
}

func TestTreeSitterParser_GlobalNamespace(t *testing.T) {
	f := parse(t, "Global.cs", readFixture(t, "testdata/fixtures/csharp_project/Global.cs"))

	clock := find(f.Root, syntax.KindInterface, "IClock")
	require.NotNil(t, clock)
	assert.Equal(t, "", clock.EnclosingNamespace())
	require.Len(t, clock.Leading, 1)
	assert.True(t, clock.Leading[0].IsDoc())
}

func TestTreeSitterParser_SyntaxError(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()

	_, err := p.Parse(context.Background(), "Broken/Broken.cs", readFixture(t, "testdata/fixtures/csharp_project/Broken/Broken.cs"))
	require.Error(t, err)
	assert.ErrorIs(t, err, syntax.ErrSyntax)
	assert.Contains(t, err.Error(), "Broken/Broken.cs:")
}

func TestTreeSitterParser_DocGrouping(t *testing.T) {
	src := []byte(`/// first
/// second

/// third
// plain
/** block */
class X {}
`)
	f := parse(t, "X.cs", src)

	x := find(f.Root, syntax.KindClass, "X")
	require.NotNil(t, x)
	require.Len(t, x.Leading, 4)
	assert.Equal(t, syntax.Trivia{Kind: syntax.TriviaSingleLineDoc, Text: "/// first\n/// second"}, x.Leading[0])
	assert.Equal(t, syntax.Trivia{Kind: syntax.TriviaSingleLineDoc, Text: "/// third"}, x.Leading[1])
	assert.Equal(t, syntax.Trivia{Kind: syntax.TriviaComment, Text: "// plain"}, x.Leading[2])
	assert.Equal(t, syntax.Trivia{Kind: syntax.TriviaMultiLineDoc, Text: "/** block */"}, x.Leading[3])
}

func TestTreeSitterParser_NestedNamespaces(t *testing.T) {
	src := []byte(`namespace Outer
{
    namespace Inner
    {
        class A {}
    }
    class B {}
}
`)
	f := parse(t, "N.cs", src)

	assert.Equal(t, "Inner", find(f.Root, syntax.KindClass, "A").EnclosingNamespace())
	assert.Equal(t, "Outer", find(f.Root, syntax.KindClass, "B").EnclosingNamespace())
}

func TestTreeSitterParser_ConstructorParams(t *testing.T) {
	src := []byte(`class C
{
    public C(params string[] rest, ref int a, this Foo f, scoped Span<int> s, (int, string) tup, params int[]? more) {}
}
`)
	f := parse(t, "C.cs", src)

	ctors := find(f.Root, syntax.KindClass, "C").Members(syntax.KindConstructor)
	require.Len(t, ctors, 1)
	assert.Equal(t, []syntax.Param{
		{Name: "rest", Type: "string[]"},
		{Name: "a", Type: "int"},
		{Name: "f", Type: "Foo"},
		{Name: "s", Type: "Span<int>"},
		{Name: "tup", Type: "(int, string)"},
		{Name: "more", Type: "int[]?"},
	}, ctors[0].Params)
}

func TestTreeSitterParser_NestedTypeNamespace(t *testing.T) {
	src := []byte(`namespace App.Models
{
    public class Outer
    {
        public class Inner {}
    }
}
`)
	f := parse(t, "Outer.cs", src)

	assert.Equal(t, "App.Models", find(f.Root, syntax.KindClass, "Outer").EnclosingNamespace())
	assert.Equal(t, "", find(f.Root, syntax.KindClass, "Inner").EnclosingNamespace())
}

func TestCommentKind(t *testing.T) {
	tests := []struct {
		text string
		want syntax.TriviaKind
	}{
		{"/// doc", syntax.TriviaSingleLineDoc},
		{"///", syntax.TriviaSingleLineDoc},
		{"//// banner", syntax.TriviaComment},
		{"// plain", syntax.TriviaComment},
		{"/** doc */", syntax.TriviaMultiLineDoc},
		{"/**/", syntax.TriviaComment},
		{"/* plain */", syntax.TriviaComment},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, commentKind(tt.text))
		})
	}
}
