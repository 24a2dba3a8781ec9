package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree() *Node {
	root := &Node{Kind: KindCompilationUnit}
	ns := root.Append(&Node{Kind: KindNamespace, Name: "App"})
	outer := ns.Append(&Node{Kind: KindClass, Name: "Outer"})
	outer.Append(&Node{Kind: KindField, Type: "int", Variables: []string{"x"}})
	outer.Append(&Node{Kind: KindClass, Name: "Inner"})
	outer.Append(&Node{Kind: KindMethod, Name: "Run"})
	root.Append(&Node{Kind: KindInterface, Name: "IGlobal"})
	return root
}

func TestDescendants_PreOrder(t *testing.T) {
	root := buildTree()
	var names []string
	for _, n := range root.Descendants() {
		names = append(names, string(n.Kind)+":"+n.Name)
	}
	assert.Equal(t, []string{
		"namespace:App",
		"class:Outer",
		"field:",
		"class:Inner",
		"method:Run",
		"interface:IGlobal",
	}, names)
}

func TestMembers(t *testing.T) {
	root := buildTree()
	outer := root.Children[0].Children[0]
	require.Equal(t, "Outer", outer.Name)

	assert.Len(t, outer.Members(KindField), 1)
	assert.Len(t, outer.Members(KindMethod), 1)
	assert.Empty(t, outer.Members(KindProperty))
}

func TestEnclosingNamespace(t *testing.T) {
	root := buildTree()
	outer := root.Children[0].Children[0]
	inner := outer.Members(KindClass)[0]

	assert.Equal(t, "App", outer.EnclosingNamespace())
	assert.Equal(t, "", inner.EnclosingNamespace(), "types nested in a type are global")
	assert.Equal(t, "", root.Children[1].EnclosingNamespace())
}

func TestTrivia_IsDoc(t *testing.T) {
	assert.True(t, Trivia{Kind: TriviaSingleLineDoc}.IsDoc())
	assert.True(t, Trivia{Kind: TriviaMultiLineDoc}.IsDoc())
	assert.False(t, Trivia{Kind: TriviaComment}.IsDoc())
}
