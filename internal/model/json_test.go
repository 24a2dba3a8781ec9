package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestClassEntity_NullsAndEmptyLists(t *testing.T) {
	data, err := json.Marshal(ClassEntity{Name: "Repo"})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"name": "Repo",
		"namespace": "",
		"summary": null,
		"attributes": [],
		"methods": [],
		"dependencies": [],
		"implements": null,
		"extends": null
	}`, string(data))
}

func TestClassEntity_EmptyImplementsIsNull(t *testing.T) {
	data, err := json.Marshal(ClassEntity{Name: "Repo", Implements: []string{}})
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "null", string(raw["implements"]))
}

func TestClassEntity_DropsBlankDependencies(t *testing.T) {
	data, err := json.Marshal(ClassEntity{Name: "Repo", Dependencies: []string{"Foo", "", "  ", "Bar"}})
	require.NoError(t, err)

	var decoded struct {
		Dependencies []string `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"Foo", "Bar"}, decoded.Dependencies)
}

func TestModel_FullShape(t *testing.T) {
	m := Model{
		Classes: []ClassEntity{{
			Name:         "Repo",
			Namespace:    "App.Models",
			Summary:      strPtr("Stores things"),
			Attributes:   []string{"cache: int"},
			Methods:      []MethodEntity{{Name: "Find"}},
			Dependencies: []string{"int"},
			Implements:   []string{"IRepo"},
			Extends:      strPtr("Base"),
		}},
		Interfaces: []InterfaceEntity{{
			Name:      "IRepo",
			Namespace: "App.Models",
			Methods:   []MethodEntity{{Name: "Find", Summary: strPtr("Finds")}},
		}},
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"classes": [{
			"name": "Repo",
			"namespace": "App.Models",
			"summary": "Stores things",
			"attributes": ["cache: int"],
			"methods": [{"name": "Find", "summary": null}],
			"dependencies": ["int"],
			"implements": ["IRepo"],
			"extends": "Base"
		}],
		"interfaces": [{
			"name": "IRepo",
			"namespace": "App.Models",
			"methods": [{"name": "Find", "summary": "Finds"}]
		}]
	}`, string(data))
}

func TestModel_EmptyCollections(t *testing.T) {
	data, err := json.Marshal(Model{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"classes": [], "interfaces": []}`, string(data))
}

func TestQualifiedName(t *testing.T) {
	assert.Equal(t, "Repo", QualifiedName("", "Repo"))
	assert.Equal(t, "App.Models.Repo", QualifiedName("App.Models", "Repo"))
}

func TestModel_Stats(t *testing.T) {
	m := Model{
		Classes: []ClassEntity{
			{Name: "A", Methods: []MethodEntity{{Name: "x"}, {Name: "y"}}, Dependencies: []string{"B"}},
		},
		Interfaces: []InterfaceEntity{{Name: "I", Methods: []MethodEntity{{Name: "z"}}}},
	}
	assert.Equal(t, Stats{Classes: 1, Interfaces: 1, Methods: 3, Dependencies: 1}, m.Stats())
}
