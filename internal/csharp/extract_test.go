package csharp

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/archlens/internal/extract"
	"github.com/dusk-indust/archlens/internal/filter"
	"github.com/dusk-indust/archlens/internal/model"
	"github.com/dusk-indust/archlens/internal/syntax"
)

const fixtureProject = "../../testdata/fixtures/csharp_project"

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func classByName(t *testing.T, m *model.Model, name string) model.ClassEntity {
	t.Helper()
	for _, c := range m.Classes {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("class %s not found", name)
	return model.ClassEntity{}
}

func interfaceByName(t *testing.T, m *model.Model, name string) model.InterfaceEntity {
	t.Helper()
	for _, i := range m.Interfaces {
		if i.Name == name {
			return i
		}
	}
	t.Fatalf("interface %s not found", name)
	return model.InterfaceEntity{}
}

func TestExtract_FixtureProject(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()

	ex := &extract.Extractor{Parser: p, Workers: 2, Logger: quietLogger()}
	res, err := ex.Extract(context.Background(), os.DirFS(fixtureProject), []string{
		"Broken/Broken.cs",
		"Global.cs",
		"Models/Repo.cs",
		"Services/UserService.cs",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Files)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "Broken/Broken.cs", res.Failures[0].Path)
	assert.ErrorIs(t, res.Failures[0], syntax.ErrSyntax)

	m := res.Model
	var names []string
	for _, c := range m.Classes {
		names = append(names, model.QualifiedName(c.Namespace, c.Name))
	}
	assert.Equal(t, []string{
		"SystemClock",
		"App.Models.Repo",
		"App.Services.UserService",
		"Options",
	}, names)

	repoIface := interfaceByName(t, m, "IRepo")
	require.Len(t, repoIface.Methods, 2)
	require.NotNil(t, repoIface.Methods[0].Summary)
	assert.Equal(t, "Gets id", *repoIface.Methods[0].Summary)
	assert.Nil(t, repoIface.Methods[1].Summary)

	repo := classByName(t, m, "Repo")
	assert.Nil(t, repo.Summary, "plain comments carry no summary")
	require.NotNil(t, repo.Extends)
	assert.Equal(t, "IRepo", *repo.Extends)
	assert.Equal(t, []string{"cache: int"}, repo.Attributes)
	assert.Equal(t, []string{"int"}, repo.Dependencies)

	svc := classByName(t, m, "UserService")
	assert.Equal(t, "App.Services", svc.Namespace)
	require.NotNil(t, svc.Summary)
	assert.Equal(t, "Coordinates user workflows.", *svc.Summary)
	assert.Equal(t, []string{
		"repo: IRepo", "x: int", "y: int", "backup: IRepo", "Name: string", "Count: int",
	}, svc.Attributes)
	assert.Equal(t, []string{"IRepo", "int", "ILogger<UserService>"}, svc.Dependencies)
	require.NotNil(t, svc.Extends)
	assert.Equal(t, "ServiceBase", *svc.Extends)
	assert.Equal(t, []string{"IUserService", "IDisposable"}, svc.Implements)

	require.Len(t, svc.Methods, 2)
	assert.Equal(t, "Lookup", svc.Methods[0].Name)
	require.NotNil(t, svc.Methods[0].Summary)
	assert.Equal(t, "Looks up a user.", *svc.Methods[0].Summary)
	assert.Equal(t, "Dispose", svc.Methods[1].Name)
	assert.Nil(t, svc.Methods[1].Summary, "malformed documentation yields no summary")

	clock := interfaceByName(t, m, "IClock")
	assert.Equal(t, "", clock.Namespace)
}

func TestExtract_FixtureProjectFiltered(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()

	ex := &extract.Extractor{
		Parser: p,
		Filter: filter.New([]string{"App.*"}, []string{"App.Services"}),
		Logger: quietLogger(),
	}
	res, err := ex.Extract(context.Background(), os.DirFS(fixtureProject), []string{
		"Global.cs",
		"Models/Repo.cs",
		"Services/UserService.cs",
	})
	require.NoError(t, err)

	require.Len(t, res.Model.Classes, 1)
	assert.Equal(t, "Repo", res.Model.Classes[0].Name)
	require.Len(t, res.Model.Interfaces, 1)
	assert.Equal(t, "IRepo", res.Model.Interfaces[0].Name)
}
