package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureProject = "../../testdata/fixtures/csharp_project"

// writeTree creates the given files (slash-separated, relative) under a
// temp dir and returns the dir.
func writeTree(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("class C {}\n"), 0o644))
	}
	return dir
}

func TestResolve(t *testing.T) {
	dir := writeTree(t, "App.csproj", "App.sln", "Program.cs", "README.md")

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"directory", dir, dir, nil},
		{"project file", filepath.Join(dir, "App.csproj"), dir, nil},
		{"solution file", filepath.Join(dir, "App.sln"), dir, nil},
		{"source file", filepath.Join(dir, "Program.cs"), "", ErrUnsupportedInput},
		{"other file", filepath.Join(dir, "README.md"), "", ErrUnsupportedInput},
		{"missing", filepath.Join(dir, "nope"), "", ErrInputNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscover_SortedRelativePaths(t *testing.T) {
	dir := writeTree(t,
		"Zeta.cs",
		"Models/Repo.cs",
		"Models/Notes.txt",
		"Alpha.CS",
		".git/hooks/Hook.cs",
	)

	d, err := NewDiscovery(nil, nil)
	require.NoError(t, err)

	files, err := d.Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha.CS", "Models/Repo.cs", "Zeta.cs"}, files)
}

func TestDiscover_ExcludeDirsAndSkip(t *testing.T) {
	dir := writeTree(t,
		"Program.cs",
		"obj/Debug/Gen.cs",
		"src/obj/Gen.cs",
		"bin/Out.cs",
		"src/Service.cs",
		"src/Service.Designer.cs",
		"Form.Designer.cs",
	)

	d, err := NewDiscovery([]string{"obj"}, []string{"bin/**", "**/*.Designer.cs"})
	require.NoError(t, err)

	files, err := d.Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Program.cs", "src/Service.cs"}, files)
}

func TestDiscover_RootedDoubleStarPattern(t *testing.T) {
	dir := writeTree(t, "gen/A.cs", "lib/gen/B.cs", "lib/C.cs")

	d, err := NewDiscovery(nil, []string{"**/gen/**"})
	require.NoError(t, err)

	files, err := d.Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/C.cs"}, files)
}

func TestNewDiscovery_BadPattern(t *testing.T) {
	_, err := NewDiscovery(nil, []string{"[unterminated"})
	assert.Error(t, err)
}

func TestDiscover_SolutionFixture(t *testing.T) {
	root, err := Resolve(filepath.Join(fixtureProject, "App.sln"))
	require.NoError(t, err)

	d, err := NewDiscovery([]string{"obj"}, []string{"Broken/**"})
	require.NoError(t, err)

	files, err := d.Discover(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"Global.cs", "Models/Repo.cs", "Services/UserService.cs"}, files)
}
