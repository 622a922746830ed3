package weapon

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The holder only knows its collaborators through contracts.go. In-repo
// imports are limited to the leaf packages those contracts name.
func TestRepoImportsAreLeafPackages(t *testing.T) {
	const module = "github.com/milk9111/gunplay/"
	allowed := map[string]bool{module + "pose": true, module + "schedule": true}

	files, err := filepath.Glob("*.go")
	require.NoError(t, err)

	fset := token.NewFileSet()
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		require.NoError(t, err)
		for _, spec := range f.Imports {
			path, err := strconv.Unquote(spec.Path.Value)
			require.NoError(t, err)
			if strings.HasPrefix(path, module) {
				assert.True(t, allowed[path], "%s imports %s", name, path)
			}
		}
	}

	for _, leaf := range []string{"pose", "schedule"} {
		leafFiles, err := filepath.Glob(filepath.Join("..", leaf, "*.go"))
		require.NoError(t, err)
		require.NotEmpty(t, leafFiles)
		for _, name := range leafFiles {
			if strings.HasSuffix(name, "_test.go") {
				continue
			}
			f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
			require.NoError(t, err)
			for _, spec := range f.Imports {
				path, _ := strconv.Unquote(spec.Path.Value)
				assert.False(t, strings.HasPrefix(path, module), "%s imports %s", name, path)
			}
		}
	}
}
