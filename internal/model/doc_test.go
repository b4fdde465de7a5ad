package model

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The record and payload types are the API's public vocabulary, so every
// exported declaration in them carries a doc comment.
func TestRecordFiles_ExportedDeclsDocumented(t *testing.T) {
	fset := token.NewFileSet()

	for _, name := range []string{"user.go", "character.go", "planet.go", "vehicle.go"} {
		src, err := os.ReadFile(name)
		require.NoError(t, err)

		file, err := parser.ParseFile(fset, name, src, parser.ParseComments)
		require.NoError(t, err)

		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				if d.Name.IsExported() {
					assert.NotNil(t, d.Doc, "%s: %s has no doc comment", name, d.Name.Name)
					if d.Doc != nil {
						assert.True(t, strings.HasPrefix(d.Doc.Text(), d.Name.Name+" "),
							"%s: doc of %s should start with its name", name, d.Name.Name)
					}
				}
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}
				for _, s := range d.Specs {
					ts := s.(*ast.TypeSpec)
					if ts.Name.IsExported() {
						assert.NotNil(t, d.Doc, "%s: type %s has no doc comment", name, ts.Name.Name)
					}
				}
			}
		}
	}
}
