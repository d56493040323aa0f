package goflow_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/BarrensZeppelin/flow/goflow"
	"github.com/stretchr/testify/require"
)

type checked struct {
	fset *token.FileSet
	file *ast.File
	info *types.Info
}

func typecheck(t *testing.T, src string) checked {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", "package p\n\nfunc use(...interface{}) {}\n"+src, 0)
	require.NoError(t, err)

	info := &types.Info{
		Types:     make(map[ast.Expr]types.TypeAndValue),
		Defs:      make(map[*ast.Ident]types.Object),
		Uses:      make(map[*ast.Ident]types.Object),
		Implicits: make(map[ast.Node]types.Object),
	}
	_, err = (&types.Config{}).Check("p", fset, []*ast.File{file}, info)
	require.NoError(t, err)

	return checked{fset, file, info}
}

// checkFunc analyzes the function f declared in src.
func checkFunc(t *testing.T, src string) (*goflow.Result, checked) {
	t.Helper()

	c := typecheck(t, src)
	for _, decl := range c.file.Decls {
		if fd, ok := decl.(*ast.FuncDecl); ok && fd.Name.Name == "f" {
			res, err := goflow.CheckFunc(c.info, fd.Body)
			require.NoError(t, err)
			return res, c
		}
	}

	t.Fatal("no function f in source")
	return nil, c
}

// lines returns the line numbers of the diagnostics in res.
func lines(c checked, diags []goflow.Diagnostic) []int {
	var res []int
	for _, d := range diags {
		res = append(res, c.fset.Position(d.Pos).Line)
	}
	return res
}
