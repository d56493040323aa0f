package goflow

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const doc = `report switch cases that can never be selected

The switchflow analyzer runs a flow analysis over every function and reports
case clauses of switch statements that no execution can reach, such as the
non-matching cases of a switch over a constant.`

var Analyzer = &analysis.Analyzer{
	Name:     "switchflow",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	ins := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.FuncDecl)(nil),
		(*ast.FuncLit)(nil),
	}

	var err error
	ins.Preorder(nodeFilter, func(n ast.Node) {
		if err != nil {
			return
		}

		var body *ast.BlockStmt
		switch n := n.(type) {
		case *ast.FuncDecl:
			body = n.Body
		case *ast.FuncLit:
			body = n.Body
		}

		var res *Result
		if res, err = CheckFunc(pass.TypesInfo, body); err != nil {
			return
		}
		for _, d := range res.Diagnostics {
			pass.Reportf(d.Pos, "%s", d.Message)
		}
	})

	return nil, err
}
