package goflow

import (
	"errors"
	"go/ast"
	"go/token"
	"go/types"
	"sort"

	"github.com/BarrensZeppelin/flow"
)

type Diagnostic struct {
	Pos     token.Pos
	Message string
}

type Result struct {
	// Exit is the state at the end of the function body. It is unreachable
	// when control cannot fall off the end.
	Exit        *State
	Diagnostics []Diagnostic
	// Unresolved lists the labels with branches that were never resolved,
	// such as the targets of backward gotos.
	Unresolved []*flow.Label
}

// CheckFunc analyzes a single function body. Nested function literals are not
// entered. An error is returned only if the analysis itself is broken.
func CheckFunc(info *types.Info, body *ast.BlockStmt) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.Is(e, flow.ErrUnknownDecision) {
				res, err = nil, e
				return
			}
			panic(r)
		}
	}()

	c := newChecker(info)
	p := flow.NewPass[*State](Definite, c, Entry())
	if body != nil {
		c.VisitStmts(p, body.List)
	}

	return &Result{
		Exit:        p.State(),
		Diagnostics: c.diags,
		Unresolved:  p.Pending(),
	}, nil
}

// CheckFiles analyzes every function declaration and function literal in
// files and returns the diagnostics in source order.
func CheckFiles(info *types.Info, files []*ast.File) ([]Diagnostic, error) {
	var diags []Diagnostic
	var err error
	for _, file := range files {
		ast.Inspect(file, func(n ast.Node) bool {
			if err != nil {
				return false
			}

			var body *ast.BlockStmt
			switch n := n.(type) {
			case *ast.FuncDecl:
				body = n.Body
			case *ast.FuncLit:
				body = n.Body
			default:
				return true
			}

			var res *Result
			if res, err = CheckFunc(info, body); err == nil {
				diags = append(diags, res.Diagnostics...)
			}
			return true
		})
	}

	sort.SliceStable(diags, func(i, j int) bool { return diags[i].Pos < diags[j].Pos })
	return diags, err
}
