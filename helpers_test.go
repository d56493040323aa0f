package flow_test

import (
	"go/ast"
	"go/token"
	"sort"
	"strings"

	"github.com/BarrensZeppelin/flow"
)

// facts is a may-analysis state: the set of statements that may have run.
type facts struct {
	dead bool
	set  []string
}

func (f *facts) String() string {
	if f.dead {
		return "⊥"
	}
	return "{" + strings.Join(f.set, ",") + "}"
}

func (f *facts) add(fact string) *facts {
	if f.dead {
		return f
	}
	for _, x := range f.set {
		if x == fact {
			return f
		}
	}
	set := append(append([]string(nil), f.set...), fact)
	sort.Strings(set)
	return &facts{set: set}
}

func reachable(set ...string) *facts {
	f := &facts{}
	for _, x := range set {
		f = f.add(x)
	}
	return f
}

type mayAlgebra struct{}

func (mayAlgebra) Clone(s *facts) *facts {
	return &facts{dead: s.dead, set: append([]string(nil), s.set...)}
}

func (a mayAlgebra) Merge(x, y *facts) *facts {
	switch {
	case x.dead:
		return a.Clone(y)
	case y.dead:
		return a.Clone(x)
	}
	res := a.Clone(x)
	for _, f := range y.set {
		res = res.add(f)
	}
	return res
}

func (mayAlgebra) Unreachable() *facts { return &facts{dead: true} }

// script is a visitor for a toy statement language: an identifier statement
// adds its name as a fact, return kills the state and break jumps to brk.
type script struct {
	brk *flow.Label

	scrutinees int
	entered    []string
}

func (s *script) VisitExpr(p *flow.Pass[*facts], e ast.Expr) {
	s.scrutinees++
}

func (s *script) VisitCondition(p *flow.Pass[*facts], e ast.Expr) (*facts, *facts) {
	alg := p.Algebra()
	st := p.State()
	switch id := e.(*ast.Ident); id.Name {
	case "true":
		return alg.Clone(st), alg.Unreachable()
	case "false":
		return alg.Unreachable(), alg.Clone(st)
	default:
		return st.add("guard:" + id.Name), alg.Clone(st)
	}
}

func (s *script) VisitStmts(p *flow.Pass[*facts], stmts []ast.Stmt) {
	for _, stmt := range stmts {
		switch stmt := stmt.(type) {
		case *ast.ExprStmt:
			p.SetState(p.State().add(stmt.X.(*ast.Ident).Name))
		case *ast.ReturnStmt:
			p.SetUnreachable()
		case *ast.BranchStmt:
			p.Branch(s.brk)
			p.SetUnreachable()
		}
	}
}

func (s *script) BindPattern(p *flow.Pass[*facts], leaf *flow.Guarded) {
	for _, obj := range leaf.Bindings {
		p.SetState(p.State().add("bind:" + obj.Name()))
	}
}

// EnterSection logs the first label of each section, prefixed with ! when
// the section is unreachable.
func (s *script) EnterSection(p *flow.Pass[*facts], sec *flow.Section) {
	name := sec.Labels[0].Name
	if p.State().dead {
		name = "!" + name
	}
	s.entered = append(s.entered, name)
}

// plain hides the optional hooks of script.
type plain struct{ s *script }

func (v plain) VisitExpr(p *flow.Pass[*facts], e ast.Expr) { v.s.VisitExpr(p, e) }
func (v plain) VisitCondition(p *flow.Pass[*facts], e ast.Expr) (*facts, *facts) {
	return v.s.VisitCondition(p, e)
}
func (v plain) VisitStmts(p *flow.Pass[*facts], stmts []ast.Stmt) { v.s.VisitStmts(p, stmts) }

func body(stmts ...string) []ast.Stmt {
	res := make([]ast.Stmt, len(stmts))
	for i, s := range stmts {
		switch s {
		case "return":
			res[i] = &ast.ReturnStmt{}
		case "break":
			res[i] = &ast.BranchStmt{Tok: token.BREAK}
		default:
			res[i] = &ast.ExprStmt{X: ast.NewIdent(s)}
		}
	}
	return res
}

func section(labels []*flow.Label, stmts ...string) flow.Section {
	return flow.Section{Labels: labels, Body: body(stmts...)}
}

func caseLabel(name string) *flow.Label { return flow.NewLabel(flow.CaseLabel, name) }

func newPass(v flow.Visitor[*facts], entry ...string) *flow.Pass[*facts] {
	return flow.NewPass[*facts](mayAlgebra{}, v, reachable(entry...))
}
