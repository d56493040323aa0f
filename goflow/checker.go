package goflow

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"

	"github.com/BarrensZeppelin/flow"
	"github.com/BarrensZeppelin/flow/internal/maps"
	"golang.org/x/tools/go/ast/astutil"
)

type pass = flow.Pass[*State]

// frame is an enclosing statement that break, continue or fallthrough can
// refer to.
type frame struct {
	label string
	brk   *flow.Label
	cont  *flow.Label // loops only

	// Switch statements only.
	sections []flow.Section
	cur      int
	live     bool
}

// checker walks the statements of one function body. It implements
// flow.Visitor along with the optional Binder and SectionObserver hooks.
type checker struct {
	info *types.Info

	frames []*frame
	labels map[string]*flow.Label
	// Name of the label attached to the statement being visited.
	nextLabel string

	diags []Diagnostic
}

func newChecker(info *types.Info) *checker {
	return &checker{
		info:   info,
		labels: make(map[string]*flow.Label),
	}
}

func (c *checker) push(f *frame) { c.frames = append(c.frames, f) }
func (c *checker) pop()          { c.frames = c.frames[:len(c.frames)-1] }

func (c *checker) takeLabel() string {
	l := c.nextLabel
	c.nextLabel = ""
	return l
}

func (c *checker) userLabel(name string) *flow.Label {
	l, ok := c.labels[name]
	if !ok {
		l = flow.NewLabel(flow.UserLabel, name)
		c.labels[name] = l
	}
	return l
}

// target finds the statement a break or continue refers to.
func (c *checker) target(label *ast.Ident, cont bool) *frame {
	for i := len(c.frames) - 1; i >= 0; i-- {
		f := c.frames[i]
		switch {
		case label != nil:
			if f.label == label.Name {
				return f
			}
		case !cont || f.cont != nil:
			return f
		}
	}
	return nil
}

// VisitExpr is a no-op: Go expressions can neither assign variables nor
// transfer control.
func (c *checker) VisitExpr(p *pass, e ast.Expr) {}

func (c *checker) VisitCondition(p *pass, e ast.Expr) (whenTrue, whenFalse *State) {
	st := p.State()
	if tv, ok := c.info.Types[e]; ok && tv.Value != nil && tv.Value.Kind() == constant.Bool {
		if constant.BoolVal(tv.Value) {
			return st, bottom
		}
		return bottom, st
	}

	alg := p.Algebra()
	switch e := e.(type) {
	case *ast.ParenExpr:
		return c.VisitCondition(p, e.X)

	case *ast.UnaryExpr:
		if e.Op == token.NOT {
			t, f := c.VisitCondition(p, e.X)
			return f, t
		}

	case *ast.BinaryExpr:
		switch e.Op {
		case token.LAND:
			lt, lf := c.VisitCondition(p, e.X)
			p.SetState(lt)
			rt, rf := c.VisitCondition(p, e.Y)
			return rt, alg.Merge(lf, rf)
		case token.LOR:
			lt, lf := c.VisitCondition(p, e.X)
			p.SetState(lf)
			rt, rf := c.VisitCondition(p, e.Y)
			return alg.Merge(lt, rt), rf
		}
	}

	c.VisitExpr(p, e)
	st = p.State()
	return st, st
}

func (c *checker) VisitStmts(p *pass, stmts []ast.Stmt) {
	for _, stmt := range stmts {
		c.stmt(p, stmt)
	}
}

func (c *checker) stmt(p *pass, stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		c.VisitStmts(p, s.List)

	case *ast.ExprStmt:
		c.VisitExpr(p, s.X)
		if c.noReturn(s.X) {
			p.SetUnreachable()
		}

	case *ast.AssignStmt:
		for _, e := range s.Rhs {
			c.VisitExpr(p, e)
		}
		for _, e := range s.Lhs {
			c.assign(p, e)
		}

	case *ast.IncDecStmt:
		c.VisitExpr(p, s.X)

	case *ast.SendStmt:
		c.VisitExpr(p, s.Chan)
		c.VisitExpr(p, s.Value)

	case *ast.GoStmt:
		c.VisitExpr(p, s.Call)

	case *ast.DeferStmt:
		c.VisitExpr(p, s.Call)

	case *ast.DeclStmt:
		c.decl(p, s)

	case *ast.ReturnStmt:
		for _, e := range s.Results {
			c.VisitExpr(p, e)
		}
		p.SetUnreachable()

	case *ast.BranchStmt:
		c.branch(p, s)

	case *ast.LabeledStmt:
		p.ResolveAt(c.userLabel(s.Label.Name))
		switch s.Stmt.(type) {
		case *ast.ForStmt, *ast.RangeStmt, *ast.SelectStmt, *ast.SwitchStmt, *ast.TypeSwitchStmt:
			c.nextLabel = s.Label.Name
		}
		c.stmt(p, s.Stmt)

	case *ast.IfStmt:
		c.ifStmt(p, s)

	case *ast.ForStmt:
		c.forStmt(p, s)

	case *ast.RangeStmt:
		c.rangeStmt(p, s)

	case *ast.SelectStmt:
		c.selectStmt(p, s)

	case *ast.SwitchStmt:
		c.switchStmt(p, s)

	case *ast.TypeSwitchStmt:
		c.typeSwitchStmt(p, s)
	}
}

func (c *checker) assign(p *pass, e ast.Expr) {
	id, ok := astutil.Unparen(e).(*ast.Ident)
	if !ok {
		c.VisitExpr(p, e)
		return
	}

	obj := c.info.Defs[id]
	if obj == nil {
		obj = c.info.Uses[id]
	}
	if v, ok := obj.(*types.Var); ok {
		p.SetState(p.State().assign(v))
	}
}

func (c *checker) decl(p *pass, s *ast.DeclStmt) {
	gd, ok := s.Decl.(*ast.GenDecl)
	if !ok || gd.Tok != token.VAR {
		return
	}

	for _, spec := range gd.Specs {
		vs := spec.(*ast.ValueSpec)
		for _, e := range vs.Values {
			c.VisitExpr(p, e)
		}
		if len(vs.Values) > 0 {
			for _, name := range vs.Names {
				c.assign(p, name)
			}
		}
	}
}

var noReturnFuncs = maps.FromKeys([]string{
	"os.Exit",
	"runtime.Goexit",
	"log.Fatal",
	"log.Fatalf",
	"log.Fatalln",
	"log.Panic",
	"log.Panicf",
	"log.Panicln",
})

// noReturn reports whether e is a call that never returns normally.
func (c *checker) noReturn(e ast.Expr) bool {
	call, ok := astutil.Unparen(e).(*ast.CallExpr)
	if !ok {
		return false
	}

	var id *ast.Ident
	switch fun := astutil.Unparen(call.Fun).(type) {
	case *ast.Ident:
		id = fun
	case *ast.SelectorExpr:
		id = fun.Sel
	default:
		return false
	}

	switch obj := c.info.Uses[id].(type) {
	case *types.Builtin:
		return obj.Name() == "panic"
	case *types.Func:
		_, ok := noReturnFuncs[obj.FullName()]
		return ok
	default:
		return false
	}
}

func (c *checker) branch(p *pass, s *ast.BranchStmt) {
	switch s.Tok {
	case token.BREAK:
		if f := c.target(s.Label, false); f != nil {
			p.Branch(f.brk)
		}
	case token.CONTINUE:
		if f := c.target(s.Label, true); f != nil {
			p.Branch(f.cont)
		}
	case token.GOTO:
		p.Branch(c.userLabel(s.Label.Name))
	case token.FALLTHROUGH:
		if len(c.frames) > 0 {
			f := c.frames[len(c.frames)-1]
			if next := f.cur + 1; next < len(f.sections) {
				p.Branch(f.sections[next].Labels[0])
			}
		}
	}

	p.SetUnreachable()
}

func (c *checker) ifStmt(p *pass, s *ast.IfStmt) {
	if s.Init != nil {
		c.stmt(p, s.Init)
	}

	whenTrue, whenFalse := c.VisitCondition(p, s.Cond)
	p.SetState(whenTrue)
	c.VisitStmts(p, s.Body.List)
	then := p.State()

	p.SetState(whenFalse)
	if s.Else != nil {
		c.stmt(p, s.Else)
	}
	p.Join(then)
}

func (c *checker) forStmt(p *pass, s *ast.ForStmt) {
	label := c.takeLabel()
	if s.Init != nil {
		c.stmt(p, s.Init)
	}

	f := &frame{
		label: label,
		brk:   flow.NewLabel(flow.BreakLabel, label),
		cont:  flow.NewLabel(flow.ContinueLabel, label),
	}

	exit := bottom
	if s.Cond != nil {
		whenTrue, whenFalse := c.VisitCondition(p, s.Cond)
		p.SetState(whenTrue)
		exit = whenFalse
	}

	c.push(f)
	c.VisitStmts(p, s.Body.List)
	c.pop()

	p.ResolveAt(f.cont)
	if s.Post != nil {
		c.stmt(p, s.Post)
	}

	// Assignments only add facts, so the state in which the condition
	// first fails is below every later one.
	p.SetState(exit)
	p.ResolveAt(f.brk)
}

func (c *checker) rangeStmt(p *pass, s *ast.RangeStmt) {
	label := c.takeLabel()
	c.VisitExpr(p, s.X)
	entry := p.State()

	f := &frame{
		label: label,
		brk:   flow.NewLabel(flow.BreakLabel, label),
		cont:  flow.NewLabel(flow.ContinueLabel, label),
	}

	if s.Tok == token.DEFINE || s.Tok == token.ASSIGN {
		for _, e := range []ast.Expr{s.Key, s.Value} {
			if e != nil {
				c.assign(p, e)
			}
		}
	}

	c.push(f)
	c.VisitStmts(p, s.Body.List)
	c.pop()
	p.ResolveAt(f.cont)

	p.SetState(entry)
	p.ResolveAt(f.brk)
}

func (c *checker) selectStmt(p *pass, s *ast.SelectStmt) {
	f := &frame{label: c.takeLabel()}
	f.brk = flow.NewLabel(flow.BreakLabel, f.label)

	entry := p.State()
	exits := bottom

	c.push(f)
	for _, stmt := range s.Body.List {
		cc := stmt.(*ast.CommClause)
		p.SetState(entry)
		if cc.Comm != nil {
			c.stmt(p, cc.Comm)
		}
		c.VisitStmts(p, cc.Body)
		exits = p.Algebra().Merge(exits, p.State())
	}
	c.pop()

	p.SetState(exits)
	p.ResolveAt(f.brk)
}

func (c *checker) switchStmt(p *pass, s *ast.SwitchStmt) {
	label := c.takeLabel()
	if s.Init != nil {
		c.stmt(p, s.Init)
	}

	sw := c.lowerSwitch(s, label)
	c.push(&frame{
		label:    label,
		brk:      sw.Break,
		sections: sw.Sections,
		live:     p.State().Reachable(),
	})
	p.LabelSwitch(sw)
	c.pop()
}

func (c *checker) typeSwitchStmt(p *pass, s *ast.TypeSwitchStmt) {
	label := c.takeLabel()
	if s.Init != nil {
		c.stmt(p, s.Init)
	}

	sw := c.lowerTypeSwitch(s, label)
	c.push(&frame{
		label:    label,
		brk:      sw.Break,
		sections: sw.Sections,
		live:     p.State().Reachable(),
	})
	p.PatternSwitch(sw)
	c.pop()
}

// BindPattern assigns the variable declared by a type switch guard in the
// clause the leaf belongs to.
func (c *checker) BindPattern(p *pass, leaf *flow.Guarded) {
	p.SetState(p.State().assign(leaf.Bindings...))
}

func (c *checker) EnterSection(p *pass, sec *flow.Section) {
	f := c.frames[len(c.frames)-1]
	for i := range f.sections {
		if &f.sections[i] == sec {
			f.cur = i
		}
	}

	if f.live && !p.State().Reachable() && sec.Node != nil {
		c.diags = append(c.diags, Diagnostic{
			Pos:     sec.Node.Pos(),
			Message: "case clause is unreachable",
		})
	}
}
