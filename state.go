package flow

import "go/ast"

// Algebra is the lattice interface a concrete analysis supplies for its flow
// states.
//
// Merge must be commutative and associative, and the state returned by
// Unreachable must be its identity: Merge(Unreachable(), x) equals x. Whether
// Merge is a must- or may-join is up to the analysis.
type Algebra[S any] interface {
	Clone(S) S
	Merge(a, b S) S
	Unreachable() S
}

// Visitor evaluates the parts of a program the switch handling does not
// interpret itself. Implementations read and update the pass's current state.
type Visitor[S any] interface {
	// VisitExpr evaluates e for its effects on the current state. e may be nil.
	VisitExpr(p *Pass[S], e ast.Expr)
	// VisitCondition evaluates a boolean expression and returns the states in
	// which it is true and false, respectively.
	VisitCondition(p *Pass[S], e ast.Expr) (whenTrue, whenFalse S)
	VisitStmts(p *Pass[S], stmts []ast.Stmt)
}

// Binder is an optional Visitor extension invoked when a pattern leaf is
// entered, before its guard is evaluated. Analyses that track pattern
// variables implement it; the default is to do nothing.
type Binder[S any] interface {
	BindPattern(p *Pass[S], leaf *Guarded)
}

// SectionObserver is an optional Visitor extension invoked once per switch
// section, after incoming branches have been resolved and before the body is
// visited.
type SectionObserver[S any] interface {
	EnterSection(p *Pass[S], sec *Section)
}
