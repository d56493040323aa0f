package flow

import (
	"fmt"
	"go/ast"
	"go/constant"
)

// PatternSwitch is a switch whose dispatch is described by a decision tree.
type PatternSwitch struct {
	Scrutinee ast.Expr
	// Const is the value of the scrutinee when it is a compile-time constant.
	Const constant.Value

	Tree     Decision
	Sections []Section
	Default  *Label // may be nil
	Break    *Label

	// Complete reports that every input reaches some section without going
	// through the default label.
	Complete bool
}

// PatternSwitch analyzes sw starting from the current state and leaves the
// state after the switch as the current state.
func (p *Pass[S]) PatternSwitch(sw *PatternSwitch) {
	if sw.Scrutinee != nil {
		p.visitor.VisitExpr(p, sw.Scrutinee)
	}

	var breakState S
	if sw.Complete {
		breakState = p.algebra.Unreachable()
	} else {
		breakState = p.algebra.Clone(p.state)
	}

	p.walk(sw, sw.Tree)

	// The state left by the walk is the one in which no test succeeded.
	if sw.Default != nil {
		p.Record(sw.Default, p.state)
	}

	p.finishSwitch(breakState, sw.Sections, sw.Break)
}

func (p *Pass[S]) walk(sw *PatternSwitch, d Decision) {
	switch d := d.(type) {
	case nil:

	case *ByType:
		entry := p.state
		if d.WhenNull != nil {
			p.state = p.algebra.Clone(entry)
			p.walk(sw, d.WhenNull)
		}
		for _, c := range d.Cases {
			p.state = p.algebra.Clone(entry)
			p.walk(sw, c.Decision)
		}
		p.state = entry
		p.walk(sw, d.Default)

	case *ByValue:
		entry := p.state
		matched := false
		for _, c := range d.Cases {
			if sw.Const != nil && !ConstantEqual(sw.Const, c.Value) {
				continue
			}
			matched = true
			p.state = p.algebra.Clone(entry)
			p.walk(sw, c.Decision)
		}

		// A matched constant never enters the default subtree, but the
		// state left by the matched subtree still flows on.
		if sw.Const == nil || !matched {
			p.state = entry
			p.walk(sw, d.Default)
		}

	case *Guarded:
		p.guarded(sw, d)

	default:
		panic(fmt.Errorf("%w: %T", ErrUnknownDecision, d))
	}
}

func (p *Pass[S]) guarded(sw *PatternSwitch, leaf *Guarded) {
	entry := p.algebra.Clone(p.state)

	if b, ok := p.visitor.(Binder[S]); ok {
		b.BindPattern(p, leaf)
	}

	if leaf.Guard != nil {
		whenTrue, _ := p.visitor.VisitCondition(p, leaf.Guard)
		p.state = whenTrue
	}

	p.Record(leaf.Label, p.state)

	// Siblings and the fallback start from the state the leaf was entered in.
	p.state = entry
	p.walk(sw, leaf.Fallback)
}
