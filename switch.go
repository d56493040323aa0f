package flow

import "go/ast"

// Section is one dispatch target of a switch: the labels that lead to it and
// the statements it runs.
type Section struct {
	Labels []*Label
	Body   []ast.Stmt

	// Node is the syntax the section was built from, if any. It is only
	// passed through to hooks.
	Node ast.Node
}

// LabelSwitch is a classic switch that dispatches by jumping to case labels.
type LabelSwitch struct {
	Scrutinee ast.Expr
	Sections  []Section
	Break     *Label

	// Target is the label control reaches when the scrutinee is a compile-time
	// constant. It is nil when the target is not statically known, and equal
	// to Break when no section matches the constant.
	Target *Label
}

// LabelSwitch analyzes sw starting from the current state and leaves the
// state after the switch as the current state.
func (p *Pass[S]) LabelSwitch(sw *LabelSwitch) {
	if sw.Scrutinee != nil {
		p.visitor.VisitExpr(p, sw.Scrutinee)
	}

	// Simulate the jumps out of the switch header.
	breakState := p.algebra.Clone(p.state)
	hasDefault := false
	if sw.Target == nil {
		for _, sec := range sw.Sections {
			for _, l := range sec.Labels {
				p.Branch(l)
				hasDefault = hasDefault || l.Kind == DefaultLabel
			}
		}
	} else if sw.Target != sw.Break {
		p.Branch(sw.Target)
	}

	// The header never falls through to the first section.
	p.SetUnreachable()

	if hasDefault || (sw.Target != nil && sw.Target != sw.Break) {
		breakState = p.algebra.Unreachable()
	}

	p.finishSwitch(breakState, sw.Sections, sw.Break)
}

// finishSwitch visits the sections of a switch whose header has been
// simulated and joins their exits with breakState.
func (p *Pass[S]) finishSwitch(breakState S, sections []Section, brk *Label) {
	observer, _ := p.visitor.(SectionObserver[S])

	exits := p.algebra.Unreachable()
	for i := range sections {
		sec := &sections[i]

		// Falling off the end of the previous section is treated as a
		// break, so every section starts from its incoming branches only.
		p.SetUnreachable()
		for _, l := range sec.Labels {
			p.ResolveAt(l)
		}

		if observer != nil {
			observer.EnterSection(p, sec)
		}

		p.visitor.VisitStmts(p, sec.Body)
		exits = p.algebra.Merge(exits, p.state)
	}

	p.state = p.algebra.Merge(breakState, exits)
	p.ResolveAt(brk)
}
