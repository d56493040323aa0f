package goflow

import (
	"go/ast"
	"go/constant"
	"go/types"

	"github.com/BarrensZeppelin/flow"
	"github.com/BarrensZeppelin/flow/internal/slices"
	"golang.org/x/tools/go/ast/astutil"
)

// lowerSwitch translates an expression switch into a label switch with one
// label per case expression.
func (c *checker) lowerSwitch(s *ast.SwitchStmt, label string) *flow.LabelSwitch {
	sw := &flow.LabelSwitch{
		Scrutinee: s.Tag,
		Sections:  make([]flow.Section, len(s.Body.List)),
		Break:     flow.NewLabel(flow.BreakLabel, label),
	}

	var def *flow.Label
	for i, stmt := range s.Body.List {
		cc := stmt.(*ast.CaseClause)

		var labels []*flow.Label
		if cc.List == nil {
			def = flow.NewLabel(flow.DefaultLabel, "default")
			labels = []*flow.Label{def}
		} else {
			labels = slices.Map(cc.List, func(e ast.Expr) *flow.Label {
				return flow.NewLabel(flow.CaseLabel, types.ExprString(e))
			})
		}

		sw.Sections[i] = flow.Section{Labels: labels, Body: cc.Body, Node: cc}
	}

	sw.Target = c.staticTarget(s, sw, def)
	return sw
}

// staticTarget determines the label a switch over a constant jumps to. Case
// expressions are evaluated in order, so a non-constant one makes every later
// case a possible target.
func (c *checker) staticTarget(s *ast.SwitchStmt, sw *flow.LabelSwitch, def *flow.Label) *flow.Label {
	tag := constant.MakeBool(true)
	if s.Tag != nil {
		tag = c.info.Types[s.Tag].Value
	}
	if tag == nil {
		return nil
	}

	for i, stmt := range s.Body.List {
		for j, e := range stmt.(*ast.CaseClause).List {
			v := c.info.Types[e].Value
			if v == nil {
				return nil
			}
			if flow.ConstantEqual(tag, v) {
				return sw.Sections[i].Labels[j]
			}
		}
	}

	if def != nil {
		return def
	}
	return sw.Break
}

// lowerTypeSwitch translates a type switch into a pattern switch dispatching
// on a single ByType node. Each case type leads to a leaf binding the clause's
// variable.
func (c *checker) lowerTypeSwitch(s *ast.TypeSwitchStmt, label string) *flow.PatternSwitch {
	var assert *ast.TypeAssertExpr
	switch a := s.Assign.(type) {
	case *ast.ExprStmt:
		assert = a.X.(*ast.TypeAssertExpr)
	case *ast.AssignStmt:
		assert = a.Rhs[0].(*ast.TypeAssertExpr)
	}

	tree := &flow.ByType{}
	sw := &flow.PatternSwitch{
		Scrutinee: assert.X,
		Tree:      tree,
		Break:     flow.NewLabel(flow.BreakLabel, label),
	}

	xType := c.info.TypeOf(assert.X)
	hasNil, catchAll := false, false
	for _, stmt := range s.Body.List {
		cc := stmt.(*ast.CaseClause)

		var bindings []types.Object
		if obj := c.info.Implicits[cc]; obj != nil {
			bindings = []types.Object{obj}
		}

		if cc.List == nil {
			sw.Default = flow.NewLabel(flow.DefaultLabel, "default")
			sw.Sections = append(sw.Sections, flow.Section{
				Labels: []*flow.Label{sw.Default},
				Body:   cc.Body,
				Node:   cc,
			})
			continue
		}

		l := flow.NewLabel(flow.CaseLabel, types.ExprString(cc.List[0]))
		for _, e := range cc.List {
			leaf := &flow.Guarded{Bindings: bindings, Label: l}
			if c.isNil(e) {
				if !hasNil {
					tree.WhenNull = leaf
				}
				hasNil = true
				continue
			}

			t := c.info.TypeOf(e)
			if t == nil {
				continue
			}
			tree.Cases = append(tree.Cases, flow.TypeCase{Type: t, Decision: leaf})
			if types.IsInterface(t) && xType != nil && types.AssignableTo(xType, t) {
				catchAll = true
			}
		}

		sw.Sections = append(sw.Sections, flow.Section{
			Labels: []*flow.Label{l},
			Body:   cc.Body,
			Node:   cc,
		})
	}

	// Every input is either nil or satisfies an interface case.
	sw.Complete = hasNil && catchAll
	return sw
}

func (c *checker) isNil(e ast.Expr) bool {
	if c.info.Types[e].IsNil() {
		return true
	}

	id, ok := astutil.Unparen(e).(*ast.Ident)
	if !ok {
		return false
	}
	_, ok = c.info.Uses[id].(*types.Nil)
	return ok
}
