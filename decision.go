package flow

import (
	"errors"
	"go/ast"
	"go/constant"
	"go/types"
)

// ErrUnknownDecision signals a decision tree containing a node that is not
// one of the variants declared in this package. It indicates a bug in whatever
// built the tree, never a problem in the analysed program.
var ErrUnknownDecision = errors.New("unknown decision tree node")

// Decision is a node of a pattern switch's decision tree. The set of
// implementations is closed: *ByType, *ByValue and *Guarded. A nil Decision
// is an empty subtree.
type Decision interface {
	decision()
}

type dtag struct{}

func (dtag) decision() {}

// ByType tests the dynamic type of the input.
type ByType struct {
	dtag
	WhenNull Decision
	// Cases are kept in declaration order.
	Cases   []TypeCase
	Default Decision
}

type TypeCase struct {
	Type     types.Type
	Decision Decision
}

// ByValue tests the input against constant values.
type ByValue struct {
	dtag
	// Cases are kept in declaration order.
	Cases   []ValueCase
	Default Decision
}

type ValueCase struct {
	Value    constant.Value
	Decision Decision
}

// Guarded is a leaf of the tree. When the input reaches it the pattern
// variables are bound, and if Guard holds control transfers to Label.
// Otherwise the search continues in Fallback.
type Guarded struct {
	dtag
	Bindings []types.Object
	Guard    ast.Expr // may be nil
	Label    *Label
	Fallback Decision
}
