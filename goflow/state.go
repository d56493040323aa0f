package goflow

import (
	"fmt"
	"go/types"
	"sort"
	"strings"

	"github.com/BarrensZeppelin/flow"
	"github.com/BarrensZeppelin/flow/internal/maps"
	"github.com/BarrensZeppelin/flow/slices"
)

// State is the flow state of the definite assignment analysis: whether
// control can reach a point, and which variables have certainly been
// assigned on every path to it. States are immutable.
type State struct {
	unreachable bool
	assigned    map[types.Object]struct{}
}

var bottom = &State{unreachable: true}

// Entry returns the state at the start of a function body.
func Entry() *State {
	return &State{}
}

func (s *State) Reachable() bool { return !s.unreachable }

func (s *State) Assigned(obj types.Object) bool {
	_, ok := s.assigned[obj]
	return ok
}

// Names returns the sorted names of the assigned variables.
func (s *State) Names() []string {
	names := make([]string, 0, len(s.assigned))
	for _, obj := range maps.Keys(s.assigned) {
		names = append(names, obj.Name())
	}
	sort.Strings(names)
	return names
}

func (s *State) Equal(o *State) bool {
	if s.unreachable || o.unreachable {
		return s.unreachable == o.unreachable
	}

	return slices.SameElements(maps.Keys(s.assigned), maps.Keys(o.assigned))
}

func (s *State) String() string {
	if s.unreachable {
		return "unreachable"
	}
	return fmt.Sprintf("assigned{%s}", strings.Join(s.Names(), ", "))
}

func (s *State) assign(objs ...types.Object) *State {
	if s.unreachable || len(objs) == 0 {
		return s
	}

	res := &State{assigned: make(map[types.Object]struct{}, len(s.assigned)+len(objs))}
	for obj := range s.assigned {
		res.assigned[obj] = struct{}{}
	}
	for _, obj := range objs {
		if obj != nil {
			res.assigned[obj] = struct{}{}
		}
	}
	return res
}

type definite struct{}

// Definite is the algebra of the must-assigned analysis. Merging keeps the
// variables assigned on both paths.
var Definite flow.Algebra[*State] = definite{}

// States are never mutated, so they can be shared.
func (definite) Clone(s *State) *State { return s }

func (definite) Unreachable() *State { return bottom }

func (definite) Merge(a, b *State) *State {
	switch {
	case a.unreachable:
		return b
	case b.unreachable:
		return a
	}

	res := &State{assigned: make(map[types.Object]struct{})}
	for obj := range a.assigned {
		if _, ok := b.assigned[obj]; ok {
			res.assigned[obj] = struct{}{}
		}
	}
	return res
}
