package flow

import "github.com/BarrensZeppelin/flow/internal/queue"

// Pass holds the mutable context of one analysis run: the current state and
// the branches that have been recorded but not yet resolved. A Pass must not
// be shared between goroutines; independent passes need no coordination.
type Pass[S any] struct {
	algebra Algebra[S]
	visitor Visitor[S]

	state S

	pending  map[*Label]*queue.Queue[S]
	order    []*Label
	resolved map[*Label]int
}

func NewPass[S any](algebra Algebra[S], visitor Visitor[S], entry S) *Pass[S] {
	return &Pass[S]{
		algebra:  algebra,
		visitor:  visitor,
		state:    entry,
		pending:  make(map[*Label]*queue.Queue[S]),
		resolved: make(map[*Label]int),
	}
}

func (p *Pass[S]) Algebra() Algebra[S] { return p.algebra }

func (p *Pass[S]) State() S { return p.state }

func (p *Pass[S]) SetState(s S) { p.state = s }

func (p *Pass[S]) SetUnreachable() { p.state = p.algebra.Unreachable() }

// Join merges s into the current state.
func (p *Pass[S]) Join(s S) {
	p.state = p.algebra.Merge(p.state, s)
}

// Record registers a pending branch to l carrying s. The pass takes ownership
// of s.
func (p *Pass[S]) Record(l *Label, s S) {
	q, ok := p.pending[l]
	if !ok {
		q = &queue.Queue[S]{}
		p.pending[l] = q
		p.order = append(p.order, l)
	}
	q.Push(s)
}

// Branch records a pending branch to l from a copy of the current state.
func (p *Pass[S]) Branch(l *Label) {
	p.Record(l, p.algebra.Clone(p.state))
}

// ResolveAt merges every pending branch to l into the current state and
// forgets them. It returns the number of branches merged.
func (p *Pass[S]) ResolveAt(l *Label) int {
	q, ok := p.pending[l]
	if !ok {
		return 0
	}

	n := q.Len()
	q.Drain(p.Join)
	delete(p.pending, l)
	for i, o := range p.order {
		if o == l {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}

	p.resolved[l] += n
	return n
}

// Resolved reports how many branches have been resolved at l so far. A label
// that was visited with a zero count was never jumped to.
func (p *Pass[S]) Resolved(l *Label) int {
	return p.resolved[l]
}

// Pending returns the labels that still have unresolved branches, in the
// order their first branch was recorded.
func (p *Pass[S]) Pending() []*Label {
	return append([]*Label(nil), p.order...)
}
