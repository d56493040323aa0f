package queue

import "errors"

// Queue is a FIFO queue. The zero value is an empty queue ready to use.
type Queue[E any] struct {
	elements []E
}

func (q *Queue[E]) Push(e E) {
	q.elements = append(q.elements, e)
}

func (q *Queue[E]) Empty() bool {
	return len(q.elements) == 0
}

func (q *Queue[E]) Len() int {
	return len(q.elements)
}

var ErrEmpty = errors.New("queue is empty")

func (q *Queue[E]) Pop() E {
	if q.Empty() {
		panic(ErrEmpty)
	}

	e := q.elements[0]
	q.elements = q.elements[1:]
	return e
}

// Drain pops every element in order, calling f on each.
func (q *Queue[E]) Drain(f func(E)) {
	for !q.Empty() {
		f(q.Pop())
	}
}
