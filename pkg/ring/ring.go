// Package ring implements a circular doubly linked list of ints.
//
// Nodes live in an arena owned by the Ring and are addressed by Node
// handles. A handle stays valid until the node it names is removed; holding
// one across a removal is a caller error.
package ring

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrEmptyList       = errors.New("list is empty")
	ErrInvalidNode     = errors.New("invalid node")
)

// Node is a handle to an element of a Ring.
type Node int

// NoNode is returned where no node exists, e.g. First on an empty Ring.
const NoNode Node = -1

type slot struct {
	value      int
	next, prev Node
	live       bool
}

// Ring is a circular doubly linked list. The last node's next is the first
// node and the first node's prev is the last node.
// The zero value is an empty ring ready to use. A Ring is not safe for
// concurrent use.
type Ring struct {
	slots      []slot
	free       []Node
	head, tail Node
	len        int
}

func New() *Ring {
	return &Ring{head: NoNode, tail: NoNode}
}

func (r *Ring) Len() int { return r.len }

func (r *Ring) alloc(v int) Node {
	if n := len(r.free); n > 0 {
		e := r.free[n-1]
		r.free = r.free[:n-1]
		r.slots[e] = slot{value: v, next: e, prev: e, live: true}
		return e
	}
	e := Node(len(r.slots))
	r.slots = append(r.slots, slot{value: v, next: e, prev: e, live: true})
	return e
}

func (r *Ring) release(e Node) {
	r.slots[e] = slot{next: NoNode, prev: NoNode}
	if r.len == 0 {
		r.slots = r.slots[:0]
		r.free = r.free[:0]
		return
	}
	r.free = append(r.free, e)
}

func (r *Ring) valid(e Node) bool {
	return e >= 0 && int(e) < len(r.slots) && r.slots[e].live
}

// insert splices e in right after at.
func (r *Ring) insert(e, at Node) Node {
	s := r.slots
	s[e].prev = at
	s[e].next = s[at].next
	s[s[e].prev].next = e
	s[s[e].next].prev = e
	r.len++
	return e
}

func (r *Ring) first(e Node) Node {
	r.head, r.tail = e, e
	r.len = 1
	return e
}

func (r *Ring) Prepend(v int) Node {
	e := r.alloc(v)
	if r.len == 0 {
		return r.first(e)
	}
	r.insert(e, r.tail)
	r.head = e
	return e
}

func (r *Ring) Append(v int) Node {
	e := r.alloc(v)
	if r.len == 0 {
		return r.first(e)
	}
	r.insert(e, r.tail)
	r.tail = e
	return e
}

// InsertAt inserts v so that it ends up at position i. Valid positions are
// 0 through Len inclusive; Len appends.
func (r *Ring) InsertAt(v, i int) (Node, error) {
	if i < 0 || i > r.len {
		return NoNode, fmt.Errorf("insert at %d of %d: %w", i, r.len, ErrIndexOutOfRange)
	}
	switch i {
	case 0:
		return r.Prepend(v), nil
	case r.len:
		return r.Append(v), nil
	}
	at := r.slots[r.walk(i)].prev
	e := r.alloc(v)
	return r.insert(e, at), nil
}

func (r *Ring) remove(e Node) int {
	s := r.slots
	v := s[e].value
	switch {
	case r.len == 1:
		r.head, r.tail = NoNode, NoNode
	case e == r.head:
		r.head = s[e].next
	case e == r.tail:
		r.tail = s[e].prev
	}
	s[s[e].prev].next = s[e].next
	s[s[e].next].prev = s[e].prev
	r.len--
	r.release(e)
	return v
}

// RemoveFront removes the first node and returns its value.
func (r *Ring) RemoveFront() (int, error) {
	if r.len == 0 {
		return 0, ErrEmptyList
	}
	return r.remove(r.head), nil
}

// RemoveBack removes the last node and returns its value.
func (r *Ring) RemoveBack() (int, error) {
	if r.len == 0 {
		return 0, ErrEmptyList
	}
	return r.remove(r.tail), nil
}

func (r *Ring) RemoveAt(i int) (int, error) {
	if i < 0 || i >= r.len {
		return 0, fmt.Errorf("remove at %d of %d: %w", i, r.len, ErrIndexOutOfRange)
	}
	switch i {
	case 0:
		return r.RemoveFront()
	case r.len - 1:
		return r.RemoveBack()
	}
	return r.remove(r.walk(i)), nil
}

// walk follows next i times from head. i must be in [0, Len).
func (r *Ring) walk(i int) Node {
	e := r.head
	for ; i > 0; i-- {
		e = r.slots[e].next
	}
	return e
}

func (r *Ring) Contains(v int) bool {
	return r.IndexOf(v) >= 0
}

// IndexOf returns the position of the first node holding v, or -1.
func (r *Ring) IndexOf(v int) int {
	e := r.head
	for i := 0; i < r.len; i++ {
		if r.slots[e].value == v {
			return i
		}
		e = r.slots[e].next
	}
	return -1
}

func (r *Ring) ValueAt(i int) (int, error) {
	e, err := r.NodeAt(i)
	if err != nil {
		return 0, err
	}
	return r.slots[e].value, nil
}

func (r *Ring) NodeAt(i int) (Node, error) {
	if i < 0 || i >= r.len {
		return NoNode, fmt.Errorf("node at %d of %d: %w", i, r.len, ErrIndexOutOfRange)
	}
	return r.walk(i), nil
}

// First returns the head node or NoNode if the ring is empty.
func (r *Ring) First() Node {
	if r.len == 0 {
		return NoNode
	}
	return r.head
}

// Last returns the tail node or NoNode if the ring is empty.
func (r *Ring) Last() Node {
	if r.len == 0 {
		return NoNode
	}
	return r.tail
}

// Next returns the node after e. The ring never ends, so Next(Last()) is
// First(). It returns NoNode if e is not a node of r.
func (r *Ring) Next(e Node) Node {
	if !r.valid(e) {
		return NoNode
	}
	return r.slots[e].next
}

// Prev returns the node before e, or NoNode if e is not a node of r.
func (r *Ring) Prev(e Node) Node {
	if !r.valid(e) {
		return NoNode
	}
	return r.slots[e].prev
}

func (r *Ring) Value(e Node) (int, error) {
	if !r.valid(e) {
		return 0, ErrInvalidNode
	}
	return r.slots[e].value, nil
}

func (r *Ring) SetValue(e Node, v int) error {
	if !r.valid(e) {
		return ErrInvalidNode
	}
	r.slots[e].value = v
	return nil
}

// Reverse reverses the order of values by swapping them between mirrored
// positions. Links are left alone, so a Node keeps its position but may
// hold a different value afterwards.
func (r *Ring) Reverse() {
	s := r.slots
	a, b := r.head, r.tail
	for i := 0; i < r.len/2; i++ {
		s[a].value, s[b].value = s[b].value, s[a].value
		a, b = s[a].next, s[b].prev
	}
}

// ToSlice returns the values from head to tail.
func (r *Ring) ToSlice() []int {
	res := make([]int, 0, r.len)
	e := r.head
	for i := 0; i < r.len; i++ {
		res = append(res, r.slots[e].value)
		e = r.slots[e].next
	}
	return res
}

// ToSliceReverse returns the values from tail to head.
func (r *Ring) ToSliceReverse() []int {
	res := make([]int, 0, r.len)
	e := r.tail
	for i := 0; i < r.len; i++ {
		res = append(res, r.slots[e].value)
		e = r.slots[e].prev
	}
	return res
}

func (r *Ring) String() string {
	return fmt.Sprint(r.ToSlice())
}

// Destroy releases every node. Handles obtained before are invalid
// afterwards and r reads as empty.
func (r *Ring) Destroy() {
	r.slots = nil
	r.free = nil
	r.head, r.tail = NoNode, NoNode
	r.len = 0
}
