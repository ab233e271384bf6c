package index

import (
	"iter"

	"github.com/emirpasic/gods/trees/avltree"
)

// Node is a single slot stored in the index.
type Node[V any] struct {
	Key   int
	Value V
}

// Index is an ordered mapping from integer key to value, backed by a
// self-balancing binary search tree.
// It is not safe for concurrent use; the owner serializes access.
type Index[V any] struct {
	tree *avltree.Tree
}

// New creates an empty index.
func New[V any]() *Index[V] {
	return &Index[V]{tree: avltree.NewWithIntComparator()}
}

// Insert adds the slot at key, overwriting any existing value.
func (x *Index[V]) Insert(key int, value V) {
	x.tree.Put(key, value)
}

// Delete removes the slot at key. Missing keys are ignored.
func (x *Index[V]) Delete(key int) {
	x.tree.Remove(key)
}

// Successor returns the slot with the smallest key >= key.
// Returns (Node{}, false) if every stored key is smaller.
func (x *Index[V]) Successor(key int) (Node[V], bool) {
	n, found := x.tree.Ceiling(key)
	if !found {
		return Node[V]{}, false
	}
	return toNode[V](n), true
}

// Minimum returns the slot with the smallest key, or (Node{}, false) if empty.
func (x *Index[V]) Minimum() (Node[V], bool) {
	n := x.tree.Left()
	if n == nil {
		return Node[V]{}, false
	}
	return toNode[V](n), true
}

// Lookup returns the successor of key, wrapping to the minimum when no
// successor exists. This is the clockwise walk on a ring.
func (x *Index[V]) Lookup(key int) (Node[V], bool) {
	if n, ok := x.Successor(key); ok {
		return n, true
	}
	return x.Minimum()
}

// All yields every slot in ascending key order. Each call starts a fresh walk.
func (x *Index[V]) All() iter.Seq[Node[V]] {
	return func(yield func(Node[V]) bool) {
		it := x.tree.Iterator()
		for it.Next() {
			if !yield(Node[V]{Key: it.Key().(int), Value: it.Value().(V)}) {
				return
			}
		}
	}
}

// Len returns the number of stored slots.
func (x *Index[V]) Len() int {
	return x.tree.Size()
}

// Clear removes every slot.
func (x *Index[V]) Clear() {
	x.tree.Clear()
}

func toNode[V any](n *avltree.Node) Node[V] {
	return Node[V]{Key: n.Key.(int), Value: n.Value.(V)}
}
