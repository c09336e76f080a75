package domain

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrCycle is matched by a CycleError
var ErrCycle = errors.New("cycle in parent chain")

// CycleError reports a parent chain that loops back on itself
type CycleError struct {
	Chain []int64 // ids in walk order, the last one repeats an earlier one
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Chain))
	for i, id := range e.Chain {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("cycle in parent chain: %s", strings.Join(parts, " -> "))
}

func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}

// ForestNode wraps one record and the ids of its children
type ForestNode struct {
	Record   *FileRecord
	Children []int64
}

func (n *ForestNode) addChild(id int64) {
	if !slices.Contains(n.Children, id) {
		n.Children = append(n.Children, id)
	}
}

// Forest is the reconstructed hierarchy: a set of root ids and an index
// of every node reachable from them
type Forest struct {
	Roots []int64
	Index map[int64]*ForestNode
}

// Node returns the indexed node for id
func (f *Forest) Node(id int64) (*ForestNode, bool) {
	n, ok := f.Index[id]
	return n, ok
}

// Len returns the number of indexed nodes
func (f *Forest) Len() int {
	return len(f.Index)
}

// Tracer receives builder progress. A nil Tracer is allowed.
type Tracer func(format string, args ...any)

// Build reconstructs the forest, visiting records in ascending id order.
// Parents missing from the store are synthesized into it.
func Build(store *RecordStore, trace Tracer) (*Forest, error) {
	return BuildInOrder(store, store.IDs(), trace)
}

// BuildInOrder reconstructs the forest visiting the given ids in order.
// The result does not depend on the order.
func BuildInOrder(store *RecordStore, order []int64, trace Tracer) (*Forest, error) {
	if trace == nil {
		trace = func(string, ...any) {}
	}

	f := &Forest{Index: make(map[int64]*ForestNode)}
	roots := make(map[int64]bool)

	for _, id := range order {
		record, ok := store.Get(id)
		if !ok {
			continue
		}
		if _, indexed := f.Index[record.ID]; indexed {
			continue
		}

		trace("examining %s", record)
		f.Index[record.ID] = &ForestNode{Record: record}
		visited := map[int64]bool{record.ID: true}
		chain := []int64{record.ID}

		for {
			if !record.HasParent() {
				trace("record %d is a root", record.ID)
				roots[record.ID] = true
				break
			}

			parentID := *record.ParentID
			if visited[parentID] {
				return nil, &CycleError{Chain: append(chain, parentID)}
			}

			parent, known := store.Get(parentID)
			if !known {
				trace("parent %d of %d was never scanned, synthesizing", parentID, record.ID)
				parent = store.Synthesize(parentID, record.LastModified)
			}

			if node, indexed := f.Index[parentID]; indexed {
				// Its own chain was walked when it was indexed.
				node.addChild(record.ID)
				break
			}

			trace("creating node %d with child %d", parentID, record.ID)
			f.Index[parentID] = &ForestNode{Record: parent, Children: []int64{record.ID}}
			visited[parentID] = true
			chain = append(chain, parentID)
			record = parent
		}
	}

	for id := range roots {
		f.Roots = append(f.Roots, id)
	}
	slices.Sort(f.Roots)
	for _, n := range f.Index {
		slices.Sort(n.Children)
	}
	return f, nil
}

// Validate checks that every child is indexed, no node has two parents,
// every root is parentless and every node is reachable from a root
func (f *Forest) Validate() error {
	parentOf := make(map[int64]int64)
	for id, n := range f.Index {
		for _, c := range n.Children {
			if _, ok := f.Index[c]; !ok {
				return fmt.Errorf("node %d has unindexed child %d", id, c)
			}
			if p, dup := parentOf[c]; dup {
				return fmt.Errorf("node %d is a child of both %d and %d", c, p, id)
			}
			parentOf[c] = id
		}
	}

	reached := 0
	for _, r := range f.Roots {
		n, ok := f.Index[r]
		if !ok {
			return fmt.Errorf("root %d is not indexed", r)
		}
		if n.Record.HasParent() {
			return fmt.Errorf("root %d has parent %d", r, *n.Record.ParentID)
		}
		if _, isChild := parentOf[r]; isChild {
			return fmt.Errorf("root %d is also a child of %d", r, parentOf[r])
		}
		f.Walk(r, func(*ForestNode, int) bool {
			reached++
			return true
		})
	}
	if reached != len(f.Index) {
		return fmt.Errorf("%d of %d nodes are unreachable from any root", len(f.Index)-reached, len(f.Index))
	}
	return nil
}

// Walk visits the subtree rooted at id in pre-order, children in index
// order. Returning false from fn skips that node's children.
func (f *Forest) Walk(id int64, fn func(n *ForestNode, depth int) bool) {
	type frame struct {
		id    int64
		depth int
	}
	stack := []frame{{id: id}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n, ok := f.Index[top.id]
		if !ok {
			continue
		}
		if !fn(n, top.depth) {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: n.Children[i], depth: top.depth + 1})
		}
	}
}
