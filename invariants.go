package qedarray

import "fmt"

// Check validates the structure of the array's node tree: at every node on
// level d the number of children (or leaves, for bottom nodes) must equal
// extents[d], i.e., the tree must be a complete, rectangular hyper-grid.
//
// Check is intended to be used in tests. Calling it while an insert is in
// flight yields undefined results.
func (a *Array[T]) Check() error {
	if a == nil || a.root == nil {
		return fmt.Errorf("%w: nil array", ErrIllegalArguments)
	}
	if len(a.extents) != a.axes {
		return fmt.Errorf("%w: %d extents for %d axes", ErrNotRectangular, len(a.extents), a.axes)
	}
	return a.checkNode(a.root, 0, make([]int, 0, a.axes))
}

func (a *Array[T]) checkNode(n *node[T], level int, path []int) error {
	if n == nil {
		return fmt.Errorf("%w: nil node at %v", ErrNotRectangular, path)
	}
	if level == a.axes-1 {
		if n.children != nil {
			return fmt.Errorf("%w: bottom node at %v has children", ErrNotRectangular, path)
		}
		if !a.store && n.values != nil {
			return fmt.Errorf("%w: value slots in side-effect-only array at %v", ErrNotRectangular, path)
		}
		if w := n.leafCount(a.store); w != a.extents[level] {
			return fmt.Errorf("%w: bottom node at %v has %d leaves, extent is %d",
				ErrNotRectangular, path, w, a.extents[level])
		}
		return nil
	}
	if len(n.children) != a.extents[level] {
		return fmt.Errorf("%w: node at %v has %d children, extent is %d",
			ErrNotRectangular, path, len(n.children), a.extents[level])
	}
	for i, c := range n.children {
		if err := a.checkNode(c, level+1, append(path, i)); err != nil {
			return err
		}
	}
	return nil
}
