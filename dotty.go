package qedarray

import (
	"fmt"
	"io"
)

type nodeids[T any] struct {
	idTable map[*node[T]]int
	max     int
}

func newtable[T any]() nodeids[T] {
	return nodeids[T]{
		idTable: make(map[*node[T]]int),
		max:     1,
	}
}

func (ids nodeids[T]) find(n *node[T]) int {
	return ids.idTable[n]
}

func (ids *nodeids[T]) alloc(n *node[T]) int {
	if id := ids.find(n); id > 0 {
		return id
	}
	ids.idTable[n] = ids.max
	ids.max++
	return ids.max - 1
}

// Array2Dot outputs the internal node tree of an array in Graphviz DOT format
// (for debugging purposes). Bottom nodes are labeled with their leaf values.
//
// Array2Dot must not be called while an insert is in flight.
func Array2Dot[T any](a *Array[T], w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	ids := newtable[T]()
	var nodelist, edgelist string
	var walk func(n *node[T], level int)
	walk = func(n *node[T], level int) {
		ID := ids.alloc(n)
		if level == a.axes-1 {
			label := fmt.Sprintf("axis %d\\n%d leaves", level, n.leafCount(a.store))
			if a.store {
				label = fmt.Sprintf("axis %d\\n%v", level, n.values)
			}
			nodelist += fmt.Sprintf("\"%d\" [label=\"%s\" shape=box style=filled fillcolor=lightgrey];\n", ID, label)
			return
		}
		nodelist += fmt.Sprintf("\"%d\" [label=\"axis %d\" shape=circle];\n", ID, level)
		for i, c := range n.children {
			walk(c, level+1)
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\" [label=\"%d\"];\n", ID, ids.find(c), i)
		}
	}
	walk(a.root, 0)
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	io.WriteString(w, "}\n")
}
