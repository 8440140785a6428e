/*
Package dump writes the contents of QED arrays in human readable form, for
debugging purposes.

Console prints arrays as grids of cells to a fixed width terminal, slicing
arrays with more than two axes into 2-axis grids. HTMLTable exports a 2-axis
array as an HTML table.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package dump

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'qedarray'
func tracer() tracing.Trace {
	return tracing.Select("qedarray")
}
