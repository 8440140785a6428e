package dump

import (
	"fmt"
	"io"

	"github.com/npillmayer/qedarray"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLTable writes a 1- or 2-axis array as an HTML table to w, one table row
// per index along the first axis of a 2-axis array. Cells for which
// highlight returns true get CSS class "new". highlight may be nil.
func HTMLTable[T any](w io.Writer, src Source[T], highlight func(index []int) bool) error {
	if src == nil {
		return qedarray.ErrIllegalArguments
	}
	ext := src.Extents()
	if len(ext) < 1 || len(ext) > 2 {
		return fmt.Errorf("%w: HTML tables need 1 or 2 axes, have %d", qedarray.ErrIllegalArguments, len(ext))
	}
	rows, cols := 1, ext[len(ext)-1]
	if len(ext) == 2 {
		rows = ext[0]
	}
	table := element(atom.Table)
	tbody := element(atom.Tbody)
	table.AppendChild(tbody)
	for r := 0; r < rows; r++ {
		tr := element(atom.Tr)
		for c := 0; c < cols; c++ {
			index := cellIndex(nil, len(ext), r, c)
			v, err := src.Get(index...)
			if err != nil {
				return err
			}
			td := element(atom.Td)
			if highlight != nil && highlight(index) {
				td.Attr = append(td.Attr, html.Attribute{Key: "class", Val: "new"})
			}
			td.AppendChild(&html.Node{Type: html.TextNode, Data: fmt.Sprint(v)})
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	tracer().P("dump", "html").Debugf("table with %d rows, %d columns", rows, cols)
	return html.Render(w, table)
}

func element(a atom.Atom) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
	}
}
