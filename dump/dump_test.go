package dump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/npillmayer/qedarray"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/uax/uax11"
)

func product(c qedarray.Cursor) int {
	p := 1
	for _, x := range c {
		p *= x + 1
	}
	return p
}

func TestConsoleGrid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qedarray")
	defer teardown()
	color.NoColor = true
	//
	a, err := qedarray.Build([]int{2, 3}, product)
	if err != nil {
		t.Fatal(err)
	}
	var bf bytes.Buffer
	if err := Console[int](&bf, a, &Config{Context: uax11.LatinContext}); err != nil {
		t.Fatal(err)
	}
	if bf.String() != "1 2 3\n2 4 6\n" {
		t.Errorf("unexpected grid output:\n%s", bf.String())
	}
}

func TestConsoleAlignsColumns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qedarray")
	defer teardown()
	color.NoColor = true
	//
	a, err := qedarray.Build([]int{2, 2}, func(c qedarray.Cursor) int { return product(c) * 10 })
	if err != nil {
		t.Fatal(err)
	}
	a.Set(5, 0, 0)
	var bf bytes.Buffer
	if err := Console[int](&bf, a, &Config{}); err != nil {
		t.Fatal(err)
	}
	if bf.String() != " 5 20\n20 40\n" {
		t.Errorf("unexpected grid output:\n%q", bf.String())
	}
}

func TestCellWidthInColumns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qedarray")
	defer teardown()
	//
	for _, tc := range []struct {
		s string
		w int
	}{
		{"5", 1}, {"20", 2}, {"ab", 2}, {"-1#*", 4}, {"世界", 4}, {"a世", 3}, {"", 0},
	} {
		if w := cellWidth(tc.s, uax11.LatinContext); w != tc.w {
			t.Errorf("expected width of %q to be %d, is %d", tc.s, tc.w, w)
		}
	}
}

func TestConsoleAlignsWideCells(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qedarray")
	defer teardown()
	color.NoColor = true
	//
	a, err := qedarray.Build([]int{2, 2}, func(c qedarray.Cursor) string { return "x" })
	if err != nil {
		t.Fatal(err)
	}
	a.Set("世界", 0, 0)
	a.Set("10", 1, 1)
	var bf bytes.Buffer
	if err := Console[string](&bf, a, &Config{}); err != nil {
		t.Fatal(err)
	}
	if bf.String() != "世界  x\n   x 10\n" {
		t.Errorf("unexpected grid output:\n%q", bf.String())
	}
}

func TestConsoleKeepsCallerConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qedarray")
	defer teardown()
	color.NoColor = true
	//
	a, err := qedarray.Build([]int{1, 2}, product)
	if err != nil {
		t.Fatal(err)
	}
	config := &Config{Highlight: func(index []int) bool { return true }}
	var bf bytes.Buffer
	if err := Console[int](&bf, a, config); err != nil {
		t.Fatal(err)
	}
	if config.Context != nil || config.Color != nil {
		t.Errorf("expected caller's config to stay untouched, have %+v", *config)
	}
}

func TestConsoleCutsColumns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qedarray")
	defer teardown()
	color.NoColor = true
	//
	a, err := qedarray.Build([]int{2, 3}, product)
	if err != nil {
		t.Fatal(err)
	}
	var bf bytes.Buffer
	if err := Console[int](&bf, a, &Config{LineWidth: 4}); err != nil {
		t.Fatal(err)
	}
	if bf.String() != "1 …\n2 …\n" {
		t.Errorf("unexpected grid output:\n%q", bf.String())
	}
}

func TestConsoleSlicesLeadingAxes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qedarray")
	defer teardown()
	color.NoColor = true
	//
	a, err := qedarray.Build([]int{2, 1, 2}, product)
	if err != nil {
		t.Fatal(err)
	}
	var bf bytes.Buffer
	if err := Console[int](&bf, a, &Config{}); err != nil {
		t.Fatal(err)
	}
	expected := "[0, :, :]\n1 2\n[1, :, :]\n2 4\n"
	if bf.String() != expected {
		t.Errorf("unexpected output:\n%s", bf.String())
	}
}

func TestConsoleHighlightsCells(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qedarray")
	defer teardown()
	color.NoColor = false
	defer func() { color.NoColor = true }()
	//
	a, err := qedarray.Build([]int{1, 3}, product)
	if err != nil {
		t.Fatal(err)
	}
	var bf bytes.Buffer
	err = Console[int](&bf, a, &Config{
		Highlight: func(index []int) bool { return index[1] == 1 },
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("%q", bf.String())
	if !strings.Contains(bf.String(), "\x1b[") {
		t.Errorf("expected escape sequence for highlighted cell")
	}
}

func TestHTMLTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qedarray")
	defer teardown()
	//
	a, err := qedarray.Build([]int{2, 2}, product)
	if err != nil {
		t.Fatal(err)
	}
	var bf bytes.Buffer
	err = HTMLTable[int](&bf, a, func(index []int) bool { return index[0] == 1 && index[1] == 1 })
	if err != nil {
		t.Fatal(err)
	}
	expected := `<table><tbody><tr><td>1</td><td>2</td></tr><tr><td>2</td><td class="new">4</td></tr></tbody></table>`
	if bf.String() != expected {
		t.Errorf("unexpected HTML:\n%s", bf.String())
	}
	b, err := qedarray.Build([]int{1, 1, 1}, product)
	if err != nil {
		t.Fatal(err)
	}
	if err := HTMLTable[int](&bf, b, nil); err == nil {
		t.Errorf("expected error for 3-axis array")
	}
}
