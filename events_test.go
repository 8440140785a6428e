package qedarray

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestWatchInsertEvents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qedarray")
	defer teardown()
	//
	a, err := New[int](2, InitFunc[int](product))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	events, ok := a.Watch(ctx)
	if !ok {
		t.Fatalf("cannot subscribe to insert events")
	}
	defer a.StopWatching()
	if err := a.Insert([]int{0, 0}, []int{2, 3}, nil); err != nil {
		t.Fatal(err)
	}
	select {
	case msg := <-events:
		ev, ok := msg.(InsertEvent)
		if !ok {
			t.Fatalf("expected InsertEvent, got %T", msg)
		}
		if ev.Extents[0] != 2 || ev.Extents[1] != 3 || ev.Block[1] != 3 {
			t.Errorf("unexpected event %+v", ev)
		}
	case <-ctx.Done():
		t.Fatalf("no insert event received")
	}
}

func TestArray2Dot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qedarray")
	defer teardown()
	//
	a, err := Build([]int{2, 3}, product)
	if err != nil {
		t.Fatal(err)
	}
	var bf bytes.Buffer
	Array2Dot(a, &bf)
	dot := bf.String()
	t.Logf("\n%s", dot)
	if !strings.HasPrefix(dot, "strict digraph {") {
		t.Errorf("expected DOT digraph output")
	}
	if !strings.Contains(dot, "[2 4 6]") {
		t.Errorf("expected bottom node of row 1 to be labeled with its values")
	}
	if n := strings.Count(dot, "->"); n != 2 {
		t.Errorf("expected 2 edges, have %d", n)
	}
}
