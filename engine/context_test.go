package engine

import (
	"strings"
	"testing"
)

func TestContext_SetGet(t *testing.T) {
	ctx := NewContext()
	ctx.Set("a", 1)
	ctx.Set("b", "two")

	if v, ok := ctx.Get("a"); !ok || v != 1 {
		t.Fatalf("expected a=1, got %v %v", v, ok)
	}
	if _, ok := ctx.Get("missing"); ok {
		t.Fatal("missing id must not resolve")
	}
}

func TestContext_InsertionOrder(t *testing.T) {
	ctx := NewContext()
	ctx.Set("z", 1)
	ctx.Set("a", 2)
	ctx.Set("z", 3) // re-binding keeps position

	if got := strings.Join(ctx.Keys(), ","); got != "z,a" {
		t.Fatalf("expected z,a, got %s", got)
	}
	if v, _ := ctx.Get("z"); v != 3 {
		t.Fatalf("expected re-bound value, got %v", v)
	}
}

func TestContext_ChildShadowing(t *testing.T) {
	root := NewContext()
	root.Set("shared", "root")
	root.Set("only-root", true)

	child := root.Child()
	child.Set("shared", "child")
	child.Set("only-child", true)

	if v, _ := child.Get("shared"); v != "child" {
		t.Fatalf("child binding must shadow, got %v", v)
	}
	if v, ok := child.Get("only-root"); !ok || v != true {
		t.Fatal("child must see parent bindings")
	}
	if _, ok := root.Get("only-child"); ok {
		t.Fatal("parent must not see child bindings")
	}
	if v, _ := root.Get("shared"); v != "root" {
		t.Fatalf("parent binding must be untouched, got %v", v)
	}
}

func TestContext_Map(t *testing.T) {
	root := NewContext()
	root.Set("a", 1)
	root.Set("b", 1)

	child := root.Child()
	child.Set("b", 2)
	child.Set("c", 3)

	flat := child.Map()
	if flat["a"] != 1 || flat["b"] != 2 || flat["c"] != 3 {
		t.Fatalf("unexpected flattened map: %v", flat)
	}
	if len(flat) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(flat))
	}
}
