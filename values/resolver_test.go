package values

import (
	"context"
	"testing"
	"time"

	"github.com/pixpilot/scaffoldfy-sub003/schema"
)

func literal(v any) schema.Value {
	return schema.Value{Literal: v}
}

func spec(kind string, value any) schema.Value {
	return schema.Value{Spec: &schema.ValueSpec{Kind: kind, Value: value}}
}

func TestResolve_Static(t *testing.T) {
	r := NewResolver("")
	got := r.Resolve(context.Background(), "v", spec(schema.KindStatic, "keep {{me}}"), map[string]any{"me": "x"})
	if got != "keep {{me}}" {
		t.Fatalf("static values must not be interpolated, got %v", got)
	}
}

func TestResolve_LiteralInterpolation(t *testing.T) {
	r := NewResolver("")
	ctx := context.Background()

	got := r.Resolve(ctx, "v", literal("hello {{name}}"), map[string]any{"name": "world"})
	if got != "hello world" {
		t.Fatalf("expected 'hello world', got %v", got)
	}

	// unresolved tokens render empty
	got = r.Resolve(ctx, "v", literal("hi {{missing}}!"), map[string]any{})
	if got != "hi !" {
		t.Fatalf("expected 'hi !', got %v", got)
	}

	// non-string literals pass through
	got = r.Resolve(ctx, "v", literal(float64(42)), map[string]any{})
	if got != float64(42) {
		t.Fatalf("expected 42, got %v", got)
	}
}

func TestResolve_Interpolate(t *testing.T) {
	r := NewResolver("")
	ctx := context.Background()

	got := r.Resolve(ctx, "v", spec(schema.KindInterpolate, "{{a}}-{{b}}"), map[string]any{"a": "x", "b": "y"})
	if got != "x-y" {
		t.Fatalf("expected 'x-y', got %v", got)
	}

	// without a context the template is returned unchanged
	got = r.Resolve(ctx, "v", spec(schema.KindInterpolate, "{{a}}"), nil)
	if got != "{{a}}" {
		t.Fatalf("expected template unchanged, got %v", got)
	}
}

func TestResolve_Exec(t *testing.T) {
	r := NewResolver("")
	ctx := context.Background()

	if got := r.Resolve(ctx, "greeting", spec(schema.KindExec, "echo hi"), nil); got != "hi" {
		t.Fatalf("expected 'hi', got %v", got)
	}
	if got := r.Resolve(ctx, "port", spec(schema.KindExec, "echo 3000"), nil); got != int64(3000) {
		t.Fatalf("expected 3000, got %v (%T)", got, got)
	}
	if got := r.Resolve(ctx, "flag", spec(schema.KindExec, "echo true"), nil); got != true {
		t.Fatalf("expected true, got %v", got)
	}
}

func TestResolve_ExecJSON(t *testing.T) {
	r := NewResolver("")
	got := r.Resolve(context.Background(), "v", spec(schema.KindExec, `echo '{"a":1}'`), nil)
	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("expected parsed JSON object, got %T", got)
	}
	if m["a"] != float64(1) {
		t.Fatalf("expected a=1, got %v", m["a"])
	}
}

func TestResolve_ExecFailureIsNil(t *testing.T) {
	r := NewResolver("")
	got := r.Resolve(context.Background(), "v", spec(schema.KindExec, "definitely-not-a-real-command-xyz"), nil)
	if got != nil {
		t.Fatalf("failing command must resolve to nil, got %v", got)
	}
}

func TestResolve_Conditional(t *testing.T) {
	r := NewResolver("")
	ctx := context.Background()
	cond := schema.Value{Spec: &schema.ValueSpec{
		Kind:      schema.KindConditional,
		Condition: "env == 'prod'",
		IfTrue:    "https://{{host}}",
		IfFalse:   "http://localhost",
	}}

	got := r.Resolve(ctx, "url", cond, map[string]any{"env": "prod", "host": "example.com"})
	if got != "https://example.com" {
		t.Fatalf("expected templated ifTrue branch, got %v", got)
	}

	got = r.Resolve(ctx, "url", cond, map[string]any{"env": "dev"})
	if got != "http://localhost" {
		t.Fatalf("expected ifFalse branch, got %v", got)
	}

	// no context: undefined
	if got := r.Resolve(ctx, "url", cond, nil); got != nil {
		t.Fatalf("expected nil without context, got %v", got)
	}
}

func TestResolve_UnknownKindIsNil(t *testing.T) {
	r := NewResolver("")
	got := r.Resolve(context.Background(), "v", spec("frobnicate", "x"), nil)
	if got != nil {
		t.Fatalf("unknown spec kind must resolve to nil, got %v", got)
	}
}

func TestResolveAll_Concurrent(t *testing.T) {
	r := NewResolver("")
	decls := []schema.VariableDeclaration{
		{ID: "a", Value: spec(schema.KindExec, "sleep 0.3")},
		{ID: "b", Value: spec(schema.KindExec, "sleep 0.3")},
		{ID: "c", Value: spec(schema.KindExec, "sleep 0.3")},
	}

	start := time.Now()
	resolved := r.ResolveAll(context.Background(), decls, nil)
	elapsed := time.Since(start)

	if len(resolved) != 3 {
		t.Fatalf("expected 3 resolutions, got %d", len(resolved))
	}
	// bounded by the slowest single resolution, not the sum
	if elapsed > 700*time.Millisecond {
		t.Fatalf("resolutions did not run concurrently: took %v", elapsed)
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"hi", "hi"},
		{"3000", int64(3000)},
		{"3.14", 3.14},
		{"true", true},
		{"false", false},
		{"", ""},
		{"  padded  ", "padded"},
		{`["a","b"]`, nil}, // checked separately below
	}

	for _, tt := range tests[:7] {
		if got := Coerce(tt.in); got != tt.want {
			t.Errorf("Coerce(%q) = %v (%T), want %v", tt.in, got, got, tt.want)
		}
	}

	arr, ok := Coerce(`["a","b"]`).([]any)
	if !ok || len(arr) != 2 {
		t.Fatalf("expected parsed array, got %v", arr)
	}

	// malformed JSON stays a string
	if got := Coerce("{not json"); got != "{not json" {
		t.Fatalf("expected raw string, got %v", got)
	}
}

func TestInterpolate(t *testing.T) {
	ctx := map[string]any{"name": "app", "port": int64(8080), "on": true}

	tests := []struct {
		in   string
		want string
	}{
		{"{{name}}", "app"},
		{"{{ name }}", "app"},
		{"{{name}}:{{port}}", "app:8080"},
		{"enabled={{on}}", "enabled=true"},
		{"{{missing}}", ""},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := Interpolate(tt.in, ctx); got != tt.want {
			t.Errorf("Interpolate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
