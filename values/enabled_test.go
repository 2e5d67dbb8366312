package values

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pixpilot/scaffoldfy-sub003/expr"
	"github.com/pixpilot/scaffoldfy-sub003/schema"
)

func enabledOf(t *testing.T, raw string) schema.Enabled {
	t.Helper()
	var e schema.Enabled
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestEnabledNow(t *testing.T) {
	r := NewResolver("")

	if !r.EnabledNow(schema.Enabled{}, nil, expr.Strict) {
		t.Fatal("unset enablement defaults to true")
	}
	if r.EnabledNow(enabledOf(t, "false"), nil, expr.Strict) {
		t.Fatal("literal false must disable")
	}
	if !r.EnabledNow(enabledOf(t, "true"), nil, expr.Strict) {
		t.Fatal("literal true must enable")
	}

	e := enabledOf(t, `"flag"`)
	if r.EnabledNow(e, map[string]any{"flag": false}, expr.Strict) {
		t.Fatal("false expression must disable")
	}
	if !r.EnabledNow(e, nil, expr.Lazy) {
		t.Fatal("lazy mode must keep unresolved expressions enabled")
	}
	if r.EnabledNow(e, nil, expr.Strict) {
		t.Fatal("strict mode must disable unresolved expressions")
	}

	// exec conditions are unknown here and assumed true
	if !r.EnabledNow(enabledOf(t, `{"type": "exec", "value": "false"}`), nil, expr.Strict) {
		t.Fatal("exec condition must be assumed true before resolution")
	}
}

func TestEnabledResolved_Exec(t *testing.T) {
	r := NewResolver("")
	ctx := context.Background()

	if !r.EnabledResolved(ctx, enabledOf(t, `{"type": "exec", "value": "echo yes"}`), nil) {
		t.Fatal("non-empty output must enable")
	}
	if r.EnabledResolved(ctx, enabledOf(t, `{"type": "exec", "value": "echo false"}`), nil) {
		t.Fatal("output 'false' must disable")
	}
	if r.EnabledResolved(ctx, enabledOf(t, `{"type": "exec", "value": "echo 0"}`), nil) {
		t.Fatal("output '0' must disable")
	}
	if r.EnabledResolved(ctx, enabledOf(t, `{"type": "exec", "value": "true"}`), nil) {
		t.Fatal("empty output must disable")
	}
	if r.EnabledResolved(ctx, enabledOf(t, `{"type": "exec", "value": "exit 3"}`), nil) {
		t.Fatal("failing command must disable")
	}
}

func TestEnabledResolved_Expression(t *testing.T) {
	r := NewResolver("")
	ctx := context.Background()
	e := enabledOf(t, `"env == 'prod'"`)

	if !r.EnabledResolved(ctx, e, map[string]any{"env": "prod"}) {
		t.Fatal("matching expression must enable")
	}
	if r.EnabledResolved(ctx, e, map[string]any{"env": "dev"}) {
		t.Fatal("non-matching expression must disable")
	}
	// resolution phase is strict: unresolved means disabled
	if r.EnabledResolved(ctx, e, map[string]any{}) {
		t.Fatal("unresolved identifier must disable")
	}
}
