package expr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/pixpilot/scaffoldfy-sub003/logger"
)

// ErrUndefined marks an evaluation failure caused by an identifier missing
// from the context. Lazy mode treats exactly this class of failure as true.
var ErrUndefined = errors.New("undefined identifier")

// Mode selects how evaluation failures are reported.
type Mode int

const (
	// Strict reports every failure as false.
	Strict Mode = iota
	// Lazy reports unresolved-identifier failures as true, everything else
	// as false. Used only for pre-checks before async values resolve.
	Lazy
)

// Options controls evaluation behavior.
type Options struct {
	Mode Mode
	// Silent suppresses the diagnostic log on failure.
	Silent bool
}

// Evaluate evaluates a boolean expression against the context.
// Failures never propagate: the result is false (or true for an
// unresolved identifier in lazy mode) and a debug diagnostic is logged
// unless silenced.
func Evaluate(expression string, context map[string]any, opts Options) bool {
	result, err := Eval(expression, context)
	if err != nil {
		if opts.Mode == Lazy && errors.Is(err, ErrUndefined) {
			return true
		}
		if !opts.Silent {
			logger.WithComponent("expr").Debug("expression evaluated to false", map[string]interface{}{
				"expression": expression,
				"error":      err.Error(),
			})
		}
		return false
	}
	return Truthy(result)
}

// Eval evaluates an expression and returns its value.
func Eval(expression string, context map[string]any) (any, error) {
	n, err := parse(expression)
	if err != nil {
		return nil, err
	}
	return n.eval(context)
}

// Truthy applies JavaScript-like truthiness: nil, false, zero, and the
// empty string are false; everything else (including empty arrays) is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	default:
		if f, ok := asNumber(v); ok {
			return f != 0
		}
		return true
	}
}

// --- node evaluation ---

func (n *literalNode) eval(map[string]any) (any, error) { return n.value, nil }

func (n *identNode) eval(ctx map[string]any) (any, error) {
	v, ok := ctx[n.name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUndefined, n.name)
	}
	return v, nil
}

func (n *unaryNode) eval(ctx map[string]any) (any, error) {
	v, err := n.operand.eval(ctx)
	if err != nil {
		return nil, err
	}
	switch n.op {
	case "!":
		return !Truthy(v), nil
	case "-":
		f, ok := asNumber(v)
		if !ok {
			return nil, fmt.Errorf("expr: cannot negate %T", v)
		}
		return -f, nil
	}
	return nil, fmt.Errorf("expr: unknown unary operator %q", n.op)
}

func (n *binaryNode) eval(ctx map[string]any) (any, error) {
	// logical operators short-circuit
	if n.op == "&&" || n.op == "||" {
		left, err := n.left.eval(ctx)
		if err != nil {
			return nil, err
		}
		if n.op == "&&" {
			if !Truthy(left) {
				return left, nil
			}
		} else if Truthy(left) {
			return left, nil
		}
		return n.right.eval(ctx)
	}

	left, err := n.left.eval(ctx)
	if err != nil {
		return nil, err
	}
	right, err := n.right.eval(ctx)
	if err != nil {
		return nil, err
	}

	switch n.op {
	case "==":
		return looseEqual(left, right), nil
	case "!=":
		return !looseEqual(left, right), nil
	case "===":
		return strictEqual(left, right), nil
	case "!==":
		return !strictEqual(left, right), nil
	case "+":
		if ls, ok := left.(string); ok {
			return ls + stringify(right), nil
		}
		if rs, ok := right.(string); ok {
			return stringify(left) + rs, nil
		}
		return arithmetic(n.op, left, right)
	case "-", "*", "/", "%":
		return arithmetic(n.op, left, right)
	case "<", "<=", ">", ">=":
		return compare(n.op, left, right)
	}
	return nil, fmt.Errorf("expr: unknown operator %q", n.op)
}

func (n *memberNode) eval(ctx map[string]any) (any, error) {
	obj, err := n.object.eval(ctx)
	if err != nil {
		return nil, err
	}

	if n.name == "length" {
		switch t := obj.(type) {
		case string:
			return float64(len(t)), nil
		case map[string]any:
			return float64(len(t)), nil
		}
		if items, ok := asSlice(obj); ok {
			return float64(len(items)), nil
		}
		return nil, fmt.Errorf("expr: length is not defined for %T", obj)
	}

	if m, ok := obj.(map[string]any); ok {
		return m[n.name], nil
	}
	return nil, fmt.Errorf("expr: cannot access member %q of %T", n.name, obj)
}

func (n *indexNode) eval(ctx map[string]any) (any, error) {
	obj, err := n.object.eval(ctx)
	if err != nil {
		return nil, err
	}
	idx, err := n.index.eval(ctx)
	if err != nil {
		return nil, err
	}

	if key, ok := idx.(string); ok {
		if m, ok := obj.(map[string]any); ok {
			return m[key], nil
		}
		return nil, fmt.Errorf("expr: cannot index %T with string", obj)
	}

	f, ok := asNumber(idx)
	if !ok {
		return nil, fmt.Errorf("expr: index must be a number or string, got %T", idx)
	}
	i := int(f)

	if s, ok := obj.(string); ok {
		if i < 0 || i >= len(s) {
			return nil, nil
		}
		return string(s[i]), nil
	}
	if items, ok := asSlice(obj); ok {
		if i < 0 || i >= len(items) {
			return nil, nil
		}
		return items[i], nil
	}
	return nil, fmt.Errorf("expr: cannot index %T", obj)
}

// allowed methods, by receiver kind.
func (n *callNode) eval(ctx map[string]any) (any, error) {
	obj, err := n.object.eval(ctx)
	if err != nil {
		return nil, err
	}

	args := make([]any, len(n.args))
	for i, a := range n.args {
		if args[i], err = a.eval(ctx); err != nil {
			return nil, err
		}
	}

	if s, ok := obj.(string); ok {
		return callStringMethod(s, n.method, args)
	}
	if items, ok := asSlice(obj); ok {
		return callSliceMethod(items, n.method, args)
	}
	return nil, fmt.Errorf("expr: cannot call %q on %T", n.method, obj)
}

func callStringMethod(s, method string, args []any) (any, error) {
	arg := func() string {
		if len(args) > 0 {
			return stringify(args[0])
		}
		return ""
	}
	switch method {
	case "includes":
		return strings.Contains(s, arg()), nil
	case "startsWith":
		return strings.HasPrefix(s, arg()), nil
	case "endsWith":
		return strings.HasSuffix(s, arg()), nil
	case "toLowerCase":
		return strings.ToLower(s), nil
	case "toUpperCase":
		return strings.ToUpper(s), nil
	case "trim":
		return strings.TrimSpace(s), nil
	}
	return nil, fmt.Errorf("expr: unknown string method %q", method)
}

func callSliceMethod(items []any, method string, args []any) (any, error) {
	switch method {
	case "includes":
		if len(args) == 0 {
			return false, nil
		}
		for _, item := range items {
			if looseEqual(item, args[0]) {
				return true, nil
			}
		}
		return false, nil
	}
	return nil, fmt.Errorf("expr: unknown array method %q", method)
}

// --- value helpers ---

func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

func asSlice(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		return items, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return items, true
	}
	return nil, false
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := asNumber(v); ok {
		if f == float64(int64(f)) {
			return fmt.Sprintf("%d", int64(f))
		}
		return fmt.Sprintf("%v", f)
	}
	return fmt.Sprintf("%v", v)
}

func looseEqual(a, b any) bool {
	af, aok := asNumber(a)
	bf, bok := asNumber(b)
	if aok && bok {
		return af == bf
	}
	return reflect.DeepEqual(a, b)
}

func strictEqual(a, b any) bool {
	af, aok := asNumber(a)
	bf, bok := asNumber(b)
	if aok && bok {
		return af == bf
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func arithmetic(op string, left, right any) (any, error) {
	lf, lok := asNumber(left)
	rf, rok := asNumber(right)
	if !lok || !rok {
		return nil, fmt.Errorf("expr: %q requires numbers, got %T and %T", op, left, right)
	}
	switch op {
	case "+":
		return lf + rf, nil
	case "-":
		return lf - rf, nil
	case "*":
		return lf * rf, nil
	case "/":
		if rf == 0 {
			return nil, fmt.Errorf("expr: division by zero")
		}
		return lf / rf, nil
	case "%":
		if rf == 0 {
			return nil, fmt.Errorf("expr: division by zero")
		}
		return float64(int64(lf) % int64(rf)), nil
	}
	return nil, fmt.Errorf("expr: unknown arithmetic operator %q", op)
}

func compare(op string, left, right any) (any, error) {
	if ls, ok := left.(string); ok {
		if rs, ok := right.(string); ok {
			switch op {
			case "<":
				return ls < rs, nil
			case "<=":
				return ls <= rs, nil
			case ">":
				return ls > rs, nil
			case ">=":
				return ls >= rs, nil
			}
		}
	}
	lf, lok := asNumber(left)
	rf, rok := asNumber(right)
	if !lok || !rok {
		return nil, fmt.Errorf("expr: %q requires comparable operands, got %T and %T", op, left, right)
	}
	switch op {
	case "<":
		return lf < rf, nil
	case "<=":
		return lf <= rf, nil
	case ">":
		return lf > rf, nil
	case ">=":
		return lf >= rf, nil
	}
	return nil, fmt.Errorf("expr: unknown comparison operator %q", op)
}
