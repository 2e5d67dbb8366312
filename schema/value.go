package schema

import (
	"encoding/json"
	"fmt"
)

// ValueSpec kinds.
const (
	KindStatic      = "static"
	KindExec        = "exec"
	KindInterpolate = "interpolate"
	KindConditional = "conditional"
)

// ValueSpec describes how a value is produced at runtime.
type ValueSpec struct {
	// Kind is one of static, exec, interpolate, conditional.
	Kind string `json:"type"`
	// Value is the static value, command string, or template string.
	Value any `json:"value,omitempty"`
	// Condition is the expression string for conditional specs.
	Condition string `json:"condition,omitempty"`
	// IfTrue is the value selected when the condition holds.
	IfTrue any `json:"ifTrue,omitempty"`
	// IfFalse is the value selected when the condition does not hold.
	IfFalse any `json:"ifFalse,omitempty"`
}

// Value is either a bare literal or a ValueSpec. Exactly one of the two
// fields is populated after decoding.
type Value struct {
	Literal any
	Spec    *ValueSpec
}

// IsSpec reports whether the value carries a ValueSpec.
func (v *Value) IsSpec() bool { return v.Spec != nil }

// UnmarshalJSON decodes either a bare JSON literal or a tagged spec object.
// An object is a spec only when its "type" field names a known kind; any
// other object is treated as a literal.
func (v *Value) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err == nil && isSpecKind(probe.Type) {
		var spec ValueSpec
		if err := json.Unmarshal(data, &spec); err != nil {
			return fmt.Errorf("schema: decoding value spec: %w", err)
		}
		v.Spec = &spec
		v.Literal = nil
		return nil
	}

	var literal any
	if err := json.Unmarshal(data, &literal); err != nil {
		return fmt.Errorf("schema: decoding value literal: %w", err)
	}
	v.Literal = literal
	v.Spec = nil
	return nil
}

// MarshalJSON re-encodes the decoded form.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Spec != nil {
		return json.Marshal(v.Spec)
	}
	return json.Marshal(v.Literal)
}

func isSpecKind(kind string) bool {
	switch kind {
	case KindStatic, KindExec, KindInterpolate, KindConditional:
		return true
	}
	return false
}

// Enabled models the enablement of a document or task: a literal boolean,
// an expression string, or an exec condition spec. Set distinguishes an
// explicit value from an omitted field so inheritance merging can tell
// "child sets false" apart from "child says nothing".
type Enabled struct {
	Set        bool
	Literal    *bool
	Expression string
	Condition  *ValueSpec
}

// IsLiteralFalse reports whether enablement is the explicit literal false.
func (e *Enabled) IsLiteralFalse() bool {
	return e.Set && e.Literal != nil && !*e.Literal
}

// UnmarshalJSON decodes a boolean, an expression string, or an exec spec.
func (e *Enabled) UnmarshalJSON(data []byte) error {
	*e = Enabled{Set: true}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		e.Literal = &b
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Expression = s
		return nil
	}

	var spec ValueSpec
	if err := json.Unmarshal(data, &spec); err == nil && spec.Kind == KindExec {
		e.Condition = &spec
		return nil
	}

	return fmt.Errorf("schema: enabled must be a boolean, expression string, or exec condition")
}

// MarshalJSON re-encodes the decoded form.
func (e Enabled) MarshalJSON() ([]byte, error) {
	switch {
	case !e.Set:
		return []byte("null"), nil
	case e.Literal != nil:
		return json.Marshal(*e.Literal)
	case e.Condition != nil:
		return json.Marshal(e.Condition)
	default:
		return json.Marshal(e.Expression)
	}
}
