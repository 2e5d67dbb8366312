// Package schema defines the task configuration document model: the
// top-level TaskConfiguration, the TaskDeclaration units it contains, and
// the variable, prompt, and value declarations shared between them.
//
// Task documents are plain JSON. Several fields are tagged unions on the
// wire (a value is either a bare literal or a {type: ...} spec; enablement
// is a literal boolean, an expression string, or an exec condition); those
// fields carry custom UnmarshalJSON implementations so the rest of the
// engine works with decoded Go shapes rather than raw JSON.
package schema
