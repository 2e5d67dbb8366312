package loader

import "github.com/pixpilot/scaffoldfy-sub003/schema"

// Merge deep-merges an ancestor configuration with a more specific child.
// Array fields concatenate ancestor-first; scalar fields take the child's
// value when the child sets one, otherwise the ancestor's. The extends
// field is consumed by resolution and never survives a merge.
func Merge(ancestor, child *schema.TaskConfiguration) *schema.TaskConfiguration {
	merged := &schema.TaskConfiguration{
		Name:        child.Name,
		Description: child.Description,
		Enabled:     child.Enabled,
	}

	if merged.Name == "" {
		merged.Name = ancestor.Name
	}
	if merged.Description == "" {
		merged.Description = ancestor.Description
	}
	if !merged.Enabled.Set {
		merged.Enabled = ancestor.Enabled
	}

	merged.Dependencies = concat(ancestor.Dependencies, child.Dependencies)
	merged.Variables = concat(ancestor.Variables, child.Variables)
	merged.Prompts = concat(ancestor.Prompts, child.Prompts)
	merged.Tasks = concat(ancestor.Tasks, child.Tasks)

	return merged
}

func concat[T any](ancestor, child []T) []T {
	if len(ancestor) == 0 && len(child) == 0 {
		return nil
	}
	out := make([]T, 0, len(ancestor)+len(child))
	out = append(out, ancestor...)
	return append(out, child...)
}
