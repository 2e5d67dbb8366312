package validation

import (
	stderrors "errors"
	"fmt"

	"github.com/pixpilot/scaffoldfy-sub003/errors"
	"github.com/pixpilot/scaffoldfy-sub003/schema"
)

// ValidateConfiguration checks the document-level invariants of a merged
// configuration: struct-tag rules on the declaration types (required
// fields, prompt type enum), then name format, task id uniqueness,
// variable id format and uniqueness, and prompt rules. Violations are
// reported together as one fatal configuration error.
func ValidateConfiguration(cfg *schema.TaskConfiguration) error {
	if err := Struct(cfg); err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return errors.Configuration(appErr.Message).WithDetail("fields", appErr.Details["fields"])
		}
		return err
	}

	v := New()

	v.Required("name", cfg.Name).Name("name", cfg.Name)

	validateTasks(v, cfg.Tasks)
	validateVariables(v, "variables", cfg.Variables)
	validatePrompts(v, "prompts", cfg.Prompts)

	if appErr := v.Validate(); appErr != nil {
		// Document invariants are configuration errors, not task-set
		// validation errors.
		return errors.Configuration(appErr.Message).WithDetail("fields", v.Errors())
	}
	return nil
}

func validateTasks(v *Validator, tasks []schema.TaskDeclaration) {
	seen := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		field := fmt.Sprintf("tasks[%d]", i)
		v.Required(field+".id", t.ID)
		v.Required(field+".type", t.Type)
		if t.ID != "" {
			v.Custom(!seen[t.ID], field+".id", fmt.Sprintf("duplicate task id %q", t.ID))
			seen[t.ID] = true
		}
		validateVariables(v, field+".variables", t.Variables)
		validatePrompts(v, field+".prompts", t.Prompts)
	}
}

func validateVariables(v *Validator, field string, decls []schema.VariableDeclaration) {
	seen := make(map[string]bool, len(decls))
	for i, d := range decls {
		f := fmt.Sprintf("%s[%d].id", field, i)
		v.Required(f, d.ID).Identifier(f, d.ID)
		if d.ID != "" {
			v.Custom(!seen[d.ID], f, fmt.Sprintf("duplicate variable id %q", d.ID))
			seen[d.ID] = true
		}
	}
}

func validatePrompts(v *Validator, field string, prompts []schema.PromptDeclaration) {
	global := make(map[string]bool, len(prompts))
	local := make(map[string]bool, len(prompts))

	for i, p := range prompts {
		f := fmt.Sprintf("%s[%d]", field, i)
		v.Required(f+".id", p.ID).Identifier(f+".id", p.ID)
		v.OneOf(f+".type", p.Type, schema.PromptTypes)

		if p.Type == schema.PromptSelect && len(p.Choices) == 0 {
			v.AddError(f+".choices", "select prompts require at least one choice")
		}
		if p.Type != schema.PromptSelect && len(p.Choices) > 0 {
			v.AddError(f+".choices", "choices are only valid on select prompts")
		}
		if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
			v.AddError(f+".min", "min must not exceed max")
		}
		if (p.Min != nil || p.Max != nil) && p.Type != schema.PromptNumber {
			v.AddError(f+".min", "min/max are only valid on number prompts")
		}

		if p.ID == "" {
			continue
		}
		// a global prompt id must not collide with a non-global one
		if p.Global {
			v.Custom(!local[p.ID] && !global[p.ID], f+".id",
				fmt.Sprintf("prompt id %q collides with another prompt", p.ID))
			global[p.ID] = true
		} else {
			v.Custom(!global[p.ID] && !local[p.ID], f+".id",
				fmt.Sprintf("prompt id %q collides with another prompt", p.ID))
			local[p.ID] = true
		}
	}
}
