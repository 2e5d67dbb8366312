// Package prompt defines the contract between the engine and a prompt
// renderer. Terminal rendering lives outside the engine; the engine only
// resolves default values and validates answers. StaticRenderer provides
// the non-interactive implementation used for scripted runs and tests.
package prompt

import (
	"fmt"

	"github.com/pixpilot/scaffoldfy-sub003/errors"
	"github.com/pixpilot/scaffoldfy-sub003/schema"
	"github.com/pixpilot/scaffoldfy-sub003/values"
)

// Renderer collects answers for a set of prompt declarations. defaults
// holds the already-resolved default value per prompt id.
type Renderer interface {
	Render(prompts []schema.PromptDeclaration, defaults map[string]any) (map[string]any, error)
}

// StaticRenderer answers prompts without user interaction: a provided
// answer wins, then the resolved default. A required prompt with neither
// is an error.
type StaticRenderer struct {
	Answers map[string]any
}

// Render implements Renderer.
func (r *StaticRenderer) Render(prompts []schema.PromptDeclaration, defaults map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(prompts))

	for _, p := range prompts {
		answer, ok := r.Answers[p.ID]
		if !ok {
			answer, ok = defaults[p.ID]
		}
		if !ok || answer == nil {
			if p.Required {
				return nil, errors.Validation(fmt.Sprintf("prompt %q requires an answer", p.ID))
			}
			continue
		}

		if err := checkAnswer(p, answer); err != nil {
			return nil, err
		}
		out[p.ID] = answer
	}

	return out, nil
}

func checkAnswer(p schema.PromptDeclaration, answer any) error {
	switch p.Type {
	case schema.PromptSelect:
		got := values.Stringify(answer)
		for _, choice := range p.Choices {
			if choice == got {
				return nil
			}
		}
		return errors.Validation(fmt.Sprintf("prompt %q: %q is not one of the choices", p.ID, got))

	case schema.PromptNumber:
		f, ok := asFloat(answer)
		if !ok {
			return errors.Validation(fmt.Sprintf("prompt %q: answer must be a number", p.ID))
		}
		if p.Min != nil && f < *p.Min {
			return errors.Validation(fmt.Sprintf("prompt %q: %v is below the minimum %v", p.ID, f, *p.Min))
		}
		if p.Max != nil && f > *p.Max {
			return errors.Validation(fmt.Sprintf("prompt %q: %v is above the maximum %v", p.ID, f, *p.Max))
		}

	case schema.PromptConfirm:
		if _, ok := answer.(bool); !ok {
			return errors.Validation(fmt.Sprintf("prompt %q: answer must be a boolean", p.ID))
		}
	}
	return nil
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}
